package documents

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/extract"
	"resume-match/internal/shared/storage/object"
	"resume-match/internal/shared/util"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// Service ingests uploaded resumes: validates, stores the raw bytes and
// persists the document with its parsed breakdown.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	MaxUploadBytes int64

	// Parse is swappable in tests; defaults to extract.Parse.
	Parse func(ctx context.Context, data []byte, fileName string) (extract.Result, error)
}

// Ingest validates the upload, saves it to object storage, extracts text and
// structure, and records the document. Validation failures happen before any
// storage or oracle work.
func (s *Service) Ingest(ctx context.Context, userID, fileName string, data []byte) (Document, error) {
	fileName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return Document{}, fmt.Errorf("%w: unsupported file type %s", ErrInvalidInput, ext)
	}
	if s.MaxUploadBytes > 0 && int64(len(data)) > s.MaxUploadBytes {
		return Document{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, s.MaxUploadBytes)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	parse := s.Parse
	if parse == nil {
		parse = extract.Parse
	}
	parsed, err := parse(ctx, data, fileName)
	if err != nil {
		return Document{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		StorageKey:     storageKey,
		MimeType:       mimeType,
		SizeBytes:      size,
		ExtractedText:  parsed.Text,
		Sections:       parsed.Sections,
		ContactEmail:   parsed.Email,
		ContactPhone:   parsed.Phone,
		DetectedSkills: parsed.Skills,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns a document owned by the user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	return s.Repo.GetByID(ctx, userID, documentID)
}
