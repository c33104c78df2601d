package versions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/shared/storage/object"
)

// AnalysisSource resolves an analysis owned by the user to its current
// improved LaTeX. A lookup failure means the analysis does not exist or
// belongs to someone else.
type AnalysisSource interface {
	ImprovedLatex(ctx context.Context, userID, analysisID string) (latexContent, storageKey string, err error)
}

// Service manages resume version snapshots for an analysis.
type Service struct {
	Repo     Repo
	Analyses AnalysisSource
	Store    object.ObjectStore
}

// CreateInput is a user-requested snapshot. When LatexContent is empty the
// analysis's current improved LaTeX is snapshotted instead.
type CreateInput struct {
	Description  string
	LatexContent string
}

// Create records a new version for the analysis, numbered after the latest
// existing version.
func (s *Service) Create(ctx context.Context, userID, analysisID string, in CreateInput) (ResumeVersion, error) {
	currentLatex, currentKey, err := s.Analyses.ImprovedLatex(ctx, userID, analysisID)
	if err != nil {
		return ResumeVersion{}, err
	}

	latexContent := in.LatexContent
	storageKey := ""
	if strings.TrimSpace(latexContent) == "" {
		latexContent = currentLatex
		storageKey = currentKey
	}
	if strings.TrimSpace(latexContent) == "" {
		return ResumeVersion{}, fmt.Errorf("%w: no latex content to snapshot", ErrInvalidInput)
	}

	if storageKey == "" && s.Store != nil {
		storageKey, err = s.upload(ctx, analysisID, latexContent)
		if err != nil {
			return ResumeVersion{}, fmt.Errorf("storage upload: %w", err)
		}
	}

	return s.Repo.Create(ctx, ResumeVersion{
		ID:           uuid.NewString(),
		AnalysisID:   analysisID,
		UserID:       userID,
		Description:  strings.TrimSpace(in.Description),
		LatexContent: latexContent,
		StorageKey:   storageKey,
	})
}

// Append records a version on behalf of the improvement workflow. Ownership
// has already been verified by the caller.
func (s *Service) Append(ctx context.Context, userID, analysisID, latexContent, storageKey, description string) error {
	_, err := s.Repo.Create(ctx, ResumeVersion{
		ID:           uuid.NewString(),
		AnalysisID:   analysisID,
		UserID:       userID,
		Description:  description,
		LatexContent: latexContent,
		StorageKey:   storageKey,
	})
	return err
}

// List returns the versions for an analysis, newest first.
func (s *Service) List(ctx context.Context, userID, analysisID string) ([]ResumeVersion, error) {
	if _, _, err := s.Analyses.ImprovedLatex(ctx, userID, analysisID); err != nil {
		return nil, err
	}
	return s.Repo.ListByAnalysis(ctx, analysisID)
}

// Get returns one version including its LaTeX content.
func (s *Service) Get(ctx context.Context, userID, analysisID, versionID string) (ResumeVersion, error) {
	if _, _, err := s.Analyses.ImprovedLatex(ctx, userID, analysisID); err != nil {
		return ResumeVersion{}, err
	}
	return s.Repo.GetByID(ctx, analysisID, versionID)
}

// UpdateDescription renames a version. The snapshot content never changes.
func (s *Service) UpdateDescription(ctx context.Context, userID, analysisID, versionID, description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if _, _, err := s.Analyses.ImprovedLatex(ctx, userID, analysisID); err != nil {
		return err
	}
	return s.Repo.UpdateDescription(ctx, analysisID, versionID, strings.TrimSpace(description))
}

// Delete removes a version snapshot.
func (s *Service) Delete(ctx context.Context, userID, analysisID, versionID string) error {
	if _, _, err := s.Analyses.ImprovedLatex(ctx, userID, analysisID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, analysisID, versionID)
}

func (s *Service) upload(ctx context.Context, analysisID, latexContent string) (string, error) {
	key := fmt.Sprintf("generated/%s/versions/%s.tex", analysisID, time.Now().UTC().Format("20060102_150405"))
	if _, err := s.Store.SaveWithKey(ctx, key, "application/x-tex", strings.NewReader(latexContent)); err != nil {
		return "", err
	}
	return key, nil
}
