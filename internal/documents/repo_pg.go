package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id, user_id, file_name, storage_key, mime_type, size_bytes,
    extracted_text, sections, contact_email, contact_phone, detected_skills, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`

	sections, err := marshalJSONB(doc.Sections)
	if err != nil {
		return err
	}
	skills, err := marshalJSONB(doc.DetectedSkills)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.StorageKey,
		doc.MimeType,
		doc.SizeBytes,
		doc.ExtractedText,
		sections,
		nullableString(doc.ContactEmail),
		nullableString(doc.ContactPhone),
		skills,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, file_name, storage_key, mime_type, size_bytes,
       extracted_text, sections, contact_email, contact_phone, detected_skills, created_at
FROM documents
WHERE id = $1 AND user_id = $2
LIMIT 1`

	var doc Document
	var sections []byte
	var email sql.NullString
	var phone sql.NullString
	var skills []byte
	err := r.DB.QueryRowContext(ctx, query, documentID, userID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.StorageKey,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.ExtractedText,
		&sections,
		&email,
		&phone,
		&skills,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &doc.Sections); err != nil {
			return Document{}, err
		}
	}
	if email.Valid {
		doc.ContactEmail = email.String
	}
	if phone.Valid {
		doc.ContactPhone = phone.String
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &doc.DetectedSkills); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
