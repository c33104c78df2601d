package versions

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const versionColumns = `id, analysis_id, user_id, version_number, description, latex_content, storage_key, created_at`

// Create assigns MAX(version_number)+1 inside a transaction. The analysis row
// is locked first so concurrent creates for the same analysis serialize
// instead of colliding on the unique (analysis_id, version_number) index.
func (r *PGRepo) Create(ctx context.Context, version ResumeVersion) (ResumeVersion, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return ResumeVersion{}, err
	}
	defer tx.Rollback()

	var analysisID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM analyses WHERE id = $1 FOR UPDATE`, version.AnalysisID).Scan(&analysisID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeVersion{}, ErrNotFound
		}
		return ResumeVersion{}, err
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version_number), 0) + 1 FROM resume_versions WHERE analysis_id = $1`,
		version.AnalysisID,
	).Scan(&version.VersionNumber)
	if err != nil {
		return ResumeVersion{}, err
	}

	var storageKey any
	if version.StorageKey != "" {
		storageKey = version.StorageKey
	}
	const insert = `
INSERT INTO resume_versions (id, analysis_id, user_id, version_number, description, latex_content, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING created_at`
	err = tx.QueryRowContext(ctx, insert,
		version.ID,
		version.AnalysisID,
		version.UserID,
		version.VersionNumber,
		version.Description,
		version.LatexContent,
		storageKey,
	).Scan(&version.CreatedAt)
	if err != nil {
		return ResumeVersion{}, err
	}

	if err := tx.Commit(); err != nil {
		return ResumeVersion{}, err
	}
	return version, nil
}

func (r *PGRepo) ListByAnalysis(ctx context.Context, analysisID string) ([]ResumeVersion, error) {
	query := `SELECT ` + versionColumns + `
FROM resume_versions
WHERE analysis_id = $1
ORDER BY version_number DESC`
	rows, err := r.DB.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ResumeVersion, 0)
	for rows.Next() {
		version, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, version)
	}
	return items, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, analysisID, versionID string) (ResumeVersion, error) {
	query := `SELECT ` + versionColumns + `
FROM resume_versions
WHERE id = $1 AND analysis_id = $2
LIMIT 1`
	version, err := scanVersion(r.DB.QueryRowContext(ctx, query, versionID, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeVersion{}, ErrNotFound
		}
		return ResumeVersion{}, err
	}
	return version, nil
}

func (r *PGRepo) UpdateDescription(ctx context.Context, analysisID, versionID, description string) error {
	const query = `
UPDATE resume_versions
SET description = $3
WHERE id = $1 AND analysis_id = $2`
	res, err := r.DB.ExecContext(ctx, query, versionID, analysisID, description)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, analysisID, versionID string) error {
	const query = `DELETE FROM resume_versions WHERE id = $1 AND analysis_id = $2`
	res, err := r.DB.ExecContext(ctx, query, versionID, analysisID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (ResumeVersion, error) {
	var version ResumeVersion
	var storageKey sql.NullString
	err := row.Scan(
		&version.ID,
		&version.AnalysisID,
		&version.UserID,
		&version.VersionNumber,
		&version.Description,
		&version.LatexContent,
		&storageKey,
		&version.CreatedAt,
	)
	if err != nil {
		return ResumeVersion{}, err
	}
	if storageKey.Valid {
		version.StorageKey = storageKey.String
	}
	return version, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
