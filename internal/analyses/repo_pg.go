package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"resume-match/internal/analyzer"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `
id, user_id, document_id, position_id, progress_status, progress_percentage, failure_reason,
match_score, matched_skills, missing_skills, matched_keywords, missing_keywords, improvements, summary,
improved_latex, latex_storage_key, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id, user_id, document_id, position_id, progress_status, progress_percentage, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.DocumentID,
		analysis.PositionID,
		analysis.Status,
		analysis.Percentage,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Analysis, 0)
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, analysis)
	}
	return items, rows.Err()
}

func (r *PGRepo) UpdateProgress(ctx context.Context, analysisID, status string, percentage int, failureReason *string) error {
	const query = `
UPDATE analyses
SET progress_status = $2, progress_percentage = $3, failure_reason = $4, updated_at = now()
WHERE id = $1`
	var reason any
	if failureReason != nil {
		reason = *failureReason
	}
	res, err := r.DB.ExecContext(ctx, query, analysisID, status, percentage, reason)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CompleteWithResult(ctx context.Context, analysisID string, result analyzer.MatchResult) error {
	const query = `
UPDATE analyses
SET progress_status = $2, progress_percentage = $3, failure_reason = NULL,
    match_score = $4, matched_skills = $5, missing_skills = $6,
    matched_keywords = $7, missing_keywords = $8, improvements = $9, summary = $10,
    updated_at = now()
WHERE id = $1`
	matched, err := json.Marshal(result.MatchedSkills)
	if err != nil {
		return err
	}
	missing, err := json.Marshal(result.MissingSkills)
	if err != nil {
		return err
	}
	matchedKw, err := json.Marshal(result.MatchedKeywords)
	if err != nil {
		return err
	}
	missingKw, err := json.Marshal(result.MissingKeywords)
	if err != nil {
		return err
	}
	improvements, err := json.Marshal(result.Improvements)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		analysisID,
		StatusCompleted,
		pctDone,
		result.Score,
		matched,
		missing,
		matchedKw,
		missingKw,
		improvements,
		result.Summary,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CompleteWithImproved(ctx context.Context, analysisID, latexContent, storageKey string) error {
	const query = `
UPDATE analyses
SET progress_status = $2, progress_percentage = $3, failure_reason = NULL,
    improved_latex = $4, latex_storage_key = $5, updated_at = now()
WHERE id = $1`
	var key any
	if storageKey != "" {
		key = storageKey
	}
	res, err := r.DB.ExecContext(ctx, query, analysisID, StatusCompleted, pctDone, latexContent, key)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdateLatex(ctx context.Context, userID, analysisID, latexContent, storageKey string) error {
	const query = `
UPDATE analyses
SET improved_latex = $3, latex_storage_key = COALESCE($4, latex_storage_key), updated_at = now()
WHERE id = $1 AND user_id = $2`
	var key any
	if storageKey != "" {
		key = storageKey
	}
	res, err := r.DB.ExecContext(ctx, query, analysisID, userID, latexContent, key)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var analysis Analysis
	var failureReason sql.NullString
	var score sql.NullFloat64
	var matched, missing, matchedKw, missingKw, improvements []byte
	var summary sql.NullString
	var improvedLatex sql.NullString
	var latexKey sql.NullString

	err := row.Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.DocumentID,
		&analysis.PositionID,
		&analysis.Status,
		&analysis.Percentage,
		&failureReason,
		&score,
		&matched,
		&missing,
		&matchedKw,
		&missingKw,
		&improvements,
		&summary,
		&improvedLatex,
		&latexKey,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if failureReason.Valid {
		analysis.FailureReason = failureReason.String
	}
	if improvedLatex.Valid {
		analysis.ImprovedLatex = improvedLatex.String
	}
	if latexKey.Valid {
		analysis.LatexStorageKey = latexKey.String
	}

	if score.Valid {
		result := analyzer.MatchResult{
			Score:           score.Float64,
			MatchedSkills:   []string{},
			MissingSkills:   []string{},
			MatchedKeywords: []string{},
			MissingKeywords: []string{},
			Improvements:    []analyzer.Improvement{},
		}
		if summary.Valid {
			result.Summary = summary.String
		}
		for _, pair := range []struct {
			raw  []byte
			dest *[]string
		}{
			{matched, &result.MatchedSkills},
			{missing, &result.MissingSkills},
			{matchedKw, &result.MatchedKeywords},
			{missingKw, &result.MissingKeywords},
		} {
			if len(pair.raw) > 0 {
				if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
					return Analysis{}, err
				}
			}
		}
		if len(improvements) > 0 {
			if err := json.Unmarshal(improvements, &result.Improvements); err != nil {
				return Analysis{}, err
			}
		}
		analysis.Result = &result
	}
	return analysis, nil
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
