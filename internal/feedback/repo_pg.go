package feedback

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, entry Feedback) error {
	const query = `
INSERT INTO feedback (id, user_id, rating, message, category, email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	var userID any
	if entry.UserID != "" {
		userID = entry.UserID
	}
	var email any
	if entry.Email != "" {
		email = entry.Email
	}
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		userID,
		entry.Rating,
		entry.Message,
		entry.Category,
		email,
	)
	return err
}
