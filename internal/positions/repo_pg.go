package positions

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, position Position) error {
	const query = `
INSERT INTO positions (id, user_id, title, company, description, requirements, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.DB.ExecContext(ctx, query,
		position.ID,
		position.UserID,
		position.Title,
		nullableString(position.Company),
		position.Description,
		nullableString(position.Requirements),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, positionID string) (Position, error) {
	const query = `
SELECT id, user_id, title, company, description, requirements, created_at
FROM positions
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, positionID, userID)
	position, err := scanPosition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Position{}, ErrNotFound
		}
		return Position{}, err
	}
	return position, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Position, error) {
	const query = `
SELECT id, user_id, title, company, description, requirements, created_at
FROM positions
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Position, 0)
	for rows.Next() {
		position, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, position)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (Position, error) {
	var position Position
	var company sql.NullString
	var requirements sql.NullString
	err := row.Scan(
		&position.ID,
		&position.UserID,
		&position.Title,
		&company,
		&position.Description,
		&requirements,
		&position.CreatedAt,
	)
	if err != nil {
		return Position{}, err
	}
	if company.Valid {
		position.Company = company.String
	}
	if requirements.Valid {
		position.Requirements = requirements.String
	}
	return position, nil
}
