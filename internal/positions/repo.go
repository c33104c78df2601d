package positions

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("position not found")

type Repo interface {
	Create(ctx context.Context, position Position) error
	GetByID(ctx context.Context, userID, positionID string) (Position, error)
	ListByUser(ctx context.Context, userID string) ([]Position, error)
}
