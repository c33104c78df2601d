package positions

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	positions map[string]Position
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{positions: make(map[string]Position)}
}

func (r *MemoryRepo) Create(ctx context.Context, position Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if position.CreatedAt.IsZero() {
		position.CreatedAt = time.Now().UTC()
	}
	r.positions[position.ID] = position
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, positionID string) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	position, ok := r.positions[positionID]
	if !ok || position.UserID != userID {
		return Position{}, ErrNotFound
	}
	return position, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Position, 0)
	for _, position := range r.positions {
		if position.UserID == userID {
			out = append(out, position)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
