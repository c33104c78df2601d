package feedback

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	entries []Feedback
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, entry Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, entry)
	return nil
}

// All returns the stored entries, oldest first.
func (r *MemoryRepo) All() []Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Feedback, len(r.entries))
	copy(out, r.entries)
	return out
}
