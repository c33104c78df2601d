package analyses

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-match/internal/analyzer"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Analysis
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Analysis)}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = now
	}
	analysis.UpdatedAt = now
	r.data[analysis.ID] = analysis
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.data[analysisID]
	if !ok || analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	items := make([]Analysis, 0)
	for _, analysis := range r.data {
		if analysis.UserID == userID {
			items = append(items, analysis)
		}
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if offset >= len(items) {
		return []Analysis{}, nil
	}
	end := len(items)
	if offset+limit < end {
		end = offset + limit
	}
	return items[offset:end], nil
}

func (r *MemoryRepo) UpdateProgress(ctx context.Context, analysisID, status string, percentage int, failureReason *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.data[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = status
	analysis.Percentage = percentage
	if failureReason != nil {
		analysis.FailureReason = *failureReason
	}
	analysis.UpdatedAt = time.Now().UTC()
	r.data[analysisID] = analysis
	return nil
}

func (r *MemoryRepo) CompleteWithResult(ctx context.Context, analysisID string, result analyzer.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.data[analysisID]
	if !ok {
		return ErrNotFound
	}
	copied := result
	analysis.Result = &copied
	analysis.Status = StatusCompleted
	analysis.Percentage = pctDone
	analysis.FailureReason = ""
	analysis.UpdatedAt = time.Now().UTC()
	r.data[analysisID] = analysis
	return nil
}

func (r *MemoryRepo) CompleteWithImproved(ctx context.Context, analysisID, latexContent, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.data[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.ImprovedLatex = latexContent
	analysis.LatexStorageKey = storageKey
	analysis.Status = StatusCompleted
	analysis.Percentage = pctDone
	analysis.FailureReason = ""
	analysis.UpdatedAt = time.Now().UTC()
	r.data[analysisID] = analysis
	return nil
}

func (r *MemoryRepo) UpdateLatex(ctx context.Context, userID, analysisID, latexContent, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.data[analysisID]
	if !ok || analysis.UserID != userID {
		return ErrNotFound
	}
	analysis.ImprovedLatex = latexContent
	if storageKey != "" {
		analysis.LatexStorageKey = storageKey
	}
	analysis.UpdatedAt = time.Now().UTC()
	r.data[analysisID] = analysis
	return nil
}
