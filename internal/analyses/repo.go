package analyses

import (
	"context"

	"resume-match/internal/analyzer"
)

// Repo defines persistence operations for analyses. All reads are scoped to
// the owning user; an ownership mismatch reads as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, userID, analysisID string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)

	// UpdateProgress writes one status/percentage checkpoint.
	UpdateProgress(ctx context.Context, analysisID, status string, percentage int, failureReason *string) error

	// CompleteWithResult persists all result fields plus completed/100 in one write.
	CompleteWithResult(ctx context.Context, analysisID string, result analyzer.MatchResult) error

	// CompleteWithImproved persists the rendered LaTeX, its storage key and
	// completed/100 in one write.
	CompleteWithImproved(ctx context.Context, analysisID, latexContent, storageKey string) error

	// UpdateLatex overwrites the improved LaTeX source and its storage key
	// (editor saves).
	UpdateLatex(ctx context.Context, userID, analysisID, latexContent, storageKey string) error
}
