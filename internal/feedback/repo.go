package feedback

import "context"

// Repo persists submitted feedback.
type Repo interface {
	Create(ctx context.Context, entry Feedback) error
}
