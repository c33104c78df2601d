package analyses

import (
	"time"

	"resume-match/internal/analyzer"
)

// Analysis binds one uploaded document to one position and carries the match
// result plus the progress pair polled by clients.
type Analysis struct {
	ID         string `json:"id"`
	UserID     string `json:"-"`
	DocumentID string `json:"documentId"`
	PositionID string `json:"positionId"`

	Status        string `json:"progressStatus"`
	Percentage    int    `json:"progressPercentage"`
	FailureReason string `json:"failureReason,omitempty"`

	Result *analyzer.MatchResult `json:"-"`

	ImprovedLatex   string `json:"-"`
	LatexStorageKey string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
