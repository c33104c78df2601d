package feedback

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

const defaultCategory = "general"

// Service records user feedback. Submissions are accepted from anonymous
// visitors too, so userID may be empty.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

type SubmitInput struct {
	Rating   int
	Message  string
	Category string
	Email    string
}

// Submit validates and stores one feedback entry.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return Feedback{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return Feedback{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return Feedback{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
		}
	}

	entry := Feedback{
		ID:       uuid.NewString(),
		UserID:   userID,
		Rating:   in.Rating,
		Message:  message,
		Category: category,
		Email:    email,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return Feedback{}, err
	}
	return entry, nil
}
