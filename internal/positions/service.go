package positions

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

type CreateInput struct {
	Title        string
	Company      string
	Description  string
	Requirements string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Position, error) {
	if s == nil || s.Repo == nil {
		return Position{}, errors.New("positions service not configured")
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return Position{}, errors.New("title and description are required")
	}
	position := Position{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Company:      strings.TrimSpace(in.Company),
		Description:  description,
		Requirements: strings.TrimSpace(in.Requirements),
	}
	if err := s.Repo.Create(ctx, position); err != nil {
		return Position{}, err
	}
	return position, nil
}

func (s *Service) Get(ctx context.Context, userID, positionID string) (Position, error) {
	if s == nil || s.Repo == nil {
		return Position{}, errors.New("positions service not configured")
	}
	return s.Repo.GetByID(ctx, userID, positionID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Position, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("positions service not configured")
	}
	return s.Repo.ListByUser(ctx, userID)
}
