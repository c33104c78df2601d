package feedback

import (
	"context"
	"errors"
	"testing"
)

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), "user-1", SubmitInput{
			Rating:  rating,
			Message: "great tool",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}
}

func TestSubmitStoresInRangeRating(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	entry, err := svc.Submit(context.Background(), "user-1", SubmitInput{
		Rating:   5,
		Message:  "  great tool  ",
		Category: "feature",
		Email:    "me@example.com",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if entry.Message != "great tool" {
		t.Fatalf("expected trimmed message, got %q", entry.Message)
	}

	items := repo.All()
	if len(items) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(items))
	}
	if items[0].Rating != 5 || items[0].UserID != "user-1" {
		t.Fatalf("unexpected stored entry: %+v", items[0])
	}
}

func TestSubmitRequiresMessage(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Submit(context.Background(), "user-1", SubmitInput{
		Rating:  4,
		Message: "   ",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitDefaultsCategory(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	entry, err := svc.Submit(context.Background(), "user-1", SubmitInput{
		Rating:  3,
		Message: "ok",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.Category != "general" {
		t.Fatalf("expected default category, got %q", entry.Category)
	}
}

func TestSubmitRejectsMalformedEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Submit(context.Background(), "user-1", SubmitInput{
		Rating:  4,
		Message: "ok",
		Email:   "not-an-email",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitAcceptsAnonymous(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if _, err := svc.Submit(context.Background(), "", SubmitInput{
		Rating:  2,
		Message: "could be faster",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	items := repo.All()
	if len(items) != 1 || items[0].UserID != "" {
		t.Fatalf("expected anonymous entry, got %+v", items)
	}
}
