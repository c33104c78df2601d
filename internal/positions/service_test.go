package positions

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	created, err := svc.Create(context.Background(), "user-1", CreateInput{
		Title:        "  Backend Engineer ",
		Company:      "Acme",
		Description:  "Build Go services.",
		Requirements: "Go, Postgres",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Backend Engineer" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}

	got, err := svc.Get(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, got.ID)
	}

	if _, err := svc.Get(context.Background(), "user-2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestCreateRequiresTitleAndDescription(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Create(context.Background(), "user-1", CreateInput{Title: "x"}); err == nil {
		t.Fatal("expected error for missing description")
	}
	if _, err := svc.Create(context.Background(), "user-1", CreateInput{Description: "x"}); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestOracleTextComposition(t *testing.T) {
	position := Position{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Description:  "Build Go services.",
		Requirements: "Go, Postgres",
	}
	text := position.OracleText()
	if !strings.HasPrefix(text, "Backend Engineer at Acme") {
		t.Fatalf("unexpected prefix: %q", text)
	}
	if !strings.Contains(text, "Requirements:\nGo, Postgres") {
		t.Fatalf("missing requirements block: %q", text)
	}

	bare := Position{Title: "Backend Engineer", Description: "Build Go services."}
	if got := bare.OracleText(); strings.Contains(got, " at ") || strings.Contains(got, "Requirements:") {
		t.Fatalf("unexpected optional sections: %q", got)
	}
}
