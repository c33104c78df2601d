package versions

import (
	"context"
	"errors"
	"testing"

	localstore "resume-match/internal/shared/storage/object/local"
)

type fakeAnalysisSource struct {
	latex string
	key   string
	err   error
}

func (s *fakeAnalysisSource) ImprovedLatex(context.Context, string, string) (string, string, error) {
	return s.latex, s.key, s.err
}

func newTestService(t *testing.T, source AnalysisSource) *Service {
	t.Helper()
	return &Service{
		Repo:     NewMemoryRepo(),
		Analyses: source,
		Store:    localstore.New(t.TempDir()),
	}
}

func TestCreateNumbersVersionsSequentially(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{latex: "\\documentclass{article}", key: "generated/a-1/improved.tex"})

	for want := 1; want <= 3; want++ {
		version, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{Description: "snapshot"})
		if err != nil {
			t.Fatalf("create %d: %v", want, err)
		}
		if version.VersionNumber != want {
			t.Fatalf("expected version %d, got %d", want, version.VersionNumber)
		}
		if version.UserID != "user-1" {
			t.Fatalf("expected version to record its owner, got %q", version.UserID)
		}
	}

	items, err := svc.List(context.Background(), "user-1", "a-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].VersionNumber != 3 {
		t.Fatalf("expected 3 versions newest first, got %+v", items)
	}
}

func TestCreateSnapshotsProvidedLatex(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{latex: "current"})

	version, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{
		Description:  "edited by hand",
		LatexContent: "\\section*{Edited}",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if version.LatexContent != "\\section*{Edited}" {
		t.Fatalf("expected provided latex, got %q", version.LatexContent)
	}
	if version.StorageKey == "" {
		t.Fatal("expected a fresh storage key for provided latex")
	}
}

func TestCreateRejectsEmptySnapshot(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{})

	if _, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePropagatesOwnershipFailure(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{err: ErrNotFound})

	if _, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDescriptionLeavesContentUnchanged(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{latex: "original content"})

	created, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{Description: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateDescription(context.Background(), "user-1", "a-1", created.ID, "renamed"); err != nil {
		t.Fatalf("update description: %v", err)
	}

	version, err := svc.Get(context.Background(), "user-1", "a-1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if version.Description != "renamed" {
		t.Fatalf("expected renamed description, got %q", version.Description)
	}
	if version.LatexContent != "original content" || version.VersionNumber != created.VersionNumber {
		t.Fatalf("snapshot content changed: %+v", version)
	}

	if err := svc.UpdateDescription(context.Background(), "user-1", "a-1", created.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank description, got %v", err)
	}
}

func TestDeleteRemovesOnlyTargetVersion(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{latex: "content"})

	first, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{Description: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", "a-1", CreateInput{Description: "second"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", "a-1", first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err := svc.List(context.Background(), "user-1", "a-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Description != "second" {
		t.Fatalf("expected only second version, got %+v", items)
	}

	if err := svc.Delete(context.Background(), "user-1", "a-1", first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestAppendRecordsWorkflowVersion(t *testing.T) {
	svc := newTestService(t, &fakeAnalysisSource{})

	if err := svc.Append(context.Background(), "user-1", "a-1", "latex", "generated/a-1/improved.tex", "Generated improvement"); err != nil {
		t.Fatalf("append: %v", err)
	}
	items, err := svc.Repo.ListByAnalysis(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].VersionNumber != 1 || items[0].StorageKey != "generated/a-1/improved.tex" {
		t.Fatalf("unexpected appended version %+v", items)
	}
	if items[0].UserID != "user-1" {
		t.Fatalf("expected version to record its owner, got %q", items[0].UserID)
	}
}
