package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-match/internal/analyzer"
	"resume-match/internal/documents"
	"resume-match/internal/extract"
	"resume-match/internal/positions"
	localstore "resume-match/internal/shared/storage/object/local"
)

type fakeOracle struct {
	matchResult analyzer.MatchResult
	matchErr    error
	improved    analyzer.ImprovedContent
	improveErr  error
}

func (o *fakeOracle) Match(context.Context, string, string) (analyzer.MatchResult, error) {
	return o.matchResult, o.matchErr
}

func (o *fakeOracle) Improve(context.Context, string, string, []string, []string) (analyzer.ImprovedContent, error) {
	return o.improved, o.improveErr
}

type appendedVersion struct {
	userID, analysisID, latexContent, storageKey, description string
}

type fakeAppender struct {
	appended []appendedVersion
}

func (a *fakeAppender) Append(_ context.Context, userID, analysisID, latexContent, storageKey, description string) error {
	a.appended = append(a.appended, appendedVersion{userID, analysisID, latexContent, storageKey, description})
	return nil
}

func newTestService(t *testing.T, oracle Oracle) (*Service, *fakeAppender) {
	t.Helper()
	docRepo := documents.NewMemoryRepo()
	appender := &fakeAppender{}
	svc := &Service{
		Repo:    NewMemoryRepo(),
		DocRepo: docRepo,
		Docs: &documents.Service{
			Store:          localstore.New(t.TempDir()),
			Repo:           docRepo,
			MaxUploadBytes: 1 << 20,
			Parse: func(_ context.Context, data []byte, _ string) (extract.Result, error) {
				return extract.Result{Text: string(data)}, nil
			},
		},
		Positions: positions.NewMemoryRepo(),
		Oracle:    oracle,
		Store:     localstore.New(t.TempDir()),
		Versions:  appender,
		Render: func(content analyzer.ImprovedContent) string {
			return "\\section*{" + content.Name + "}"
		},
	}
	return svc, appender
}

func validInput() AnalyzeInput {
	return AnalyzeInput{
		FileName: "resume.pdf",
		FileData: []byte("Jane Doe\nGo, Python, Docker"),
		JobText:  "Looking for a Go engineer with Docker experience.",
		JobTitle: "Backend Engineer",
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	oracle := &fakeOracle{matchResult: analyzer.MatchResult{
		Score:           85,
		MatchedSkills:   []string{"Go", "Docker"},
		MissingSkills:   []string{"Kubernetes"},
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Improvements:    []analyzer.Improvement{},
		Summary:         "Strong match.",
	}}
	svc, _ := newTestService(t, oracle)

	analysis, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Status != StatusCompleted || analysis.Percentage != pctDone {
		t.Fatalf("expected completed/100, got %s/%d", analysis.Status, analysis.Percentage)
	}
	if analysis.Result == nil || analysis.Result.Score != 85 {
		t.Fatalf("expected persisted result with score 85, got %+v", analysis.Result)
	}
	if analysis.DocumentID == "" || analysis.PositionID == "" {
		t.Fatal("expected document and position references")
	}
}

func TestAnalyzeRejectsMissingJobText(t *testing.T) {
	svc, _ := newTestService(t, &fakeOracle{})
	in := validInput()
	in.JobText = "   "

	if _, err := svc.Analyze(context.Background(), "user-1", in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	items, _ := svc.List(context.Background(), "user-1", 10, 0)
	if len(items) != 0 {
		t.Fatalf("expected no analysis rows after validation failure, got %d", len(items))
	}
}

func TestAnalyzeRejectsUnsupportedUploadBeforeAnyRow(t *testing.T) {
	svc, _ := newTestService(t, &fakeOracle{})
	in := validInput()
	in.FileName = "resume.txt"

	if _, err := svc.Analyze(context.Background(), "user-1", in); !errors.Is(err, documents.ErrInvalidInput) {
		t.Fatalf("expected documents.ErrInvalidInput, got %v", err)
	}
	items, _ := svc.List(context.Background(), "user-1", 10, 0)
	if len(items) != 0 {
		t.Fatalf("expected no analysis rows, got %d", len(items))
	}
}

func TestAnalyzeOracleFailureMarksFailed(t *testing.T) {
	oracle := &fakeOracle{matchErr: errors.New("connection refused")}
	svc, _ := newTestService(t, oracle)

	_, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err == nil {
		t.Fatal("expected analyze to fail")
	}

	items, err := svc.List(context.Background(), "user-1", 10, 0)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one analysis row, got %d (err %v)", len(items), err)
	}
	analysis := items[0]
	if analysis.Status != StatusFailed || analysis.Percentage != pctDone {
		t.Fatalf("expected failed/100, got %s/%d", analysis.Status, analysis.Percentage)
	}
	if !strings.Contains(analysis.FailureReason, "connection refused") {
		t.Fatalf("unexpected failure reason %q", analysis.FailureReason)
	}
}

func TestImproveAppendsVersionAndStoresLatex(t *testing.T) {
	oracle := &fakeOracle{
		matchResult: analyzer.MatchResult{Score: 60, MissingSkills: []string{"Kubernetes"}},
		improved:    analyzer.ImprovedContent{Name: "Jane Doe"},
	}
	svc, appender := newTestService(t, oracle)

	analysis, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	improved, err := svc.Improve(context.Background(), "user-1", analysis.ID)
	if err != nil {
		t.Fatalf("improve: %v", err)
	}
	if improved.Status != StatusCompleted || improved.Percentage != pctDone {
		t.Fatalf("expected completed/100, got %s/%d", improved.Status, improved.Percentage)
	}
	if !strings.Contains(improved.ImprovedLatex, "Jane Doe") {
		t.Fatalf("expected rendered latex, got %q", improved.ImprovedLatex)
	}
	if improved.LatexStorageKey == "" {
		t.Fatal("expected a storage key")
	}

	if len(appender.appended) != 1 {
		t.Fatalf("expected one appended version, got %d", len(appender.appended))
	}
	version := appender.appended[0]
	if version.analysisID != analysis.ID || version.latexContent != improved.ImprovedLatex {
		t.Fatalf("version does not reference the improved latex: %+v", version)
	}
	if version.description != "Generated improvement" {
		t.Fatalf("unexpected version description %q", version.description)
	}

	rc, err := svc.Store.Open(context.Background(), improved.LatexStorageKey)
	if err != nil {
		t.Fatalf("open stored latex: %v", err)
	}
	rc.Close()
}

func TestImproveRequiresMatchResult(t *testing.T) {
	svc, _ := newTestService(t, &fakeOracle{})
	analysis := Analysis{ID: "a-1", UserID: "user-1", Status: StatusPending, Percentage: pctCreated}
	if err := svc.Repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Improve(context.Background(), "user-1", "a-1"); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestImproveOracleFailureMarksFailed(t *testing.T) {
	oracle := &fakeOracle{
		matchResult: analyzer.MatchResult{Score: 60},
		improveErr:  errors.New("bad gateway"),
	}
	svc, appender := newTestService(t, oracle)

	analysis, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := svc.Improve(context.Background(), "user-1", analysis.ID); err == nil {
		t.Fatal("expected improve to fail")
	}

	reloaded, err := svc.Get(context.Background(), "user-1", analysis.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.Status != StatusFailed {
		t.Fatalf("expected failed status, got %s", reloaded.Status)
	}
	if len(appender.appended) != 0 {
		t.Fatalf("expected no version on failure, got %d", len(appender.appended))
	}
}

func TestLatexRequiresImprovedContent(t *testing.T) {
	oracle := &fakeOracle{matchResult: analyzer.MatchResult{Score: 60}}
	svc, _ := newTestService(t, oracle)

	analysis, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := svc.Latex(context.Background(), "user-1", analysis.ID); !errors.Is(err, ErrNoLatex) {
		t.Fatalf("expected ErrNoLatex, got %v", err)
	}
}

func TestSaveLatexUpdatesRecordAndStorage(t *testing.T) {
	oracle := &fakeOracle{
		matchResult: analyzer.MatchResult{Score: 60},
		improved:    analyzer.ImprovedContent{Name: "Jane Doe"},
	}
	svc, _ := newTestService(t, oracle)

	analysis, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := svc.Improve(context.Background(), "user-1", analysis.ID); err != nil {
		t.Fatalf("improve: %v", err)
	}

	edited := "\\documentclass{article} edited"
	if err := svc.SaveLatex(context.Background(), "user-1", analysis.ID, edited); err != nil {
		t.Fatalf("save latex: %v", err)
	}
	reloaded, err := svc.Latex(context.Background(), "user-1", analysis.ID)
	if err != nil {
		t.Fatalf("latex: %v", err)
	}
	if reloaded.ImprovedLatex != edited {
		t.Fatalf("expected edited latex, got %q", reloaded.ImprovedLatex)
	}

	if err := svc.SaveLatex(context.Background(), "user-1", analysis.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty latex, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	oracle := &fakeOracle{matchResult: analyzer.MatchResult{Score: 60}}
	svc, _ := newTestService(t, oracle)

	analysis, err := svc.Analyze(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-2", analysis.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}
