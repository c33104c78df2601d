package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/analyzer"
	"resume-match/internal/documents"
	"resume-match/internal/latex"
	"resume-match/internal/positions"
	"resume-match/internal/shared/metrics"
	"resume-match/internal/shared/storage/object"
	"resume-match/internal/shared/telemetry"
)

// Oracle is the match/improve surface of the analyzer the orchestrator calls.
type Oracle interface {
	Match(ctx context.Context, resumeText, jobText string) (analyzer.MatchResult, error)
	Improve(ctx context.Context, resumeText, jobText string, missingSkills, missingKeywords []string) (analyzer.ImprovedContent, error)
}

// VersionAppender records an improved resume as the next sequential version.
// Ownership of the analysis has already been verified by the caller.
type VersionAppender interface {
	Append(ctx context.Context, userID, analysisID, latexContent, storageKey, description string) error
}

// Service orchestrates the analysis and improvement workflows. Each workflow
// runs synchronously within the inbound request, making strictly ordered
// external calls; progress checkpoints are persisted so polling clients see
// movement.
type Service struct {
	Repo      Repo
	Docs      *documents.Service
	DocRepo   documents.Repo
	Positions positions.Repo
	Oracle    Oracle
	Store     object.ObjectStore
	Versions  VersionAppender

	// Render is swappable in tests; defaults to latex.Render.
	Render func(analyzer.ImprovedContent) string
}

// AnalyzeInput is everything a fresh analysis request carries.
type AnalyzeInput struct {
	FileName   string
	FileData   []byte
	JobText    string
	JobTitle   string
	JobCompany string
}

// Analyze runs the full match workflow: validate and ingest the upload,
// persist document and position, then create the analysis row and drive it
// through analyzing to a terminal status. Validation failures happen before
// any analysis row or oracle call exists.
func (s *Service) Analyze(ctx context.Context, userID string, in AnalyzeInput) (analysis Analysis, err error) {
	if strings.TrimSpace(userID) == "" {
		return Analysis{}, errors.New("user id is required")
	}
	if strings.TrimSpace(in.JobText) == "" {
		return Analysis{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}

	doc, err := s.Docs.Ingest(ctx, userID, in.FileName, in.FileData)
	if err != nil {
		return Analysis{}, err
	}

	title := strings.TrimSpace(in.JobTitle)
	if title == "" {
		title = "Untitled Position"
	}
	position := positions.Position{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Company:     strings.TrimSpace(in.JobCompany),
		Description: in.JobText,
	}
	if err := s.Positions.Create(ctx, position); err != nil {
		return Analysis{}, err
	}

	analysis = Analysis{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: doc.ID,
		PositionID: position.ID,
		Status:     StatusPending,
		Percentage: pctCreated,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	tracker := NewTracker(s.Repo, analysis.ID)
	startedAt := time.Now().UTC()
	metrics.IncAnalysisStarted()
	defer func() {
		if err != nil {
			tracker.Fail(err.Error())
			metrics.IncAnalysisFailed()
		}
		tracker.Finish()
	}()

	if err = tracker.Advance(ctx, StatusAnalyzing, pctOracleStarted); err != nil {
		return Analysis{}, fmt.Errorf("set analyzing failed: %w", err)
	}
	s.logStatus(analysis, StatusAnalyzing, "pending->analyzing")

	result, err := s.Oracle.Match(ctx, doc.ExtractedText, position.OracleText())
	if err != nil {
		return Analysis{}, fmt.Errorf("oracle match: %w", err)
	}

	if err = tracker.Advance(ctx, StatusAnalyzing, pctOracleDone); err != nil {
		return Analysis{}, fmt.Errorf("set progress failed: %w", err)
	}

	if err = s.Repo.CompleteWithResult(ctx, analysis.ID, result); err != nil {
		return Analysis{}, fmt.Errorf("set analysis result failed: %w", err)
	}
	tracker.Completed()
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	s.logStatus(analysis, StatusCompleted, "analyzing->completed")

	return s.Repo.GetByID(ctx, userID, analysis.ID)
}

// Improve re-runs the improvement workflow for a completed analysis. It is
// idempotently re-runnable: improved content is overwritten in place and each
// run appends a new resume version.
func (s *Service) Improve(ctx context.Context, userID, analysisID string) (analysis Analysis, err error) {
	analysis, err = s.Repo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.Result == nil {
		return Analysis{}, ErrNoResult
	}

	doc, err := s.DocRepo.GetByID(ctx, userID, analysis.DocumentID)
	if err != nil {
		return Analysis{}, fmt.Errorf("document lookup id=%s: %w", analysis.DocumentID, err)
	}
	position, err := s.Positions.GetByID(ctx, userID, analysis.PositionID)
	if err != nil {
		return Analysis{}, fmt.Errorf("position lookup id=%s: %w", analysis.PositionID, err)
	}

	tracker := NewTracker(s.Repo, analysis.ID)
	startedAt := time.Now().UTC()
	metrics.IncImproveStarted()
	defer func() {
		if err != nil {
			tracker.Fail(err.Error())
			metrics.IncImproveFailed()
		}
		tracker.Finish()
	}()

	if err = tracker.Advance(ctx, StatusImproving, pctImproveStart); err != nil {
		return Analysis{}, fmt.Errorf("set improving failed: %w", err)
	}
	s.logStatus(analysis, StatusImproving, "completed->improving")

	content, err := s.Oracle.Improve(ctx, doc.ExtractedText, position.OracleText(),
		analysis.Result.MissingSkills, analysis.Result.MissingKeywords)
	if err != nil {
		return Analysis{}, fmt.Errorf("oracle improve: %w", err)
	}

	if err = tracker.Advance(ctx, StatusImproving, pctImproveOracle); err != nil {
		return Analysis{}, fmt.Errorf("set progress failed: %w", err)
	}

	render := s.Render
	if render == nil {
		render = latex.Render
	}
	latexContent := render(content)

	if err = tracker.Advance(ctx, StatusImproving, pctImproveRender); err != nil {
		return Analysis{}, fmt.Errorf("set progress failed: %w", err)
	}

	storageKey, err := s.uploadLatex(ctx, analysis.ID, latexContent)
	if err != nil {
		return Analysis{}, fmt.Errorf("storage upload: %w", err)
	}

	if s.Versions != nil {
		if err = s.Versions.Append(ctx, userID, analysis.ID, latexContent, storageKey, "Generated improvement"); err != nil {
			return Analysis{}, fmt.Errorf("append version: %w", err)
		}
	}

	if err = s.Repo.CompleteWithImproved(ctx, analysis.ID, latexContent, storageKey); err != nil {
		return Analysis{}, fmt.Errorf("set improved result failed: %w", err)
	}
	tracker.Completed()
	metrics.IncImproveCompleted()
	metrics.ObserveImproveDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	s.logStatus(analysis, StatusCompleted, "improving->completed")

	return s.Repo.GetByID(ctx, userID, analysis.ID)
}

// Get returns an analysis owned by the user.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns analyses for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Latex returns the improved LaTeX source for editing.
func (s *Service) Latex(ctx context.Context, userID, analysisID string) (Analysis, error) {
	analysis, err := s.Repo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.ImprovedLatex == "" {
		return Analysis{}, ErrNoLatex
	}
	return analysis, nil
}

// SaveLatex stores edited LaTeX source, both in the record and as a fresh
// storage object.
func (s *Service) SaveLatex(ctx context.Context, userID, analysisID, latexContent string) error {
	if strings.TrimSpace(latexContent) == "" {
		return fmt.Errorf("%w: latex content is required", ErrInvalidInput)
	}
	if _, err := s.Repo.GetByID(ctx, userID, analysisID); err != nil {
		return err
	}
	storageKey, err := s.uploadLatex(ctx, analysisID, latexContent)
	if err != nil {
		return fmt.Errorf("storage upload: %w", err)
	}
	return s.Repo.UpdateLatex(ctx, userID, analysisID, latexContent, storageKey)
}

// DownloadURL returns a signed URL for the stored LaTeX when the object store
// supports signing. The second return is false when the caller should serve
// the inline content instead.
func (s *Service) DownloadURL(ctx context.Context, analysis Analysis, ttl time.Duration) (string, bool, error) {
	signer, ok := s.Store.(object.URLSigner)
	if !ok || analysis.LatexStorageKey == "" {
		return "", false, nil
	}
	url, err := signer.SignedURL(ctx, analysis.LatexStorageKey, ttl)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (s *Service) uploadLatex(ctx context.Context, analysisID, latexContent string) (string, error) {
	key := fmt.Sprintf("generated/%s/improved_%s.tex", analysisID, time.Now().UTC().Format("20060102_150405"))
	if _, err := s.Store.SaveWithKey(ctx, key, "application/x-tex", strings.NewReader(latexContent)); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) logStatus(analysis Analysis, status, transition string) {
	telemetry.Info("analysis.status", map[string]any{
		"user_id":           analysis.UserID,
		"document_id":       analysis.DocumentID,
		"analysis_id":       analysis.ID,
		"status":            status,
		"status_transition": transition,
	})
}
