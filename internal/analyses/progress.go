package analyses

import (
	"context"
	"strings"
	"sync"

	"resume-match/internal/shared/telemetry"
)

// Progress statuses. A workflow run always ends in a terminal status:
// completed on success, failed with a reason on any other exit.
const (
	StatusPending   = "pending"
	StatusAnalyzing = "analyzing"
	StatusImproving = "improving"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Checkpoint percentages written by the orchestrator.
const (
	pctCreated       = 10
	pctOracleStarted = 30
	pctOracleDone    = 80
	pctImproveStart  = 0
	pctImproveOracle = 50
	pctImproveRender = 70
	pctDone          = 100
)

// IsTerminal reports whether status ends a workflow run.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// ProgressWriter is the slice of Repo the tracker writes through.
type ProgressWriter interface {
	UpdateProgress(ctx context.Context, analysisID, status string, percentage int, failureReason *string) error
}

// Tracker owns the progress writes for one workflow run and guarantees a
// terminal write on every exit path. Callers defer Finish; if neither
// Completed nor Fail was recorded by then, Finish writes failed.
type Tracker struct {
	writer     ProgressWriter
	analysisID string

	mu       sync.Mutex
	terminal bool
}

func NewTracker(writer ProgressWriter, analysisID string) *Tracker {
	return &Tracker{writer: writer, analysisID: analysisID}
}

// Advance writes a non-terminal checkpoint. It is a no-op after a terminal
// write so late checkpoints cannot resurrect a finished run.
func (t *Tracker) Advance(ctx context.Context, status string, percentage int) error {
	t.mu.Lock()
	done := t.terminal
	t.mu.Unlock()
	if done {
		return nil
	}
	return t.writer.UpdateProgress(ctx, t.analysisID, status, percentage, nil)
}

// Fail records the terminal failed status with a sanitized reason. The write
// uses a fresh context so a canceled request cannot skip it.
func (t *Tracker) Fail(reason string) {
	t.mu.Lock()
	if t.terminal {
		t.mu.Unlock()
		return
	}
	t.terminal = true
	t.mu.Unlock()

	reason = sanitizeReason(reason)
	if err := t.writer.UpdateProgress(context.Background(), t.analysisID, StatusFailed, pctDone, &reason); err != nil {
		telemetry.Error("analysis.fail_write", map[string]any{
			"analysis_id": t.analysisID,
			"reason":      reason,
			"error":       err.Error(),
		})
	}
}

// Completed marks the terminal write as done by the caller (the result update
// sets completed/100 itself in one persisted write).
func (t *Tracker) Completed() {
	t.mu.Lock()
	t.terminal = true
	t.mu.Unlock()
}

// Finish is the scoped-completion guard. Deferred by the orchestrator: any
// exit without a terminal write, including panics, becomes a failed record.
func (t *Tracker) Finish() {
	t.Fail("workflow aborted before completion")
}

func sanitizeReason(reason string) string {
	reason = strings.ReplaceAll(reason, "\n", " ")
	reason = strings.ReplaceAll(reason, "\r", " ")
	reason = strings.TrimSpace(reason)
	const maxLen = 500
	if len(reason) > maxLen {
		reason = reason[:maxLen]
	}
	return reason
}
