package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-match/internal/llm"
	"resume-match/internal/shared/metrics"
)

// ErrOracleResponseInvalid means the improve reply could not be parsed even
// after control-character cleanup. There is no safe degraded default for a
// full resume rewrite, so this surfaces as a failure.
var ErrOracleResponseInvalid = errors.New("oracle response invalid")

// Analyzer normalizes oracle replies into fixed result schemas.
type Analyzer struct {
	Oracle llm.Client
}

func New(oracle llm.Client) *Analyzer {
	return &Analyzer{Oracle: oracle}
}

// Match scores a resume against a job description. Oracle transport errors
// propagate; unparseable replies degrade to DegradedResult instead of failing.
func (a *Analyzer) Match(ctx context.Context, resumeText, jobText string) (MatchResult, error) {
	if a == nil || a.Oracle == nil {
		return MatchResult{}, errors.New("analyzer not configured")
	}
	raw, err := a.Oracle.Complete(ctx, matchSystemPrompt, matchPrompt(resumeText, jobText))
	if err != nil {
		return MatchResult{}, err
	}

	payload, ok := extractJSONObject(raw)
	if !ok {
		metrics.IncOracleFallback()
		return DegradedResult(), nil
	}
	var result MatchResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		metrics.IncOracleFallback()
		return DegradedResult(), nil
	}
	return normalize(result), nil
}

// Improve requests a full structured resume rewrite. On invalid control
// characters in the extracted JSON it strips non-printable bytes and retries
// the parse once before failing with ErrOracleResponseInvalid.
func (a *Analyzer) Improve(ctx context.Context, resumeText, jobText string, missingSkills, missingKeywords []string) (ImprovedContent, error) {
	if a == nil || a.Oracle == nil {
		return ImprovedContent{}, errors.New("analyzer not configured")
	}
	raw, err := a.Oracle.Complete(ctx, improveSystemPrompt, improvePrompt(resumeText, jobText, missingSkills, missingKeywords))
	if err != nil {
		return ImprovedContent{}, err
	}

	payload, ok := extractJSONObject(raw)
	if !ok {
		return ImprovedContent{}, fmt.Errorf("%w: no JSON object in reply", ErrOracleResponseInvalid)
	}

	var content ImprovedContent
	if err := json.Unmarshal([]byte(payload), &content); err == nil {
		return content, nil
	}
	cleaned := stripControlChars(payload)
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return ImprovedContent{}, fmt.Errorf("%w: %v", ErrOracleResponseInvalid, err)
	}
	return content, nil
}

// extractJSONObject slices from the first '{' to the last '}' so replies
// wrapped in prose still parse.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}
