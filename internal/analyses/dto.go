package analyses

import (
	"time"

	"resume-match/internal/analyzer"
)

// analysisResponse is the stable shape polling clients depend on.
type analysisResponse struct {
	ID                 string                 `json:"id"`
	DocumentID         string                 `json:"documentId"`
	PositionID         string                 `json:"positionId"`
	MatchScore         float64                `json:"matchScore"`
	MatchedSkills      []string               `json:"matchedSkills"`
	MissingSkills      []string               `json:"missingSkills"`
	MatchedKeywords    []string               `json:"matchedKeywords"`
	MissingKeywords    []string               `json:"missingKeywords"`
	Improvements       []analyzer.Improvement `json:"improvements"`
	Summary            string                 `json:"summary"`
	ProgressStatus     string                 `json:"progressStatus"`
	ProgressPercentage int                    `json:"progressPercentage"`
	FailureReason      string                 `json:"failureReason,omitempty"`
	LatexAvailable     bool                   `json:"latexAvailable"`
	CreatedAt          time.Time              `json:"createdAt"`
}

func toResponse(analysis Analysis) analysisResponse {
	resp := analysisResponse{
		ID:                 analysis.ID,
		DocumentID:         analysis.DocumentID,
		PositionID:         analysis.PositionID,
		MatchedSkills:      []string{},
		MissingSkills:      []string{},
		MatchedKeywords:    []string{},
		MissingKeywords:    []string{},
		Improvements:       []analyzer.Improvement{},
		ProgressStatus:     analysis.Status,
		ProgressPercentage: analysis.Percentage,
		FailureReason:      analysis.FailureReason,
		LatexAvailable:     analysis.ImprovedLatex != "",
		CreatedAt:          analysis.CreatedAt,
	}
	if analysis.Result != nil {
		resp.MatchScore = analysis.Result.Score
		resp.MatchedSkills = analysis.Result.MatchedSkills
		resp.MissingSkills = analysis.Result.MissingSkills
		resp.MatchedKeywords = analysis.Result.MatchedKeywords
		resp.MissingKeywords = analysis.Result.MissingKeywords
		resp.Improvements = analysis.Result.Improvements
		resp.Summary = analysis.Result.Summary
	}
	return resp
}
