package versions

import "time"

type versionResponse struct {
	ID            string    `json:"id"`
	AnalysisID    string    `json:"analysisId"`
	VersionNumber int       `json:"versionNumber"`
	Description   string    `json:"description"`
	LatexContent  string    `json:"latexContent,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toResponse(version ResumeVersion, includeLatex bool) versionResponse {
	resp := versionResponse{
		ID:            version.ID,
		AnalysisID:    version.AnalysisID,
		VersionNumber: version.VersionNumber,
		Description:   version.Description,
		CreatedAt:     version.CreatedAt,
	}
	if includeLatex {
		resp.LatexContent = version.LatexContent
	}
	return resp
}
