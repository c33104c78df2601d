package versions

import "time"

// ResumeVersion is one immutable snapshot of improved resume LaTeX. Versions
// are numbered sequentially per analysis starting at 1; the description is
// the only field that may change after creation.
type ResumeVersion struct {
	ID            string    `json:"id"`
	AnalysisID    string    `json:"analysisId"`
	UserID        string    `json:"-"`
	VersionNumber int       `json:"versionNumber"`
	Description   string    `json:"description"`
	LatexContent  string    `json:"-"`
	StorageKey    string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}
