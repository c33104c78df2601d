package versions

import "context"

// Repo persists resume versions. Create assigns the next sequential version
// number for the analysis; concurrent creates must not produce duplicates.
type Repo interface {
	Create(ctx context.Context, version ResumeVersion) (ResumeVersion, error)
	ListByAnalysis(ctx context.Context, analysisID string) ([]ResumeVersion, error)
	GetByID(ctx context.Context, analysisID, versionID string) (ResumeVersion, error)
	UpdateDescription(ctx context.Context, analysisID, versionID, description string) error
	Delete(ctx context.Context, analysisID, versionID string) error
}
