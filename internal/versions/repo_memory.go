package versions

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	versions map[string][]ResumeVersion
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{versions: make(map[string][]ResumeVersion)}
}

func (r *MemoryRepo) Create(ctx context.Context, version ResumeVersion) (ResumeVersion, error) {
	if err := ctx.Err(); err != nil {
		return ResumeVersion{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	for _, existing := range r.versions[version.AnalysisID] {
		if existing.VersionNumber >= next {
			next = existing.VersionNumber + 1
		}
	}
	version.VersionNumber = next
	if version.CreatedAt.IsZero() {
		version.CreatedAt = time.Now().UTC()
	}
	r.versions[version.AnalysisID] = append(r.versions[version.AnalysisID], version)
	return version, nil
}

func (r *MemoryRepo) ListByAnalysis(ctx context.Context, analysisID string) ([]ResumeVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ResumeVersion, 0, len(r.versions[analysisID]))
	out = append(out, r.versions[analysisID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber > out[j].VersionNumber })
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, analysisID, versionID string) (ResumeVersion, error) {
	if err := ctx.Err(); err != nil {
		return ResumeVersion{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, version := range r.versions[analysisID] {
		if version.ID == versionID {
			return version, nil
		}
	}
	return ResumeVersion{}, ErrNotFound
}

func (r *MemoryRepo) UpdateDescription(ctx context.Context, analysisID, versionID, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.versions[analysisID]
	for i := range list {
		if list[i].ID == versionID {
			list[i].Description = description
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, analysisID, versionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.versions[analysisID]
	for i := range list {
		if list[i].ID == versionID {
			r.versions[analysisID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
