package documents

import "time"

// Document is an uploaded resume plus everything derived from it. Immutable
// once created except for re-derivation of the parsed fields.
type Document struct {
	ID             string            `json:"id"`
	UserID         string            `json:"-"`
	FileName       string            `json:"fileName"`
	StorageKey     string            `json:"-"`
	MimeType       string            `json:"mimeType"`
	SizeBytes      int64             `json:"sizeBytes"`
	ExtractedText  string            `json:"-"`
	Sections       map[string]string `json:"sections,omitempty"`
	ContactEmail   string            `json:"contactEmail,omitempty"`
	ContactPhone   string            `json:"contactPhone,omitempty"`
	DetectedSkills []string          `json:"detectedSkills,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
