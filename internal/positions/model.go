package positions

import "time"

// Position is a job description an uploaded resume is matched against.
type Position struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Title        string    `json:"title"`
	Company      string    `json:"company,omitempty"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OracleText renders the position the way the match prompt consumes it.
func (p Position) OracleText() string {
	text := p.Title
	if p.Company != "" {
		text += " at " + p.Company
	}
	text += "\n\n" + p.Description
	if p.Requirements != "" {
		text += "\n\nRequirements:\n" + p.Requirements
	}
	return text
}
