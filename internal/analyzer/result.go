package analyzer

// Improvement is one actionable suggestion from the oracle.
type Improvement struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// MatchResult is the normalized oracle output. All fields are always
// populated; missing fields default to empty rather than null.
type MatchResult struct {
	Score           float64       `json:"match_score"`
	MatchedSkills   []string      `json:"matched_skills"`
	MissingSkills   []string      `json:"missing_skills"`
	MatchedKeywords []string      `json:"matched_keywords"`
	MissingKeywords []string      `json:"missing_keywords"`
	Improvements    []Improvement `json:"improvements"`
	Summary         string        `json:"summary"`
}

// ImprovedContent is the structured resume rewrite returned by the improve
// call, with each section pre-formatted as LaTeX text blocks.
type ImprovedContent struct {
	Name            string `json:"name"`
	ContactInfo     string `json:"contact_info"`
	Objective       string `json:"objective"`
	Experience      string `json:"experience"`
	TechnicalSkills string `json:"technical_skills"`
	SoftSkills      string `json:"soft_skills"`
	Projects        string `json:"projects"`
	Education       string `json:"education"`
	Certifications  string `json:"certifications"`
}

func normalize(result MatchResult) MatchResult {
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	if result.MatchedSkills == nil {
		result.MatchedSkills = []string{}
	}
	if result.MissingSkills == nil {
		result.MissingSkills = []string{}
	}
	if result.MatchedKeywords == nil {
		result.MatchedKeywords = []string{}
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	if result.Improvements == nil {
		result.Improvements = []Improvement{}
	}
	return result
}

// DegradedResult is returned when the oracle reply cannot be parsed, so the
// match workflow still completes with a well-formed record.
func DegradedResult() MatchResult {
	return MatchResult{
		Score:           50,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Improvements: []Improvement{
			{
				Category:   "Error",
				Suggestion: "Unable to parse AI response. Please try again.",
				Priority:   "high",
			},
		},
		Summary: "An error occurred while analyzing the resume. Please try again.",
	}
}
