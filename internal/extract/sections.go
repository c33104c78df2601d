package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Section header synonyms, matched case-insensitively anywhere in the text.
var sectionPatterns = map[string]*regexp.Regexp{
	"experience":     regexp.MustCompile(`(?i)(experience|work history|employment)`),
	"education":      regexp.MustCompile(`(?i)(education|academic|qualification)`),
	"skills":         regexp.MustCompile(`(?i)(skills|technical skills|expertise|competencies)`),
	"projects":       regexp.MustCompile(`(?i)(projects|work projects)`),
	"certifications": regexp.MustCompile(`(?i)(certifications|certificates|licenses)`),
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`[\+\(]?[1-9][0-9 .\-\(\)]{8,}[0-9]`)
)

// skillVocabulary is the fixed token list scanned for detected skills,
// independent of whatever the oracle reports.
var skillVocabulary = []string{
	"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift", "kotlin",
	"react", "angular", "vue", "node.js", "express", "django", "flask", "fastapi",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"docker", "kubernetes", "aws", "azure", "gcp", "ci/cd", "git",
	"machine learning", "deep learning", "nlp", "computer vision", "data science",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"rest api", "graphql", "microservices", "agile", "scrum",
}

type sectionMark struct {
	pos  int
	name string
}

// Sections maps each recognized section name to the text span between its
// earliest header match and the next header (or end of document). Content
// starts after the header's line. An empty map is a valid degraded state.
func Sections(text string) map[string]string {
	marks := make([]sectionMark, 0, len(sectionPatterns))
	for name, pattern := range sectionPatterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		marks = append(marks, sectionMark{pos: loc[0], name: name})
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].pos < marks[j].pos })

	sections := make(map[string]string)
	for i, mark := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].pos
		}
		contentStart := strings.Index(text[mark.pos:], "\n")
		if contentStart == -1 {
			continue
		}
		contentStart += mark.pos
		if contentStart > end {
			continue
		}
		sections[mark.name] = strings.TrimSpace(text[contentStart:end])
	}
	return sections
}

func firstEmail(text string) string {
	return emailPattern.FindString(text)
}

func firstPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// detectSkills scans the text against the fixed vocabulary, case-insensitive,
// and returns a deduplicated title-cased list in vocabulary order.
func detectSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	found := make([]string, 0)
	for _, skill := range skillVocabulary {
		if !strings.Contains(lower, skill) {
			continue
		}
		title := titleCase(skill)
		if seen[title] {
			continue
		}
		seen[title] = true
		found = append(found, title)
	}
	return found
}

func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
