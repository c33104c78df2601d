// Package latex renders improved resume content into a standalone LaTeX
// document. Rendering is pure string templating; PDF compilation is out of
// scope, callers only get the .tex source.
package latex

import (
	"strings"
	"text/template"

	"resume-match/internal/analyzer"
)

const resumeTemplate = `\documentclass[11pt,a4paper]{article}
\usepackage[utf8]{inputenc}
\usepackage[left=0.5in,top=0.5in,right=0.5in,bottom=0.5in]{geometry}
\usepackage{enumitem}
\usepackage{titlesec}
\usepackage{array}

% Remove page numbers
\pagestyle{empty}

% Custom section formatting
\titleformat{\section}{\large\bfseries\uppercase}{}{0em}{}[\titlerule]
\titlespacing{\section}{0pt}{12pt}{6pt}

% Custom subsection formatting
\titleformat{\subsection}{\bfseries}{}{0em}{}
\titlespacing{\subsection}{0pt}{6pt}{3pt}

\begin{document}

% Header with name
{\LARGE\bfseries {{.Name}}}

\vspace{3pt}

% Contact information
{{.ContactInfo}}

\vspace{10pt}

% Objective
\section{OBJECTIVE}
{{.Objective}}

% Experience
\section{EXPERIENCE}
{{.Experience}}

% Technical Strengths
\section{TECHNICAL STRENGTHS}
\begin{tabular}{@{}>{\raggedright\arraybackslash}p{0.25\linewidth}@{\hspace{2em}}>{\raggedright\arraybackslash}p{0.7\linewidth}}
\textbf{Technical Skills} & {{.TechnicalSkills}} \\
\textbf{Soft Skills} & {{.SoftSkills}} \\
\end{tabular}

% Projects
\section{PROJECTS}
{{.Projects}}

% Education
\section{EDUCATION}
{{.Education}}

% Certifications
\section{CERTIFICATIONS}
{{.Certifications}}

\end{document}
`

var tmpl = template.Must(template.New("resume").Delims("{{", "}}").Parse(resumeTemplate))

// Render fills the article-class template with improved resume content.
// Empty name, contact and objective fields fall back to placeholder text so
// the document always compiles; other sections render empty.
func Render(content analyzer.ImprovedContent) string {
	if strings.TrimSpace(content.Name) == "" {
		content.Name = "YOUR NAME"
	}
	if strings.TrimSpace(content.ContactInfo) == "" {
		content.ContactInfo = "Contact Information Here"
	}
	if strings.TrimSpace(content.Objective) == "" {
		content.Objective = "Your career objective here."
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, content); err != nil {
		return resumeTemplate
	}
	return buf.String()
}
