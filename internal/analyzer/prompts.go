package analyzer

import (
	"fmt"
	"strings"
)

const matchSystemPrompt = "You are an expert resume analyzer. Always respond with valid JSON only."

const improveSystemPrompt = "You are an expert resume writer. Always respond with valid JSON only."

func matchPrompt(resumeText, jobText string) string {
	return fmt.Sprintf(`You are an expert resume analyzer and career consultant. Analyze the following resume against the job description and provide a comprehensive analysis.

RESUME:
%s

JOB DESCRIPTION:
%s

Provide your analysis in the following JSON format:
{
    "match_score": <number between 0-100>,
    "matched_skills": [<list of skills found in both resume and JD>],
    "missing_skills": [<list of skills in JD but not in resume>],
    "matched_keywords": [<list of important keywords found in both>],
    "missing_keywords": [<list of important keywords in JD but not in resume>],
    "improvements": [
        {
            "category": "<category name>",
            "suggestion": "<specific actionable suggestion>",
            "priority": "<high/medium/low>"
        }
    ],
    "summary": "<2-3 paragraph comprehensive summary of the analysis, strengths, gaps, and recommendations>"
}

Be specific and actionable. Focus on technical skills, years of experience, education requirements, and key qualifications.
Return ONLY the JSON object, no additional text.`, resumeText, jobText)
}

func improvePrompt(resumeText, jobText string, missingSkills, missingKeywords []string) string {
	return fmt.Sprintf(`You are an expert resume writer. Improve the following resume to better match the job description.

CURRENT RESUME:
%s

JOB DESCRIPTION:
%s

IDENTIFIED GAPS:
- Missing Skills: %s
- Missing Keywords: %s

Improve the resume by:
1. Incorporating missing keywords naturally
2. Highlighting relevant skills and experience
3. Rewriting experience bullets to be more impactful
4. Adding relevant projects or certifications if applicable
5. Optimizing for ATS (Applicant Tracking Systems)

Provide the improved resume in structured JSON format:
{
    "name": "<full name>",
    "contact_info": "<phone, email, location, LinkedIn, GitHub, portfolio - in LaTeX format>",
    "objective": "<improved career objective aligned with JD>",
    "experience": "<LaTeX formatted experience section>",
    "technical_skills": "<comma-separated technical skills>",
    "soft_skills": "<comma-separated soft skills>",
    "projects": "<LaTeX formatted projects>",
    "education": "<LaTeX formatted education>",
    "certifications": "<LaTeX formatted certifications>"
}

Use proper LaTeX formatting for bullets (\item), bold (\textbf{}), dates (\hfill), etc.
Return ONLY the JSON object.`, resumeText, jobText, strings.Join(missingSkills, ", "), strings.Join(missingKeywords, ", "))
}
