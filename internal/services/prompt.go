package services

import (
	"fmt"
	"strings"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

// maxPromptText bounds the document text pasted into a prompt.
const maxPromptText = 30000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt asks for the profile sections found in a resume.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract structured profile data from the resume below.

RESUME:
%s

Return ONLY a JSON object with this exact shape. Omit nothing; use "" or [] when a value is not present.
{
  "personal_info": {
    "full_name": "", "email": "", "phone": "", "location": "",
    "linkedin": "", "github": "", "portfolio": ""
  },
  "summary": "<professional summary, 2-4 sentences>",
  "education": [
    {"institution": "", "degree": "", "field_of_study": "", "start_year": "", "end_year": "", "grade": "", "description": ""}
  ],
  "experience": [
    {"company": "", "position": "", "start_date": "", "end_date": "", "is_current": false, "location": "", "description": "", "technologies": []}
  ],
  "projects": [
    {"title": "", "description": "", "technologies": [], "highlights": [], "github_url": "", "live_url": ""}
  ],
  "skills": [
    {"name": "", "category": "technical|soft|language|tool", "level": "beginner|intermediate|advanced|expert"}
  ],
  "certifications": [
    {"name": "", "issuer": "", "issue_date": "", "expiry_date": "", "credential_id": "", "credential_url": ""}
  ]
}

Do not invent data. Copy names, dates and URLs exactly as written.`, truncate(resumeText, maxPromptText))
}

// BuildResumeAnalysisPrompt asks for a review of a resume against a job role.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText, jobRole, jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = "Not provided"
	}

	return fmt.Sprintf(`You are a senior technical recruiter. Analyze this resume for the job role: %s

JOB DESCRIPTION:
%s

RESUME CONTENT:
%s

Return ONLY a JSON object in this format:
{
  "overall_score": <0-100>,
  "job_match_score": <0-100, how well the resume matches the role>,
  "ats_score": <0-100, ATS compatibility>,
  "strengths": ["resume strengths relevant to the job"],
  "weaknesses": ["areas that need improvement"],
  "skill_gaps": ["missing skills for the job role"],
  "recommendations": ["specific recommendations to improve the resume"],
  "keywords_found": ["important keywords found in the resume"],
  "missing_keywords": ["important keywords missing from the resume"],
  "sections_analysis": {
    "summary": "", "experience": "", "skills": "", "education": "", "overall_structure": ""
  },
  "improvement_priority": ["top 3 areas to focus on"],
  "role_specific_advice": ["advice specific to the %s role"]
}`, jobRole, truncate(jobDescription, 5000), truncate(resumeText, maxPromptText), jobRole)
}

// BuildContentPrompt asks for one kind of study material for a course.
func (pb *PromptBuilder) BuildContentPrompt(contentType models.ContentType, opts models.GenerateOptions) string {
	var shape string

	switch contentType {
	case models.ContentFlashcards:
		shape = fmt.Sprintf(`{"flashcards": [{"question": "", "answer": "", "difficulty": "easy|medium|hard"}]}
Produce exactly %d flashcards.`, opts.Count)
	case models.ContentMCQs:
		shape = fmt.Sprintf(`{"mcqs": [{"question": "", "options": ["", "", "", ""], "correct_answer": "", "explanation": "", "difficulty": "easy|medium|hard"}]}
Produce exactly %d questions. "correct_answer" must be copied verbatim from "options".`, opts.Count)
	case models.ContentQnAs:
		shape = fmt.Sprintf(`{"qnas": [{"question": "", "answer": ""}]}
Produce exactly %d question and answer pairs.`, opts.Count)
	case models.ContentResources:
		shape = fmt.Sprintf(`{"resources": [{"title": "", "url": "", "type": "article|video|documentation|course|book", "description": "", "provider": ""}]}
Produce exactly %d resources. Only use real, well-known URLs.`, opts.Count)
	case models.ContentNotebook:
		shape = `{"key_concepts": [{"concept": "", "explanation": ""}], "mind_map": {"central": "", "branches": [{"label": "", "children": [""]}]}, "study_guide": "", "analogy": ""}`
	}

	return fmt.Sprintf(`You are an expert teacher creating %s for a course on "%s".
Target difficulty: %s.

COURSE MATERIAL:
%s

Return ONLY a JSON object with this shape:
%s`, contentType, opts.Topic, opts.Difficulty, truncate(opts.ChapterContent, maxPromptText), shape)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
