package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

type ResumeExtractor interface {
	Extract(ctx context.Context, resumeText string) (*models.ExtractedResumeData, error)
}

type resumeExtractor struct {
	gemini  GeminiService
	prompts *PromptBuilder
	logger  *zap.Logger
}

func NewResumeExtractor(gemini GeminiService, prompts *PromptBuilder, log *zap.Logger) ResumeExtractor {
	return &resumeExtractor{
		gemini:  gemini,
		prompts: prompts,
		logger:  log.Named("resume_extractor"),
	}
}

func (e *resumeExtractor) Extract(ctx context.Context, resumeText string) (*models.ExtractedResumeData, error) {
	prompt := e.prompts.BuildResumeExtractionPrompt(resumeText)

	response, err := e.gemini.GenerateJSONWithRetry(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume data: %w", err)
	}

	var data models.ExtractedResumeData
	if err := parseJSONResponse(response, &data); err != nil {
		e.logger.Warn("⚠️ Unparseable extraction response", zap.Int("length", len(response)))
		return nil, err
	}

	normalizeExtracted(&data)

	e.logger.Info("🧠 Resume data extracted",
		zap.Int("education", len(data.Education)),
		zap.Int("experience", len(data.Experience)),
		zap.Int("projects", len(data.Projects)),
		zap.Int("skills", len(data.Skills)),
		zap.Int("certifications", len(data.Certifications)),
	)

	return &data, nil
}

// normalizeExtracted trims model output and drops entries missing the
// fields the profile tables require.
func normalizeExtracted(d *models.ExtractedResumeData) {
	if d.PersonalInfo != nil {
		p := d.PersonalInfo
		for _, f := range []*string{&p.FullName, &p.Email, &p.Phone, &p.Location, &p.LinkedIn, &p.GitHub, &p.Portfolio, &p.Summary} {
			*f = strings.TrimSpace(*f)
		}
		if *p == (models.PersonalInfo{}) {
			d.PersonalInfo = nil
		}
	}
	d.Summary = strings.TrimSpace(d.Summary)

	education := d.Education[:0]
	for _, e := range d.Education {
		e.Institution, e.Degree = strings.TrimSpace(e.Institution), strings.TrimSpace(e.Degree)
		if e.Institution == "" || e.Degree == "" {
			continue
		}
		e.FieldOfStudy = strings.TrimSpace(e.FieldOfStudy)
		e.StartYear, e.EndYear = blankToNil(e.StartYear), blankToNil(e.EndYear)
		e.Grade, e.Description = blankToNil(e.Grade), blankToNil(e.Description)
		education = append(education, e)
	}
	d.Education = education

	experience := d.Experience[:0]
	for _, e := range d.Experience {
		e.Company, e.Position = strings.TrimSpace(e.Company), strings.TrimSpace(e.Position)
		if e.Company == "" || e.Position == "" {
			continue
		}
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate, e.Location, e.Description = blankToNil(e.EndDate), blankToNil(e.Location), blankToNil(e.Description)
		e.Technologies = compactStrings(e.Technologies)
		experience = append(experience, e)
	}
	d.Experience = experience

	projects := d.Projects[:0]
	for _, p := range d.Projects {
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			continue
		}
		p.Description, p.StartDate, p.EndDate = blankToNil(p.Description), blankToNil(p.StartDate), blankToNil(p.EndDate)
		p.GithubURL, p.LiveURL = blankToNil(p.GithubURL), blankToNil(p.LiveURL)
		p.Technologies, p.Highlights = compactStrings(p.Technologies), compactStrings(p.Highlights)
		projects = append(projects, p)
	}
	d.Projects = projects

	skills := d.Skills[:0]
	for _, s := range d.Skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		if s.Category = strings.ToLower(strings.TrimSpace(s.Category)); s.Category == "" {
			s.Category = "technical"
		}
		if s.Level = strings.ToLower(strings.TrimSpace(s.Level)); s.Level == "" {
			s.Level = "intermediate"
		}
		skills = append(skills, s)
	}
	d.Skills = skills

	certs := d.Certifications[:0]
	for _, c := range d.Certifications {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		c.Issuer = strings.TrimSpace(c.Issuer)
		c.IssueDate, c.ExpiryDate = blankToNil(c.IssueDate), blankToNil(c.ExpiryDate)
		c.CredentialID, c.CredentialURL = blankToNil(c.CredentialID), blankToNil(c.CredentialURL)
		certs = append(certs, c)
	}
	d.Certifications = certs
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
