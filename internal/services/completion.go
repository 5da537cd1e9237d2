package services

import (
	"math"
	"strings"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

const (
	SectionResume         = "resume"
	SectionPersonal       = "personal"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionProjects       = "projects"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
)

// SectionCompletion reports how complete every profile section is, in
// display order.
func SectionCompletion(p *models.ProfileAggregate) []models.SectionCompletion {
	if p == nil {
		return nil
	}

	info := p.PersonalInfo
	personal := []string{info.FullName, info.Email, info.Phone, info.Location, info.LinkedIn, info.GitHub, info.Portfolio}
	filled := 0
	for _, v := range personal {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	personalPct := int(math.Round(float64(filled) / float64(len(personal)) * 100))
	personalDone := strings.TrimSpace(info.FullName) != "" &&
		strings.TrimSpace(info.Email) != "" &&
		strings.TrimSpace(info.Phone) != ""

	return []models.SectionCompletion{
		binarySection(SectionResume, p.ResumeData != nil),
		{Section: SectionPersonal, Completed: personalDone, Percentage: personalPct},
		binarySection(SectionEducation, len(p.Education) > 0),
		binarySection(SectionExperience, len(p.Experience) > 0),
		binarySection(SectionProjects, len(p.Projects) > 0),
		binarySection(SectionSkills, len(p.Skills) > 0),
		binarySection(SectionCertifications, len(p.Certifications) > 0),
	}
}

// OverallCompletion is the rounded mean of the section percentages.
func OverallCompletion(sections []models.SectionCompletion) int {
	if len(sections) == 0 {
		return 0
	}

	total := 0
	for _, s := range sections {
		total += s.Percentage
	}

	return int(math.Round(float64(total) / float64(len(sections))))
}

func binarySection(name string, done bool) models.SectionCompletion {
	pct := 0
	if done {
		pct = 100
	}
	return models.SectionCompletion{Section: name, Completed: done, Percentage: pct}
}
