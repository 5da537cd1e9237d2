package services

import (
	"strings"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
)

// fillEmptyPersonal returns the columns where the stored profile is blank
// and the extracted data has a value.
func fillEmptyPersonal(profile *models.UserProfile, data *models.ExtractedResumeData) map[string]interface{} {
	cols := map[string]interface{}{}

	fill := func(col, current, candidate string) {
		candidate = strings.TrimSpace(candidate)
		if strings.TrimSpace(current) == "" && candidate != "" {
			cols[col] = candidate
		}
	}

	summary := data.Summary
	if info := data.PersonalInfo; info != nil {
		fill("full_name", profile.FullName, info.FullName)
		fill("email", profile.Email, info.Email)
		fill("phone", profile.Phone, info.Phone)
		fill("location", profile.Location, info.Location)
		fill("linkedin_url", profile.LinkedinURL, info.LinkedIn)
		fill("github_url", profile.GithubURL, info.GitHub)
		fill("portfolio_url", profile.PortfolioURL, info.Portfolio)
		if strings.TrimSpace(summary) == "" {
			summary = info.Summary
		}
	}
	fill("professional_summary", profile.ProfessionalSummary, summary)

	return cols
}

// newEntries drops extracted entries the profile already has.
func newEntries(existing *repositories.ProfileSections, data *models.ExtractedResumeData) repositories.ProfileSections {
	var out repositories.ProfileSections

	seen := map[string]bool{}
	for _, e := range existing.Education {
		seen[dedupeKey(e.Institution, e.Degree)] = true
	}
	for _, e := range data.Education {
		if k := dedupeKey(e.Institution, e.Degree); !seen[k] {
			seen[k] = true
			out.Education = append(out.Education, e)
		}
	}

	seen = map[string]bool{}
	for _, e := range existing.Experience {
		seen[dedupeKey(e.Company, e.Position)] = true
	}
	for _, e := range data.Experience {
		if k := dedupeKey(e.Company, e.Position); !seen[k] {
			seen[k] = true
			out.Experience = append(out.Experience, e)
		}
	}

	seen = map[string]bool{}
	for _, p := range existing.Projects {
		seen[dedupeKey(p.Title)] = true
	}
	for _, p := range data.Projects {
		if k := dedupeKey(p.Title); !seen[k] {
			seen[k] = true
			out.Projects = append(out.Projects, p)
		}
	}

	seen = map[string]bool{}
	for _, s := range existing.Skills {
		seen[dedupeKey(s.Name)] = true
	}
	for _, s := range data.Skills {
		if k := dedupeKey(s.Name); !seen[k] {
			seen[k] = true
			out.Skills = append(out.Skills, s)
		}
	}

	seen = map[string]bool{}
	for _, c := range existing.Certifications {
		seen[dedupeKey(c.Name)] = true
	}
	for _, c := range data.Certifications {
		if k := dedupeKey(c.Name); !seen[k] {
			seen[k] = true
			out.Certifications = append(out.Certifications, c)
		}
	}

	return out
}

func dedupeKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}
