package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// UserProfile is the personal-info row of a profile. Revision is bumped by
// every mutation of the profile aggregate and doubles as a compare-and-set
// token for writers.
type UserProfile struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName             string         `gorm:"type:text" json:"full_name"`
	Email                string         `gorm:"type:text" json:"email"`
	Phone                string         `gorm:"type:text" json:"phone"`
	Location             string         `gorm:"type:text" json:"location"`
	LinkedinURL          string         `gorm:"type:text" json:"linkedin_url"`
	GithubURL            string         `gorm:"type:text" json:"github_url"`
	PortfolioURL         string         `gorm:"type:text" json:"portfolio_url"`
	ProfessionalSummary  string         `gorm:"type:text" json:"professional_summary"`
	CompletionPercentage int            `gorm:"default:0" json:"completion_percentage"`
	ProfileStrengthScore *int           `json:"profile_strength_score,omitempty"`
	AISuggestions        datatypes.JSON `json:"ai_suggestions,omitempty"`
	LastAIAnalysis       *time.Time     `json:"last_ai_analysis,omitempty"`
	Revision             int64          `gorm:"not null;default:0" json:"revision"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

type Education struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Institution  string    `gorm:"type:text;not null" json:"institution" validate:"required"`
	Degree       string    `gorm:"type:text;not null" json:"degree" validate:"required"`
	FieldOfStudy string    `gorm:"type:text;not null" json:"field_of_study"`
	StartYear    *string   `gorm:"type:text" json:"start_year,omitempty"`
	EndYear      *string   `gorm:"type:text" json:"end_year,omitempty"`
	Grade        *string   `gorm:"type:text" json:"grade,omitempty"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Education) TableName() string {
	return "user_education"
}

type Experience struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Company      string         `gorm:"type:text;not null" json:"company" validate:"required"`
	Position     string         `gorm:"type:text;not null" json:"position" validate:"required"`
	StartDate    string         `gorm:"type:text;not null" json:"start_date"`
	EndDate      *string        `gorm:"type:text" json:"end_date,omitempty"`
	IsCurrent    bool           `gorm:"default:false" json:"is_current"`
	Location     *string        `gorm:"type:text" json:"location,omitempty"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	Technologies pq.StringArray `gorm:"type:text[]" json:"technologies"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Experience) TableName() string {
	return "user_experience"
}

type Project struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string         `gorm:"type:text;not null" json:"title" validate:"required"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	StartDate    *string        `gorm:"type:text" json:"start_date,omitempty"`
	EndDate      *string        `gorm:"type:text" json:"end_date,omitempty"`
	GithubURL    *string        `gorm:"type:text" json:"github_url,omitempty"`
	LiveURL      *string        `gorm:"type:text" json:"live_url,omitempty"`
	Technologies pq.StringArray `gorm:"type:text[]" json:"technologies"`
	Highlights   pq.StringArray `gorm:"type:text[]" json:"highlights"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Project) TableName() string {
	return "user_projects"
}

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"type:text;not null" json:"name" validate:"required"`
	Category  string    `gorm:"type:text;not null" json:"category"`
	Level     string    `gorm:"type:text;not null" json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Skill) TableName() string {
	return "user_skills"
}

type Certification struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string    `gorm:"type:text;not null" json:"name" validate:"required"`
	Issuer        string    `gorm:"type:text;not null" json:"issuer"`
	IssueDate     *string   `gorm:"type:text" json:"issue_date,omitempty"`
	ExpiryDate    *string   `gorm:"type:text" json:"expiry_date,omitempty"`
	CredentialID  *string   `gorm:"type:text" json:"credential_id,omitempty"`
	CredentialURL *string   `gorm:"type:text" json:"credential_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Certification) TableName() string {
	return "user_certifications"
}
