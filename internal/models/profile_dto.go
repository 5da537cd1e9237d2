package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PersonalInfo struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Summary   string `json:"summary,omitempty"`
}

// ResumeData is the resume summary embedded in a profile aggregate.
type ResumeData struct {
	ID              uuid.UUID      `json:"id"`
	Filename        string         `json:"filename"`
	FilePath        string         `json:"file_path"`
	FileSize        *int64         `json:"file_size,omitempty"`
	UploadDate      time.Time      `json:"upload_date"`
	ParsedData      datatypes.JSON `json:"parsed_data,omitempty"`
	ExtractedText   string         `json:"extracted_text,omitempty"`
	AIAnalysis      datatypes.JSON `json:"ai_analysis,omitempty"`
	SkillGaps       []string       `json:"skill_gaps"`
	Recommendations []string       `json:"recommendations"`
}

func NewResumeData(r *UserResume) *ResumeData {
	if r == nil {
		return nil
	}

	data := &ResumeData{
		ID:              r.ID,
		Filename:        r.Filename,
		FilePath:        r.FilePath,
		FileSize:        r.FileSize,
		UploadDate:      r.UploadDate,
		ParsedData:      r.ParsedData,
		AIAnalysis:      r.AIAnalysis,
		SkillGaps:       nonNil(r.SkillGaps),
		Recommendations: nonNil(r.Recommendations),
	}
	if r.ExtractedText != nil {
		data.ExtractedText = *r.ExtractedText
	}

	return data
}

// ProfileAggregate is the full profile as served to clients.
type ProfileAggregate struct {
	UserID               uuid.UUID       `json:"user_id"`
	PersonalInfo         PersonalInfo    `json:"personal_info"`
	Education            []Education     `json:"education"`
	Experience           []Experience    `json:"experience"`
	Projects             []Project       `json:"projects"`
	Skills               []Skill         `json:"skills"`
	Certifications       []Certification `json:"certifications"`
	ResumeData           *ResumeData     `json:"resume_data,omitempty"`
	CompletionPercentage int             `json:"completion_percentage"`
	Revision             int64           `json:"revision"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// NewEmptyProfile builds a blank profile seeded from the identity.
func NewEmptyProfile(userID uuid.UUID, fullName, email string, now time.Time) *ProfileAggregate {
	return &ProfileAggregate{
		UserID: userID,
		PersonalInfo: PersonalInfo{
			FullName: fullName,
			Email:    email,
		},
		Education:      []Education{},
		Experience:     []Experience{},
		Projects:       []Project{},
		Skills:         []Skill{},
		Certifications: []Certification{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// PersonalInfoPatch carries only the fields a caller wants to change.
type PersonalInfoPatch struct {
	FullName  *string `json:"full_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// Columns maps the set fields onto user_profiles columns.
func (p *PersonalInfoPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p == nil {
		return cols
	}

	set := func(col string, v *string) {
		if v != nil {
			cols[col] = strings.TrimSpace(*v)
		}
	}
	set("full_name", p.FullName)
	set("email", p.Email)
	set("phone", p.Phone)
	set("location", p.Location)
	set("linkedin_url", p.LinkedIn)
	set("github_url", p.GitHub)
	set("portfolio_url", p.Portfolio)
	set("professional_summary", p.Summary)

	return cols
}

// ProfileUpdate is a partial update. Nil sections are left untouched and
// non-nil sections replace the stored collection.
type ProfileUpdate struct {
	Revision       *int64             `json:"revision,omitempty"`
	PersonalInfo   *PersonalInfoPatch `json:"personal_info,omitempty" validate:"omitempty"`
	Education      *[]Education       `json:"education,omitempty" validate:"omitempty,dive"`
	Experience     *[]Experience      `json:"experience,omitempty" validate:"omitempty,dive"`
	Projects       *[]Project         `json:"projects,omitempty" validate:"omitempty,dive"`
	Skills         *[]Skill           `json:"skills,omitempty" validate:"omitempty,dive"`
	Certifications *[]Certification   `json:"certifications,omitempty" validate:"omitempty,dive"`
}

func (u *ProfileUpdate) IsEmpty() bool {
	return u == nil || (len(u.PersonalInfo.Columns()) == 0 &&
		u.Education == nil && u.Experience == nil && u.Projects == nil &&
		u.Skills == nil && u.Certifications == nil)
}

// ExtractedResumeData is the transient result of resume extraction. It is
// either discarded or copied into the profile tables.
type ExtractedResumeData struct {
	PersonalInfo   *PersonalInfo   `json:"personal_info,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Skills         []Skill         `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

func (d *ExtractedResumeData) IsEmpty() bool {
	if d == nil {
		return true
	}

	personalEmpty := d.PersonalInfo == nil || *d.PersonalInfo == (PersonalInfo{})

	return personalEmpty && strings.TrimSpace(d.Summary) == "" &&
		len(d.Education) == 0 && len(d.Experience) == 0 && len(d.Projects) == 0 &&
		len(d.Skills) == 0 && len(d.Certifications) == 0
}

type SectionCompletion struct {
	Section    string `json:"section"`
	Completed  bool   `json:"completed"`
	Percentage int    `json:"percentage"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
