package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResumeFile is an uploaded resume held in memory.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

type UploadResult struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message,omitempty"`
	Resume        *ResumeData          `json:"resume,omitempty"`
	ExtractedData *ExtractedResumeData `json:"extracted_data,omitempty"`
	ExtractionID  *uuid.UUID           `json:"extraction_id,omitempty"`
}

type ResumeLinks struct {
	PreviewURL        string    `json:"preview_url"`
	PreviewExpiresAt  time.Time `json:"preview_expires_at"`
	DownloadURL       string    `json:"download_url"`
	DownloadExpiresAt time.Time `json:"download_expires_at"`
}

type AnalyzeResumeRequest struct {
	JobRole        string `json:"job_role" validate:"required,max=200"`
	JobDescription string `json:"job_description" validate:"max=10000"`
}

// Score accepts both JSON numbers and numeric strings, since model output
// is not consistent about it.
type Score float64

func (s *Score) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Score(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	if i := strings.Index(str, "/"); i >= 0 {
		str = str[:i]
	}
	if str == "" {
		*s = 0
		return nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return err
	}
	*s = Score(n)

	return nil
}

// Clamp bounds the score to 0..100.
func (s Score) Clamp() Score {
	return Score(math.Max(0, math.Min(100, float64(s))))
}

type SectionsAnalysis struct {
	Summary          string `json:"summary"`
	Experience       string `json:"experience"`
	Skills           string `json:"skills"`
	Education        string `json:"education"`
	OverallStructure string `json:"overall_structure"`
}

// ResumeAnalysis is a job-role specific review of a stored resume.
type ResumeAnalysis struct {
	OverallScore        Score            `json:"overall_score"`
	JobMatchScore       Score            `json:"job_match_score"`
	ATSScore            Score            `json:"ats_score"`
	Strengths           []string         `json:"strengths"`
	Weaknesses          []string         `json:"weaknesses"`
	SkillGaps           []string         `json:"skill_gaps"`
	Recommendations     []string         `json:"recommendations"`
	KeywordsFound       []string         `json:"keywords_found"`
	MissingKeywords     []string         `json:"missing_keywords"`
	SectionsAnalysis    SectionsAnalysis `json:"sections_analysis"`
	ImprovementPriority []string         `json:"improvement_priority"`
	RoleSpecificAdvice  []string         `json:"role_specific_advice"`
	AIProvider          string           `json:"ai_provider"`
	JobRole             string           `json:"job_role"`
	AnalyzedAt          time.Time        `json:"analyzed_at"`
}

type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}
