package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// UserResume is the single stored resume of a user. A new upload replaces
// the row wholesale.
type UserResume struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Filename         string           `gorm:"type:text;not null" json:"filename"`
	FilePath         string           `gorm:"type:text;not null" json:"file_path"`
	FileSize         *int64           `json:"file_size,omitempty"`
	ContentType      string           `gorm:"type:text" json:"content_type"`
	UploadDate       time.Time        `json:"upload_date"`
	ExtractedText    *string          `gorm:"type:text" json:"extracted_text,omitempty"`
	ExtractionStatus ProcessingStatus `gorm:"type:text" json:"extraction_status"`
	ProcessingStatus ProcessingStatus `gorm:"type:text" json:"processing_status"`
	ParsedData       datatypes.JSON   `json:"parsed_data,omitempty"`
	AIAnalysis       datatypes.JSON   `json:"ai_analysis,omitempty"`
	AISuggestions    datatypes.JSON   `json:"ai_suggestions,omitempty"`
	SkillGaps        pq.StringArray   `gorm:"type:text[]" json:"skill_gaps"`
	Recommendations  pq.StringArray   `gorm:"type:text[]" json:"recommendations"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (UserResume) TableName() string {
	return "user_resumes"
}

type ExtractionStatus string

const (
	ExtractionPending  ExtractionStatus = "pending"
	ExtractionApplied  ExtractionStatus = "applied"
	ExtractionDeclined ExtractionStatus = "declined"
	ExtractionFailed   ExtractionStatus = "failed"
)

// ResumeExtraction records one extraction result and the user's decision on it.
type ResumeExtraction struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ResumeID        *uuid.UUID       `gorm:"type:uuid" json:"resume_id,omitempty"`
	ExtractedData   datatypes.JSON   `gorm:"not null" json:"extracted_data"`
	ExtractionType  string           `gorm:"type:text;not null;default:'full'" json:"extraction_type"`
	Status          ExtractionStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	ConfidenceScore *float64         `json:"confidence_score,omitempty"`
	AppliedAt       *time.Time       `json:"applied_at,omitempty"`
	AppliedBy       *uuid.UUID       `gorm:"type:uuid" json:"applied_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (ResumeExtraction) TableName() string {
	return "resume_extractions"
}
