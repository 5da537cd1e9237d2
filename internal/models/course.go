package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Course struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title                  string    `gorm:"type:text;not null" json:"title"`
	Purpose                string    `gorm:"type:text;not null" json:"purpose"`
	Difficulty             string    `gorm:"type:text;not null" json:"difficulty"`
	Status                 string    `gorm:"type:text;not null;default:'generating'" json:"status"`
	Summary                *string   `gorm:"type:text" json:"summary,omitempty"`
	ProgressPercentage     *int      `json:"progress_percentage,omitempty"`
	CompletionTimeEstimate *int      `json:"completion_time_estimate,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

type Chapter struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID             uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title                string    `gorm:"type:text;not null" json:"title"`
	Content              string    `gorm:"type:text;not null" json:"content"`
	OrderNumber          int       `gorm:"not null" json:"order_number"`
	EstimatedReadingTime *int      `json:"estimated_reading_time,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Chapter) TableName() string {
	return "course_chapters"
}

type Flashcard struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	ChapterID  *uuid.UUID `gorm:"type:uuid" json:"chapter_id,omitempty"`
	Question   string     `gorm:"type:text;not null" json:"question"`
	Answer     string     `gorm:"type:text;not null" json:"answer"`
	Difficulty *string    `gorm:"type:text" json:"difficulty,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Flashcard) TableName() string {
	return "course_flashcards"
}

// MCQ options keep their order; CorrectAnswer must equal one option exactly.
type MCQ struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"course_id"`
	ChapterID     *uuid.UUID                  `gorm:"type:uuid" json:"chapter_id,omitempty"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer string                      `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   *string                     `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty    *string                     `gorm:"type:text" json:"difficulty,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

func (MCQ) TableName() string {
	return "course_mcqs"
}

// Valid reports whether the correct answer is one of the options.
func (m *MCQ) Valid() bool {
	for _, opt := range m.Options {
		if opt == m.CorrectAnswer {
			return true
		}
	}
	return false
}

func (m *MCQ) IsCorrect(answer string) bool {
	return answer == m.CorrectAnswer
}

func (m *MCQ) HasOption(answer string) bool {
	for _, opt := range m.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

type QnA struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	ChapterID *uuid.UUID `gorm:"type:uuid" json:"chapter_id,omitempty"`
	Question  string     `gorm:"type:text;not null" json:"question"`
	Answer    string     `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time  `json:"created_at"`
}

func (QnA) TableName() string {
	return "course_qnas"
}

type Resource struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	ChapterID    *uuid.UUID `gorm:"type:uuid" json:"chapter_id,omitempty"`
	Title        string     `gorm:"type:text;not null" json:"title"`
	URL          string     `gorm:"type:text;not null" json:"url"`
	Type         string     `gorm:"type:text;not null" json:"type"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	Provider     *string    `gorm:"type:text" json:"provider,omitempty"`
	Duration     *int       `json:"duration,omitempty"`
	ThumbnailURL *string    `gorm:"type:text" json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (Resource) TableName() string {
	return "course_resources"
}

type Notebook struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	ChapterID   *uuid.UUID     `gorm:"type:uuid" json:"chapter_id,omitempty"`
	KeyConcepts datatypes.JSON `gorm:"not null" json:"key_concepts"`
	MindMap     datatypes.JSON `json:"mind_map,omitempty"`
	StudyGuide  *string        `gorm:"type:text" json:"study_guide,omitempty"`
	Analogy     *string        `gorm:"type:text" json:"analogy,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Notebook) TableName() string {
	return "course_notebooks"
}

const (
	ProgressMCQAnswered     = "mcq_answered"
	ProgressChapterRead     = "chapter_read"
	ProgressFlashcardViewed = "flashcard_viewed"
)

type CourseProgress struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	ChapterID    *uuid.UUID `gorm:"type:uuid" json:"chapter_id,omitempty"`
	MCQID        *uuid.UUID `gorm:"column:mcq_id;type:uuid" json:"mcq_id,omitempty"`
	FlashcardID  *uuid.UUID `gorm:"type:uuid" json:"flashcard_id,omitempty"`
	ProgressType string     `gorm:"type:text;not null" json:"progress_type"`
	Score        *int       `json:"score,omitempty"`
	TimeSpent    *int       `json:"time_spent,omitempty"`
	CompletedAt  time.Time  `json:"completed_at"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
