package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProfileAnalytics struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ActionType  string         `gorm:"type:text;not null" json:"action_type"`
	SectionName *string        `gorm:"type:text" json:"section_name,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (ProfileAnalytics) TableName() string {
	return "profile_analytics"
}

type DSAFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemID    string    `gorm:"type:text;not null" json:"item_id"`
	ItemType  string    `gorm:"type:text;not null" json:"item_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DSAFavorite) TableName() string {
	return "dsa_favorites"
}

// DSASolvedProblem marks one catalogue problem as solved by a user.
type DSASolvedProblem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProblemID string    `gorm:"type:text;not null" json:"problem_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (DSASolvedProblem) TableName() string {
	return "dsa_solved_problems"
}
