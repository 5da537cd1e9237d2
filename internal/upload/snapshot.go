package upload

import (
	"time"

	"github.com/google/uuid"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

type State string

const (
	StateIdle             State = "idle"
	StateProcessing       State = "processing"
	StateAwaitingDecision State = "awaiting_decision"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
)

// PendingDecision holds extracted data until the user applies or declines it.
type PendingDecision struct {
	ExtractionID  *uuid.UUID                  `json:"extraction_id,omitempty"`
	ExtractedData *models.ExtractedResumeData `json:"extracted_data"`
}

// Snapshot is the observable state of a user's upload flow.
type Snapshot struct {
	UserID          uuid.UUID             `json:"user_id"`
	State           State                 `json:"state"`
	Progress        int                   `json:"progress"`
	Stage           int                   `json:"stage"`
	Caption         string                `json:"caption"`
	Indeterminate   bool                  `json:"indeterminate"`
	Filename        string                `json:"filename,omitempty"`
	Message         string                `json:"message,omitempty"`
	Error           string                `json:"error,omitempty"`
	Resume          *models.ResumeData    `json:"resume,omitempty"`
	PendingDecision *PendingDecision      `json:"pending_decision,omitempty"`
	Notifications   []models.Notification `json:"notifications"`
	StartedAt       time.Time             `json:"started_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (s *Snapshot) clone() *Snapshot {
	cp := *s
	cp.Notifications = append([]models.Notification{}, s.Notifications...)
	if s.PendingDecision != nil {
		pd := *s.PendingDecision
		cp.PendingDecision = &pd
	}
	return &cp
}

func idleSnapshot(userID uuid.UUID) *Snapshot {
	return &Snapshot{UserID: userID, State: StateIdle, Notifications: []models.Notification{}}
}
