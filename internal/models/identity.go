package models

import "github.com/google/uuid"

// Identity is the authenticated caller as described by the access token.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}
