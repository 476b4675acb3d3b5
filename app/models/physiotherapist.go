package models

import "time"

// Physiotherapist links a user account to its professional registration.
type Physiotherapist struct {
	ID             string    `json:"id" validate:"required,uuid"`
	UserID         string    `json:"user_id" validate:"required,uuid"`
	Crefito        string    `json:"crefito" validate:"required"`
	Phone          string    `json:"phone"`
	Specialization string    `json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
}
