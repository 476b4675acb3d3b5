package models

import "time"

type User struct {
	ID        string    `json:"id" validate:"required,uuid"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-" validate:"required,min=8"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name" validate:"required"`
	IsStaff   bool      `json:"is_staff"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	// PhysiotherapistID is set when the user account belongs to a
	// physiotherapist. Staff accounts have no linked physiotherapist.
	PhysiotherapistID *string `json:"physiotherapist_id,omitempty"`
}
