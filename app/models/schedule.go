package models

// StudentSchedule is a fixed weekly slot for a student with a monthly
// modality. Weekday 0 is Monday, hour is the slot start (06..21).
type StudentSchedule struct {
	ID        string `json:"id" validate:"required,uuid"`
	StudentID string `json:"student" validate:"required,uuid"`
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	Hour      int    `json:"hour" validate:"min=6,max=21"`

	StudentName string `json:"student_name,omitempty"`
}
