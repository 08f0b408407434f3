package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks an appointment through its lifecycle.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "No Show"
)

var validStatuses = map[Status]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

// Valid reports whether s is a recognized appointment status.
func (s Status) Valid() bool { return validStatuses[s] }

// Appointment is a scheduled visit between a patient and a provider.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	ProviderID  uuid.UUID `db:"provider_id" json:"provider_id"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	Status      Status    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail is an appointment joined with display names.
type AppointmentDetail struct {
	Appointment
	PatientName  string `json:"patient_name"`
	ProviderName string `json:"provider_name"`
}

// Filter narrows an appointment query. Set fields combine with AND.
type Filter struct {
	ProviderID *uuid.UUID
	PatientID  *uuid.UUID
	Date       *time.Time
	Status     *Status
}

// Update is a partial-update container. Nil fields are left untouched.
type Update struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Reason      *string    `json:"reason,omitempty"`
	Status      *Status    `json:"status,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.ScheduledAt == nil && u.Reason == nil && u.Status == nil
}
