package surgery

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a surgery type as requiring hospitalization (H) or
// being performed as an outpatient procedure (O).
type Category string

const (
	CategoryHospitalization Category = "H"
	CategoryOutpatient      Category = "O"
)

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool { return c == CategoryHospitalization || c == CategoryOutpatient }

// Status tracks a surgery through its lifecycle.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var validStatuses = map[Status]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// Valid reports whether s is a recognized surgery status.
func (s Status) Valid() bool { return validStatuses[s] }

// SurgeryType is a catalog entry describing a kind of procedure.
type SurgeryType struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Code               string    `db:"code" json:"code"`
	Name               string    `db:"name" json:"name"`
	Category           Category  `db:"category" json:"category"`
	AnatomicalLocation *string   `db:"anatomical_location" json:"anatomical_location,omitempty"`
	SpecialNeeds       *string   `db:"special_needs" json:"special_needs,omitempty"`
}

// Surgery is a booked procedure.
type Surgery struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	SurgeonID     uuid.UUID `db:"surgeon_id" json:"surgeon_id"`
	SurgeryTypeID uuid.UUID `db:"surgery_type_id" json:"surgery_type_id"`
	ScheduledAt   time.Time `db:"scheduled_at" json:"scheduled_at"`
	Theatre       *string   `db:"theatre" json:"theatre,omitempty"`
	Status        Status    `db:"status" json:"status"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// SurgeryDetail joins a surgery with display names for listings.
type SurgeryDetail struct {
	Surgery
	PatientName     string `json:"patient_name"`
	SurgeonName     string `json:"surgeon_name"`
	SurgeryTypeName string `json:"surgery_type_name"`
	SurgeryTypeCode string `json:"surgery_type_code"`
}

// Filter narrows a surgery query. Set fields combine with AND.
type Filter struct {
	PatientID *uuid.UUID
	SurgeonID *uuid.UUID
	Date      *time.Time
	Status    *Status
	Theatre   *string
}

// Update is a partial-update container. Nil fields are left untouched.
type Update struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Theatre     *string    `json:"theatre,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.ScheduledAt == nil && u.Theatre == nil && u.Status == nil && u.Notes == nil
}
