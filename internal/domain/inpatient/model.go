package inpatient

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole names an assignment slot on an admission.
type StaffRole string

const (
	RoleDoctor StaffRole = "doctor"
	RoleNurse  StaffRole = "nurse"
)

// Valid reports whether r is a recognized assignment slot.
func (r StaffRole) Valid() bool { return r == RoleDoctor || r == RoleNurse }

// Admission is one stay of a patient in a bed. An admission is active while
// DischargeDate is nil; at most one active admission may exist per patient
// and per bed.
type Admission struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	RoomID        uuid.UUID  `db:"room_id" json:"room_id"`
	AdmissionDate time.Time  `db:"admission_date" json:"admission_date"`
	DischargeDate *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	DoctorID      *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	NurseID       *uuid.UUID `db:"nurse_id" json:"nurse_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Active reports whether the patient is still in the bed.
func (a *Admission) Active() bool { return a.DischargeDate == nil }

// AdmissionDetail is an admission joined with display names for listings.
type AdmissionDetail struct {
	Admission
	PatientName string  `json:"patient_name"`
	NursingUnit int     `json:"nursing_unit"`
	Wing        string  `json:"wing"`
	RoomNumber  int     `json:"room_number"`
	BedLabel    string  `json:"bed_label"`
	DoctorName  *string `json:"doctor_name,omitempty"`
	NurseName   *string `json:"nurse_name,omitempty"`
}

// AdmitRequest is the payload for admitting a patient.
type AdmitRequest struct {
	PatientID     uuid.UUID  `json:"patient_id"`
	RoomID        uuid.UUID  `json:"room_id"`
	AdmissionDate time.Time  `json:"admission_date"`
	DoctorID      *uuid.UUID `json:"doctor_id,omitempty"`
	NurseID       *uuid.UUID `json:"nurse_id,omitempty"`
}

// DischargeRequest carries the discharge date for an active admission.
type DischargeRequest struct {
	DischargeDate time.Time `json:"discharge_date"`
}

// AssignRequest assigns a staff member to a slot on an admission.
type AssignRequest struct {
	StaffID uuid.UUID `json:"staff_id"`
	Role    StaffRole `json:"role"`
}
