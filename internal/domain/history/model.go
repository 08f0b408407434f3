package history

import (
	"time"

	"github.com/google/uuid"
)

// PatientIllness is a diagnosed illness on a patient's record.
type PatientIllness struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	IllnessID     uuid.UUID  `db:"illness_id" json:"illness_id"`
	Code          string     `db:"code" json:"code"`
	Description   string     `db:"description" json:"description"`
	DiagnosedDate *time.Time `db:"diagnosed_date" json:"diagnosed_date,omitempty"`
	RecordedAt    time.Time  `db:"recorded_at" json:"recorded_at"`
}

// PatientAllergy is a recorded allergy on a patient's record.
type PatientAllergy struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	AllergyID  uuid.UUID `db:"allergy_id" json:"allergy_id"`
	Code       string    `db:"code" json:"code"`
	Name       string    `db:"name" json:"name"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// MedicalHistory is the combined record view for one patient.
type MedicalHistory struct {
	PatientID uuid.UUID         `json:"patient_id"`
	Illnesses []*PatientIllness `json:"illnesses"`
	Allergies []*PatientAllergy `json:"allergies"`
}

// AddIllnessRequest records an illness by catalog code.
type AddIllnessRequest struct {
	Code          string     `json:"code"`
	DiagnosedDate *time.Time `json:"diagnosed_date,omitempty"`
}

// AddAllergyRequest records an allergy by catalog code.
type AddAllergyRequest struct {
	Code string `json:"code"`
}
