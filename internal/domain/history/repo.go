package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
)

// Repository is the persistence boundary for patient medical history facts.
type Repository interface {
	// AddIllness records a diagnosed illness. Recording the same illness
	// twice for one patient returns ErrDuplicateEntry.
	AddIllness(ctx context.Context, pi *PatientIllness) error
	// AddAllergy records an allergy. Recording the same allergy twice for
	// one patient returns ErrDuplicateEntry.
	AddAllergy(ctx context.Context, pa *PatientAllergy) error
	ListIllnesses(ctx context.Context, patientID uuid.UUID) ([]*PatientIllness, error)
	ListAllergies(ctx context.Context, patientID uuid.UUID) ([]*PatientAllergy, error)
}

// Directory resolves patients and catalog codes.
type Directory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*directory.Patient, error)
	GetIllnessByCode(ctx context.Context, code string) (*directory.Illness, error)
	GetAllergyByCode(ctx context.Context, code string) (*directory.Allergy, error)
}
