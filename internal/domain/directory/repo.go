package directory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Patients
	CreatePatient(ctx context.Context, p *Patient) error
	GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	UpdatePatient(ctx context.Context, p *Patient) error

	// Staff
	CreateStaff(ctx context.Context, s *Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error)
	ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error)
	ListStaffByJobType(ctx context.Context, jobType JobType, limit, offset int) ([]*Staff, int, error)
	UpdateStaff(ctx context.Context, s *Staff) error

	// Catalogs
	CreateIllness(ctx context.Context, i *Illness) error
	GetIllnessByCode(ctx context.Context, code string) (*Illness, error)
	ListIllnesses(ctx context.Context) ([]*Illness, error)
	CreateAllergy(ctx context.Context, a *Allergy) error
	GetAllergyByCode(ctx context.Context, code string) (*Allergy, error)
	ListAllergies(ctx context.Context) ([]*Allergy, error)
}
