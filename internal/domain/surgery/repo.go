package surgery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
)

// Repository is the persistence boundary for surgeries and the surgery-type
// catalog.
type Repository interface {
	Create(ctx context.Context, s *Surgery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error)
	Query(ctx context.Context, f Filter, limit, offset int) ([]*SurgeryDetail, int, error)
	// ListByRoomAndDay returns surgeries on a calendar day for the patient
	// currently admitted to the given bed.
	ListByRoomAndDay(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*SurgeryDetail, error)
	Update(ctx context.Context, s *Surgery) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateType(ctx context.Context, t *SurgeryType) error
	GetType(ctx context.Context, id uuid.UUID) (*SurgeryType, error)
	GetTypeByCode(ctx context.Context, code string) (*SurgeryType, error)
	ListTypes(ctx context.Context) ([]*SurgeryType, error)
}

// Directory is the slice of the directory service bookings need.
type Directory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*directory.Patient, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*directory.Staff, error)
}
