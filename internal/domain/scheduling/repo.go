package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
)

// Repository is the persistence boundary for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Query(ctx context.Context, f Filter, limit, offset int) ([]*AppointmentDetail, int, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Directory is the slice of the directory service bookings need.
type Directory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*directory.Patient, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*directory.Staff, error)
}
