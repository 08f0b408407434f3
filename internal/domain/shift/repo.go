package shift

import (
	"context"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
)

// Repository is the persistence boundary for the shift roster.
type Repository interface {
	Create(ctx context.Context, s *Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shift, error)
	List(ctx context.Context, limit, offset int) ([]*ShiftDetail, int, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*ShiftDetail, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffDirectory resolves staff members for roster validation.
type StaffDirectory interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*directory.Staff, error)
}
