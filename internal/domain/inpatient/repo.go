package inpatient

import (
	"context"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/ward"
)

// Repository is the persistence boundary for admissions.
type Repository interface {
	// Create inserts a new admission. It returns ErrAlreadyAdmitted when the
	// patient already has an active admission and ErrRoomUnavailable when the
	// bed already hosts one.
	Create(ctx context.Context, a *Admission) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)
	GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*Admission, error)
	GetActiveByRoom(ctx context.Context, roomID uuid.UUID) (*Admission, error)
	Update(ctx context.Context, a *Admission) error
	List(ctx context.Context, limit, offset int) ([]*AdmissionDetail, int, error)
	ListActive(ctx context.Context, limit, offset int) ([]*AdmissionDetail, int, error)
}

// PatientDirectory is the slice of the directory service admissions need.
type PatientDirectory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*directory.Patient, error)
}

// StaffDirectory resolves staff members for assignment role checks.
type StaffDirectory interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*directory.Staff, error)
}

// RoomLedger is the slice of the ward service admissions need to hold and
// free beds.
type RoomLedger interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*ward.Room, error)
	Reserve(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}
