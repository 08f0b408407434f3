package inpatient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/ward"
)

var (
	ErrAdmissionNotFound = errors.New("admission not found")
	ErrAlreadyAdmitted   = errors.New("patient already has an active admission")
	ErrRoomUnavailable   = errors.New("bed is already occupied")
	ErrNotAdmitted       = errors.New("admission is already discharged")
	ErrRoleMismatch      = errors.New("staff member cannot fill this role")
	ErrSlotOccupied      = errors.New("assignment slot is already filled, remove the current staff member first")
)

type Service struct {
	repo     Repository
	patients PatientDirectory
	staff    StaffDirectory
	rooms    RoomLedger
}

func NewService(repo Repository, patients PatientDirectory, staff StaffDirectory, rooms RoomLedger) *Service {
	return &Service{repo: repo, patients: patients, staff: staff, rooms: rooms}
}

// Admit places a patient in a bed. Validation runs before any write; the
// admission row is inserted first and the bed reserved second, with a
// compensating delete if the reservation loses a race.
func (s *Service) Admit(ctx context.Context, req AdmitRequest) (*Admission, error) {
	if req.AdmissionDate.IsZero() {
		return nil, fmt.Errorf("admission_date is required")
	}
	if _, err := s.patients.GetPatient(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("patient: %w", err)
	}
	if _, err := s.repo.GetActiveByPatient(ctx, req.PatientID); err == nil {
		return nil, ErrAlreadyAdmitted
	} else if !errors.Is(err, ErrAdmissionNotFound) {
		return nil, err
	}
	room, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("room: %w", err)
	}
	if room.Occupied {
		return nil, ErrRoomUnavailable
	}
	if req.DoctorID != nil {
		if err := s.checkRole(ctx, *req.DoctorID, RoleDoctor); err != nil {
			return nil, err
		}
	}
	if req.NurseID != nil {
		if err := s.checkRole(ctx, *req.NurseID, RoleNurse); err != nil {
			return nil, err
		}
	}

	a := &Admission{
		PatientID:     req.PatientID,
		RoomID:        req.RoomID,
		AdmissionDate: req.AdmissionDate,
		DoctorID:      req.DoctorID,
		NurseID:       req.NurseID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := s.rooms.Reserve(ctx, req.RoomID); err != nil {
		// Lost the bed to a concurrent admit; undo our insert.
		if delErr := s.repo.Delete(ctx, a.ID); delErr != nil {
			return nil, fmt.Errorf("reserve failed (%w) and rollback failed: %v", err, delErr)
		}
		if errors.Is(err, ward.ErrRoomUnavailable) {
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}
	return a, nil
}

// Discharge ends an active admission and frees the bed. Discharging twice
// returns ErrNotAdmitted.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID, req DischargeRequest) (*Admission, error) {
	if req.DischargeDate.IsZero() {
		return nil, fmt.Errorf("discharge_date is required")
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Active() {
		// An earlier discharge may have closed the admission but failed to
		// free the bed. Release it again unless another admission holds the
		// room by now; Release is idempotent so a clean retry is harmless.
		if _, activeErr := s.repo.GetActiveByRoom(ctx, a.RoomID); errors.Is(activeErr, ErrAdmissionNotFound) {
			if relErr := s.rooms.Release(ctx, a.RoomID); relErr != nil {
				return nil, fmt.Errorf("admission already discharged but bed release failed: %w", relErr)
			}
		}
		return nil, ErrNotAdmitted
	}
	if req.DischargeDate.Before(a.AdmissionDate) {
		return nil, fmt.Errorf("discharge_date cannot precede the admission date")
	}

	a.DischargeDate = &req.DischargeDate
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	// A failure here leaves the bed flagged occupied with the admission
	// already closed; retrying the discharge re-releases it above.
	if err := s.rooms.Release(ctx, a.RoomID); err != nil {
		return nil, fmt.Errorf("admission discharged but bed release failed: %w", err)
	}
	return a, nil
}

// AssignStaff fills the doctor or nurse slot on an active admission. A
// filled slot must be cleared with RemoveStaff before a new assignment.
func (s *Service) AssignStaff(ctx context.Context, id uuid.UUID, req AssignRequest) (*Admission, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("role must be %s or %s, got %q", RoleDoctor, RoleNurse, req.Role)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Active() {
		return nil, ErrNotAdmitted
	}
	if err := s.checkRole(ctx, req.StaffID, req.Role); err != nil {
		return nil, err
	}

	switch req.Role {
	case RoleDoctor:
		if a.DoctorID != nil {
			return nil, ErrSlotOccupied
		}
		a.DoctorID = &req.StaffID
	case RoleNurse:
		if a.NurseID != nil {
			return nil, ErrSlotOccupied
		}
		a.NurseID = &req.StaffID
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveStaff clears the doctor or nurse slot. Clearing an empty slot is a
// no-op.
func (s *Service) RemoveStaff(ctx context.Context, id uuid.UUID, role StaffRole) (*Admission, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("role must be %s or %s, got %q", RoleDoctor, RoleNurse, role)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case RoleDoctor:
		a.DoctorID = nil
	case RoleNurse:
		a.NurseID = nil
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*AdmissionDetail, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListActive(ctx context.Context, limit, offset int) ([]*AdmissionDetail, int, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

// checkRole verifies the staff member exists and holds a job type compatible
// with the requested slot.
func (s *Service) checkRole(ctx context.Context, staffID uuid.UUID, role StaffRole) error {
	st, err := s.staff.GetStaff(ctx, staffID)
	if err != nil {
		return fmt.Errorf("%s: %w", role, err)
	}
	switch role {
	case RoleDoctor:
		if !st.JobType.IsDoctor() {
			return fmt.Errorf("%w: expected a physician or surgeon, staff member is a %s", ErrRoleMismatch, st.JobType)
		}
	case RoleNurse:
		if !st.JobType.IsNurse() {
			return fmt.Errorf("%w: expected a nurse, staff member is a %s", ErrRoleMismatch, st.JobType)
		}
	}
	return nil
}
