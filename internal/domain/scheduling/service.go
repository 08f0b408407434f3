package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNoChanges           = errors.New("no fields to update")
)

type Service struct {
	repo Repository
	dir  Directory
}

func NewService(repo Repository, dir Directory) *Service {
	return &Service{repo: repo, dir: dir}
}

// Book creates an appointment. The provider must be a physician or surgeon.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if _, err := s.dir.GetPatient(ctx, a.PatientID); err != nil {
		return fmt.Errorf("patient: %w", err)
	}
	st, err := s.dir.GetStaff(ctx, a.ProviderID)
	if err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	if !st.JobType.IsDoctor() {
		return fmt.Errorf("provider must be a physician or surgeon, staff member is a %s", st.JobType)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !a.Status.Valid() {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*AppointmentDetail, int, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("invalid status: %s", *f.Status)
	}
	return s.repo.Query(ctx, f, limit, offset)
}

// Update applies a partial update. An update that sets nothing is rejected
// with ErrNoChanges.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd Update) (*Appointment, error) {
	if upd.IsEmpty() {
		return nil, ErrNoChanges
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ScheduledAt != nil {
		if upd.ScheduledAt.IsZero() {
			return nil, fmt.Errorf("scheduled_at cannot be zero")
		}
		a.ScheduledAt = *upd.ScheduledAt
	}
	if upd.Reason != nil {
		a.Reason = upd.Reason
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", *upd.Status)
		}
		a.Status = *upd.Status
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
