package surgery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSurgeryNotFound   = errors.New("surgery not found")
	ErrTypeNotFound      = errors.New("surgery type not found")
	ErrDuplicateTypeCode = errors.New("a surgery type with this code already exists")
	ErrNoChanges         = errors.New("no fields to update")
)

type Service struct {
	repo Repository
	dir  Directory
}

func NewService(repo Repository, dir Directory) *Service {
	return &Service{repo: repo, dir: dir}
}

// Book schedules a surgery. Only surgeons may operate; a physician who is
// not a surgeon is rejected.
func (s *Service) Book(ctx context.Context, sg *Surgery) error {
	if sg.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if _, err := s.dir.GetPatient(ctx, sg.PatientID); err != nil {
		return fmt.Errorf("patient: %w", err)
	}
	st, err := s.dir.GetStaff(ctx, sg.SurgeonID)
	if err != nil {
		return fmt.Errorf("surgeon: %w", err)
	}
	if !st.JobType.IsSurgeon() {
		return fmt.Errorf("surgeries must be performed by a surgeon, staff member is a %s", st.JobType)
	}
	if _, err := s.repo.GetType(ctx, sg.SurgeryTypeID); err != nil {
		return fmt.Errorf("surgery type: %w", err)
	}
	if sg.Status == "" {
		sg.Status = StatusScheduled
	}
	if !sg.Status.Valid() {
		return fmt.Errorf("invalid status: %s", sg.Status)
	}
	return s.repo.Create(ctx, sg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*SurgeryDetail, int, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("invalid status: %s", *f.Status)
	}
	return s.repo.Query(ctx, f, limit, offset)
}

// ListByRoomAndDay answers "which surgeries does the patient in this bed
// have on this day".
func (s *Service) ListByRoomAndDay(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*SurgeryDetail, error) {
	return s.repo.ListByRoomAndDay(ctx, roomID, day)
}

// Update applies a partial update; status changes (complete, cancel) go
// through here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd Update) (*Surgery, error) {
	if upd.IsEmpty() {
		return nil, ErrNoChanges
	}
	sg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ScheduledAt != nil {
		if upd.ScheduledAt.IsZero() {
			return nil, fmt.Errorf("scheduled_at cannot be zero")
		}
		sg.ScheduledAt = *upd.ScheduledAt
	}
	if upd.Theatre != nil {
		sg.Theatre = upd.Theatre
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", *upd.Status)
		}
		sg.Status = *upd.Status
	}
	if upd.Notes != nil {
		sg.Notes = upd.Notes
	}

	if err := s.repo.Update(ctx, sg); err != nil {
		return nil, err
	}
	return sg, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// -- Surgery types --

func (s *Service) CreateType(ctx context.Context, t *SurgeryType) error {
	if t.Code == "" || t.Name == "" {
		return fmt.Errorf("code and name are required")
	}
	if !t.Category.Valid() {
		return fmt.Errorf("category must be %s or %s, got %q",
			CategoryHospitalization, CategoryOutpatient, t.Category)
	}
	return s.repo.CreateType(ctx, t)
}

func (s *Service) GetType(ctx context.Context, id uuid.UUID) (*SurgeryType, error) {
	return s.repo.GetType(ctx, id)
}

func (s *Service) GetTypeByCode(ctx context.Context, code string) (*SurgeryType, error) {
	return s.repo.GetTypeByCode(ctx, code)
}

func (s *Service) ListTypes(ctx context.Context) ([]*SurgeryType, error) {
	return s.repo.ListTypes(ctx)
}
