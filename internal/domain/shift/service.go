package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrShiftNotFound = errors.New("shift not found")

type Service struct {
	repo  Repository
	staff StaffDirectory
}

func NewService(repo Repository, staff StaffDirectory) *Service {
	return &Service{repo: repo, staff: staff}
}

// Create rosters a shift. Times are HH:MM clock times and the start must
// precede the end; overnight shifts are entered as two rows.
func (s *Service) Create(ctx context.Context, sh *Shift) error {
	if sh.ShiftDate.IsZero() {
		return fmt.Errorf("shift_date is required")
	}
	start, err := parseClock(sh.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := parseClock(sh.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time %s must be before end_time %s", sh.StartTime, sh.EndTime)
	}
	if _, err := s.staff.GetStaff(ctx, sh.StaffID); err != nil {
		return fmt.Errorf("staff: %w", err)
	}
	return s.repo.Create(ctx, sh)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Shift, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*ShiftDetail, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*ShiftDetail, int, error) {
	if _, err := s.staff.GetStaff(ctx, staffID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByStaff(ctx, staffID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func parseClock(v string) (time.Time, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected HH:MM, got %q", v)
	}
	return t, nil
}
