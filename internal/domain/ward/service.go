package ward

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("bed is already occupied")
	ErrDuplicateBed    = errors.New("bed already exists in this room")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, r *Room) error {
	if r.NursingUnit < 1 || r.NursingUnit > 7 {
		return fmt.Errorf("nursing unit must be between 1 and 7, got %d", r.NursingUnit)
	}
	if !r.Wing.Valid() {
		return fmt.Errorf("wing must be %s or %s, got %q", WingBlue, WingGreen, r.Wing)
	}
	if r.RoomNumber < 1 {
		return fmt.Errorf("room number must be positive, got %d", r.RoomNumber)
	}
	if !r.BedLabel.Valid() {
		return fmt.Errorf("bed label must be %s or %s, got %q", BedA, BedB, r.BedLabel)
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListAvailable(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	return s.repo.ListAvailable(ctx, limit, offset)
}

// Reserve claims a free bed. It fails with ErrRoomUnavailable when the bed
// is occupied, letting concurrent admissions race safely.
func (s *Service) Reserve(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reserve(ctx, id)
}

// Release frees a bed. Calling it on an already-free bed has no effect.
func (s *Service) Release(ctx context.Context, id uuid.UUID) error {
	return s.repo.Release(ctx, id)
}
