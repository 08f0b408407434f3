package ward

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for rooms and beds.
type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context, limit, offset int) ([]*Room, int, error)
	ListAvailable(ctx context.Context, limit, offset int) ([]*Room, int, error)

	// Reserve atomically marks a free bed as occupied. It returns
	// ErrRoomUnavailable when the bed is already taken.
	Reserve(ctx context.Context, id uuid.UUID) error

	// Release marks a bed as free. Releasing an already-free bed is a no-op.
	Release(ctx context.Context, id uuid.UUID) error
}
