package ports

import (
	"context"
	"errors"

	"dalmuti/internal/domain"
)

// ErrGameNotFound is returned when no game exists for the requested room.
var ErrGameNotFound = errors.New("game not found")

// ErrVersionConflict is returned when an update races another writer. The
// engine assumes one mutation per room at a time; adapters surface lost
// races so the caller can reload and retry.
var ErrVersionConflict = errors.New("game was modified concurrently")

// GameRepository stores and retrieves game aggregates keyed by room id. It
// is invoked before and after each engine operation, never from within one.
type GameRepository interface {
	// Find loads the aggregate for a room. Returns ErrGameNotFound when the
	// room does not exist.
	Find(ctx context.Context, roomID string) (*domain.Game, error)

	// Save creates the aggregate for a new room.
	Save(ctx context.Context, game *domain.Game) error

	// Update persists a mutated aggregate.
	Update(ctx context.Context, game *domain.Game) error

	// Delete removes the aggregate, e.g. when the last player leaves.
	Delete(ctx context.Context, roomID string) error
}
