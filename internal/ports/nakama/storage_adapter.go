package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dalmuti/internal/domain"
	"dalmuti/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaGameRepository persists game aggregates in Nakama storage, one
// object per room. Writes carry the version read last, so a racing writer
// surfaces as ports.ErrVersionConflict instead of silently losing state.
type NakamaGameRepository struct {
	nk       runtime.NakamaModule
	versions map[string]string // roomID -> storage version of last read
}

// NewNakamaGameRepository creates a storage-backed game repository.
func NewNakamaGameRepository(nk runtime.NakamaModule) *NakamaGameRepository {
	return &NakamaGameRepository{nk: nk, versions: map[string]string{}}
}

// Find loads the aggregate for a room.
func (r *NakamaGameRepository) Find(ctx context.Context, roomID string) (*domain.Game, error) {
	objects, err := r.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: gameCollection, Key: roomID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read game %s: %w", roomID, err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrGameNotFound
	}

	var game domain.Game
	if err := json.Unmarshal([]byte(objects[0].Value), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %s: %w", roomID, err)
	}
	r.versions[roomID] = objects[0].Version
	return &game, nil
}

// Save creates the aggregate for a new room. Fails when the room already
// exists.
func (r *NakamaGameRepository) Save(ctx context.Context, game *domain.Game) error {
	return r.write(ctx, game, "*")
}

// Update persists a mutated aggregate against the version read last.
func (r *NakamaGameRepository) Update(ctx context.Context, game *domain.Game) error {
	return r.write(ctx, game, r.versions[game.RoomID])
}

func (r *NakamaGameRepository) write(ctx context.Context, game *domain.Game, version string) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", game.RoomID, err)
	}

	acks, err := r.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      gameCollection,
			Key:             game.RoomID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return ports.ErrVersionConflict
		}
		return fmt.Errorf("failed to write game %s: %w", game.RoomID, err)
	}
	if len(acks) == 1 {
		r.versions[game.RoomID] = acks[0].Version
	}
	return nil
}

// Delete removes the aggregate for a room.
func (r *NakamaGameRepository) Delete(ctx context.Context, roomID string) error {
	err := r.nk.StorageDelete(ctx, []*runtime.StorageDelete{
		{Collection: gameCollection, Key: roomID},
	})
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", roomID, err)
	}
	delete(r.versions, roomID)
	return nil
}

var _ ports.GameRepository = (*NakamaGameRepository)(nil)
