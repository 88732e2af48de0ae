package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dalmuti/internal/domain"
	"dalmuti/internal/ports"

	_ "github.com/lib/pq"
)

// Repo persists game aggregates as JSONB documents keyed by room id, with a
// version column guarding against concurrent writers.
//
// Schema:
//
//	CREATE TABLE games (
//	    room_id    TEXT PRIMARY KEY,
//	    state      JSONB NOT NULL,
//	    version    BIGINT NOT NULL DEFAULT 1,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Repo struct {
	db       *sql.DB
	versions map[string]int64 // roomID -> version of last read
}

// NewRepo wires the repository to a SQL connection.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db, versions: map[string]int64{}}
}

// Open creates the Postgres connection and validates it with a ping.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres DSN is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		slog.Error("postgres ping failed", "error", err)
		return nil, err
	}
	return db, nil
}

// Find loads the aggregate for a room.
func (r *Repo) Find(ctx context.Context, roomID string) (*domain.Game, error) {
	const query = `
SELECT state, version
FROM games
WHERE room_id = $1`

	var (
		raw     []byte
		version int64
	)
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(&raw, &version)
	if err == sql.ErrNoRows {
		return nil, ports.ErrGameNotFound
	}
	if err != nil {
		slog.Error("failed to load game", "error", err, "room_id", roomID)
		return nil, err
	}

	var game domain.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %s: %w", roomID, err)
	}
	r.versions[roomID] = version
	return &game, nil
}

// Save creates the aggregate for a new room.
func (r *Repo) Save(ctx context.Context, game *domain.Game) error {
	raw, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", game.RoomID, err)
	}

	const query = `
INSERT INTO games (room_id, state, version, updated_at)
VALUES ($1, $2, 1, now())`

	if _, err := r.db.ExecContext(ctx, query, game.RoomID, raw); err != nil {
		slog.Error("failed to insert game", "error", err, "room_id", game.RoomID)
		return err
	}
	r.versions[game.RoomID] = 1
	return nil
}

// Update persists a mutated aggregate against the version read last, so a
// racing writer surfaces as ports.ErrVersionConflict.
func (r *Repo) Update(ctx context.Context, game *domain.Game) error {
	raw, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", game.RoomID, err)
	}

	const query = `
UPDATE games
SET state = $2, version = version + 1, updated_at = now()
WHERE room_id = $1 AND version = $3`

	version := r.versions[game.RoomID]
	res, err := r.db.ExecContext(ctx, query, game.RoomID, raw, version)
	if err != nil {
		slog.Error("failed to update game", "error", err, "room_id", game.RoomID)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, findErr := r.Find(ctx, game.RoomID); errors.Is(findErr, ports.ErrGameNotFound) {
			return ports.ErrGameNotFound
		}
		return ports.ErrVersionConflict
	}
	r.versions[game.RoomID] = version + 1
	return nil
}

// Delete removes the aggregate for a room.
func (r *Repo) Delete(ctx context.Context, roomID string) error {
	const query = `DELETE FROM games WHERE room_id = $1`
	if _, err := r.db.ExecContext(ctx, query, roomID); err != nil {
		slog.Error("failed to delete game", "error", err, "room_id", roomID)
		return err
	}
	delete(r.versions, roomID)
	return nil
}

var _ ports.GameRepository = (*Repo)(nil)
