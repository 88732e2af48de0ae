package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"dalmuti/internal/domain"
	"dalmuti/internal/ports"
	"dalmuti/internal/ports/postgres"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// store-check verifies the Postgres game store: it opens the configured
// database, round-trips a throwaway aggregate and cleans up after itself.
func main() {
	envPath := os.Getenv("ENV_FILE")
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Overload(envPath); err != nil {
		slog.Warn("no env file loaded", "path", envPath, "error", err)
	}

	dsn := os.Getenv("DALMUTI_DB_DSN")
	db, err := postgres.Open(dsn)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	repo := postgres.NewRepo(db)
	roomID := uuid.NewString()

	game := domain.NewGame(roomID)
	if err := repo.Save(ctx, game); err != nil {
		slog.Error("save failed", "error", err, "room_id", roomID)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Delete(ctx, roomID); err != nil {
			slog.Warn("cleanup failed", "error", err, "room_id", roomID)
		}
	}()

	loaded, err := repo.Find(ctx, roomID)
	if err != nil {
		slog.Error("find failed", "error", err, "room_id", roomID)
		os.Exit(1)
	}
	if loaded.Phase != domain.PhaseWaiting {
		slog.Error("round-trip mismatch", "phase", loaded.Phase)
		os.Exit(1)
	}

	if err := repo.Delete(ctx, roomID); err != nil {
		slog.Error("delete failed", "error", err, "room_id", roomID)
		os.Exit(1)
	}
	if _, err := repo.Find(ctx, roomID); !errors.Is(err, ports.ErrGameNotFound) {
		slog.Error("deleted room still present", "error", err)
		os.Exit(1)
	}

	slog.Info("game store OK", "room_id", roomID)
}
