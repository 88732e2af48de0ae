package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the room-level tuning knobs. The rules themselves (deck
// composition, player bounds, tax pairing) live in the domain package; this
// only configures the timers and lobby behavior around them.
type GameConfig struct {
	// TaxAdvanceDelaySeconds is how long the tax phase waits before the
	// timer applies the exchanges and opens play.
	TaxAdvanceDelaySeconds int `json:"tax_advance_delay_seconds"`
	// TurnDurationSeconds bounds how long a player may sit on their turn.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// EmptyRoomTimeoutSeconds is how long an empty lobby lingers before the
	// match terminates.
	EmptyRoomTimeoutSeconds int `json:"empty_room_timeout_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, falling back to defaults
// when no file was loaded.
func GetGameConfig() GameConfig {
	out := GameConfig{
		TaxAdvanceDelaySeconds:  10,
		TurnDurationSeconds:     30,
		EmptyRoomTimeoutSeconds: 60,
	}
	if cfg == nil {
		return out
	}
	if cfg.TaxAdvanceDelaySeconds > 0 {
		out.TaxAdvanceDelaySeconds = cfg.TaxAdvanceDelaySeconds
	}
	if cfg.TurnDurationSeconds > 0 {
		out.TurnDurationSeconds = cfg.TurnDurationSeconds
	}
	if cfg.EmptyRoomTimeoutSeconds > 0 {
		out.EmptyRoomTimeoutSeconds = cfg.EmptyRoomTimeoutSeconds
	}
	return out
}
