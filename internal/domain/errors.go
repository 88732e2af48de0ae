package domain

import (
	"errors"
	"fmt"
)

// Validation errors: malformed input, detectable before touching game state.
var (
	ErrInvalidRoleNumber = errors.New("role number out of range")
	ErrInvalidDeckIndex  = errors.New("deck index out of range")
	ErrEmptyPlay         = errors.New("play contains no cards")
	ErrInvalidPartition  = errors.New("partition requires at least one player")
)

// Not-found errors.
var (
	ErrPlayerNotFound = errors.New("player not found in game")
)

// Business-rule violations: legal input, illegal for the current phase, turn
// or ownership. Always recoverable by re-prompting the player.
var (
	ErrWrongPhase          = errors.New("operation not allowed in current phase")
	ErrInvalidPlayerCount  = errors.New("player count must be between 4 and 8")
	ErrPlayerAlreadyJoined = errors.New("player already joined")
	ErrGameFull            = errors.New("game already has the maximum number of players")
	ErrNotYourTurn         = errors.New("not this player's turn")
	ErrAlreadyPassed       = errors.New("player already passed this trick")
	ErrAlreadyFinished     = errors.New("player already finished this round")
	ErrRoleTaken           = errors.New("role number already selected")
	ErrRoleAlreadyChosen   = errors.New("player already selected a role")
	ErrDeckTaken           = errors.New("deck segment already selected")
	ErrCardsNotOwned       = errors.New("player does not own the proposed cards")
	ErrMixedGroup          = errors.New("cards do not form a single-rank group")
	ErrCountMismatch       = errors.New("play must match the previous play's card count")
	ErrTooWeak             = errors.New("play does not beat the previous play")
	ErrInsufficientCards   = errors.New("not enough cards to apply tax exchange")
	ErrNotRevolutionHolder = errors.New("player does not hold the revolution decision")
	ErrAlreadyVoted        = errors.New("player already voted")
)

// InvariantError signals internal state corruption (deck composition or rank
// permutation broken). It indicates an engine bug rather than user error and
// must be treated as fatal for the affected game only.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("game invariant violated: %s", e.Reason)
}

func invariantf(format string, args ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}
