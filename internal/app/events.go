package app

import "dalmuti/internal/domain"

// EventKind identifies emitted game events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined       EventKind = "player_joined"
	EventPlayerLeft         EventKind = "player_left"
	EventPlayerReady        EventKind = "player_ready"
	EventGameStarted        EventKind = "game_started"
	EventRoleSelected       EventKind = "role_selected"
	EventRanksAssigned      EventKind = "ranks_assigned"
	EventHandDealt          EventKind = "hand_dealt"
	EventDeckSelected       EventKind = "deck_selected"
	EventRevolutionPending  EventKind = "revolution_pending"
	EventRevolutionResolved EventKind = "revolution_resolved"
	EventTaxScheduled       EventKind = "tax_scheduled"
	EventPlayStarted        EventKind = "play_started"
	EventCardPlayed         EventKind = "card_played"
	EventTurnPassed         EventKind = "turn_passed"
	EventRoundEnded         EventKind = "round_ended"
	EventVoteRegistered     EventKind = "vote_registered"
	EventNextRoundStarted   EventKind = "next_round_started"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player ids; empty means broadcast
}

type PlayerJoinedPayload struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"playerId"`
	IsReady  bool   `json:"isReady"`
}

type GameStartedPayload struct {
	PlayerCount int `json:"playerCount"`
}

type RoleSelectedPayload struct {
	PlayerID   string `json:"playerId"`
	RoleNumber int    `json:"roleNumber"`
	AllChosen  bool   `json:"allChosen"`
}

type RankAssignment struct {
	PlayerID string `json:"playerId"`
	Rank     int    `json:"rank"`
}

type RanksAssignedPayload struct {
	Ranks           []RankAssignment `json:"ranks"`
	FirstTurnPlayer string           `json:"firstTurnPlayer"`
	DeckCount       int              `json:"deckCount"`
}

type HandDealtPayload struct {
	PlayerID string        `json:"playerId"`
	Hand     []domain.Card `json:"hand"`
}

type DeckSelectedPayload struct {
	PlayerID       string `json:"playerId"`
	DeckIndex      int    `json:"deckIndex"`
	NextTurnPlayer string `json:"nextTurnPlayer,omitempty"`
}

type RevolutionPendingPayload struct {
	PlayerID string `json:"playerId"`
}

type RevolutionResolvedPayload struct {
	Status domain.RevolutionStatus `json:"status"`
}

type TaxScheduledPayload struct {
	Exchanges []domain.TaxExchange `json:"exchanges"`
	Round     int                  `json:"round"`
}

type PlayStartedPayload struct {
	FirstTurnPlayer string `json:"firstTurnPlayer"`
}

type CardPlayedPayload struct {
	PlayerID       string        `json:"playerId"`
	Cards          []domain.Card `json:"cards"`
	Finished       bool          `json:"finished"`
	NextTurnPlayer string        `json:"nextTurnPlayer,omitempty"`
}

type TurnPassedPayload struct {
	PlayerID       string `json:"playerId"`
	NextTurnPlayer string `json:"nextTurnPlayer,omitempty"`
}

type RoundEndedPayload struct {
	FinishOrder []string `json:"finishOrder"`
}

type VoteRegisteredPayload struct {
	PlayerID string `json:"playerId"`
	Tallied  bool   `json:"tallied"`
}

type NextRoundStartedPayload struct {
	PlayerCount int `json:"playerCount"`
}
