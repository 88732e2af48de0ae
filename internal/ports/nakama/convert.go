package nakama

import (
	"errors"

	"dalmuti/internal/app"
	"dalmuti/internal/domain"
	"dalmuti/internal/ports"
)

// Client request payloads, JSON-encoded in match data messages.

type SelectRoleRequest struct {
	RoleNumber int `json:"roleNumber"`
}

type SelectDeckRequest struct {
	DeckIndex int `json:"deckIndex"`
}

type ChooseRevolutionRequest struct {
	WantRevolution bool `json:"wantRevolution"`
}

type PlayCardsRequest struct {
	Cards []CardMsg `json:"cards"`
}

type VoteRequest struct {
	Approve bool `json:"approve"`
}

type SetReadyRequest struct {
	Ready bool `json:"ready"`
}

// CardMsg is the wire form of a card. Rank 0 denotes a joker, matching the
// domain encoding.
type CardMsg struct {
	Rank int `json:"rank"`
}

func cardsFromWire(cards []CardMsg) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Card{Rank: c.Rank})
	}
	return out
}

// EventEnvelope wraps one app event for dispatch.
type EventEnvelope struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload"`
}

// ErrorMessage is the rejected-action feedback sent back to the actor.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorCode buckets engine failures into the codes the client reacts to.
func errorCode(err error) string {
	var inv *domain.InvariantError
	switch {
	case errors.As(err, &inv):
		return "internal"
	case errors.Is(err, ports.ErrGameNotFound), errors.Is(err, domain.ErrPlayerNotFound):
		return "not_found"
	case errors.Is(err, app.ErrInvalidRoomID),
		errors.Is(err, app.ErrInvalidPlayerID),
		errors.Is(err, app.ErrInvalidNickname),
		errors.Is(err, domain.ErrInvalidRoleNumber),
		errors.Is(err, domain.ErrInvalidDeckIndex),
		errors.Is(err, domain.ErrEmptyPlay):
		return "validation"
	default:
		return "rule_violation"
	}
}

// PlayerView is the public projection of a player: hands stay hidden, only
// their size is shared.
type PlayerView struct {
	PlayerID    string `json:"playerId"`
	Nickname    string `json:"nickname"`
	Rank        int    `json:"rank,omitempty"`
	HandCount   int    `json:"handCount"`
	IsReady     bool   `json:"isReady"`
	HasPassed   bool   `json:"hasPassed"`
	HasFinished bool   `json:"hasFinished"`
}

// GameStateView is the public snapshot broadcast after joins and round
// transitions.
type GameStateView struct {
	RoomID          string                   `json:"roomId"`
	Phase           domain.Phase             `json:"phase"`
	Round           int                      `json:"round"`
	CurrentTurn     string                   `json:"currentTurn,omitempty"`
	Players         []PlayerView             `json:"players"`
	RoleCards       []domain.RoleCard        `json:"roleCards,omitempty"`
	DeckSizes       []int                    `json:"deckSizes,omitempty"`
	DecksSelected   []bool                   `json:"decksSelected,omitempty"`
	LastPlay        *domain.LastPlay         `json:"lastPlay,omitempty"`
	FinishedPlayers []string                 `json:"finishedPlayers,omitempty"`
	Revolution      *domain.RevolutionStatus `json:"revolution,omitempty"`
	VotesCast       int                      `json:"votesCast"`
}

func gameToView(g *domain.Game) GameStateView {
	view := GameStateView{
		RoomID:          g.RoomID,
		Phase:           g.Phase,
		Round:           g.Round,
		CurrentTurn:     g.CurrentTurn,
		RoleCards:       g.RoleCards,
		LastPlay:        g.LastPlay,
		FinishedPlayers: g.FinishedPlayers,
		Revolution:      g.Revolution,
		VotesCast:       len(g.Votes),
	}
	for _, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			PlayerID:    p.ID,
			Nickname:    p.Nickname,
			Rank:        p.Rank,
			HandCount:   len(p.Hand),
			IsReady:     p.IsReady,
			HasPassed:   p.HasPassed,
			HasFinished: p.HasFinished,
		})
	}
	for i := range g.SelectableDecks {
		view.DeckSizes = append(view.DeckSizes, len(g.SelectableDecks[i].Cards))
		view.DecksSelected = append(view.DecksSelected, g.SelectableDecks[i].IsSelected)
	}
	return view
}
