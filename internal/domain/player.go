package domain

// Player holds the state of one participant in a game.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`

	// Role is the number drawn during role selection (0 until drawn).
	// Lower roles earn better ranks.
	Role int `json:"role,omitempty"`
	// Rank is the seating/precedence order for the round, 1 = best
	// (0 until assigned).
	Rank int `json:"rank,omitempty"`

	Hand []Card `json:"hand"`

	IsReady        bool `json:"isReady"`
	HasPassed      bool `json:"hasPassed"`
	HasFinished    bool `json:"hasFinished"`
	HasDoubleJoker bool `json:"hasDoubleJoker"`
}

// NewPlayer creates a player who has just joined a room.
func NewPlayer(id, nickname string) *Player {
	return &Player{ID: id, Nickname: nickname}
}

// IsActive reports whether the player can still act in the current trick.
func (p *Player) IsActive() bool {
	return !p.HasPassed && !p.HasFinished
}

// HoldsBothJokers reports whether the player's hand contains both jokers.
func (p *Player) HoldsBothJokers() bool {
	jokers := 0
	for _, c := range p.Hand {
		if c.IsJoker() {
			jokers++
		}
	}
	return jokers == JokerCount
}

// ResetForNextRound clears everything a passed next-game vote resets: hand,
// role, rank and all per-round flags.
func (p *Player) ResetForNextRound() {
	p.Role = 0
	p.Rank = 0
	p.Hand = nil
	p.IsReady = false
	p.HasPassed = false
	p.HasFinished = false
	p.HasDoubleJoker = false
}
