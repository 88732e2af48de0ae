package domain

import "math/rand"

const (
	// MinCardRank and MaxCardRank bound the numbered card ranks.
	MinCardRank = 1
	MaxCardRank = 13

	// CopiesPerRank is how many cards of each numbered rank the deck holds.
	CopiesPerRank = 4
	// JokerCount is how many jokers the deck holds.
	JokerCount = 2
	// DeckSize is the full deck: 13 ranks x 4 copies + 2 jokers.
	DeckSize = MaxCardRank*CopiesPerRank + JokerCount
)

// NewStandardDeck returns the 54-card Dalmuti deck in deterministic order:
// four of each rank 1..13 followed by the two jokers.
func NewStandardDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := MinCardRank; r <= MaxCardRank; r++ {
		for i := 0; i < CopiesPerRank; i++ {
			deck = append(deck, Card{Rank: r})
		}
	}
	for i := 0; i < JokerCount; i++ {
		deck = append(deck, Joker())
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck. The input is never
// mutated. A nil rng falls back to the global source.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng != nil {
		rng.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

// PartitionDeck splits a deck into playerCount contiguous segments. The
// first len(deck)%playerCount segments receive one extra card, and every
// segment is returned sorted. The input deck is not mutated.
func PartitionDeck(deck []Card, playerCount int) ([][]Card, error) {
	if playerCount < 1 {
		return nil, ErrInvalidPartition
	}

	base := len(deck) / playerCount
	extra := len(deck) % playerCount

	segments := make([][]Card, 0, playerCount)
	offset := 0
	for i := 0; i < playerCount; i++ {
		size := base
		if i < extra {
			size++
		}
		segment := make([]Card, size)
		copy(segment, deck[offset:offset+size])
		SortHand(segment)
		segments = append(segments, segment)
		offset += size
	}
	return segments, nil
}

// RoleCard is one entry of the role-selection deck.
type RoleCard struct {
	Number     int    `json:"number"`
	IsSelected bool   `json:"isSelected"`
	SelectedBy string `json:"selectedBy,omitempty"`
}

// NewRoleDeck returns the 13-card role-selection deck, numbers 1..13, all
// unselected. Thirteen cards are dealt regardless of player count; unused
// numbers simply stay unselected.
func NewRoleDeck() []RoleCard {
	deck := make([]RoleCard, 0, MaxCardRank)
	for n := MinCardRank; n <= MaxCardRank; n++ {
		deck = append(deck, RoleCard{Number: n})
	}
	return deck
}
