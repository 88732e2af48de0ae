package domain

import "sort"

// JokerRank is the rank value carried by the two joker cards. Jokers are
// wildcards: grouped with naturals they assume the group's rank, and a group
// made only of jokers outranks every natural group of the same size.
const JokerRank = 0

// Card is a single card in the Dalmuti deck: a numbered rank 1..13 or a joker.
type Card struct {
	Rank int `json:"rank"` // 1..13, or JokerRank for a joker
}

// Joker returns a joker card.
func Joker() Card {
	return Card{Rank: JokerRank}
}

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool {
	return c.Rank == JokerRank
}

// IsValidRank reports whether the card carries a legal rank value.
func (c Card) IsValidRank() bool {
	return c.Rank == JokerRank || (c.Rank >= MinCardRank && c.Rank <= MaxCardRank)
}

// sortValue orders a hand for display and partitioning: numeric rank
// ascending with jokers last.
func sortValue(c Card) int {
	if c.IsJoker() {
		return MaxCardRank + 1
	}
	return c.Rank
}

// taxValue orders cards by strength for tax transfers: jokers count as the
// best cards, then rank 1, rank 2, and so on.
func taxValue(c Card) int {
	if c.IsJoker() {
		return JokerRank
	}
	return c.Rank
}

// SortHand orders cards in place by ascending rank with jokers last.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return sortValue(cards[i]) < sortValue(cards[j])
	})
}

// CountCards tallies how many of each rank appear in the given cards.
func CountCards(cards []Card) map[int]int {
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// HandContains reports whether hand holds every proposed card in at least
// the proposed quantity.
func HandContains(hand []Card, proposed []Card) bool {
	have := CountCards(hand)
	for rank, n := range CountCards(proposed) {
		if have[rank] < n {
			return false
		}
	}
	return true
}

// RemoveCards removes the specified cards from a hand and returns the
// updated hand. Cards not present are ignored.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := CountCards(toRemove)
	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if n := removeCounts[card.Rank]; n > 0 {
			removeCounts[card.Rank] = n - 1
			continue
		}
		updated = append(updated, card)
	}
	return updated
}
