package domain

import "sort"

// DefaultTaxCardCount is how many cards change hands in each tax pair.
const DefaultTaxCardCount = 2

// TaxExchange schedules one rank-paired transfer: the giver's best CardCount
// cards go to the receiver in exchange for the receiver's worst CardCount
// cards. The receiver is always the better-ranked side of the pair.
type TaxExchange struct {
	GiverRank    int  `json:"giverRank"`
	ReceiverRank int  `json:"receiverRank"`
	CardCount    int  `json:"cardCount"`
	Applied      bool `json:"applied"`
}

// NewTaxExchanges pairs players symmetrically around the rank order: rank 1
// with rank N, rank 2 with rank N-1, and so on, floor(N/2) pairs in total.
// With an odd player count the middle rank sits the tax out.
func NewTaxExchanges(playerCount, cardCount int) []TaxExchange {
	pairs := playerCount / 2
	exchanges := make([]TaxExchange, 0, pairs)
	for i := 1; i <= pairs; i++ {
		exchanges = append(exchanges, TaxExchange{
			GiverRank:    playerCount + 1 - i,
			ReceiverRank: i,
			CardCount:    cardCount,
		})
	}
	return exchanges
}

// BestCards returns the n strongest cards of a hand (jokers first, then
// ascending rank). The hand is not mutated.
func BestCards(hand []Card, n int) []Card {
	return pickByTaxValue(hand, n, false)
}

// WorstCards returns the n weakest cards of a hand (descending rank, jokers
// never chosen before naturals). The hand is not mutated.
func WorstCards(hand []Card, n int) []Card {
	return pickByTaxValue(hand, n, true)
}

func pickByTaxValue(hand []Card, n int, worst bool) []Card {
	sorted := make([]Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		if worst {
			return taxValue(sorted[i]) > taxValue(sorted[j])
		}
		return taxValue(sorted[i]) < taxValue(sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// ApplyTaxExchange moves the giver's best cards to the receiver and the
// receiver's worst cards back. Fails with ErrInsufficientCards when either
// side holds fewer cards than the exchange count; hands are untouched on
// failure.
func ApplyTaxExchange(ex TaxExchange, giver, receiver *Player) error {
	if len(giver.Hand) < ex.CardCount || len(receiver.Hand) < ex.CardCount {
		return ErrInsufficientCards
	}

	give := BestCards(giver.Hand, ex.CardCount)
	back := WorstCards(receiver.Hand, ex.CardCount)

	giver.Hand = append(RemoveCards(giver.Hand, give), back...)
	receiver.Hand = append(RemoveCards(receiver.Hand, back), give...)
	SortHand(giver.Hand)
	SortHand(receiver.Hand)
	return nil
}
