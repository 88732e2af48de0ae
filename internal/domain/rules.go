package domain

// Play legality. A legal play is a uniform group: every non-joker shares one
// rank and jokers substitute for that rank. A group made only of jokers is
// legal at any size and is the strongest group of that size.

// IsUniformGroup reports whether the cards form a single-rank group with
// optional joker wildcards.
func IsUniformGroup(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	rank := JokerRank
	for _, c := range cards {
		if c.IsJoker() {
			continue
		}
		if rank == JokerRank {
			rank = c.Rank
			continue
		}
		if c.Rank != rank {
			return false
		}
	}
	return true
}

// EffectiveRank returns the rank a uniform group plays at: the shared
// natural rank, or JokerRank for a pure-joker group. Lower is stronger, and
// JokerRank sits below every numbered rank.
func EffectiveRank(cards []Card) int {
	for _, c := range cards {
		if !c.IsJoker() {
			return c.Rank
		}
	}
	return JokerRank
}

// CanBeat reports whether newCards beat prevCards: same card count and a
// strictly stronger (numerically lower) effective rank.
func CanBeat(prevCards, newCards []Card) bool {
	if len(prevCards) != len(newCards) {
		return false
	}
	return EffectiveRank(newCards) < EffectiveRank(prevCards)
}

// ValidatePlay classifies the legality of a proposed play. It checks turn
// ownership, pass/finish state, card ownership, group shape and strength
// against the previous play (nil when the trick just opened). It never
// mutates anything; the caller removes cards and records the play.
func ValidatePlay(pl *Player, isCurrentTurn bool, proposed []Card, lastPlay []Card) error {
	if !isCurrentTurn {
		return ErrNotYourTurn
	}
	if pl.HasFinished {
		return ErrAlreadyFinished
	}
	if pl.HasPassed {
		return ErrAlreadyPassed
	}
	if len(proposed) == 0 {
		return ErrEmptyPlay
	}
	for _, c := range proposed {
		if !c.IsValidRank() {
			return ErrCardsNotOwned
		}
	}
	if !HandContains(pl.Hand, proposed) {
		return ErrCardsNotOwned
	}
	if !IsUniformGroup(proposed) {
		return ErrMixedGroup
	}
	if lastPlay == nil {
		// Opening a trick: any uniform group of any size stands.
		return nil
	}
	if len(proposed) != len(lastPlay) {
		return ErrCountMismatch
	}
	if !CanBeat(lastPlay, proposed) {
		return ErrTooWeak
	}
	return nil
}
