package domain

// Turn resolution. These functions only read control-flow fields; they never
// move cards. The Game aggregate applies their results.

// PlayerByRank returns the player holding the given rank, or nil.
func PlayerByRank(players []*Player, rank int) *Player {
	for _, p := range players {
		if p.Rank == rank {
			return p
		}
	}
	return nil
}

// FindPlayer returns the player with the given id, or nil.
func FindPlayer(players []*Player, id string) *Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// NextPlayer returns the next player to act after the given player: ascending
// rank order with wraparound, skipping anyone who has passed or finished.
// Returns nil when no other eligible player remains.
func NextPlayer(players []*Player, fromID string) *Player {
	from := FindPlayer(players, fromID)
	if from == nil {
		return nil
	}
	n := len(players)
	for step := 1; step < n; step++ {
		rank := (from.Rank-1+step)%n + 1
		if p := PlayerByRank(players, rank); p != nil && p.IsActive() {
			return p
		}
	}
	return nil
}

// NextEligibleFromRank returns the first active player at or after the given
// rank, wrapping. Returns nil when nobody can act.
func NextEligibleFromRank(players []*Player, rank int) *Player {
	n := len(players)
	for step := 0; step < n; step++ {
		r := (rank-1+step)%n + 1
		if p := PlayerByRank(players, r); p != nil && p.IsActive() {
			return p
		}
	}
	return nil
}

// CountUnfinished returns how many players still hold cards this round.
func CountUnfinished(players []*Player) int {
	n := 0
	for _, p := range players {
		if !p.HasFinished {
			n++
		}
	}
	return n
}

// RoundComplete reports whether the current trick is over: a play is on the
// table and every player other than its owner has passed or finished.
func RoundComplete(players []*Player, lastPlay *LastPlay) bool {
	if lastPlay == nil {
		return false
	}
	for _, p := range players {
		if p.ID == lastPlay.PlayerID {
			continue
		}
		if p.IsActive() {
			return false
		}
	}
	return true
}

// TrickLeader returns who opens the next trick: the player who made the
// winning play if still in the round, otherwise the next eligible player in
// rank order after them.
func TrickLeader(players []*Player, lastPlay *LastPlay) *Player {
	if lastPlay == nil {
		return nil
	}
	winner := FindPlayer(players, lastPlay.PlayerID)
	if winner == nil {
		return nil
	}
	if !winner.HasFinished {
		return winner
	}
	return NextPlayer(players, winner.ID)
}
