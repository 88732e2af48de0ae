package domain

import "testing"

func rankedPlayers(n int) []*Player {
	players := make([]*Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, &Player{ID: playerID(i), Rank: i})
	}
	return players
}

func playerID(rank int) string {
	return string(rune('a' + rank - 1))
}

func TestNextPlayerVisitsActivePlayersInRankOrder(t *testing.T) {
	players := rankedPlayers(4)
	players[1].HasPassed = true   // rank 2
	players[2].HasFinished = true // rank 3

	next := NextPlayer(players, playerID(1))
	if next == nil || next.Rank != 4 {
		t.Fatalf("next after rank 1 = %+v, want rank 4", next)
	}
	next = NextPlayer(players, playerID(4))
	if next == nil || next.Rank != 1 {
		t.Fatalf("next after rank 4 = %+v, want rank 1 (wraparound)", next)
	}
}

func TestNextPlayerReturnsNilWhenNobodyEligible(t *testing.T) {
	players := rankedPlayers(4)
	for _, p := range players[1:] {
		p.HasPassed = true
	}
	if next := NextPlayer(players, playerID(1)); next != nil {
		t.Fatalf("next = %+v, want nil", next)
	}
}

func TestNextPlayerCyclesEveryActivePlayerOnce(t *testing.T) {
	players := rankedPlayers(5)
	players[2].HasFinished = true // rank 3 out

	seen := map[string]bool{}
	current := playerID(1)
	for i := 0; i < 4; i++ {
		next := NextPlayer(players, current)
		if next == nil {
			t.Fatalf("unexpected nil after %s", current)
		}
		if next.HasPassed || next.HasFinished {
			t.Fatalf("next returned ineligible player %s", next.ID)
		}
		current = next.ID
		seen[current] = true
	}
	// ranks 2, 4, 5 then back to 1
	for _, r := range []int{1, 2, 4, 5} {
		if !seen[playerID(r)] {
			t.Fatalf("rank %d never visited", r)
		}
	}
}

func TestRoundComplete(t *testing.T) {
	players := rankedPlayers(4)
	last := &LastPlay{PlayerID: playerID(2), Cards: []Card{{Rank: 5}}}

	if RoundComplete(players, last) {
		t.Fatalf("round complete with three active opponents")
	}
	players[0].HasPassed = true
	players[2].HasPassed = true
	players[3].HasFinished = true
	if !RoundComplete(players, last) {
		t.Fatalf("round should be complete when all but the leader yielded")
	}
	if RoundComplete(players, nil) {
		t.Fatalf("round cannot complete without a play on the table")
	}
}

func TestTrickLeader(t *testing.T) {
	players := rankedPlayers(4)
	last := &LastPlay{PlayerID: playerID(2), Cards: []Card{{Rank: 5}}}

	if leader := TrickLeader(players, last); leader == nil || leader.Rank != 2 {
		t.Fatalf("leader = %+v, want active winner rank 2", leader)
	}

	// A finished winner hands the lead to the next eligible rank.
	players[1].HasFinished = true
	if leader := TrickLeader(players, last); leader == nil || leader.Rank != 3 {
		t.Fatalf("leader = %+v, want rank 3 after winner finished", leader)
	}
}
