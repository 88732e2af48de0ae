package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func newWaitingGame(t *testing.T, n int) *Game {
	t.Helper()
	g := NewGame("room-1")
	for i := 1; i <= n; i++ {
		if err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("player %d", i)); err != nil {
			t.Fatalf("add player %d: %v", i, err)
		}
	}
	return g
}

// advanceToCardSelection starts the game, overrides the shuffled deck with
// the given arrangement and has player i draw role i, so player i ends up
// with rank i.
func advanceToCardSelection(t *testing.T, g *Game, deck []Card) {
	t.Helper()
	if err := g.Start(rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("start: %v", err)
	}
	g.Deck = deck
	for i, p := range g.Players {
		done, err := g.SelectRole(p.ID, i+1)
		if err != nil {
			t.Fatalf("select role for %s: %v", p.ID, err)
		}
		if wantDone := i == len(g.Players)-1; done != wantDone {
			t.Fatalf("select role completion = %v, want %v", done, wantDone)
		}
	}
	if g.Phase != PhaseCardSelection {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseCardSelection)
	}
}

// selectAllDecks lets each player take the segment matching their rank. The
// last segment is auto-assigned, so the worst rank never acts.
func selectAllDecks(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < len(g.Players)-1; i++ {
		actor := PlayerByRank(g.Players, i+1)
		if g.CurrentTurn != actor.ID {
			t.Fatalf("turn = %s, want %s", g.CurrentTurn, actor.ID)
		}
		if err := g.SelectDeck(actor.ID, i); err != nil {
			t.Fatalf("select deck %d: %v", i, err)
		}
	}
}

// deckWithSplitJokers arranges the deterministic deck so the two jokers land
// in different four-player segments.
func deckWithSplitJokers() []Card {
	d := NewStandardDeck()
	d[0], d[52] = d[52], d[0]
	return d
}

// deckWithJokersInSegment returns a deck whose jokers both land in the given
// four-player segment (0-based). The deterministic deck keeps its jokers at
// the tail, which is the last segment; moving them to the segment head
// relocates them.
func deckWithJokersInSegment(segment int) []Card {
	d := NewStandardDeck()
	if segment == 3 {
		return d
	}
	start := segment * 14
	d[start], d[52] = d[52], d[start]
	d[start+1], d[53] = d[53], d[start+1]
	return d
}

func TestSetReady(t *testing.T) {
	g := newWaitingGame(t, 4)

	if err := g.SetReady("ghost", true); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("unknown player: %v, want ErrPlayerNotFound", err)
	}
	if err := g.SetReady("p1", true); err != nil {
		t.Fatalf("set ready: %v", err)
	}
	if !g.Players[0].IsReady {
		t.Fatalf("p1 should be ready")
	}
	if err := g.SetReady("p1", false); err != nil {
		t.Fatalf("unset ready: %v", err)
	}
	if g.Players[0].IsReady {
		t.Fatalf("p1 should no longer be ready")
	}

	if err := g.Start(rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.SetReady("p1", true); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("ready after start: %v, want ErrWrongPhase", err)
	}
}

func TestStartRequiresFourToEightPlayers(t *testing.T) {
	g := newWaitingGame(t, 3)
	if err := g.Start(nil); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("start with 3 players: %v, want ErrInvalidPlayerCount", err)
	}

	g = newWaitingGame(t, 4)
	if err := g.Start(rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("start with 4 players: %v", err)
	}
	if g.Phase != PhaseRoleSelection {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseRoleSelection)
	}
	if len(g.Deck) != DeckSize || len(g.RoleCards) != 13 {
		t.Fatalf("deck=%d roleCards=%d, want 54 and 13", len(g.Deck), len(g.RoleCards))
	}
}

func TestAddPlayerRules(t *testing.T) {
	g := newWaitingGame(t, MaxPlayers)
	if err := g.AddPlayer("extra", "extra"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("overfull join: %v, want ErrGameFull", err)
	}
	if err := g.AddPlayer("p1", "again"); !errors.Is(err, ErrPlayerAlreadyJoined) {
		t.Fatalf("duplicate join: %v, want ErrPlayerAlreadyJoined", err)
	}

	if err := g.Start(rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.AddPlayer("late", "late"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("late join: %v, want ErrWrongPhase", err)
	}
}

func TestSelectRoleAssignsRankPermutation(t *testing.T) {
	g := newWaitingGame(t, 5)
	if err := g.Start(rand.New(rand.NewSource(2))); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Roles drawn out of order still rank by ascending role number.
	roles := map[string]int{"p1": 9, "p2": 2, "p3": 13, "p4": 5, "p5": 7}
	for id, role := range roles {
		if _, err := g.SelectRole(id, role); err != nil {
			t.Fatalf("select role %d for %s: %v", role, id, err)
		}
	}

	wantRanks := map[string]int{"p2": 1, "p4": 2, "p5": 3, "p1": 4, "p3": 5}
	seen := map[int]bool{}
	for _, p := range g.Players {
		if p.Rank != wantRanks[p.ID] {
			t.Fatalf("rank of %s = %d, want %d", p.ID, p.Rank, wantRanks[p.ID])
		}
		if seen[p.Rank] {
			t.Fatalf("duplicate rank %d", p.Rank)
		}
		seen[p.Rank] = true
	}
	if g.CurrentTurn != "p2" {
		t.Fatalf("turn = %s, want rank-1 player p2", g.CurrentTurn)
	}
	if len(g.SelectableDecks) != 5 {
		t.Fatalf("selectable decks = %d, want 5", len(g.SelectableDecks))
	}
}

func TestSelectRoleRejections(t *testing.T) {
	g := newWaitingGame(t, 4)
	if err := g.Start(rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := g.SelectRole("p1", 0); !errors.Is(err, ErrInvalidRoleNumber) {
		t.Fatalf("role 0: %v, want ErrInvalidRoleNumber", err)
	}
	if _, err := g.SelectRole("p1", 14); !errors.Is(err, ErrInvalidRoleNumber) {
		t.Fatalf("role 14: %v, want ErrInvalidRoleNumber", err)
	}
	if _, err := g.SelectRole("ghost", 4); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("unknown player: %v, want ErrPlayerNotFound", err)
	}
	if _, err := g.SelectRole("p1", 4); err != nil {
		t.Fatalf("first draw: %v", err)
	}
	if _, err := g.SelectRole("p2", 4); !errors.Is(err, ErrRoleTaken) {
		t.Fatalf("taken role: %v, want ErrRoleTaken", err)
	}
	if _, err := g.SelectRole("p1", 5); !errors.Is(err, ErrRoleAlreadyChosen) {
		t.Fatalf("second draw: %v, want ErrRoleAlreadyChosen", err)
	}
}

func TestEndToEndTaxFlow(t *testing.T) {
	g := newWaitingGame(t, 4)
	advanceToCardSelection(t, g, deckWithSplitJokers())

	if len(g.SelectableDecks) != 4 {
		t.Fatalf("selectable decks = %d, want 4", len(g.SelectableDecks))
	}
	selectAllDecks(t, g)

	// No player holds both jokers, so the game taxes immediately.
	if g.Phase != PhaseTax {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseTax)
	}
	if len(g.TaxExchanges) != 2 {
		t.Fatalf("tax exchanges = %d, want 2", len(g.TaxExchanges))
	}
	if g.Round != 1 {
		t.Fatalf("round = %d, want 1", g.Round)
	}
	for _, p := range g.Players {
		if len(p.Hand) == 0 {
			t.Fatalf("player %s has no hand after card selection", p.ID)
		}
	}
	// Rank 4's hand was auto-assigned.
	if worst := PlayerByRank(g.Players, 4); len(worst.Hand) != 13 {
		t.Fatalf("auto-assigned hand size = %d, want 13", len(worst.Hand))
	}

	if err := g.AdvanceToPlaying(); err != nil {
		t.Fatalf("advance to playing: %v", err)
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", g.Phase, PhasePlaying)
	}
	if g.CurrentTurn != PlayerByRank(g.Players, 1).ID {
		t.Fatalf("turn = %s, want rank-1 player", g.CurrentTurn)
	}
	for _, ex := range g.TaxExchanges {
		if !ex.Applied {
			t.Fatalf("exchange %+v not applied", ex)
		}
	}

	// A stale timer firing again is rejected by the phase guard.
	if err := g.AdvanceToPlaying(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("second advance: %v, want ErrWrongPhase", err)
	}
}

func TestSelectDeckRejections(t *testing.T) {
	g := newWaitingGame(t, 4)
	advanceToCardSelection(t, g, deckWithSplitJokers())

	rank2 := PlayerByRank(g.Players, 2)
	if err := g.SelectDeck(rank2.ID, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out of turn: %v, want ErrNotYourTurn", err)
	}

	rank1 := PlayerByRank(g.Players, 1)
	if err := g.SelectDeck(rank1.ID, 9); !errors.Is(err, ErrInvalidDeckIndex) {
		t.Fatalf("bad index: %v, want ErrInvalidDeckIndex", err)
	}
	if err := g.SelectDeck(rank1.ID, 0); err != nil {
		t.Fatalf("first select: %v", err)
	}
	if err := g.SelectDeck(rank2.ID, 0); !errors.Is(err, ErrDeckTaken) {
		t.Fatalf("taken deck: %v, want ErrDeckTaken", err)
	}
}

func TestGreatRevolution(t *testing.T) {
	g := newWaitingGame(t, 4)
	advanceToCardSelection(t, g, deckWithJokersInSegment(3))
	selectAllDecks(t, g)

	// The worst rank's auto-assigned segment holds both jokers.
	worst := PlayerByRank(g.Players, 4)
	if g.Phase != PhaseRevolution {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseRevolution)
	}
	if !worst.HasDoubleJoker || g.CurrentTurn != worst.ID {
		t.Fatalf("double-joker holder %s should hold the decision", worst.ID)
	}

	if err := g.ChooseRevolution(worst.ID, true); err != nil {
		t.Fatalf("choose revolution: %v", err)
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", g.Phase, PhasePlaying)
	}
	if g.Revolution == nil || !g.Revolution.IsRevolution || !g.Revolution.IsGreatRevolution {
		t.Fatalf("revolution status = %+v, want great revolution", g.Revolution)
	}
	if g.Revolution.PlayerID != worst.ID {
		t.Fatalf("revolution player = %s, want %s", g.Revolution.PlayerID, worst.ID)
	}
	// Ranks inverted: the old worst player now leads.
	if worst.Rank != 1 {
		t.Fatalf("old rank 4 now ranks %d, want 1", worst.Rank)
	}
	if g.CurrentTurn != worst.ID {
		t.Fatalf("turn = %s, want inverted rank-1 player %s", g.CurrentTurn, worst.ID)
	}
	if len(g.TaxExchanges) != 0 {
		t.Fatalf("revolution must skip tax, got %d exchanges", len(g.TaxExchanges))
	}
}

func TestRevolutionByBetterRankKeepsRanks(t *testing.T) {
	g := newWaitingGame(t, 4)
	advanceToCardSelection(t, g, deckWithJokersInSegment(0))

	best := PlayerByRank(g.Players, 1)
	if err := g.SelectDeck(best.ID, 0); err != nil {
		t.Fatalf("select deck: %v", err)
	}
	selectRemaining := []int{2, 3}
	for i, rank := range selectRemaining {
		actor := PlayerByRank(g.Players, rank)
		if err := g.SelectDeck(actor.ID, i+1); err != nil {
			t.Fatalf("select deck rank %d: %v", rank, err)
		}
	}

	if g.Phase != PhaseRevolution || g.CurrentTurn != best.ID {
		t.Fatalf("phase=%s turn=%s, want revolution decision for %s", g.Phase, g.CurrentTurn, best.ID)
	}
	if err := g.ChooseRevolution("p2", true); !errors.Is(err, ErrNotRevolutionHolder) {
		t.Fatalf("wrong chooser: %v, want ErrNotRevolutionHolder", err)
	}

	if err := g.ChooseRevolution(best.ID, true); err != nil {
		t.Fatalf("choose revolution: %v", err)
	}
	if g.Revolution.IsGreatRevolution {
		t.Fatalf("revolution by the best rank must not invert ranks")
	}
	if best.Rank != 1 {
		t.Fatalf("rank changed to %d, want 1", best.Rank)
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", g.Phase, PhasePlaying)
	}
}

func TestRevolutionDeclinedFallsBackToTax(t *testing.T) {
	g := newWaitingGame(t, 4)
	advanceToCardSelection(t, g, deckWithJokersInSegment(3))
	selectAllDecks(t, g)

	worst := PlayerByRank(g.Players, 4)
	if err := g.ChooseRevolution(worst.ID, false); err != nil {
		t.Fatalf("decline revolution: %v", err)
	}
	if g.Phase != PhaseTax {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseTax)
	}
	if g.Round != 1 {
		t.Fatalf("round = %d, want 1", g.Round)
	}
	if g.Revolution == nil || g.Revolution.IsRevolution {
		t.Fatalf("revolution status = %+v, want declined record", g.Revolution)
	}
	if len(g.TaxExchanges) != 2 {
		t.Fatalf("tax exchanges = %d, want 2", len(g.TaxExchanges))
	}
	if worst.Rank != 4 {
		t.Fatalf("rank changed to %d, want 4", worst.Rank)
	}
}

// playingGame builds a four-player game mid-round with small known hands.
func playingGame() *Game {
	g := NewGame("room-1")
	hands := [][]Card{
		{{Rank: 1}, {Rank: 4}},
		{{Rank: 2}, {Rank: 5}},
		{{Rank: 3}, {Rank: 6}},
		{{Rank: 7}, {Rank: 8}},
	}
	for i := 0; i < 4; i++ {
		g.Players = append(g.Players, &Player{
			ID:   fmt.Sprintf("p%d", i+1),
			Rank: i + 1,
			Hand: hands[i],
		})
	}
	g.Phase = PhasePlaying
	g.Round = 1
	g.CurrentTurn = "p1"
	return g
}

func TestPlayPassAndTrickCompletion(t *testing.T) {
	g := playingGame()

	if err := g.PlayCards("p1", []Card{{Rank: 4}}); err != nil {
		t.Fatalf("p1 plays: %v", err)
	}
	if g.LastPlay == nil || g.LastPlay.PlayerID != "p1" {
		t.Fatalf("last play = %+v, want p1's", g.LastPlay)
	}
	if g.CurrentTurn != "p2" {
		t.Fatalf("turn = %s, want p2", g.CurrentTurn)
	}

	if err := g.PlayCards("p2", []Card{{Rank: 2}}); err != nil {
		t.Fatalf("p2 beats: %v", err)
	}
	if err := g.PassTurn("p3"); err != nil {
		t.Fatalf("p3 passes: %v", err)
	}
	if err := g.PassTurn("p4"); err != nil {
		t.Fatalf("p4 passes: %v", err)
	}

	// All but p1 yielded; p1 must beat p2's rank 2 or pass.
	if g.CurrentTurn != "p1" {
		t.Fatalf("turn = %s, want p1", g.CurrentTurn)
	}
	if err := g.PassTurn("p1"); err != nil {
		t.Fatalf("p1 passes: %v", err)
	}

	// Trick over: p2 leads a fresh trick, passes cleared, table empty.
	if g.LastPlay != nil {
		t.Fatalf("last play = %+v, want cleared", g.LastPlay)
	}
	if g.CurrentTurn != "p2" {
		t.Fatalf("turn = %s, want trick winner p2", g.CurrentTurn)
	}
	for _, p := range g.Players {
		if p.HasPassed {
			t.Fatalf("player %s still marked passed", p.ID)
		}
	}
}

func TestAllPassOnEmptyTableActorKeepsLead(t *testing.T) {
	g := playingGame()

	// Nobody has played yet; everyone passes in turn.
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		if g.CurrentTurn != id {
			t.Fatalf("turn = %s, want %s", g.CurrentTurn, id)
		}
		if err := g.PassTurn(id); err != nil {
			t.Fatalf("%s passes: %v", id, err)
		}
	}

	// The last passer leads the fresh trick with all passes cleared.
	if g.CurrentTurn != "p4" {
		t.Fatalf("turn = %s, want last passer p4", g.CurrentTurn)
	}
	if g.LastPlay != nil {
		t.Fatalf("last play = %+v, want none", g.LastPlay)
	}
	for _, p := range g.Players {
		if p.HasPassed {
			t.Fatalf("player %s still marked passed", p.ID)
		}
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", g.Phase, PhasePlaying)
	}
}

func TestFinishingPlayerIsSkippedAndGameEnds(t *testing.T) {
	g := playingGame()
	g.Players[0].Hand = []Card{{Rank: 1}}

	if err := g.PlayCards("p1", []Card{{Rank: 1}}); err != nil {
		t.Fatalf("p1 plays out: %v", err)
	}
	if !g.Players[0].HasFinished {
		t.Fatalf("p1 should be finished")
	}
	if len(g.FinishedPlayers) != 1 || g.FinishedPlayers[0] != "p1" {
		t.Fatalf("finish order = %v, want [p1]", g.FinishedPlayers)
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, the round continues with three players", g.Phase)
	}

	// Everyone else passes; the trick ends and the lead skips finished p1.
	if err := g.PassTurn("p2"); err != nil {
		t.Fatalf("p2 passes: %v", err)
	}
	if err := g.PassTurn("p3"); err != nil {
		t.Fatalf("p3 passes: %v", err)
	}
	if err := g.PassTurn("p4"); err != nil {
		t.Fatalf("p4 passes: %v", err)
	}
	if g.CurrentTurn != "p2" {
		t.Fatalf("turn = %s, want p2 leading after finished winner", g.CurrentTurn)
	}

	// p2 and p3 empty their hands; one active player remains and the game ends.
	g.Players[1].Hand = []Card{{Rank: 2}, {Rank: 2}}
	g.Players[2].Hand = []Card{{Rank: 1}, {Rank: 1}}
	if err := g.PlayCards("p2", []Card{{Rank: 2}, {Rank: 2}}); err != nil {
		t.Fatalf("p2 plays out: %v", err)
	}
	if err := g.PlayCards("p3", []Card{{Rank: 1}, {Rank: 1}}); err != nil {
		t.Fatalf("p3 plays out: %v", err)
	}

	if g.Phase != PhaseGameEnd {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseGameEnd)
	}
	wantOrder := []string{"p1", "p2", "p3", "p4"}
	if len(g.FinishedPlayers) != 4 {
		t.Fatalf("finish order = %v, want all four players", g.FinishedPlayers)
	}
	for i, id := range wantOrder {
		if g.FinishedPlayers[i] != id {
			t.Fatalf("finish order = %v, want %v", g.FinishedPlayers, wantOrder)
		}
	}
	if g.CurrentTurn != "" {
		t.Fatalf("turn = %q, want nobody", g.CurrentTurn)
	}
}

func TestRegisterVote(t *testing.T) {
	g := playingGame()
	g.Phase = PhaseGameEnd
	g.CurrentTurn = ""
	g.Votes = map[string]bool{}
	g.Players[0].IsReady = true
	rng := rand.New(rand.NewSource(11))

	if _, err := g.RegisterVote("ghost", true, rng); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("unknown voter: %v, want ErrPlayerNotFound", err)
	}
	if done, err := g.RegisterVote("p1", true, rng); err != nil || done {
		t.Fatalf("first vote: done=%v err=%v", done, err)
	}
	if _, err := g.RegisterVote("p1", false, rng); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("double vote: %v, want ErrAlreadyVoted", err)
	}
	for _, id := range []string{"p2", "p3"} {
		if _, err := g.RegisterVote(id, true, rng); err != nil {
			t.Fatalf("vote %s: %v", id, err)
		}
	}
	done, err := g.RegisterVote("p4", true, rng)
	if err != nil || !done {
		t.Fatalf("final vote: done=%v err=%v", done, err)
	}

	// Unanimous yes restarts at role selection with everything reset.
	if g.Phase != PhaseRoleSelection {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseRoleSelection)
	}
	if len(g.Deck) != DeckSize || len(g.RoleCards) != 13 {
		t.Fatalf("fresh deal missing: deck=%d roles=%d", len(g.Deck), len(g.RoleCards))
	}
	for _, p := range g.Players {
		if p.Role != 0 || p.Rank != 0 || len(p.Hand) != 0 || p.IsReady || p.HasPassed || p.HasFinished || p.HasDoubleJoker {
			t.Fatalf("player %s not reset: %+v", p.ID, p)
		}
	}
	if g.LastPlay != nil || g.Revolution != nil || len(g.TaxExchanges) != 0 || len(g.FinishedPlayers) != 0 {
		t.Fatalf("per-round state not cleared")
	}
}

func TestRejectedVoteEndsGame(t *testing.T) {
	g := playingGame()
	g.Phase = PhaseGameEnd
	g.Votes = map[string]bool{}
	rng := rand.New(rand.NewSource(12))

	for _, id := range []string{"p1", "p2", "p3"} {
		if _, err := g.RegisterVote(id, true, rng); err != nil {
			t.Fatalf("vote %s: %v", id, err)
		}
	}
	done, err := g.RegisterVote("p4", false, rng)
	if err != nil || !done {
		t.Fatalf("final vote: done=%v err=%v", done, err)
	}
	if g.Phase != PhaseGameEnd {
		t.Fatalf("phase = %s, want terminal %s", g.Phase, PhaseGameEnd)
	}
}

func TestPhaseGuards(t *testing.T) {
	g := newWaitingGame(t, 4)

	if _, err := g.SelectRole("p1", 3); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("selectRole in waiting: %v", err)
	}
	if err := g.SelectDeck("p1", 0); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("selectDeck in waiting: %v", err)
	}
	if err := g.ChooseRevolution("p1", true); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("chooseRevolution in waiting: %v", err)
	}
	if err := g.PlayCards("p1", []Card{{Rank: 1}}); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("playCards in waiting: %v", err)
	}
	if err := g.PassTurn("p1"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("pass in waiting: %v", err)
	}
	if err := g.AdvanceToPlaying(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("advance in waiting: %v", err)
	}
	if _, err := g.RegisterVote("p1", true, nil); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("vote in waiting: %v", err)
	}
}
