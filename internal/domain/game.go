package domain

import "math/rand"

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseWaiting is the pre-game state where players can join.
	PhaseWaiting Phase = "waiting"
	// PhaseRoleSelection is where each player draws a role number.
	PhaseRoleSelection Phase = "roleSelection"
	// PhaseCardSelection is where players pick their deck segment in rank order.
	PhaseCardSelection Phase = "cardSelection"
	// PhaseRevolution is the double-joker holder's accept/decline decision.
	PhaseRevolution Phase = "revolution"
	// PhaseTax is the forced exchange between top and bottom ranks.
	PhaseTax Phase = "tax"
	// PhasePlaying is the trick-playing state.
	PhasePlaying Phase = "playing"
	// PhaseGameEnd is the post-round state gated by the next-game vote.
	PhaseGameEnd Phase = "gameEnd"
)

const (
	// MinPlayers and MaxPlayers bound the players per room.
	MinPlayers = 4
	MaxPlayers = 8
)

// LastPlay is the play currently on the table.
type LastPlay struct {
	PlayerID string `json:"playerId"`
	Cards    []Card `json:"cards"`
}

// SelectableDeck is one segment of the partitioned deck offered during card
// selection.
type SelectableDeck struct {
	Cards      []Card `json:"cards"`
	IsSelected bool   `json:"isSelected"`
	SelectedBy string `json:"selectedBy,omitempty"`
}

// RevolutionStatus records the outcome of a revolution decision.
type RevolutionStatus struct {
	IsRevolution      bool   `json:"isRevolution"`
	IsGreatRevolution bool   `json:"isGreatRevolution"`
	PlayerID          string `json:"playerId"`
}

// Game is the aggregate root: it exclusively owns all player and card state
// for one room and enforces every phase-gated rule. Operations are single
// synchronous transitions; callers serialize access per room and persist the
// aggregate after each call.
type Game struct {
	RoomID string `json:"roomId"`
	Phase  Phase  `json:"phase"`
	Round  int    `json:"round"`

	Players []*Player `json:"players"` // ordered by join

	Deck            []Card           `json:"deck,omitempty"`
	RoleCards       []RoleCard       `json:"roleCards,omitempty"`
	SelectableDecks []SelectableDeck `json:"selectableDecks,omitempty"`

	CurrentTurn string    `json:"currentTurn,omitempty"` // player id, "" = nobody
	LastPlay    *LastPlay `json:"lastPlay,omitempty"`

	TaxExchanges    []TaxExchange     `json:"taxExchanges,omitempty"`
	FinishedPlayers []string          `json:"finishedPlayers,omitempty"`
	Revolution      *RevolutionStatus `json:"revolution,omitempty"`
	Votes           map[string]bool   `json:"votes,omitempty"`
}

// NewGame creates an empty game in the waiting phase.
func NewGame(roomID string) *Game {
	return &Game{
		RoomID: roomID,
		Phase:  PhaseWaiting,
		Votes:  map[string]bool{},
	}
}

// AddPlayer registers a joining player. Valid only while waiting.
func (g *Game) AddPlayer(id, nickname string) error {
	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	if FindPlayer(g.Players, id) != nil {
		return ErrPlayerAlreadyJoined
	}
	if len(g.Players) >= MaxPlayers {
		return ErrGameFull
	}
	g.Players = append(g.Players, NewPlayer(id, nickname))
	return nil
}

// RemovePlayer removes a player from a waiting game. Join order of the
// remaining players is preserved.
func (g *Game) RemovePlayer(id string) error {
	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	for i, p := range g.Players {
		if p.ID == id {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// SetReady records a player's lobby readiness. Valid only while waiting;
// readiness is advertised to the room but does not gate Start.
func (g *Game) SetReady(playerID string, ready bool) error {
	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	pl := FindPlayer(g.Players, playerID)
	if pl == nil {
		return ErrPlayerNotFound
	}
	pl.IsReady = ready
	return nil
}

// Start shuffles a fresh deck, lays out the role-selection deck and moves to
// role selection. Valid only while waiting with 4..8 players.
func (g *Game) Start(rng *rand.Rand) error {
	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	if len(g.Players) < MinPlayers || len(g.Players) > MaxPlayers {
		return ErrInvalidPlayerCount
	}
	g.Deck = ShuffleDeck(NewStandardDeck(), rng)
	g.RoleCards = NewRoleDeck()
	g.Phase = PhaseRoleSelection
	return nil
}

// SelectRole records a player's role draw. Once every player holds a role,
// ranks are assigned by ascending role, the deck is partitioned and the game
// moves to card selection with the rank-1 player to act. Returns whether
// this call completed all selections.
func (g *Game) SelectRole(playerID string, roleNumber int) (bool, error) {
	if g.Phase != PhaseRoleSelection {
		return false, ErrWrongPhase
	}
	pl := FindPlayer(g.Players, playerID)
	if pl == nil {
		return false, ErrPlayerNotFound
	}
	if roleNumber < MinCardRank || roleNumber > MaxCardRank {
		return false, ErrInvalidRoleNumber
	}
	if pl.Role != 0 {
		return false, ErrRoleAlreadyChosen
	}
	card := &g.RoleCards[roleNumber-1]
	if card.IsSelected {
		return false, ErrRoleTaken
	}

	card.IsSelected = true
	card.SelectedBy = playerID
	pl.Role = roleNumber

	for _, p := range g.Players {
		if p.Role == 0 {
			return false, nil
		}
	}
	if err := g.resolveRoles(); err != nil {
		return false, err
	}
	return true, nil
}

// resolveRoles assigns ranks by ascending role, partitions the deck and
// enters card selection.
func (g *Game) resolveRoles() error {
	n := len(g.Players)
	rank := 1
	for role := MinCardRank; role <= MaxCardRank; role++ {
		for _, p := range g.Players {
			if p.Role == role {
				p.Rank = rank
				rank++
			}
		}
	}
	if err := g.checkRankPermutation(); err != nil {
		return err
	}

	segments, err := PartitionDeck(g.Deck, n)
	if err != nil {
		return err
	}
	g.SelectableDecks = make([]SelectableDeck, 0, n)
	for _, seg := range segments {
		g.SelectableDecks = append(g.SelectableDecks, SelectableDeck{Cards: seg})
	}
	g.Deck = nil
	if err := g.checkCardConservation(); err != nil {
		return err
	}

	g.Phase = PhaseCardSelection
	g.CurrentTurn = PlayerByRank(g.Players, 1).ID
	return nil
}

// SelectDeck assigns an unselected segment to the player whose turn it is
// and advances the turn in rank order. The final unchosen segment is
// auto-assigned. When all segments are taken the game moves to revolution
// (a player holds both jokers) or to tax.
func (g *Game) SelectDeck(playerID string, deckIndex int) error {
	if g.Phase != PhaseCardSelection {
		return ErrWrongPhase
	}
	pl := FindPlayer(g.Players, playerID)
	if pl == nil {
		return ErrPlayerNotFound
	}
	if g.CurrentTurn != playerID {
		return ErrNotYourTurn
	}
	if deckIndex < 0 || deckIndex >= len(g.SelectableDecks) {
		return ErrInvalidDeckIndex
	}
	if g.SelectableDecks[deckIndex].IsSelected {
		return ErrDeckTaken
	}

	g.assignDeck(deckIndex, pl)

	next := PlayerByRank(g.Players, pl.Rank+1)
	if next != nil && g.unselectedDeckCount() == 1 {
		// Last segment goes to the remaining player without their action.
		for i := range g.SelectableDecks {
			if !g.SelectableDecks[i].IsSelected {
				g.assignDeck(i, next)
				break
			}
		}
		next = nil
	}

	if next != nil {
		g.CurrentTurn = next.ID
		return nil
	}
	return g.finishCardSelection()
}

func (g *Game) assignDeck(deckIndex int, pl *Player) {
	deck := &g.SelectableDecks[deckIndex]
	deck.IsSelected = true
	deck.SelectedBy = pl.ID
	pl.Hand = make([]Card, len(deck.Cards))
	copy(pl.Hand, deck.Cards)
}

func (g *Game) unselectedDeckCount() int {
	n := 0
	for i := range g.SelectableDecks {
		if !g.SelectableDecks[i].IsSelected {
			n++
		}
	}
	return n
}

// finishCardSelection routes the game after every hand is dealt: a double
// joker triggers the revolution decision, otherwise tax exchanges are
// scheduled right away.
func (g *Game) finishCardSelection() error {
	if err := g.checkCardConservation(); err != nil {
		return err
	}
	for _, p := range g.Players {
		if p.HoldsBothJokers() {
			p.HasDoubleJoker = true
			g.Phase = PhaseRevolution
			g.CurrentTurn = p.ID
			return nil
		}
	}
	g.enterTax()
	return nil
}

// enterTax schedules the exchanges and begins the round. The tax -> playing
// transition itself is driven by AdvanceToPlaying, immediately or from an
// external timer.
func (g *Game) enterTax() {
	g.TaxExchanges = NewTaxExchanges(len(g.Players), DefaultTaxCardCount)
	g.Round++
	g.Phase = PhaseTax
	g.CurrentTurn = PlayerByRank(g.Players, 1).ID
}

// ChooseRevolution resolves the double-joker holder's decision. Declining
// falls through to the normal tax. Accepting skips tax and goes straight to
// playing; if the holder is the worst rank the whole rank order inverts
// (great revolution).
func (g *Game) ChooseRevolution(playerID string, wantRevolution bool) error {
	if g.Phase != PhaseRevolution {
		return ErrWrongPhase
	}
	pl := FindPlayer(g.Players, playerID)
	if pl == nil {
		return ErrPlayerNotFound
	}
	if !pl.HasDoubleJoker || g.CurrentTurn != playerID {
		return ErrNotRevolutionHolder
	}

	if !wantRevolution {
		g.Revolution = &RevolutionStatus{PlayerID: playerID}
		g.enterTax()
		return nil
	}

	n := len(g.Players)
	great := pl.Rank == n
	if great {
		for _, p := range g.Players {
			p.Rank = n + 1 - p.Rank
		}
		if err := g.checkRankPermutation(); err != nil {
			return err
		}
	}
	g.Revolution = &RevolutionStatus{
		IsRevolution:      true,
		IsGreatRevolution: great,
		PlayerID:          playerID,
	}
	g.Round++
	g.Phase = PhasePlaying
	g.CurrentTurn = PlayerByRank(g.Players, 1).ID
	return nil
}

// AdvanceToPlaying applies any pending tax exchanges and opens play with the
// rank-1 player. Valid only in the tax phase, which makes a stale timer
// trigger a phase-guard error the caller can ignore.
func (g *Game) AdvanceToPlaying() error {
	if g.Phase != PhaseTax {
		return ErrWrongPhase
	}
	for i := range g.TaxExchanges {
		ex := &g.TaxExchanges[i]
		if ex.Applied {
			continue
		}
		giver := PlayerByRank(g.Players, ex.GiverRank)
		receiver := PlayerByRank(g.Players, ex.ReceiverRank)
		if giver == nil || receiver == nil {
			return invariantf("tax pair %d/%d has no players", ex.GiverRank, ex.ReceiverRank)
		}
		if err := ApplyTaxExchange(*ex, giver, receiver); err != nil {
			return err
		}
		ex.Applied = true
	}
	if err := g.checkCardConservation(); err != nil {
		return err
	}
	g.Phase = PhasePlaying
	g.CurrentTurn = PlayerByRank(g.Players, 1).ID
	return nil
}

// PlayCards validates and applies a play: cards leave the hand, the play
// becomes the table play, an emptied hand marks the player finished, and the
// turn advances. Completing a trick starts a new one; a single remaining
// player ends the round.
func (g *Game) PlayCards(playerID string, cards []Card) error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	pl := FindPlayer(g.Players, playerID)
	if pl == nil {
		return ErrPlayerNotFound
	}
	var prev []Card
	if g.LastPlay != nil {
		prev = g.LastPlay.Cards
	}
	if err := ValidatePlay(pl, g.CurrentTurn == playerID, cards, prev); err != nil {
		return err
	}

	pl.Hand = RemoveCards(pl.Hand, cards)
	played := make([]Card, len(cards))
	copy(played, cards)
	SortHand(played)
	g.LastPlay = &LastPlay{PlayerID: playerID, Cards: played}

	if len(pl.Hand) == 0 {
		pl.HasFinished = true
		g.FinishedPlayers = append(g.FinishedPlayers, playerID)
	}

	g.advanceAfterAction(pl)
	return nil
}

// PassTurn marks the player passed for this trick and advances the turn.
func (g *Game) PassTurn(playerID string) error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	pl := FindPlayer(g.Players, playerID)
	if pl == nil {
		return ErrPlayerNotFound
	}
	if g.CurrentTurn != playerID {
		return ErrNotYourTurn
	}
	if pl.HasFinished {
		return ErrAlreadyFinished
	}
	if pl.HasPassed {
		return ErrAlreadyPassed
	}

	pl.HasPassed = true
	g.advanceAfterAction(pl)
	return nil
}

// advanceAfterAction moves control after a play or pass: end the round when
// one player is left, start a fresh trick when everyone else has yielded,
// otherwise hand the turn to the next eligible player.
func (g *Game) advanceAfterAction(actor *Player) {
	if CountUnfinished(g.Players) <= 1 {
		g.endRound()
		return
	}
	if RoundComplete(g.Players, g.LastPlay) {
		g.startNewTrick()
		return
	}
	if next := NextPlayer(g.Players, actor.ID); next != nil {
		g.CurrentTurn = next.ID
		return
	}
	// Everyone yielded with no play on the table; clear the passes and let
	// the actor lead the next trick.
	for _, p := range g.Players {
		p.HasPassed = false
	}
	g.CurrentTurn = actor.ID
}

// startNewTrick clears passes and the table play, then gives the lead to the
// trick winner (or the next eligible player when the winner is out).
func (g *Game) startNewTrick() {
	for _, p := range g.Players {
		p.HasPassed = false
	}
	winner := TrickLeader(g.Players, g.LastPlay)
	g.LastPlay = nil
	if winner == nil {
		winner = NextEligibleFromRank(g.Players, 1)
	}
	if winner != nil {
		g.CurrentTurn = winner.ID
	} else {
		g.CurrentTurn = ""
	}
}

// endRound closes the playing phase: the last player still holding cards is
// appended to the finish order and the next-game vote opens.
func (g *Game) endRound() {
	for _, p := range g.Players {
		if !p.HasFinished {
			p.HasFinished = true
			g.FinishedPlayers = append(g.FinishedPlayers, p.ID)
		}
	}
	g.Phase = PhaseGameEnd
	g.CurrentTurn = ""
	g.LastPlay = nil
	g.Votes = map[string]bool{}
}

// RegisterVote records one next-game vote. When the last vote arrives a
// unanimous yes restarts at role selection with fresh hands and ranks; any
// no leaves the game terminally ended. Returns whether the tally is
// complete.
func (g *Game) RegisterVote(playerID string, approve bool, rng *rand.Rand) (bool, error) {
	if g.Phase != PhaseGameEnd {
		return false, ErrWrongPhase
	}
	if FindPlayer(g.Players, playerID) == nil {
		return false, ErrPlayerNotFound
	}
	if g.Votes == nil {
		g.Votes = map[string]bool{}
	}
	if _, voted := g.Votes[playerID]; voted {
		return false, ErrAlreadyVoted
	}
	g.Votes[playerID] = approve

	if len(g.Votes) < len(g.Players) {
		return false, nil
	}
	for _, ok := range g.Votes {
		if !ok {
			return true, nil // terminal gameEnd
		}
	}
	g.restartRound(rng)
	return true, nil
}

// restartRound resets every player and deals a fresh round back at role
// selection. The round counter advances again once the new hands are final.
func (g *Game) restartRound(rng *rand.Rand) {
	for _, p := range g.Players {
		p.ResetForNextRound()
	}
	g.Deck = ShuffleDeck(NewStandardDeck(), rng)
	g.RoleCards = NewRoleDeck()
	g.SelectableDecks = nil
	g.TaxExchanges = nil
	g.FinishedPlayers = nil
	g.Revolution = nil
	g.LastPlay = nil
	g.Votes = map[string]bool{}
	g.CurrentTurn = ""
	g.Phase = PhaseRoleSelection
}

// checkRankPermutation verifies ranks form a permutation of 1..N.
func (g *Game) checkRankPermutation() error {
	seen := make(map[int]bool, len(g.Players))
	for _, p := range g.Players {
		if p.Rank < 1 || p.Rank > len(g.Players) || seen[p.Rank] {
			return invariantf("rank %d of player %s breaks the 1..%d permutation", p.Rank, p.ID, len(g.Players))
		}
		seen[p.Rank] = true
	}
	return nil
}

// checkCardConservation verifies that hands, the undealt deck and unselected
// segments still add up to the full 54 cards.
func (g *Game) checkCardConservation() error {
	total := len(g.Deck)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	for i := range g.SelectableDecks {
		if !g.SelectableDecks[i].IsSelected {
			total += len(g.SelectableDecks[i].Cards)
		}
	}
	if total != DeckSize {
		return invariantf("%d cards in circulation, want %d", total, DeckSize)
	}
	return nil
}
