package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"dalmuti/internal/domain"
	"dalmuti/internal/ports"

	"github.com/google/uuid"
)

// Validation errors raised before any game state is touched.
var (
	ErrInvalidRoomID   = errors.New("room id must not be empty")
	ErrInvalidPlayerID = errors.New("player id must be a valid uuid")
	ErrInvalidNickname = errors.New("nickname must not be empty")
)

// Service contains the game use-cases. Every method loads the aggregate,
// applies exactly one engine operation, persists the result and returns the
// events to dispatch. Callers serialize operations per room; the service
// itself holds no per-game state.
type Service struct {
	repo ports.GameRepository
	rng  *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(repo ports.GameRepository, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{repo: repo, rng: rng}
}

// CreateRoom creates an empty game for the given room id, generating one
// when the caller has none.
func (s *Service) CreateRoom(ctx context.Context, roomID string) (*domain.Game, error) {
	if roomID == "" {
		roomID = uuid.NewString()
	}
	game := domain.NewGame(roomID)
	if err := s.repo.Save(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// JoinRoom adds a player to a waiting room.
func (s *Service) JoinRoom(ctx context.Context, roomID, playerID, nickname string) ([]Event, error) {
	if err := validatePlayerID(playerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nickname) == "" {
		return nil, ErrInvalidNickname
	}
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.AddPlayer(playerID, nickname); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{PlayerID: playerID, Nickname: nickname},
	}}, nil
}

// LeaveRoom removes a player from a waiting room. When the last player
// leaves, the room itself is deleted as compensation.
func (s *Service) LeaveRoom(ctx context.Context, roomID, playerID string) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.RemovePlayer(playerID); err != nil {
		return nil, err
	}

	if len(game.Players) == 0 {
		if err := s.repo.Delete(ctx, roomID); err != nil {
			return nil, err
		}
	} else if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{PlayerID: playerID},
	}}, nil
}

// SetReady records a player's lobby readiness.
func (s *Service) SetReady(ctx context.Context, roomID, playerID string, ready bool) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.SetReady(playerID, ready); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventPlayerReady,
		Payload: PlayerReadyPayload{PlayerID: playerID, IsReady: ready},
	}}, nil
}

// StartGame begins role selection for a waiting room.
func (s *Service) StartGame(ctx context.Context, roomID string) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.Start(s.rng); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{PlayerCount: len(game.Players)},
	}}, nil
}

// SelectRole records a player's role draw. Completing the draw assigns
// ranks, partitions the deck and announces the card-selection turn order.
func (s *Service) SelectRole(ctx context.Context, roomID, playerID string, roleNumber int) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	allChosen, err := game.SelectRole(playerID, roleNumber)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventRoleSelected,
		Payload: RoleSelectedPayload{PlayerID: playerID, RoleNumber: roleNumber, AllChosen: allChosen},
	}}
	if allChosen {
		ranks := make([]RankAssignment, 0, len(game.Players))
		for _, p := range game.Players {
			ranks = append(ranks, RankAssignment{PlayerID: p.ID, Rank: p.Rank})
		}
		events = append(events, Event{
			Kind: EventRanksAssigned,
			Payload: RanksAssignedPayload{
				Ranks:           ranks,
				FirstTurnPlayer: game.CurrentTurn,
				DeckCount:       len(game.SelectableDecks),
			},
		})
	}
	return events, nil
}

// SelectDeck assigns a deck segment to the acting player. Hands are dealt
// privately; completing the selection emits either the revolution decision
// or the scheduled tax.
func (s *Service) SelectDeck(ctx context.Context, roomID, playerID string, deckIndex int) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}

	dealtBefore := dealtPlayers(game)
	if err := game.SelectDeck(playerID, deckIndex); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventDeckSelected,
		Payload: DeckSelectedPayload{PlayerID: playerID, DeckIndex: deckIndex, NextTurnPlayer: game.CurrentTurn},
	}}
	// Deal every newly assigned hand privately: the selector, plus the
	// auto-assigned final segment when this pick closed the selection.
	for _, p := range game.Players {
		if len(p.Hand) > 0 && !dealtBefore[p.ID] {
			events = append(events, Event{
				Kind:       EventHandDealt,
				Payload:    HandDealtPayload{PlayerID: p.ID, Hand: p.Hand},
				Recipients: []string{p.ID},
			})
		}
	}

	switch game.Phase {
	case domain.PhaseRevolution:
		events = append(events, Event{
			Kind:    EventRevolutionPending,
			Payload: RevolutionPendingPayload{PlayerID: game.CurrentTurn},
		})
	case domain.PhaseTax:
		events = append(events, Event{
			Kind:    EventTaxScheduled,
			Payload: TaxScheduledPayload{Exchanges: game.TaxExchanges, Round: game.Round},
		})
	}
	return events, nil
}

// ChooseRevolution resolves the double-joker holder's decision.
func (s *Service) ChooseRevolution(ctx context.Context, roomID, playerID string, wantRevolution bool) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.ChooseRevolution(playerID, wantRevolution); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventRevolutionResolved,
		Payload: RevolutionResolvedPayload{Status: *game.Revolution},
	}}
	switch game.Phase {
	case domain.PhaseTax:
		events = append(events, Event{
			Kind:    EventTaxScheduled,
			Payload: TaxScheduledPayload{Exchanges: game.TaxExchanges, Round: game.Round},
		})
	case domain.PhasePlaying:
		events = append(events, Event{
			Kind:    EventPlayStarted,
			Payload: PlayStartedPayload{FirstTurnPlayer: game.CurrentTurn},
		})
	}
	return events, nil
}

// AdvanceTax applies the scheduled exchanges and opens play. It is invoked
// by the external tax timer as well as directly; a game that already left
// the tax phase makes the call a no-op.
func (s *Service) AdvanceTax(ctx context.Context, roomID string) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}

	taxedRanks := map[int]bool{}
	for _, ex := range game.TaxExchanges {
		if !ex.Applied {
			taxedRanks[ex.GiverRank] = true
			taxedRanks[ex.ReceiverRank] = true
		}
	}

	if err := game.AdvanceToPlaying(); err != nil {
		if errors.Is(err, domain.ErrWrongPhase) {
			return nil, nil // stale timer
		}
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(taxedRanks)+1)
	for _, p := range game.Players {
		if taxedRanks[p.Rank] {
			events = append(events, Event{
				Kind:       EventHandDealt,
				Payload:    HandDealtPayload{PlayerID: p.ID, Hand: p.Hand},
				Recipients: []string{p.ID},
			})
		}
	}
	events = append(events, Event{
		Kind:    EventPlayStarted,
		Payload: PlayStartedPayload{FirstTurnPlayer: game.CurrentTurn},
	})
	return events, nil
}

// PlayCards validates and applies a play.
func (s *Service) PlayCards(ctx context.Context, roomID, playerID string, cards []domain.Card) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.PlayCards(playerID, cards); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	pl := domain.FindPlayer(game.Players, playerID)
	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			PlayerID:       playerID,
			Cards:          cards,
			Finished:       pl.HasFinished,
			NextTurnPlayer: game.CurrentTurn,
		},
	}}
	if game.Phase == domain.PhaseGameEnd {
		events = append(events, Event{
			Kind:    EventRoundEnded,
			Payload: RoundEndedPayload{FinishOrder: game.FinishedPlayers},
		})
	}
	return events, nil
}

// PassTurn marks a pass.
func (s *Service) PassTurn(ctx context.Context, roomID, playerID string) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := game.PassTurn(playerID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventTurnPassed,
		Payload: TurnPassedPayload{PlayerID: playerID, NextTurnPlayer: game.CurrentTurn},
	}}, nil
}

// Vote records one next-game vote. A completed unanimous tally restarts the
// game at role selection.
func (s *Service) Vote(ctx context.Context, roomID, playerID string, approve bool) ([]Event, error) {
	game, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	tallied, err := game.RegisterVote(playerID, approve, s.rng)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventVoteRegistered,
		Payload: VoteRegisteredPayload{PlayerID: playerID, Tallied: tallied},
	}}
	if tallied && game.Phase == domain.PhaseRoleSelection {
		events = append(events, Event{
			Kind:    EventNextRoundStarted,
			Payload: NextRoundStartedPayload{PlayerCount: len(game.Players)},
		})
	}
	return events, nil
}

func (s *Service) find(ctx context.Context, roomID string) (*domain.Game, error) {
	if roomID == "" {
		return nil, ErrInvalidRoomID
	}
	return s.repo.Find(ctx, roomID)
}

func validatePlayerID(id string) error {
	if uuid.Validate(id) != nil {
		return ErrInvalidPlayerID
	}
	return nil
}

func dealtPlayers(game *domain.Game) map[string]bool {
	dealt := make(map[string]bool, len(game.Players))
	for _, p := range game.Players {
		if len(p.Hand) > 0 {
			dealt[p.ID] = true
		}
	}
	return dealt
}
