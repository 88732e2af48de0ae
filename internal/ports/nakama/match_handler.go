package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"dalmuti/internal/app"
	"dalmuti/internal/config"
	"dalmuti/internal/domain"
	"dalmuti/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is advertised for room listing queries.
type MatchLabel struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the per-room runtime state of the match handler. The
// game aggregate itself lives in the repository; the handler only keeps the
// wiring and timer bookkeeping.
type MatchState struct {
	RoomID    string
	Presences map[string]runtime.Presence
	App       *app.Service
	Repo      ports.GameRepository
	Cfg       config.GameConfig

	Tick             int64
	TaxDeadlineTick  int64 // 0 = no tax timer armed
	TurnDeadlineTick int64 // 0 = no turn timer armed
	EmptySinceTick   int64 // 0 = someone is connected
}

type matchHandler struct{}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

const tickRate = 1 // ticks per second

// MatchInit creates the room aggregate and advertises an open lobby.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: using default game config: %v", err)
	}

	repo := NewNakamaGameRepository(nk)
	service := app.NewService(repo, nil)

	roomID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	game, err := service.CreateRoom(ctx, roomID)
	if err != nil {
		logger.Error("MatchInit: failed to create room: %v", err)
		return nil, 0, ""
	}

	state := &MatchState{
		RoomID:    game.RoomID,
		Presences: make(map[string]runtime.Presence),
		App:       service,
		Repo:      repo,
		Cfg:       config.GetGameConfig(),
	}

	labelBytes, err := json.Marshal(MatchLabel{Open: true, Game: "dalmuti", Phase: string(domain.PhaseWaiting)})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt admits players while the room is waiting and has a seat.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	game, err := matchState.Repo.Find(ctx, matchState.RoomID)
	if err != nil {
		logger.Error("MatchJoinAttempt: failed to load game: %v", err)
		return state, false, "room unavailable"
	}
	if game.Phase != domain.PhaseWaiting {
		return state, false, "game_in_progress"
	}
	if len(game.Players) >= domain.MaxPlayers {
		return state, false, "room_full"
	}
	return state, true, ""
}

// MatchJoin registers joined presences with the room.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		events, err := matchState.App.JoinRoom(ctx, matchState.RoomID, p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: join rejected for %s: %v", p.GetUserId(), err)
			continue
		}
		mh.dispatchEvents(matchState, dispatcher, logger, events)
	}
	matchState.EmptySinceTick = 0

	mh.updateLabel(ctx, matchState, dispatcher, logger)
	mh.broadcastSnapshot(ctx, matchState, dispatcher, logger)
	return matchState
}

// MatchLeave removes presences. Leaving an in-progress game keeps the
// player's seat so they can reconnect; leaving the lobby frees it, and an
// emptied lobby deletes the room.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		events, err := matchState.App.LeaveRoom(ctx, matchState.RoomID, p.GetUserId())
		if err != nil {
			// Mid-game leaves keep the seat; the phase guard tells us so.
			logger.Debug("MatchLeave: seat kept for %s: %v", p.GetUserId(), err)
			continue
		}
		mh.dispatchEvents(matchState, dispatcher, logger, events)
	}

	if len(matchState.Presences) == 0 {
		matchState.EmptySinceTick = tick
	}
	mh.updateLabel(ctx, matchState, dispatcher, logger)
	return matchState
}

// MatchLoop dispatches player commands and drives the tax auto-advance
// timer.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	if matchState.EmptySinceTick > 0 &&
		tick-matchState.EmptySinceTick >= int64(matchState.Cfg.EmptyRoomTimeoutSeconds)*tickRate {
		logger.Info("MatchLoop: terminating empty room %s", matchState.RoomID)
		if err := matchState.Repo.Delete(ctx, matchState.RoomID); err != nil {
			logger.Warn("MatchLoop: failed to delete room %s: %v", matchState.RoomID, err)
		}
		return nil
	}

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	if matchState.TaxDeadlineTick > 0 && tick >= matchState.TaxDeadlineTick {
		matchState.TaxDeadlineTick = 0
		events, err := matchState.App.AdvanceTax(ctx, matchState.RoomID)
		if err != nil {
			logger.Error("MatchLoop: tax timer failed for %s: %v", matchState.RoomID, err)
		} else if events != nil {
			mh.dispatchEvents(matchState, dispatcher, logger, events)
			mh.armTurnTimer(matchState, events)
			mh.broadcastSnapshot(ctx, matchState, dispatcher, logger)
		}
	}

	if matchState.TurnDeadlineTick > 0 && tick >= matchState.TurnDeadlineTick {
		matchState.TurnDeadlineTick = 0
		mh.forcePass(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// forcePass passes on behalf of the player whose turn timer expired.
func (mh *matchHandler) forcePass(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game, err := state.Repo.Find(ctx, state.RoomID)
	if err != nil {
		logger.Error("forcePass: failed to load game: %v", err)
		return
	}
	if game.Phase != domain.PhasePlaying || game.CurrentTurn == "" {
		return
	}

	events, err := state.App.PassTurn(ctx, state.RoomID, game.CurrentTurn)
	if err != nil {
		logger.Warn("forcePass: pass for %s rejected: %v", game.CurrentTurn, err)
		return
	}
	logger.Info("forcePass: auto-passed for %s in room %s", game.CurrentTurn, state.RoomID)
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.armTurnTimer(state, events)
	mh.broadcastSnapshot(ctx, state, dispatcher, logger)
}

// handleMessage decodes one client command, applies it and dispatches the
// results. Rejections go back to the sender only.
func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	var (
		events []app.Event
		err    error
	)

	switch msg.GetOpCode() {
	case OpStartGame:
		events, err = state.App.StartGame(ctx, state.RoomID)
	case OpSelectRole:
		var req SelectRoleRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.SelectRole(ctx, state.RoomID, userID, req.RoleNumber)
		}
	case OpSelectDeck:
		var req SelectDeckRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.SelectDeck(ctx, state.RoomID, userID, req.DeckIndex)
		}
	case OpChooseRevolution:
		var req ChooseRevolutionRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.ChooseRevolution(ctx, state.RoomID, userID, req.WantRevolution)
		}
	case OpPlayCards:
		var req PlayCardsRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.PlayCards(ctx, state.RoomID, userID, cardsFromWire(req.Cards))
		}
	case OpPassTurn:
		events, err = state.App.PassTurn(ctx, state.RoomID, userID)
	case OpVote:
		var req VoteRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.Vote(ctx, state.RoomID, userID, req.Approve)
		}
	case OpSetReady:
		var req SetReadyRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.SetReady(ctx, state.RoomID, userID, req.Ready)
		}
	default:
		logger.Warn("MatchLoop: unknown opcode %d from %s", msg.GetOpCode(), userID)
		return
	}

	if err != nil {
		mh.sendError(state, dispatcher, logger, userID, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.armTaxTimer(state, events)
	mh.armTurnTimer(state, events)
	mh.updateLabel(ctx, state, dispatcher, logger)
	mh.broadcastSnapshot(ctx, state, dispatcher, logger)
}

// armTaxTimer starts the tax countdown when exchanges were just scheduled
// and clears it once play begins.
func (mh *matchHandler) armTaxTimer(state *MatchState, events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventTaxScheduled:
			state.TaxDeadlineTick = state.Tick + int64(state.Cfg.TaxAdvanceDelaySeconds)*tickRate
		case app.EventPlayStarted:
			state.TaxDeadlineTick = 0
		}
	}
}

// armTurnTimer restarts the turn countdown whenever the turn moves and
// clears it once the trick game is over for the round.
func (mh *matchHandler) armTurnTimer(state *MatchState, events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventPlayStarted, app.EventCardPlayed, app.EventTurnPassed:
			state.TurnDeadlineTick = state.Tick + int64(state.Cfg.TurnDurationSeconds)*tickRate
		case app.EventRoundEnded:
			state.TurnDeadlineTick = 0
		}
	}
}

func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		payload, err := json.Marshal(EventEnvelope{Kind: ev.Kind, Payload: ev.Payload})
		if err != nil {
			logger.Error("dispatchEvents: failed to marshal %s: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, id := range ev.Recipients {
				if p, ok := state.Presences[id]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}
		if err := dispatcher.BroadcastMessage(OpEvent, payload, recipients, nil, true); err != nil {
			logger.Error("dispatchEvents: broadcast %s failed: %v", ev.Kind, err)
		}
	}
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	payload, err := json.Marshal(ErrorMessage{Code: errorCode(cause), Message: cause.Error()})
	if err != nil {
		logger.Error("sendError: failed to marshal: %v", err)
		return
	}
	p, ok := state.Presences[userID]
	if !ok {
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, payload, []runtime.Presence{p}, nil, true); err != nil {
		logger.Error("sendError: send to %s failed: %v", userID, err)
	}
}

func (mh *matchHandler) broadcastSnapshot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game, err := state.Repo.Find(ctx, state.RoomID)
	if err != nil {
		logger.Error("broadcastSnapshot: failed to load game: %v", err)
		return
	}
	payload, err := json.Marshal(gameToView(game))
	if err != nil {
		logger.Error("broadcastSnapshot: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameState, payload, nil, nil, true); err != nil {
		logger.Error("broadcastSnapshot: broadcast failed: %v", err)
	}
}

func (mh *matchHandler) updateLabel(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game, err := state.Repo.Find(ctx, state.RoomID)
	if err != nil {
		logger.Error("updateLabel: failed to load game: %v", err)
		return
	}
	label := MatchLabel{
		Open:  game.Phase == domain.PhaseWaiting && len(game.Players) < domain.MaxPlayers,
		Game:  "dalmuti",
		Phase: string(game.Phase),
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: update failed: %v", err)
	}
}

// MatchTerminate is called when the server shuts the match down.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	return state
}

// MatchSignal is unused.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
