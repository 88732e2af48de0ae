package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// RpcFindRoom searches for a room with an open seat and returns its match
// id, creating a fresh room when none is open.
//
// Payload: unused.
// Returns: the match id as a plain string.
func RpcFindRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	// label.open is maintained by the match handler: true only while the
	// room is waiting with a free seat.
	limit := 1
	authoritative := true
	labelQuery := "+label.open:true +label.game:dalmuti"
	minSize := 0
	maxSize := 8

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, labelQuery)
	if err != nil {
		logger.Error("RpcFindRoom [User:%s]: failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) > 0 {
		matchID := matches[0].MatchId
		logger.Info("RpcFindRoom [User:%s]: found open room %s", userID, matchID)
		return matchID, nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameDalmuti, nil)
	if err != nil {
		logger.Error("RpcFindRoom [User:%s]: failed to create room: %v", userID, err)
		return "", err
	}
	logger.Info("RpcFindRoom [User:%s]: created room %s", userID, matchID)
	return matchID, nil
}
