package nakama

const (
	// RpcFindRoomID is the Nakama RPC id clients call to find or create a
	// joinable room.
	RpcFindRoomID = "find_room"

	// MatchNameDalmuti is the authoritative match handler name registered
	// with Nakama.
	MatchNameDalmuti = "dalmuti_match"

	// gameCollection is the Nakama storage collection holding game
	// aggregates keyed by room id.
	gameCollection = "dalmuti_games"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame        int64 = 1
	OpSelectRole       int64 = 2
	OpSelectDeck       int64 = 3
	OpChooseRevolution int64 = 4
	OpPlayCards        int64 = 5
	OpPassTurn         int64 = 6
	OpVote             int64 = 7
	OpSetReady         int64 = 8

	// Server -> Client events
	OpEvent     int64 = 101 // enveloped app event
	OpGameState int64 = 102 // public state snapshot
	OpError     int64 = 103 // rejected action feedback
)
