package protocol

import (
	"strings"
)

const (
	Delimiter  = "|"
	MessageEnd = "\n"

	DefaultPort = 8888
)

// client -> server
const (
	Login            = "LOGIN"
	Move             = "MOVE"
	Chat             = "CHAT"
	Quit             = "QUIT"
	ReadyForNext     = "READY_FOR_NEXT"
	Spectate         = "SPECTATE"
	CreateRoom       = "CREATE_ROOM"
	QuickJoin        = "QUICK_JOIN"
	JoinRoomByID     = "JOIN_ROOM_BY_ID"
	GetRoomList      = "GET_ROOM_LIST"
	RequestRoomState = "REQUEST_ROOM_STATE"
	SitBlack         = "SIT_BLACK"
	SitWhite         = "SIT_WHITE"
	SitSpectator     = "SIT_SPECTATOR"
	BattleInvite     = "BATTLE_INVITE"
	BattleResponse   = "BATTLE_RESPONSE"
)

// server -> client
const (
	LoginSuccess       = "LOGIN_SUCCESS"
	LoginFail          = "LOGIN_FAIL"
	JoinRoom           = "JOIN_ROOM"
	MoveSuccess        = "MOVE_SUCCESS"
	MoveFail           = "MOVE_FAIL"
	GameOver           = "GAME_OVER"
	ChatMsg            = "CHAT_MSG"
	RoleChange         = "ROLE_CHANGE"
	Error              = "ERROR"
	System             = "SYSTEM"
	RoomCreated        = "ROOM_CREATED"
	RoomList           = "ROOM_LIST"
	SeatUpdate         = "SEAT_UPDATE"
	BattleInviteNotify = "BATTLE_INVITE_NOTIFY"
	BattleStart        = "BATTLE_START"
	BoardReset         = "BOARD_RESET"
)

// field values
const (
	ColorBlack = "BLACK"
	ColorWhite = "WHITE"
	ColorNone  = "NONE"

	RolePlayerBlack = "PLAYER_BLACK"
	RolePlayerWhite = "PLAYER_WHITE"
	RoleSpectator   = "SPECTATOR"

	Agree  = "AGREE"
	Refuse = "REFUSE"

	ReasonWin          = "WIN"
	ReasonDraw         = "DRAW"
	ReasonOpponentLeft = "OPPONENT_LEFT"

	EmptySeat  = "empty"
	SystemName = "SYSTEM"
)

// Build joins parts into one line without the trailing newline.
// Transports add the line terminator.
func Build(parts ...string) string {
	return strings.Join(parts, Delimiter)
}

// Parse splits one received line into fields. A trailing "\r\n" or "\n"
// is ignored; an empty line yields no fields.
func Parse(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, Delimiter)
	parts[0] = strings.TrimSpace(parts[0])
	return parts
}

// Rest rejoins parts[from:] with the delimiter, for free-text fields such
// as chat that may themselves contain it.
func Rest(parts []string, from int) string {
	if from >= len(parts) {
		return ""
	}
	return strings.Join(parts[from:], Delimiter)
}
