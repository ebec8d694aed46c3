package room

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNoRooms      = errors.New("no rooms available")
	ErrNoRoomIDs    = errors.New("no room ids available")
	ErrNotInRoom    = errors.New("not in a room")
	ErrNameTaken    = errors.New("name already in use")
	ErrInvalidName  = errors.New("invalid name")

	ErrSeatsLocked    = errors.New("battle in progress, seats are locked")
	ErrBlackSeatTaken = errors.New("black seat is taken")
	ErrWhiteSeatTaken = errors.New("white seat is taken")

	ErrNotSeated        = errors.New("only seated players can invite")
	ErrSeatsNotFilled   = errors.New("both seats must be taken to start a battle")
	ErrBattleInProgress = errors.New("battle already in progress")
	ErrInvitePending    = errors.New("an invite is already pending")
	ErrNoPendingInvite  = errors.New("no pending invite")
	ErrNotInvitee       = errors.New("you are not the invited player")

	ErrBattleNotRunning = errors.New("battle has not started")
	ErrBattleOver       = errors.New("game is over")
	ErrSpectatorMove    = errors.New("spectators cannot move")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrInvalidPosition  = errors.New("position out of range")
	ErrCellOccupied     = errors.New("cell is occupied")

	errSessionClosed = errors.New("session_closed")
)

var publicErrors = []error{
	ErrRoomNotFound, ErrNoRooms, ErrNoRoomIDs, ErrNotInRoom, ErrNameTaken, ErrInvalidName,
	ErrSeatsLocked, ErrBlackSeatTaken, ErrWhiteSeatTaken,
	ErrNotSeated, ErrSeatsNotFilled, ErrBattleInProgress, ErrInvitePending, ErrNoPendingInvite, ErrNotInvitee,
	ErrBattleNotRunning, ErrBattleOver, ErrSpectatorMove, ErrNotYourTurn, ErrInvalidPosition, ErrCellOccupied,
}

// PublicMessage returns the text a client may see for err. Errors outside
// the room vocabulary are not exposed.
func PublicMessage(err error) (string, bool) {
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error(), true
		}
	}
	return "", false
}
