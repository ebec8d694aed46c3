package dispatch

import (
	"errors"

	"gobang-server/internal/protocol"
	"gobang-server/internal/room"

	"github.com/rs/zerolog/log"
)

var (
	errLoginRequired      = errors.New("login required")
	errAlreadyLoggedIn    = errors.New("already logged in")
	errAlreadyInRoom      = errors.New("already in a room")
	errInvalidRoomID      = errors.New("invalid room id")
	errMissingCoordinates = errors.New("missing coordinates")
	errInvalidCoordinates = errors.New("invalid coordinates")
	errInvalidResponse    = errors.New("response must be AGREE or REFUSE")
)

var connErrors = []error{
	errLoginRequired, errAlreadyLoggedIn, errAlreadyInRoom, errInvalidRoomID,
	errMissingCoordinates, errInvalidCoordinates, errInvalidResponse,
}

const internalErrorText = "internal server error"

func errorText(err error) string {
	if msg, ok := room.PublicMessage(err); ok {
		return msg
	}
	for _, known := range connErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	log.Error().Err(err).Msg("unmapped_dispatch_error")
	return internalErrorText
}

// reject answers the client with keyword and the text for err.
func (c *Conn) reject(keyword string, err error) {
	c.Send(protocol.Build(keyword, errorText(err)))
}
