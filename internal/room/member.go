package room

import (
	"sync"

	"gobang-server/internal/game"
	"gobang-server/internal/protocol"
	"gobang-server/internal/store"
)

type Seat int

const (
	SeatNone Seat = iota
	SeatSpectator
	SeatBlack
	SeatWhite
)

func (s Seat) String() string {
	switch s {
	case SeatSpectator:
		return "spectator"
	case SeatBlack:
		return "black"
	case SeatWhite:
		return "white"
	default:
		return "none"
	}
}

// Role is the wire name sent in ROLE_CHANGE.
func (s Seat) Role() string {
	switch s {
	case SeatBlack:
		return protocol.RolePlayerBlack
	case SeatWhite:
		return protocol.RolePlayerWhite
	default:
		return protocol.RoleSpectator
	}
}

func (s Seat) Stone() game.Stone {
	switch s {
	case SeatBlack:
		return game.Black
	case SeatWhite:
		return game.White
	default:
		return game.Empty
	}
}

// Sender delivers one protocol line to a client. Implementations must not
// block; a false return means the line was dropped.
type Sender interface {
	Send(line string) bool
}

// Member is a logged-in client as the room layer sees it. Its session and
// seat change only while the owning Session holds its lock.
type Member struct {
	id   string
	name string
	out  Sender

	mu      sync.Mutex
	session *Session
	seat    Seat
}

func NewMember(name string, out Sender) *Member {
	return &Member{id: store.NewID(), name: name, out: out}
}

func (m *Member) ID() string   { return m.id }
func (m *Member) Name() string { return m.name }

func (m *Member) Send(line string) bool {
	if m.out == nil {
		return false
	}
	return m.out.Send(line)
}

func (m *Member) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *Member) Seat() Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seat
}

func (m *Member) setPlace(s *Session, seat Seat) {
	m.mu.Lock()
	m.session = s
	m.seat = seat
	m.mu.Unlock()
}
