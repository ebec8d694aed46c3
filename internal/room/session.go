package room

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"gobang-server/internal/game"
	"gobang-server/internal/protocol"
	"gobang-server/internal/store"
)

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInviteOffered
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseInviteOffered:
		return "invite_offered"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "not_started"
	}
}

// Recorder receives finished battles. Record is called with the session
// lock held and must not block.
type Recorder interface {
	Record(rec store.BattleRecord)
}

type RoomInfo struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	Phase      string   `json:"phase"`
	Occupants  int      `json:"occupants"`
	Black      string   `json:"black,omitempty"`
	White      string   `json:"white,omitempty"`
	Spectators []string `json:"spectators"`
}

// Session is one room: two seats, a spectator pool, a board and the battle
// state machine. All exported methods are safe for concurrent use.
type Session struct {
	id       string
	recorder Recorder
	now      func() time.Time

	mu         sync.Mutex
	board      *game.Board
	black      *Member
	white      *Member
	spectators []*Member
	phase      Phase
	inviter    *Member
	turn       game.Stone
	battle     battleLog
	// reviewable is set from game over until the next battle starts; the
	// finished board stays on show for that long, whatever the phase.
	reviewable bool
	closed     bool
}

type battleLog struct {
	id        string
	blackName string
	whiteName string
	startedAt time.Time
	moves     []store.BattleMove
}

// newSession seats creator as the only spectator. The session is not yet
// shared, so no lock is taken.
func newSession(id string, creator *Member, recorder Recorder) *Session {
	s := &Session{
		id:         id,
		recorder:   recorder,
		now:        time.Now,
		board:      game.NewBoard(),
		spectators: []*Member{creator},
	}
	creator.setPlace(s, SeatSpectator)
	return s
}

func (s *Session) ID() string { return s.id }

// AddMember admits m as a spectator and tells it the current seats.
func (s *Session) AddMember(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSessionClosed
	}
	s.spectators = append(s.spectators, m)
	m.setPlace(s, SeatSpectator)

	m.Send(protocol.Build(protocol.JoinRoom, s.id, seatName(s.black), seatName(s.white)))
	s.broadcastExcept(s.seatUpdateLocked(), m)
	s.broadcastSystem(m.name + " joined the room")
	return nil
}

// RemoveMember takes m out of the room. A seated player leaving a running
// battle forfeits it.
func (s *Session) RemoveMember(m *Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return
	}
	seat := m.Seat()
	s.vacateLocked(m, seat)
	m.setPlace(nil, SeatNone)
	if seat == SeatSpectator {
		s.broadcastSystem(m.name + " left the room")
	}
	s.broadcast(s.seatUpdateLocked())
}

// vacateLocked clears m from seat. Leaving a player seat cancels a pending
// invite or forfeits a running battle.
func (s *Session) vacateLocked(m *Member, seat Seat) {
	switch seat {
	case SeatSpectator:
		s.removeSpectatorLocked(m)
		return
	case SeatBlack:
		s.black = nil
	case SeatWhite:
		s.white = nil
	default:
		return
	}
	switch s.phase {
	case PhaseInviteOffered:
		s.cancelInviteLocked(m.name + " left the " + seat.String() + " seat, the invite was cancelled")
	case PhaseRunning:
		s.endBattleLocked(seat.Stone().Opponent(), protocol.ReasonOpponentLeft)
	}
	s.broadcastSystem(m.name + " left the " + seat.String() + " seat")
}

func (s *Session) removeSpectatorLocked(m *Member) {
	for i, sp := range s.spectators {
		if sp == m {
			s.spectators = append(s.spectators[:i], s.spectators[i+1:]...)
			return
		}
	}
}

// Chat broadcasts text from m. Empty text is ignored.
func (s *Session) Chat(m *Member, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return ErrNotInRoom
	}
	if text == "" {
		return nil
	}
	s.broadcast(protocol.Build(protocol.ChatMsg, m.name, s.now().Format("15:04:05"), text))
	metricChatMessagesTotal.Add(1)
	return nil
}

// SendState replays the seats, and the board when a battle has been
// played, to m alone.
func (s *Session) SendState(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return ErrNotInRoom
	}
	m.Send(s.seatUpdateLocked())
	if s.phase == PhaseRunning {
		m.Send(protocol.BattleStart)
	}
	if s.phase == PhaseRunning || s.reviewable {
		for _, p := range s.board.Stones() {
			m.Send(protocol.Build(protocol.MoveSuccess, strconv.Itoa(p.X), strconv.Itoa(p.Y), p.Stone.String(), protocol.SystemName))
		}
	}
	return nil
}

func (s *Session) Info() RoomInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := RoomInfo{
		ID:         s.id,
		Status:     s.statusLocked(),
		Phase:      s.phase.String(),
		Occupants:  s.occupantsLocked(),
		Spectators: make([]string, 0, len(s.spectators)),
	}
	if s.black != nil {
		info.Black = s.black.name
	}
	if s.white != nil {
		info.White = s.white.name
	}
	for _, sp := range s.spectators {
		info.Spectators = append(info.Spectators, sp.name)
	}
	return info
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Board returns a copy of the board for inspection.
func (s *Session) Board() game.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.board
}

// closeIfEmpty marks an empty session closed so later joins fail.
func (s *Session) closeIfEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	if s.occupantsLocked() > 0 {
		return false
	}
	s.closed = true
	return true
}

func (s *Session) statusLocked() string {
	switch {
	case s.phase == PhaseRunning && s.black != nil && s.white != nil:
		return fmt.Sprintf("playing: %s vs %s", s.black.name, s.white.name)
	case s.reviewable:
		return "finished"
	case s.black != nil && s.white != nil:
		return fmt.Sprintf("ready: %s & %s", s.black.name, s.white.name)
	default:
		return "waiting"
	}
}

func (s *Session) occupantsLocked() int {
	n := len(s.spectators)
	if s.black != nil {
		n++
	}
	if s.white != nil {
		n++
	}
	return n
}

func (s *Session) seatUpdateLocked() string {
	return protocol.Build(protocol.SeatUpdate, seatName(s.black), seatName(s.white), strconv.Itoa(len(s.spectators)))
}

func seatName(m *Member) string {
	if m == nil {
		return protocol.EmptySeat
	}
	return m.name
}

func (s *Session) members() []*Member {
	out := make([]*Member, 0, len(s.spectators)+2)
	if s.black != nil {
		out = append(out, s.black)
	}
	if s.white != nil {
		out = append(out, s.white)
	}
	return append(out, s.spectators...)
}

func (s *Session) broadcast(line string) {
	s.broadcastExcept(line, nil)
}

func (s *Session) broadcastExcept(line string, except *Member) {
	for _, m := range s.members() {
		if m == except {
			continue
		}
		if !m.Send(line) {
			metricBroadcastDropsTotal.Add(1)
		}
	}
}

func (s *Session) broadcastSystem(text string) {
	s.broadcast(protocol.Build(protocol.System, text))
}
