package room

import (
	"errors"
	"fmt"
	"sync"

	"gobang-server/internal/protocol"

	"github.com/rs/zerolog/log"
)

const (
	firstRoomID = 1000
	lastRoomID  = 9999
)

// Registry owns every live Session and the connected-name table. Its lock is
// never held while a Session lock is taken.
type Registry struct {
	recorder Recorder
	names    *NameTable

	mu     sync.Mutex
	rooms  map[string]*Session
	order  []string
	nextID int
}

func NewRegistry(recorder Recorder) *Registry {
	return &Registry{
		recorder: recorder,
		names:    NewNameTable(),
		rooms:    map[string]*Session{},
		nextID:   firstRoomID,
	}
}

func (r *Registry) Names() *NameTable { return r.names }

// CreateRoom opens a room with creator as its only spectator.
func (r *Registry) CreateRoom(creator *Member) (*Session, error) {
	r.mu.Lock()
	id, err := r.allocateIDLocked()
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	sess := newSession(id, creator, r.recorder)
	r.rooms[id] = sess
	r.order = append(r.order, id)
	metricRoomsActive.Set(int64(len(r.rooms)))
	r.mu.Unlock()

	metricRoomsCreatedTotal.Add(1)
	creator.Send(protocol.Build(protocol.RoomCreated, id))
	log.Info().Str("room_id", id).Str("creator", creator.Name()).Msg("room_created")
	return sess, nil
}

// allocateIDLocked hands out the next four-digit id, wrapping after 9999 and
// skipping ids that are still live.
func (r *Registry) allocateIDLocked() (string, error) {
	for i := 0; i <= lastRoomID-firstRoomID; i++ {
		id := fmt.Sprintf("%04d", r.nextID)
		r.nextID++
		if r.nextID > lastRoomID {
			r.nextID = firstRoomID
		}
		if _, live := r.rooms[id]; !live {
			return id, nil
		}
	}
	return "", ErrNoRoomIDs
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.rooms[id]
	return sess, ok
}

// JoinRoom adds m to room id as a spectator.
func (r *Registry) JoinRoom(id string, m *Member) (*Session, error) {
	sess, ok := r.Get(id)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := sess.AddMember(m); err != nil {
		if errors.Is(err, errSessionClosed) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return sess, nil
}

// QuickJoin adds m to the oldest live room.
func (r *Registry) QuickJoin(m *Member) (*Session, error) {
	for _, sess := range r.snapshot() {
		if err := sess.AddMember(m); err == nil {
			return sess, nil
		}
	}
	return nil, ErrNoRooms
}

// Rooms lists live rooms in creation order.
func (r *Registry) Rooms() []RoomInfo {
	sessions := r.snapshot()
	out := make([]RoomInfo, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.Info())
	}
	return out
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// Sweep closes and removes every empty room. It returns the number removed.
func (r *Registry) Sweep() int {
	var closed []*Session
	for _, sess := range r.snapshot() {
		if sess.closeIfEmpty() {
			closed = append(closed, sess)
		}
	}
	if len(closed) == 0 {
		return 0
	}

	r.mu.Lock()
	removed := 0
	for _, sess := range closed {
		if r.rooms[sess.id] != sess {
			continue
		}
		delete(r.rooms, sess.id)
		removed++
	}
	order := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.rooms[id]; ok {
			order = append(order, id)
		}
	}
	r.order = order
	metricRoomsActive.Set(int64(len(r.rooms)))
	r.mu.Unlock()

	metricRoomsSweptTotal.Add(int64(removed))
	for _, sess := range closed {
		log.Info().Str("room_id", sess.id).Msg("room_swept")
	}
	return removed
}

func (r *Registry) snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.order))
	for _, id := range r.order {
		if sess, ok := r.rooms[id]; ok {
			out = append(out, sess)
		}
	}
	return out
}
