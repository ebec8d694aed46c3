package room

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomIDsIncrementAndWrap(t *testing.T) {
	reg := NewRegistry(nil)
	first, _ := newTestMember("a")
	second, _ := newTestMember("b")
	third, _ := newTestMember("c")

	s1, err := reg.CreateRoom(first)
	require.NoError(t, err)
	assert.Equal(t, "1000", s1.ID())

	reg.nextID = lastRoomID
	s2, err := reg.CreateRoom(second)
	require.NoError(t, err)
	assert.Equal(t, "9999", s2.ID())

	// 1000 is still live, so the wrapped counter skips it
	s3, err := reg.CreateRoom(third)
	require.NoError(t, err)
	assert.Equal(t, "1001", s3.ID())
}

func TestRoomIDsExhausted(t *testing.T) {
	reg := NewRegistry(nil)
	for id := firstRoomID; id <= lastRoomID; id++ {
		key := fmt.Sprintf("%04d", id)
		reg.rooms[key] = &Session{id: key}
	}
	m, _ := newTestMember("late")

	_, err := reg.CreateRoom(m)
	assert.ErrorIs(t, err, ErrNoRoomIDs)
	assert.Nil(t, m.Session())
}

func TestJoinUnknownRoom(t *testing.T) {
	reg := NewRegistry(nil)
	m, _ := newTestMember("bob")

	_, err := reg.JoinRoom("4242", m)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, m.Session())
}

func TestQuickJoinPicksOldestRoom(t *testing.T) {
	reg := NewRegistry(nil)
	m, _ := newTestMember("bob")
	_, err := reg.QuickJoin(m)
	assert.ErrorIs(t, err, ErrNoRooms)

	a, _ := newTestMember("a")
	b, _ := newTestMember("b")
	_, err = reg.CreateRoom(a)
	require.NoError(t, err)
	_, err = reg.CreateRoom(b)
	require.NoError(t, err)

	sess, err := reg.QuickJoin(m)
	require.NoError(t, err)
	assert.Equal(t, "1000", sess.ID())
}

func TestQuickJoinIntoFullSeatsAddsSpectator(t *testing.T) {
	tb := seatedTable(t)
	carol, carolBox := newTestMember("carol")

	sess, err := tb.reg.QuickJoin(carol)
	require.NoError(t, err)
	assert.Same(t, tb.sess, sess)
	assert.Same(t, sess, carol.Session())
	assert.Equal(t, SeatSpectator, carol.Seat())
	assert.Equal(t, []string{"carol"}, sess.Info().Spectators)

	assert.Equal(t, "JOIN_ROOM|1000|alice|bob", carolBox.take()[0])
	assert.Contains(t, tb.aBox.take(), "SEAT_UPDATE|alice|bob|1")
	assert.Contains(t, tb.bBox.take(), "SEAT_UPDATE|alice|bob|1")
}

func TestRoomsListsInCreationOrder(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newTestMember("a")
	b, _ := newTestMember("b")
	_, err := reg.CreateRoom(a)
	require.NoError(t, err)
	s2, err := reg.CreateRoom(b)
	require.NoError(t, err)
	require.NoError(t, s2.ChangeSeat(b, SeatWhite))

	rooms := reg.Rooms()
	require.Len(t, rooms, 2)
	assert.Equal(t, "1000", rooms[0].ID)
	assert.Equal(t, "1001", rooms[1].ID)
	assert.Equal(t, "b", rooms[1].White)
	assert.Equal(t, 1, rooms[1].Occupants)
	assert.Equal(t, "not_started", rooms[1].Phase)
}

func TestSweepRemovesEmptyRooms(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newTestMember("a")
	b, _ := newTestMember("b")
	s1, err := reg.CreateRoom(a)
	require.NoError(t, err)
	_, err = reg.CreateRoom(b)
	require.NoError(t, err)

	assert.Equal(t, 0, reg.Sweep())

	s1.RemoveMember(a)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Count())
	_, ok := reg.Get("1000")
	assert.False(t, ok)

	rooms := reg.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, "1001", rooms[0].ID)
}

func TestJoinRacingSweepFails(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newTestMember("a")
	s1, err := reg.CreateRoom(a)
	require.NoError(t, err)
	s1.RemoveMember(a)

	// the sweeper has closed the session but not yet unlinked it
	require.True(t, s1.closeIfEmpty())
	late, _ := newTestMember("late")
	_, err = reg.JoinRoom("1000", late)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, late.Session())

	_, err = reg.QuickJoin(late)
	assert.ErrorIs(t, err, ErrNoRooms)
}

func TestJanitorSweeps(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newTestMember("a")
	s1, err := reg.CreateRoom(a)
	require.NoError(t, err)
	s1.RemoveMember(a)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reg.StartJanitor(ctx, 10*time.Millisecond, 10*time.Millisecond)

	require.Eventually(t, func() bool { return reg.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNameTable(t *testing.T) {
	names := NewNameTable()

	got, err := names.Register("  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	_, err = names.Register("alice")
	assert.ErrorIs(t, err, ErrNameTaken)
	assert.Equal(t, 1, names.Count())

	for _, bad := range []string{"", "   ", "a|b", "SYSTEM", "empty", "abcdefghijabcdefghijabcdefghijabc"} {
		_, err := names.Register(bad)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", bad)
	}

	names.Release("alice")
	assert.Equal(t, 0, names.Count())
	_, err = names.Register("alice")
	assert.NoError(t, err)
}
