package room

import (
	"sync"
	"testing"
	"time"

	"gobang-server/internal/store"

	"github.com/stretchr/testify/require"
)

type inbox struct {
	mu    sync.Mutex
	lines []string
}

func (b *inbox) Send(line string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	return true
}

// take returns everything received since the last call.
func (b *inbox) take() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.lines
	b.lines = nil
	return out
}

type battleSink struct {
	mu   sync.Mutex
	recs []store.BattleRecord
}

func (s *battleSink) Record(rec store.BattleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
}

func (s *battleSink) records() []store.BattleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.BattleRecord(nil), s.recs...)
}

func newTestMember(name string) (*Member, *inbox) {
	box := &inbox{}
	return NewMember(name, box), box
}

type table struct {
	reg   *Registry
	sess  *Session
	sink  *battleSink
	alice *Member
	bob   *Member
	aBox  *inbox
	bBox  *inbox
}

// seatedTable has alice in black and bob in white with no battle yet.
func seatedTable(t *testing.T) *table {
	t.Helper()
	tb := &table{sink: &battleSink{}}
	tb.reg = NewRegistry(tb.sink)
	tb.alice, tb.aBox = newTestMember("alice")
	tb.bob, tb.bBox = newTestMember("bob")

	sess, err := tb.reg.CreateRoom(tb.alice)
	require.NoError(t, err)
	tb.sess = sess
	sess.now = func() time.Time { return time.Date(2026, 5, 1, 9, 30, 15, 0, time.UTC) }
	_, err = tb.reg.JoinRoom(sess.ID(), tb.bob)
	require.NoError(t, err)
	require.NoError(t, sess.ChangeSeat(tb.alice, SeatBlack))
	require.NoError(t, sess.ChangeSeat(tb.bob, SeatWhite))
	tb.aBox.take()
	tb.bBox.take()
	return tb
}

// runningTable starts a battle on a seated table.
func runningTable(t *testing.T) *table {
	t.Helper()
	tb := seatedTable(t)
	require.NoError(t, tb.sess.Invite(tb.alice))
	require.NoError(t, tb.sess.Respond(tb.bob, true))
	tb.aBox.take()
	tb.bBox.take()
	return tb
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}
