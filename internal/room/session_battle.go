package room

import (
	"strconv"

	"gobang-server/internal/game"
	"gobang-server/internal/protocol"
	"gobang-server/internal/store"

	"github.com/rs/zerolog/log"
)

// Invite offers a battle from a seated player to the opposite seat.
func (s *Session) Invite(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return ErrNotInRoom
	}
	if s.phase == PhaseRunning {
		return ErrBattleInProgress
	}
	if m != s.black && m != s.white {
		return ErrNotSeated
	}
	if s.black == nil || s.white == nil {
		return ErrSeatsNotFilled
	}
	if s.phase == PhaseInviteOffered {
		return ErrInvitePending
	}

	s.phase = PhaseInviteOffered
	s.inviter = m
	s.inviteeLocked().Send(protocol.Build(protocol.BattleInviteNotify, m.name))
	s.broadcastSystem(m.name + " offered a battle")
	return nil
}

// Respond answers the pending invite. Only the invited player may respond.
func (s *Session) Respond(m *Member, agree bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return ErrNotInRoom
	}
	if s.phase != PhaseInviteOffered {
		return ErrNoPendingInvite
	}
	if m != s.inviteeLocked() {
		return ErrNotInvitee
	}

	if agree {
		s.startBattleLocked()
		return nil
	}
	inviter := s.inviter
	s.phase = PhaseNotStarted
	s.inviter = nil
	inviter.Send(protocol.Build(protocol.System, m.name+" declined your invite"))
	s.broadcastSystem(m.name + " declined the battle")
	return nil
}

func (s *Session) inviteeLocked() *Member {
	switch s.inviter {
	case nil:
		return nil
	case s.black:
		return s.white
	default:
		return s.black
	}
}

func (s *Session) cancelInviteLocked(reason string) {
	s.phase = PhaseNotStarted
	s.inviter = nil
	s.broadcastSystem(reason)
}

func (s *Session) startBattleLocked() {
	s.board.Reset()
	s.turn = game.Black
	s.phase = PhaseRunning
	s.inviter = nil
	s.reviewable = false
	s.battle = battleLog{
		id:        store.NewID(),
		blackName: s.black.name,
		whiteName: s.white.name,
		startedAt: s.now(),
	}

	s.broadcast(protocol.BoardReset)
	s.broadcast(protocol.BattleStart)
	s.broadcastSystem("battle started, black moves first: " + s.black.name)
	metricBattlesStartedTotal.Add(1)
	log.Info().
		Str("room_id", s.id).
		Str("battle_id", s.battle.id).
		Str("black", s.battle.blackName).
		Str("white", s.battle.whiteName).
		Msg("battle_started")
}

// Move places the mover's stone at (x, y).
func (s *Session) Move(m *Member, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return ErrNotInRoom
	}
	switch s.phase {
	case PhaseRunning:
	case PhaseFinished:
		return ErrBattleOver
	default:
		return ErrBattleNotRunning
	}

	var stone game.Stone
	switch m {
	case s.black:
		stone = game.Black
	case s.white:
		stone = game.White
	default:
		return ErrSpectatorMove
	}
	if stone != s.turn {
		return ErrNotYourTurn
	}
	if !s.board.IsValidPosition(x, y) {
		return ErrInvalidPosition
	}
	if !s.board.PlaceStone(x, y, stone) {
		return ErrCellOccupied
	}

	s.battle.moves = append(s.battle.moves, store.BattleMove{
		Seq:    len(s.battle.moves) + 1,
		X:      x,
		Y:      y,
		Color:  stone.String(),
		Player: m.name,
	})
	metricMovesTotal.Add(1)
	s.broadcast(protocol.Build(protocol.MoveSuccess, strconv.Itoa(x), strconv.Itoa(y), stone.String(), m.name))

	switch {
	case s.board.CheckWin(x, y):
		s.endBattleLocked(stone, protocol.ReasonWin)
	case s.board.CheckDraw():
		s.endBattleLocked(game.Empty, protocol.ReasonDraw)
	default:
		s.turn = stone.Opponent()
	}
	return nil
}

// endBattleLocked finishes the running battle. The board is kept for review
// until the next accepted invite.
func (s *Session) endBattleLocked(winner game.Stone, reason string) {
	s.phase = PhaseFinished
	s.inviter = nil
	s.reviewable = true

	winnerColor := protocol.ColorNone
	if winner != game.Empty {
		winnerColor = winner.String()
	}
	s.broadcast(protocol.Build(protocol.GameOver, winnerColor, reason))
	s.broadcastSystem("game over, the board is kept for review; either player may offer a new battle")

	metricBattlesFinishedTotal.Add(1)
	log.Info().
		Str("room_id", s.id).
		Str("battle_id", s.battle.id).
		Str("winner", winnerColor).
		Str("reason", reason).
		Int("moves", len(s.battle.moves)).
		Msg("battle_finished")

	if s.recorder == nil {
		return
	}
	s.recorder.Record(store.BattleRecord{
		ID:        s.battle.id,
		RoomID:    s.id,
		BlackName: s.battle.blackName,
		WhiteName: s.battle.whiteName,
		Winner:    winnerColor,
		Reason:    reason,
		MoveCount: len(s.battle.moves),
		StartedAt: s.battle.startedAt,
		EndedAt:   s.now(),
		Moves:     append([]store.BattleMove(nil), s.battle.moves...),
	})
}
