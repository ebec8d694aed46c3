package room

import "gobang-server/internal/protocol"

// ChangeSeat moves m to target. While a battle runs the seats are locked,
// except that a player may stand up to spectate, which forfeits the game.
func (s *Session) ChangeSeat(m *Member, target Seat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Session() != s {
		return ErrNotInRoom
	}
	current := m.Seat()

	if s.phase == PhaseRunning {
		seated := current == SeatBlack || current == SeatWhite
		if target != SeatSpectator || !seated {
			return ErrSeatsLocked
		}
	}

	switch target {
	case SeatBlack:
		if s.black != nil {
			return ErrBlackSeatTaken
		}
	case SeatWhite:
		if s.white != nil {
			return ErrWhiteSeatTaken
		}
	case SeatSpectator:
	default:
		return ErrNotInRoom
	}

	// Take the new seat before leaving the old one so a forfeit's GAME_OVER
	// still reaches m.
	if target != current {
		switch target {
		case SeatBlack:
			s.black = m
		case SeatWhite:
			s.white = m
		default:
			s.spectators = append(s.spectators, m)
		}
		s.vacateLocked(m, current)
		m.setPlace(s, target)
	}

	m.Send(protocol.Build(protocol.RoleChange, m.name, target.Role()))
	s.broadcast(s.seatUpdateLocked())
	if target == SeatSpectator {
		s.broadcastSystem(m.name + " moved to the spectators")
	} else {
		s.broadcastSystem(m.name + " sat in the " + target.String() + " seat")
	}
	metricSeatChangesTotal.Add(1)
	return nil
}
