package main

import (
	"math/rand"
	"strconv"

	"gobang-server/internal/game"
	"gobang-server/internal/protocol"
	"gobang-server/internal/room"
)

// player turns server lines into replies. It sits in the first free seat,
// offers or accepts battles and plays random legal moves.
type player struct {
	name   string
	roomID string
	rnd    *rand.Rand

	board   *game.Board
	stone   game.Stone
	black   string
	white   string
	running bool
	invited bool
}

func newPlayer(name, roomID string, rnd *rand.Rand) *player {
	return &player{name: name, roomID: roomID, rnd: rnd, board: game.NewBoard()}
}

func (p *player) handle(line string) []string {
	parts := protocol.Parse(line)
	if len(parts) == 0 {
		return nil
	}
	switch parts[0] {
	case protocol.LoginSuccess:
		if p.roomID != "" {
			return []string{protocol.Build(protocol.JoinRoomByID, p.roomID)}
		}
		return []string{protocol.QuickJoin}
	case protocol.RoomCreated:
		return []string{protocol.SitBlack}
	case protocol.JoinRoom:
		if len(parts) < 4 {
			return nil
		}
		p.black, p.white = parts[2], parts[3]
		if p.black == protocol.EmptySeat {
			return []string{protocol.SitBlack}
		}
		if p.white == protocol.EmptySeat {
			return []string{protocol.SitWhite}
		}
		return nil
	case protocol.Error:
		return p.onError(protocol.Rest(parts, 1))
	case protocol.RoleChange:
		if len(parts) >= 3 && parts[1] == p.name {
			p.stone = stoneForRole(parts[2])
		}
		return nil
	case protocol.SeatUpdate:
		if len(parts) >= 3 {
			p.black, p.white = parts[1], parts[2]
		}
		return p.maybeInvite()
	case protocol.BattleInviteNotify:
		return []string{protocol.Build(protocol.BattleResponse, protocol.Agree)}
	case protocol.BoardReset:
		p.board.Reset()
		return nil
	case protocol.BattleStart:
		p.running = true
		p.invited = false
		if p.stone == game.Black {
			return p.move()
		}
		return nil
	case protocol.MoveSuccess:
		return p.onMove(parts)
	case protocol.MoveFail:
		if p.running {
			return p.move()
		}
		return nil
	case protocol.GameOver:
		p.running = false
		p.invited = false
		return p.maybeInvite()
	}
	return nil
}

func (p *player) onError(text string) []string {
	switch text {
	case room.ErrNoRooms.Error(), room.ErrRoomNotFound.Error():
		return []string{protocol.CreateRoom}
	case room.ErrBlackSeatTaken.Error():
		return []string{protocol.SitWhite}
	}
	return nil
}

func (p *player) onMove(parts []string) []string {
	if len(parts) < 4 {
		return nil
	}
	x, errX := strconv.Atoi(parts[1])
	y, errY := strconv.Atoi(parts[2])
	if errX != nil || errY != nil {
		return nil
	}
	stone := game.Black
	if parts[3] == protocol.ColorWhite {
		stone = game.White
	}
	p.board.PlaceStone(x, y, stone)
	if p.running && p.stone != game.Empty && stone != p.stone {
		return p.move()
	}
	return nil
}

// maybeInvite lets the black player offer a battle once both seats are
// filled.
func (p *player) maybeInvite() []string {
	if p.running || p.invited || p.stone != game.Black {
		return nil
	}
	if p.black != p.name || p.white == protocol.EmptySeat || p.white == "" {
		return nil
	}
	p.invited = true
	return []string{protocol.BattleInvite}
}

func (p *player) move() []string {
	free := make([][2]int, 0, game.TotalCells-p.board.MoveCount())
	for x := 0; x < game.BoardSize; x++ {
		for y := 0; y < game.BoardSize; y++ {
			if p.board.IsEmpty(x, y) {
				free = append(free, [2]int{x, y})
			}
		}
	}
	if len(free) == 0 {
		return nil
	}
	c := free[p.rnd.Intn(len(free))]
	return []string{protocol.Build(protocol.Move, strconv.Itoa(c[0]), strconv.Itoa(c[1]))}
}

func stoneForRole(role string) game.Stone {
	switch role {
	case protocol.RolePlayerBlack:
		return game.Black
	case protocol.RolePlayerWhite:
		return game.White
	default:
		return game.Empty
	}
}
