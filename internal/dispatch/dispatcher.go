package dispatch

import (
	"strconv"
	"strings"

	"gobang-server/internal/protocol"
	"gobang-server/internal/room"

	"github.com/rs/zerolog/log"
)

const readyForNextHint = "either seated player can offer a new battle with BATTLE_INVITE"

// handle runs one command line. A panic is logged and answered with an
// error; the connection stays up.
func (c *Conn) handle(line string) {
	defer func() {
		if r := recover(); r != nil {
			metricDispatchPanics.Add(1)
			log.Error().
				Interface("panic", r).
				Str("conn_id", c.id).
				Str("line", line).
				Msg("dispatch_panic")
			c.Send(protocol.Build(protocol.Error, internalErrorText))
		}
	}()

	parts := protocol.Parse(line)
	if len(parts) == 0 {
		return
	}
	cmd := parts[0]

	if c.member == nil {
		if cmd != protocol.Login {
			c.reject(protocol.Error, errLoginRequired)
			return
		}
		metricCommandsTotal.Add(cmd, 1)
		c.login(parts)
		return
	}

	switch cmd {
	case protocol.Login:
		c.reject(protocol.Error, errAlreadyLoggedIn)
	case protocol.CreateRoom:
		c.createRoom()
	case protocol.QuickJoin:
		c.quickJoin()
	case protocol.JoinRoomByID, protocol.Spectate:
		c.joinRoom(parts)
	case protocol.GetRoomList:
		c.roomList()
	case protocol.RequestRoomState:
		c.inRoom(protocol.Error, func(sess *room.Session) error {
			return sess.SendState(c.member)
		})
	case protocol.SitBlack:
		c.changeSeat(room.SeatBlack)
	case protocol.SitWhite:
		c.changeSeat(room.SeatWhite)
	case protocol.SitSpectator:
		c.changeSeat(room.SeatSpectator)
	case protocol.BattleInvite:
		c.inRoom(protocol.Error, func(sess *room.Session) error {
			return sess.Invite(c.member)
		})
	case protocol.BattleResponse:
		c.battleResponse(parts)
	case protocol.Move:
		c.move(parts)
	case protocol.Chat:
		text := protocol.Rest(parts, 1)
		c.inRoom(protocol.Error, func(sess *room.Session) error {
			return sess.Chat(c.member, text)
		})
	case protocol.Quit:
		c.quit()
	case protocol.ReadyForNext:
		c.Send(protocol.Build(protocol.System, readyForNextHint))
	default:
		c.Send(protocol.Build(protocol.Error, "unknown command: "+cmd))
		return
	}
	metricCommandsTotal.Add(cmd, 1)
}

func (c *Conn) login(parts []string) {
	name := ""
	if len(parts) > 1 {
		name = parts[1]
	}
	name, err := c.registry.Names().Register(name)
	if err != nil {
		c.reject(protocol.LoginFail, err)
		return
	}
	c.member = room.NewMember(name, c)
	c.Send(protocol.Build(protocol.LoginSuccess, name))
	log.Info().Str("conn_id", c.id).Str("member_id", c.member.ID()).Str("user", name).Str("remote", c.transport.RemoteAddr()).Msg("login")
}

// inRoom runs fn against the member's current room, answering with keyword
// if there is none or fn fails.
func (c *Conn) inRoom(keyword string, fn func(sess *room.Session) error) {
	sess := c.member.Session()
	if sess == nil {
		c.reject(keyword, room.ErrNotInRoom)
		return
	}
	if err := fn(sess); err != nil {
		c.reject(keyword, err)
	}
}

func (c *Conn) notInRoom() bool {
	if c.member.Session() != nil {
		c.reject(protocol.Error, errAlreadyInRoom)
		return false
	}
	return true
}

func (c *Conn) createRoom() {
	if !c.notInRoom() {
		return
	}
	if _, err := c.registry.CreateRoom(c.member); err != nil {
		c.reject(protocol.Error, err)
	}
}

func (c *Conn) quickJoin() {
	if !c.notInRoom() {
		return
	}
	sess, err := c.registry.QuickJoin(c.member)
	if err != nil {
		c.reject(protocol.Error, err)
		return
	}
	log.Info().Str("user", c.member.Name()).Str("room_id", sess.ID()).Msg("room_joined")
}

func (c *Conn) joinRoom(parts []string) {
	if !c.notInRoom() {
		return
	}
	if len(parts) < 2 || !validRoomID(strings.TrimSpace(parts[1])) {
		c.reject(protocol.Error, errInvalidRoomID)
		return
	}
	sess, err := c.registry.JoinRoom(strings.TrimSpace(parts[1]), c.member)
	if err != nil {
		c.reject(protocol.Error, err)
		return
	}
	log.Info().Str("user", c.member.Name()).Str("room_id", sess.ID()).Msg("room_joined")
}

func validRoomID(id string) bool {
	if len(id) != 4 {
		return false
	}
	for _, ch := range id {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func (c *Conn) roomList() {
	rooms := c.registry.Rooms()
	fields := make([]string, 0, 2+3*len(rooms))
	fields = append(fields, protocol.RoomList, strconv.Itoa(len(rooms)))
	for _, info := range rooms {
		fields = append(fields, info.ID, info.Status, strconv.Itoa(info.Occupants))
	}
	c.Send(protocol.Build(fields...))
}

func (c *Conn) changeSeat(target room.Seat) {
	c.inRoom(protocol.Error, func(sess *room.Session) error {
		return sess.ChangeSeat(c.member, target)
	})
}

func (c *Conn) battleResponse(parts []string) {
	answer := ""
	if len(parts) > 1 {
		answer = strings.ToUpper(strings.TrimSpace(parts[1]))
	}
	var agree bool
	switch answer {
	case protocol.Agree:
		agree = true
	case protocol.Refuse:
	default:
		c.reject(protocol.Error, errInvalidResponse)
		return
	}
	c.inRoom(protocol.Error, func(sess *room.Session) error {
		return sess.Respond(c.member, agree)
	})
}

func (c *Conn) move(parts []string) {
	c.inRoom(protocol.MoveFail, func(sess *room.Session) error {
		x, y, err := parseCoordinates(parts[1:])
		if err != nil {
			return err
		}
		return sess.Move(c.member, x, y)
	})
}

// parseCoordinates accepts "x", "y" as two fields or "x,y" as one.
func parseCoordinates(fields []string) (int, int, error) {
	if len(fields) == 1 && strings.Contains(fields[0], ",") {
		fields = strings.SplitN(fields[0], ",", 2)
	}
	if len(fields) < 2 || strings.TrimSpace(fields[0]) == "" || strings.TrimSpace(fields[1]) == "" {
		return 0, 0, errMissingCoordinates
	}
	x, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, errInvalidCoordinates
	}
	y, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, errInvalidCoordinates
	}
	return x, y, nil
}

func (c *Conn) quit() {
	c.inRoom(protocol.Error, func(sess *room.Session) error {
		sess.RemoveMember(c.member)
		c.Send(protocol.Build(protocol.System, "you left the room"))
		log.Info().Str("user", c.member.Name()).Str("room_id", sess.ID()).Msg("room_left")
		return nil
	})
}
