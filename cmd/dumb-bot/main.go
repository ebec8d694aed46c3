package main

import (
	"math/rand"
	"strings"
	"time"

	"gobang-server/internal/config"
	"gobang-server/internal/logging"
	"gobang-server/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(logCfg); err != nil {
		panic(err)
	}
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.WSURL).Msg("dial failed")
	}
	defer conn.Close()

	p := newPlayer(cfg.Name, cfg.RoomID, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err := write(conn, protocol.Build(protocol.Login, cfg.Name)); err != nil {
		log.Fatal().Err(err).Msg("login write failed")
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info().Err(err).Msg("connection closed")
			return
		}
		line := strings.TrimRight(string(data), "\r\n")
		log.Debug().Str("line", line).Msg("recv")
		if strings.HasPrefix(line, protocol.LoginFail) {
			log.Error().Str("line", line).Msg("login rejected")
			return
		}
		for _, out := range p.handle(line) {
			if strings.HasPrefix(out, protocol.Move+protocol.Delimiter) {
				time.Sleep(cfg.MoveDelay)
			}
			if err := write(conn, out); err != nil {
				log.Error().Err(err).Msg("write failed")
				return
			}
		}
	}
}

func write(conn *websocket.Conn, line string) error {
	return conn.WriteMessage(websocket.TextMessage, []byte(line))
}
