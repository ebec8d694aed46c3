package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type BotConfig struct {
	WSURL     string        `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	Name      string        `env:"BOT_NAME" envDefault:"bot"`
	RoomID    string        `env:"BOT_ROOM_ID"`
	MoveDelay time.Duration `env:"BOT_MOVE_DELAY" envDefault:"300ms"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
