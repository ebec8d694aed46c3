package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	TCPAddr  string `env:"TCP_ADDR" envDefault:":8888"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	RoomSweepInterval time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"1s"`
	StatusLogInterval time.Duration `env:"STATUS_LOG_INTERVAL" envDefault:"30s"`

	OutboundQueueSize int `env:"OUTBOUND_QUEUE_SIZE" envDefault:"256"`
	MaxLineBytes      int `env:"MAX_LINE_BYTES" envDefault:"4096"`

	PostgresDSN      string `env:"POSTGRES_DSN"`
	ArchiveQueueSize int    `env:"ARCHIVE_QUEUE_SIZE" envDefault:"128"`

	WSAllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// OverridePort replaces the port of TCPAddr, keeping its host.
func (c *ServerConfig) OverridePort(arg string) error {
	port, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", arg)
	}
	host, _, err := net.SplitHostPort(c.TCPAddr)
	if err != nil {
		host = ""
	}
	c.TCPAddr = net.JoinHostPort(host, strconv.Itoa(port))
	return nil
}
