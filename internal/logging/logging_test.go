package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gobang-server/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	if err := Init(config.LogConfig{Level: "debug", File: path, MaxMB: 1}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = Init(config.LogConfig{}) }()

	log.Debug().Str("room_id", "1000").Msg("room_created")
	if _, err := Writer().Write([]byte(`{"msg":"from_writer"}` + "\n")); err != nil {
		t.Fatalf("Writer().Write() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"message":"room_created"`) || !strings.Contains(out, `"room_id":"1000"`) {
		t.Fatalf("log line missing: %s", out)
	}
	if !strings.Contains(out, "from_writer") {
		t.Fatalf("Writer() output missing: %s", out)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", zerolog.GlobalLevel())
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	if err := Init(config.LogConfig{Level: "loud"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", zerolog.GlobalLevel())
	}
}

func TestInitFailsOnUnwritableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "server.log")
	if err := Init(config.LogConfig{File: path}); err == nil {
		t.Fatal("Init() expected error for missing directory")
	}
}
