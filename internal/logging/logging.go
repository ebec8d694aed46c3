package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"gobang-server/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu sync.RWMutex
	writer   io.Writer = os.Stdout
	fileOut  *sizeLimitedWriter
)

// Init configures the global zerolog logger. It may be called again to
// reconfigure; a previously opened log file is closed.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var raw io.Writer = os.Stdout
	var file *sizeLimitedWriter
	if path := strings.TrimSpace(cfg.File); path != "" {
		f, err := newSizeLimitedWriter(path, cfg.MaxMB)
		if err != nil {
			return err
		}
		file = f
		raw = io.MultiWriter(os.Stdout, f)
	}

	var output = raw
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: raw}
	}

	zerolog.SetGlobalLevel(level)
	ctx := zerolog.New(output).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	logger := ctx.Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger

	writerMu.Lock()
	old := fileOut
	writer = raw
	fileOut = file
	writerMu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Writer returns the raw JSON sink behind the global logger, for other
// structured loggers such as the HTTP access log.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return writer
}

// Close points the logger back at stdout and closes the log file, if any.
func Close() error {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	writerMu.Lock()
	f := fileOut
	fileOut = nil
	writer = os.Stdout
	writerMu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}
