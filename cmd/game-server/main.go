package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gobang-server/internal/archive"
	"gobang-server/internal/config"
	"gobang-server/internal/logging"
	"gobang-server/internal/room"
	"gobang-server/internal/store"
	httptransport "gobang-server/internal/transport/http"
	"gobang-server/internal/transport/tcp"
	"gobang-server/internal/transport/ws"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	pingTimeout     = 5 * time.Second
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		if err := cfg.Server.OverridePort(os.Args[1]); err != nil {
			log.Fatal().Err(err).Msg("bad port argument")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg.Server)
	_ = logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "server stopped: %v\n", err)
		os.Exit(1)
	}
}

// run serves the game until ctx is done or a listener fails.
func run(ctx context.Context, cfg config.ServerConfig) error {
	st, err := openArchiveStore(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}

	var (
		recorder room.Recorder
		battles  httptransport.BattleReader
		worker   *archive.Worker
	)
	if st != nil {
		defer st.Close()
		worker = archive.NewWorker(st, archive.Options{QueueSize: cfg.ArchiveQueueSize, RetryMax: 3})
		recorder = worker
		battles = st
	}

	// The archive outlives the listeners so forfeits during shutdown are kept.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if worker != nil {
			_ = worker.Run(workerCtx)
		}
	}()
	defer func() {
		stopWorker()
		<-workerDone
	}()

	registry := room.NewRegistry(recorder)

	g, gctx := errgroup.WithContext(ctx)
	registry.StartJanitor(gctx, cfg.RoomSweepInterval, cfg.StatusLogInterval)

	tcpServer := tcp.NewServer(cfg.TCPAddr, registry, tcp.Options{
		QueueSize:    cfg.OutboundQueueSize,
		MaxLineBytes: cfg.MaxLineBytes,
	})
	if err := tcpServer.Listen(); err != nil {
		return fmt.Errorf("listen tcp %s: %w", cfg.TCPAddr, err)
	}
	g.Go(func() error { return tcpServer.Serve(gctx) })

	if cfg.HTTPAddr != "" {
		serveHTTP(gctx, g, cfg, registry, battles)
	} else {
		log.Info().Msg("http_disabled")
	}

	err = g.Wait()
	log.Info().Int("rooms", registry.Count()).Msg("server_stopped")
	return err
}

func serveHTTP(ctx context.Context, g *errgroup.Group, cfg config.ServerConfig, registry *room.Registry, battles httptransport.BattleReader) {
	router := httptransport.NewRouter(registry, battles, ws.NewHandler(registry, ws.Options{
		QueueSize:      cfg.OutboundQueueSize,
		MaxFrameBytes:  cfg.MaxLineBytes,
		AllowedOrigins: cfg.WSAllowedOrigins,
	}))
	httptransport.LogRoutes(router)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http_listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}

// openArchiveStore connects to Postgres when a DSN is configured. A nil
// store means battles are not archived.
func openArchiveStore(ctx context.Context, dsn string) (*store.Store, error) {
	if dsn == "" {
		log.Info().Msg("archive_disabled")
		return nil, nil
	}
	st, err := store.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := st.Ping(pctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	log.Info().Msg("archive_enabled")
	return st, nil
}
