package tcp

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"gobang-server/internal/dispatch"
	"gobang-server/internal/protocol"
	"gobang-server/internal/room"

	"github.com/rs/zerolog/log"
)

const acceptBackoff = 50 * time.Millisecond

type Options struct {
	QueueSize    int
	MaxLineBytes int
}

// Server accepts TCP clients and runs one dispatcher connection per socket.
type Server struct {
	addr     string
	registry *room.Registry
	opts     Options

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer serves on addr, or on the protocol's default port when addr is
// empty.
func NewServer(addr string, registry *room.Registry, opts Options) *Server {
	if addr == "" {
		addr = ":" + strconv.Itoa(protocol.DefaultPort)
	}
	return &Server{addr: addr, registry: registry, opts: opts}
}

// Listen binds the listening socket. Serve calls it if needed.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is done, then waits for every open
// connection to finish.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	log.Info().Str("addr", ln.Addr().String()).Msg("tcp_listening")

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	failures := 0
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				log.Info().Msg("tcp_stopped")
				return nil
			}
			failures++
			log.Warn().Err(err).Int("consecutive", failures).Msg("tcp_accept_failed")
			time.Sleep(acceptBackoff)
			continue
		}
		failures = 0
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			c := dispatch.NewConn(newLineConn(conn, s.opts.MaxLineBytes), s.registry, s.opts.QueueSize)
			c.Serve(ctx)
		}()
	}
}
