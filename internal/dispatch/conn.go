package dispatch

import (
	"context"
	"sync"

	"gobang-server/internal/room"
	"gobang-server/internal/store"

	"github.com/rs/zerolog/log"
)

const DefaultQueueSize = 256

// Transport carries protocol lines for one client. ReadLine is only called
// from the reading goroutine and WriteLine only from the writing one.
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// Conn is one client connection. Commands are handled on the goroutine
// running Serve; outbound lines go through a bounded queue drained by a
// separate writer so Send never blocks.
type Conn struct {
	id        string
	transport Transport
	registry  *room.Registry

	out       chan string
	done      chan struct{}
	closeOnce sync.Once

	// member is set by LOGIN and only touched by the Serve goroutine.
	member *room.Member
}

func NewConn(t Transport, registry *room.Registry, queueSize int) *Conn {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Conn{
		id:        store.NewID(),
		transport: t,
		registry:  registry,
		out:       make(chan string, queueSize),
		done:      make(chan struct{}),
	}
}

func (c *Conn) ID() string { return c.id }

// Serve reads and dispatches commands until the transport fails or ctx is
// done. On return the client has left its room and released its name.
func (c *Conn) Serve(ctx context.Context) {
	metricConnectionsTotal.Add(1)
	metricConnectionsActive.Add(1)
	defer metricConnectionsActive.Add(-1)
	log.Info().Str("conn_id", c.id).Str("remote", c.transport.RemoteAddr()).Msg("conn_opened")

	go c.writeLoop()
	stop := context.AfterFunc(ctx, c.Close)
	defer stop()

	for {
		line, err := c.transport.ReadLine()
		if err != nil {
			log.Debug().Err(err).Str("conn_id", c.id).Msg("conn_read_stopped")
			break
		}
		c.handle(line)
	}
	c.cleanup()
	c.Close()
}

// Send queues line for delivery. A full queue drops the line.
func (c *Conn) Send(line string) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- line:
		return true
	default:
		metricOutboundDropsTotal.Add(1)
		log.Warn().Str("conn_id", c.id).Str("remote", c.transport.RemoteAddr()).Msg("outbound_queue_full")
		return false
	}
}

// Close stops the writer and closes the transport, which also ends Serve.
// It is safe to call more than once.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.transport.Close(); err != nil {
			log.Debug().Err(err).Str("conn_id", c.id).Msg("conn_close_failed")
		}
	})
}

func (c *Conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case line := <-c.out:
			if err := c.transport.WriteLine(line); err != nil {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("conn_write_failed")
				c.Close()
				return
			}
		}
	}
}

func (c *Conn) cleanup() {
	if c.member == nil {
		log.Info().Str("conn_id", c.id).Msg("conn_closed")
		return
	}
	if sess := c.member.Session(); sess != nil {
		sess.RemoveMember(c.member)
	}
	c.registry.Names().Release(c.member.Name())
	log.Info().Str("conn_id", c.id).Str("user", c.member.Name()).Msg("conn_closed")
}
