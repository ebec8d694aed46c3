package ws

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"gobang-server/internal/dispatch"
	"gobang-server/internal/room"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout    = 10 * time.Second
	DefaultMaxFrame = 4096
)

type Options struct {
	QueueSize      int
	MaxFrameBytes  int
	AllowedOrigins []string
}

// Handler upgrades HTTP requests to websockets that speak the line
// protocol, one line per text frame.
type Handler struct {
	registry *room.Registry
	opts     Options
	upgrader websocket.Upgrader
}

func NewHandler(registry *room.Registry, opts Options) *Handler {
	if opts.MaxFrameBytes <= 0 {
		opts.MaxFrameBytes = DefaultMaxFrame
	}
	h := &Handler{registry: registry, opts: opts}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// checkOrigin allows every origin when none are configured, otherwise only
// the listed hosts.
func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), u.Host) {
			return true
		}
	}
	return false
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("ws_upgrade_failed")
		return
	}
	conn.SetReadLimit(int64(h.opts.MaxFrameBytes))
	c := dispatch.NewConn(&frameConn{conn: conn}, h.registry, h.opts.QueueSize)
	log.Debug().Str("conn_id", c.ID()).Str("origin", r.Header.Get("Origin")).Msg("ws_upgraded")
	c.Serve(r.Context())
}

type frameConn struct {
	conn *websocket.Conn
}

func (f *frameConn) ReadLine() (string, error) {
	for {
		kind, msg, err := f.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if kind == websocket.TextMessage {
			return string(msg), nil
		}
	}
}

func (f *frameConn) WriteLine(line string) error {
	if err := f.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return f.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (f *frameConn) Close() error { return f.conn.Close() }

func (f *frameConn) RemoteAddr() string { return f.conn.RemoteAddr().String() }
