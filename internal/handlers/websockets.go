package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12 // 4 KB
	defaultInterval = time.Second
	maxInterval     = 10 * time.Second

	envelopeStats = "stats"
	envelopeError = "error"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Stats are public, so any origin may subscribe.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// statsStream pushes stats snapshots over one connection.
type statsStream struct {
	conn     *websocket.Conn
	stats    service.Stats
	log      *logger.Logger
	interval time.Duration
}

// @Summary      Stream blog stats
// @Description  Upgrades to a WebSocket and pushes {"type":"stats","data":...} immediately and then every interval.
// @Tags         stats
// @Param        interval     query  string  false  "Go duration, max 10s"  example(2s)
// @Param        interval_ms  query  int     false  "Milliseconds, max 10000"  example(2000)
// @Success      101
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	s := &statsStream{conn: conn, stats: h.services.Stats, log: h.log, interval: interval}
	s.run(c.Request.Context())
}

// parseInterval reads ?interval=2s or ?interval_ms=2000. Out-of-range or
// unparsable values fall through to the next source, then the default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if d, err := time.ParseDuration(c.Query("interval")); err == nil && validInterval(d) {
		return d
	}
	if ms, err := strconv.Atoi(c.Query("interval_ms")); err == nil {
		if d := time.Duration(ms) * time.Millisecond; validInterval(d) {
			return d
		}
	}
	return defaultInterval
}

func validInterval(d time.Duration) bool { return d > 0 && d <= maxInterval }

func (s *statsStream) run(ctx context.Context) {
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go s.drain(done)

	if err := s.push(ctx); err != nil {
		s.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			deadline := time.Now().Add(writeWait)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := s.push(ctx); err != nil {
				s.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// drain reads until the peer goes away so control frames get handled.
func (s *statsStream) drain(done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// push writes one snapshot. When stats cannot be loaded the client gets an
// error envelope and a close frame, and the stream ends.
func (s *statsStream) push(ctx context.Context) error {
	st, err := s.stats.GetStats(ctx)
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err == nil {
		return s.conn.WriteJSON(wsEnvelope{Type: envelopeStats, Data: st})
	}

	s.log.Errorw("ws_get_stats_failed", "err", err)
	_ = s.conn.WriteJSON(wsEnvelope{Type: envelopeError, Error: "failed to load stats"})
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "stats unavailable")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return err
}
