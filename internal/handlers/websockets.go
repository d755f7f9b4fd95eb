package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12
	defaultInterval = time.Second
	minInterval     = 100 * time.Millisecond
	maxInterval     = 10 * time.Second

	msgParameters = "parameters"
	msgError      = "error"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	// Origins are not restricted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream laser parameters
// @Description  WebSocket; sends {"type":"parameters","data":{...}} every interval. A failed read is sent as {"type":"error"} and the stream continues.
// @Tags         laser
// @Param        interval     query  string  false  "Go duration, 100ms to 10s"  example(2s)
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.drain(conn, done)

	ctx := c.Request.Context()
	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer ping.Stop()

	if err := h.sendParameters(ctx, conn); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendParameters(ctx, conn); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000; out-of-bounds
// values fall back to the default.
func parseInterval(c *gin.Context) time.Duration {
	inBounds := func(d time.Duration) bool { return d >= minInterval && d <= maxInterval }
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && inBounds(d) {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && inBounds(time.Duration(v)*time.Millisecond) {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// drain reads control frames until the peer goes away.
func (h *Handler) drain(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendParameters writes the current parameters, or an error message when
// they cannot be read. Only write failures are returned.
func (h *Handler) sendParameters(ctx context.Context, conn *websocket.Conn) error {
	msg := wsEnvelope{Type: msgParameters}
	p, err := h.services.Laser.Parameters(ctx)
	if err != nil {
		h.log.Warnw("ws_get_parameters_failed", "err", err)
		msg = wsEnvelope{Type: msgError, Error: errGetParameters}
	} else {
		msg.Data = p
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
