// Package ws binds authenticated websocket sessions into the connection
// registry. The handshake reuses the same token verification as the HTTP
// routes; a successful upgrade binds the connection, a disconnect of any kind
// unbinds it.
package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/observability/metrics"
	"github.com/Karab-o/CareLink/internal/registry"
	"github.com/Karab-o/CareLink/internal/service"

	"github.com/google/uuid"
)

type Handler struct {
	tokens service.TokenService
	alerts service.AlertService
	reg    *registry.Registry
	ping   time.Duration
}

func NewHandler(tokens service.TokenService, alerts service.AlertService, reg *registry.Registry, ping time.Duration) *Handler {
	if ping <= 0 {
		ping = 30 * time.Second
	}
	return &Handler{tokens: tokens, alerts: alerts, reg: reg, ping: ping}
}

// ServeHTTP handles GET /ws. The token comes from the Authorization header or,
// for browser clients that cannot set headers on websocket requests, the
// `token` query parameter.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := bearerToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	userID, err := h.tokens.Verify(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := Accept(w, r)
	if err != nil {
		slog.Warn("ws handshake failed", "user_id", userID, "error", err)
		return
	}

	connID := uuid.New()
	h.reg.Bind(connID, userID, func(payload []byte) error {
		return conn.WriteFrame(opText, payload)
	})
	metrics.ConnectionsActive.WithLabelValues().Set(float64(h.reg.Count()))
	slog.Info("connection bound", "conn_id", connID, "user_id", userID)

	defer func() {
		h.reg.Unbind(connID)
		conn.Close()
		metrics.ConnectionsActive.WithLabelValues().Set(float64(h.reg.Count()))
		slog.Info("connection unbound", "conn_id", connID, "user_id", userID)
	}()

	// The user just came online: push anything queued while they were away.
	if _, err := h.alerts.FlushQueued(r.Context(), userID); err != nil {
		slog.Error("flush queued alerts", "user_id", userID, "error", err)
	}

	done := make(chan struct{})
	go h.readLoop(conn, connID, done)

	ticker := time.NewTicker(h.ping)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteFrame(opPing, nil); err != nil {
				slog.Debug("ws ping failed", "conn_id", connID, "error", err)
				return
			}
		}
	}
}

// readLoop drains client frames: pings get pongs, close ends the session, and
// any read error counts as a disconnect. Data frames are ignored; clients only
// receive on this channel.
func (h *Handler) readLoop(conn *Conn, connID domain.ConnectionID, done chan<- struct{}) {
	defer close(done)
	for {
		opcode, payload, err := conn.ReadFrame()
		if err != nil {
			return
		}
		switch opcode {
		case opPing:
			if err := conn.WriteFrame(opPong, payload); err != nil {
				return
			}
		case opClose:
			_ = conn.WriteFrame(opClose, nil)
			return
		default:
			// inbound data frames are not part of the protocol
		}
	}
}

func bearerToken(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return ""
	}
	return strings.TrimSpace(raw[len("Bearer "):])
}
