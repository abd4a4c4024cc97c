package api

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"venue-booking/internal/handler/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type StreamHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewStreamHandler(hub *ws.Hub, allowedOrigins []string, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin) || slices.Contains(allowedOrigins, "*")
			},
		},
		logger: logger,
	}
}

// @Summary Live booking feed
// @Description WebSocket stream of booking.created, booking.status_changed and booking.deleted events
// @Tags admin
// @Security BearerAuth
// @Param access_token query string false "Token when cookies are unavailable"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} httperr.Response
// @Router /admin/bookings/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := h.hub.Register()
	h.logger.Info("admin stream connected", slog.Int("online", h.hub.OnlineCount()))

	go h.writeLoop(conn, client)
	h.readLoop(conn)

	h.hub.Unregister(client)
	h.logger.Info("admin stream disconnected", slog.Int("online", h.hub.OnlineCount()))
}

// readLoop only services control frames; the feed is one-way.
func (h *StreamHandler) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (h *StreamHandler) writeLoop(conn *websocket.Conn, client *ws.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
