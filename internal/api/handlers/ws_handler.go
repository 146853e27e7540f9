package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/projectsign/internal/api/middleware"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/pkg/utils"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.OriginAllowed(origin)
	},
}

// EventsHandler pushes signing events to the owner's open dashboards.
type EventsHandler struct {
	hub *application.EventHub
}

func NewEventsHandler(hub *application.EventHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Watch godoc
// @Summary Subscribe to signing events
// @Description Upgrades to a websocket. Each message is a signing.SignedEvent as JSON.
// @Tags events
// @Security BearerAuth
// @Router /ws/events [get]
func (h *EventsHandler) Watch(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	events, cancel := h.hub.Subscribe(uid)
	defer cancel()

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					zap.L().Info("websocket closed", zap.Uint("user_id", uid), zap.Error(err))
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer func() { _ = conn.Close() }()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
