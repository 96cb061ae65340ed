package handler

import (
	"net/http"

	"radlab-backoffice/internal/delivery/http/middleware"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/pkg/response"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type WebSocketHandler struct {
	hub      *service.NotificationHub
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *service.NotificationHub, log *logrus.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are filtered by the CORS middleware in front of this route.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the connection and keeps it registered with the hub
// until the client disconnects. The socket is push-only, inbound frames
// are discarded.
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("Failed to upgrade websocket connection: %+v", err)
		return
	}

	h.hub.Register(user.ID, conn)
	defer h.hub.Unregister(user.ID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
