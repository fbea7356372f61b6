package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ladelta/bakery-service/internal/api"
	"github.com/ladelta/bakery-service/internal/middleware"
	"github.com/ladelta/bakery-service/internal/websockets"
)

// WebSocketHandler upgrades authenticated dashboard connections onto the
// order event feed.
type WebSocketHandler struct {
	hub *websockets.Hub
}

func NewWebSocketHandler(hub *websockets.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// The dashboard is served from the same origin; anything else is out of
	// scope for now.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		api.NotAuthenticated(w)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error to the response.
		return
	}

	websockets.ServeWs(h.hub, conn, identity.UserID)
}
