package controllers

import (
	"log"
	"net/http"

	"caltrack/middlewares"
	"caltrack/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

// Connect upgrades the request and keeps the client registered until it
// disconnects. The hub pushes progress snapshots; nothing inbound is acted
// on.
func (h *RealtimeController) Connect(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
