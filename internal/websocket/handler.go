package websocket

import (
	"context"
	"net/http"
	"time"

	"festora-chat/internal/middleware"
	"festora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Connect upgrades an authenticated request and subscribes the client to
// its participant channel. Runs behind AuthMiddleware (token accepted as
// a query parameter for browser websocket clients).
func (h *Handler) Connect(c *gin.Context) {
	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, participantID.String())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	h.hub.Subscribe(client, "channel:user:"+participantID.String())
	go client.WriteLoop(ctx)

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}

	h.hub.Unregister(client)
}
