package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents one WebSocket connection for a participant.
type Client struct {
	ID            string
	ParticipantID string
	Conn          *websocket.Conn
	Send          chan []byte
	channels      map[string]bool
	mu            sync.RWMutex
}

func NewClient(conn *websocket.Conn, participantID string) *Client {
	return &Client{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		Conn:          conn,
		Send:          make(chan []byte, 256),
		channels:      make(map[string]bool),
	}
}

func (c *Client) Subscribe(channel string) {
	c.mu.Lock()
	c.channels[channel] = true
	c.mu.Unlock()
}

func (c *Client) Unsubscribe(channel string) {
	c.mu.Lock()
	delete(c.channels, channel)
	c.mu.Unlock()
}

func (c *Client) IsSubscribed(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channels[channel]
}

// SendMessage queues payload for delivery; slow consumers drop frames
// rather than block the hub.
func (c *Client) SendMessage(payload []byte) {
	select {
	case c.Send <- payload:
	default:
	}
}

// WriteLoop pumps queued frames onto the wire with periodic pings.
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-c.Send:
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
