package websocket

import (
	"context"

	"festora-chat/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisBridge relays published chat envelopes from Redis Pub/Sub into
// the hub so every connected client of a participant sees them.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	log    *logger.Logger
}

func NewRedisBridge(client *redis.Client, hub *Hub, log *logger.Logger) *RedisBridge {
	return &RedisBridge{client: client, hub: hub, log: log}
}

func (b *RedisBridge) Run(ctx context.Context) {
	pubsub := b.client.PSubscribe(ctx, "channel:user:*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.hub.Broadcast(msg.Channel, []byte(msg.Payload))
		}
	}
}
