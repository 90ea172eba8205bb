package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Handler consumes a deserialized envelope.
type Handler func(ctx context.Context, env Envelope)

// RedisBus implements Publisher over Redis Pub/Sub and fans incoming
// envelopes out to subscribed handlers.
type RedisBus struct {
	client   *redis.Client
	handlers map[string][]Handler
	pubsub   *redis.PubSub
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	running  bool
}

func NewRedisBus(client *redis.Client) *RedisBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisBus{
		client:   client,
		handlers: make(map[string][]Handler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (b *RedisBus) Start() error {
	b.running = true
	b.pubsub = b.client.PSubscribe(b.ctx, "channel:*")
	go b.listen()
	return nil
}

func (b *RedisBus) Stop() error {
	b.cancel()
	b.running = false
	if b.pubsub != nil {
		return b.pubsub.Close()
	}
	return nil
}

func (b *RedisBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if !b.running {
		return fmt.Errorf("event bus not started")
	}
	return b.client.Publish(ctx, channel, payload).Err()
}

func (b *RedisBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

func (b *RedisBus) listen() {
	for msg := range b.pubsub.Channel() {
		var env Envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			continue
		}
		b.mu.RLock()
		handlers := b.handlers[env.EventType]
		b.mu.RUnlock()
		for _, h := range handlers {
			h(b.ctx, env)
		}
	}
}
