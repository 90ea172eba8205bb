package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"festora-chat/internal/domain/message"
	"festora-chat/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	outboundChannel = "transport:outbound"
	ackChannel      = "transport:acks"
)

type outboundFrame struct {
	MessageID   string `json:"message_id"`
	SenderID    string `json:"sender_id"`
	ReceiverID  string `json:"receiver_id"`
	Kind        string `json:"kind"`
	Body        string `json:"body,omitempty"`
	Attachment  string `json:"attachment,omitempty"`
	ServiceType string `json:"service_type,omitempty"`
	SentAt      string `json:"sent_at"`
}

// RedisBridge carries messages and acknowledgements over Redis Pub/Sub:
// submissions go out on transport:outbound, delivery/read acks come back
// on transport:acks.
type RedisBridge struct {
	client *redis.Client
	log    *logger.Logger

	acks   chan Ack
	pubsub *redis.PubSub
	cancel context.CancelFunc
	once   sync.Once
}

func NewRedisBridge(client *redis.Client, log *logger.Logger) *RedisBridge {
	ctx, cancel := context.WithCancel(context.Background())
	b := &RedisBridge{
		client: client,
		log:    log,
		acks:   make(chan Ack, 256),
		cancel: cancel,
	}
	b.pubsub = client.Subscribe(ctx, ackChannel)
	go b.listen()
	return b
}

func (b *RedisBridge) Submit(ctx context.Context, m message.Message) (Ack, error) {
	frame := outboundFrame{
		MessageID:   m.ID.String(),
		SenderID:    m.SenderID.String(),
		ReceiverID:  m.ReceiverID.String(),
		Kind:        string(m.Kind),
		Body:        m.Body.String,
		Attachment:  m.AttachmentURL.String,
		ServiceType: string(m.ServiceType),
		SentAt:      m.SentAt.UTC().Format(time.RFC3339Nano),
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return Ack{}, err
	}
	if err := b.client.Publish(ctx, outboundChannel, payload).Err(); err != nil {
		return Ack{}, err
	}
	return Ack{MessageID: m.ID, Kind: AckAccepted, At: time.Now()}, nil
}

func (b *RedisBridge) Acks() <-chan Ack {
	return b.acks
}

func (b *RedisBridge) listen() {
	for msg := range b.pubsub.Channel() {
		var ack Ack
		if err := json.Unmarshal([]byte(msg.Payload), &ack); err != nil {
			if b.log != nil {
				b.log.Errorf("malformed ack frame: %v", err)
			}
			continue
		}
		if ack.Kind != AckDelivered && ack.Kind != AckRead {
			continue
		}
		select {
		case b.acks <- ack:
		default:
			if b.log != nil {
				b.log.Errorf("ack channel full, dropping %s ack for %s", ack.Kind, ack.MessageID)
			}
		}
	}
}

func (b *RedisBridge) Close() error {
	var err error
	b.once.Do(func() {
		b.cancel()
		err = b.pubsub.Close()
		close(b.acks)
	})
	return err
}
