package transport

import (
	"context"
	"time"

	"festora-chat/internal/domain/message"

	"github.com/google/uuid"
)

type AckKind string

const (
	AckAccepted  AckKind = "ACCEPTED"
	AckDelivered AckKind = "DELIVERED"
	AckRead      AckKind = "READ"
)

// Ack is a transport acknowledgement keyed by message id.
type Ack struct {
	MessageID uuid.UUID `json:"message_id"`
	Kind      AckKind   `json:"kind"`
	At        time.Time `json:"at"`
}

// Transport is the delivery collaborator. Submit hands a message to the
// wire and blocks until the transport accepts it; delivery and read
// acknowledgements arrive later on the Acks channel, outside the
// caller's control flow. Timeout policy for missing acks belongs to the
// caller, not the transport.
type Transport interface {
	Submit(ctx context.Context, m message.Message) (Ack, error)
	Acks() <-chan Ack
	Close() error
}
