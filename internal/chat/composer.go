package chat

import (
	"context"
	"database/sql"
	"time"

	"festora-chat/internal/domain/message"
	"festora-chat/internal/transport"
	festora_errors "festora-chat/pkg/errors"
	"festora-chat/pkg/logger"

	"github.com/google/uuid"
)

// Draft is the composer-submit payload from the chat window.
type Draft struct {
	SenderID      uuid.UUID
	ReceiverID    uuid.UUID
	Kind          message.MessageKind
	Body          string
	AttachmentURL string
	ServiceType   message.ServiceType
}

// Composer is the send pipeline: build the message, hand it to the
// transport, then record it through the tracker. Cancellation is honored
// only before the transport accepts; after that the message exists and
// the only cancellation-equivalent is SoftDelete.
type Composer struct {
	tracker   *DeliveryTracker
	transport transport.Transport
	log       *logger.Logger
}

func NewComposer(tracker *DeliveryTracker, tr transport.Transport, log *logger.Logger) *Composer {
	return &Composer{tracker: tracker, transport: tr, log: log}
}

func (c *Composer) Send(ctx context.Context, d Draft) (message.Message, error) {
	m := message.Message{
		ID:            uuid.New(),
		SenderID:      d.SenderID,
		ReceiverID:    d.ReceiverID,
		Kind:          d.Kind,
		Body:          nullString(d.Body),
		AttachmentURL: nullString(d.AttachmentURL),
		ServiceType:   d.ServiceType,
		SentAt:        time.Now(),
	}
	if err := m.Validate(); err != nil {
		return message.Message{}, err
	}

	select {
	case <-ctx.Done():
		return message.Message{}, festora_errors.ErrSendCancelled
	default:
	}

	if _, err := c.transport.Submit(ctx, m); err != nil {
		return message.Message{}, err
	}

	stored, err := c.tracker.Send(ctx, m)
	if err != nil {
		return message.Message{}, err
	}
	if c.log != nil {
		c.log.Infof("message %s sent %s -> %s", stored.ID, stored.SenderID, stored.ReceiverID)
	}
	return stored, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
