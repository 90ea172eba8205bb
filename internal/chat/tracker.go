package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/event"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/events"
	"festora-chat/internal/repository"
	festora_errors "festora-chat/pkg/errors"
	"festora-chat/pkg/logger"

	"github.com/google/uuid"
)

// DeliveryTracker owns the per-message status state machine. All status
// movement goes through it; the store is never written directly.
type DeliveryTracker struct {
	store     repository.MessageStore
	eventRepo repository.EventRepository
	log       *logger.Logger
	locks     *keyedMutex
}

func NewDeliveryTracker(store repository.MessageStore, eventRepo repository.EventRepository, log *logger.Logger) *DeliveryTracker {
	return &DeliveryTracker{
		store:     store,
		eventRepo: eventRepo,
		log:       log,
		locks:     newKeyedMutex(),
	}
}

// Send validates and appends a freshly composed message. Status is forced
// to SENT regardless of what the caller set; SentAt and ID are stamped if
// missing. Returns the stored message including the store-assigned Seq.
func (t *DeliveryTracker) Send(ctx context.Context, m message.Message) (message.Message, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	m.Status = message.StatusSent
	if err := m.Validate(); err != nil {
		return message.Message{}, err
	}

	key := conversation.NewKey(m.SenderID, m.ReceiverID)
	unlock := t.locks.lock(key.String())
	defer unlock()

	if err := t.store.Append(ctx, key, &m); err != nil {
		return message.Message{}, err
	}
	t.emit(ctx, events.EventTypeMessageSent, m)
	return m, nil
}

// MarkDelivered advances SENT -> DELIVERED. Already DELIVERED or READ is
// a no-op; a deleted message rejects every transition.
func (t *DeliveryTracker) MarkDelivered(ctx context.Context, messageID uuid.UUID) error {
	return t.advance(ctx, messageID, message.StatusDelivered, events.EventTypeReceiptDelivered)
}

// MarkRead advances SENT or DELIVERED -> READ. The SENT -> READ shortcut
// is legal: a transport may coalesce delivery and read acknowledgements.
func (t *DeliveryTracker) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	return t.advance(ctx, messageID, message.StatusRead, events.EventTypeReceiptRead)
}

// SoftDelete marks the message DELETED. The record stays in the log for
// ordering and audit; deleting an already-deleted message is a no-op.
func (t *DeliveryTracker) SoftDelete(ctx context.Context, messageID uuid.UUID) error {
	return t.advance(ctx, messageID, message.StatusDeleted, events.EventTypeMessageDeleted)
}

func (t *DeliveryTracker) advance(ctx context.Context, messageID uuid.UUID, target message.DeliveryStatus, eventType string) error {
	m, err := t.store.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	unlock := t.locks.lock(m.ConversationKey)
	defer unlock()

	// Re-read under the lock: an ack for the same message may have won
	// the race.
	m, err = t.store.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if m.Status == target {
		return nil
	}
	if !m.Status.CanAdvanceTo(target) {
		if m.Status == message.StatusDeleted {
			return fmt.Errorf("%w: message %s is deleted", festora_errors.ErrInvalidTransition, messageID)
		}
		// Backward move, e.g. a delivery ack arriving after read.
		return nil
	}

	if err := t.store.UpdateStatus(ctx, messageID, target); err != nil {
		return err
	}
	m.Status = target
	t.emit(ctx, eventType, m)
	return nil
}

func (t *DeliveryTracker) emit(ctx context.Context, eventType string, m message.Message) {
	if t.eventRepo == nil {
		return
	}
	payload, err := json.Marshal(events.MessagePayload{
		MessageID:       m.ID.String(),
		ConversationKey: m.ConversationKey,
		SenderID:        m.SenderID.String(),
		ReceiverID:      m.ReceiverID.String(),
		Status:          string(m.Status),
	})
	if err != nil {
		return
	}
	if err := t.eventRepo.CreateOutboxEvent(ctx, &event.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: events.AggregateMessage,
		AggregateID:   m.ID.String(),
		EventType:     eventType,
		Payload:       string(payload),
		CreatedAt:     time.Now(),
	}); err != nil && t.log != nil {
		t.log.Errorf("outbox write failed for %s: %v", m.ID, err)
	}
}
