package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/event"
	"festora-chat/internal/domain/inquiry"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/domain/participant"
)

// MessageStore is the storage collaborator for the messaging core: an
// append-only message log keyed by id, with status as the only mutable
// field. Conversations are aggregated from it, never stored.
type MessageStore interface {
	Append(ctx context.Context, key conversation.Key, m *message.Message) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status message.DeliveryStatus) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]message.Message, error)
	ListByKey(ctx context.Context, key conversation.Key) ([]message.Message, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, i *inquiry.Inquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.InquiryStatus) error

	// FindActiveByTarget returns the non-terminal inquiry for the
	// conversation+target pair, or ErrNotFound.
	FindActiveByTarget(ctx context.Context, conversationKey string, t inquiry.Target) (inquiry.Inquiry, error)
	ListByConversation(ctx context.Context, conversationKey string) ([]inquiry.Inquiry, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]inquiry.Inquiry, error)
}

type ParticipantRepository interface {
	Create(ctx context.Context, p *participant.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (participant.Participant, error)
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]participant.Participant, error)
}

type EventRepository interface {
	CreateOutboxEvent(ctx context.Context, e *event.OutboxEvent) error
	GetPendingOutboxEvents(ctx context.Context, limit int) ([]event.OutboxEvent, error)
	MarkOutboxEventProcessed(ctx context.Context, id uuid.UUID) error
	MarkOutboxEventFailed(ctx context.Context, id uuid.UUID, nextRetry time.Time, reason string) error
}
