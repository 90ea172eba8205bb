package message

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

// Message represents the messages table. Records are append-only: after
// creation only Status (and DeletedAt on soft delete) ever change.
type Message struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationKey string    `gorm:"not null;index"` // set by the store on append
	SenderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind            MessageKind
	Body            sql.NullString
	AttachmentURL   sql.NullString
	ServiceType     ServiceType
	Status          DeliveryStatus
	SentAt          time.Time `gorm:"not null"`
	Seq             int64     `gorm:"autoIncrement"` // arrival order, assigned by the store
	DeletedAt       sql.NullTime
}

func (Message) TableName() string {
	return "messages"
}

// Validate enforces the composition invariants: distinct participants, a
// known kind, and the kind-appropriate payload field populated.
func (m Message) Validate() error {
	if m.SenderID == uuid.Nil || m.ReceiverID == uuid.Nil {
		return fmt.Errorf("%w: sender and receiver are required", festora_errors.ErrValidation)
	}
	if m.SenderID == m.ReceiverID {
		return fmt.Errorf("%w: sender and receiver must differ", festora_errors.ErrValidation)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: unknown message kind %q", festora_errors.ErrValidation, m.Kind)
	}
	if !m.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", festora_errors.ErrValidation, m.ServiceType)
	}
	if m.Kind.RequiresAttachment() {
		if !m.AttachmentURL.Valid || strings.TrimSpace(m.AttachmentURL.String) == "" {
			return fmt.Errorf("%w: %s message requires an attachment", festora_errors.ErrValidation, m.Kind)
		}
		return nil
	}
	if !m.Body.Valid || strings.TrimSpace(m.Body.String) == "" {
		return fmt.Errorf("%w: text message requires a body", festora_errors.ErrValidation)
	}
	return nil
}

func (m Message) Deleted() bool {
	return m.Status == StatusDeleted
}

// UnreadBy reports whether the message counts against viewer's unread
// badge: addressed to the viewer, not soft-deleted, and not yet read.
func (m Message) UnreadBy(viewer uuid.UUID) bool {
	return m.ReceiverID == viewer && !m.Deleted() && m.Status.Rank() < StatusRead.Rank()
}

// Compare orders messages within a conversation: SentAt ascending, then
// Seq (arrival at the tracker), then ID string. Deterministic regardless
// of sort stability.
func Compare(a, b Message) int {
	if !a.SentAt.Equal(b.SentAt) {
		if a.SentAt.Before(b.SentAt) {
			return -1
		}
		return 1
	}
	if a.Seq != b.Seq {
		if a.Seq < b.Seq {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
