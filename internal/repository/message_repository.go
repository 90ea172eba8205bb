package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/message"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) MessageStore {
	return &PostgresMessageStore{db: db}
}

func (r *PostgresMessageStore) Append(ctx context.Context, key conversation.Key, m *message.Message) error {
	m.ConversationKey = key.String()
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return festora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMessageStore) UpdateStatus(ctx context.Context, id uuid.UUID, status message.DeliveryStatus) error {
	fields := map[string]interface{}{"status": status}
	if status == message.StatusDeleted {
		fields["deleted_at"] = sql.NullTime{Time: time.Now(), Valid: true}
	}
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return festora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageStore) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, festora_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageStore) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]message.Message, error) {
	var msgs []message.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", participantID, participantID).
		Order("sent_at ASC, seq ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *PostgresMessageStore) ListByKey(ctx context.Context, key conversation.Key) ([]message.Message, error) {
	var msgs []message.Message
	err := r.db.WithContext(ctx).
		Where("conversation_key = ?", key.String()).
		Order("sent_at ASC, seq ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
