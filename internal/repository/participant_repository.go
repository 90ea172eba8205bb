package repository

import (
	"context"
	"errors"

	"festora-chat/internal/domain/participant"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &PostgresParticipantRepository{db: db}
}

func (r *PostgresParticipantRepository) Create(ctx context.Context, p *participant.Participant) error {
	res := r.db.WithContext(ctx).Create(p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return festora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (participant.Participant, error) {
	var p participant.Participant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return participant.Participant{}, festora_errors.ErrNotFound
		}
		return participant.Participant{}, err
	}
	return p, nil
}

func (r *PostgresParticipantRepository) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]participant.Participant, error) {
	var items []participant.Participant
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]participant.Participant, len(items))
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}
