package repository

import (
	"context"
	"errors"
	"time"

	"festora-chat/internal/domain/inquiry"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresInquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &PostgresInquiryRepository{db: db}
}

func (r *PostgresInquiryRepository) Create(ctx context.Context, i *inquiry.Inquiry) error {
	res := r.db.WithContext(ctx).Create(i)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return festora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresInquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	var i inquiry.Inquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inquiry.Inquiry{}, festora_errors.ErrNotFound
		}
		return inquiry.Inquiry{}, err
	}
	return i, nil
}

func (r *PostgresInquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.InquiryStatus) error {
	res := r.db.WithContext(ctx).
		Model(&inquiry.Inquiry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return festora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresInquiryRepository) FindActiveByTarget(ctx context.Context, conversationKey string, t inquiry.Target) (inquiry.Inquiry, error) {
	q := r.db.WithContext(ctx).
		Where("conversation_key = ?", conversationKey).
		Where("status IN ?", []inquiry.InquiryStatus{inquiry.StatusOpen, inquiry.StatusAnswered}).
		Where("target_kind = ?", t.Kind)
	if t.Kind == inquiry.KindAd {
		q = q.Where("target_ad_id = ?", t.AdID)
	} else {
		q = q.Where("target_service_id = ? AND target_service_type = ?", t.ServiceID, t.ServiceType)
	}

	var i inquiry.Inquiry
	err := q.First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inquiry.Inquiry{}, festora_errors.ErrNotFound
		}
		return inquiry.Inquiry{}, err
	}
	return i, nil
}

func (r *PostgresInquiryRepository) ListByConversation(ctx context.Context, conversationKey string) ([]inquiry.Inquiry, error) {
	var items []inquiry.Inquiry
	err := r.db.WithContext(ctx).
		Where("conversation_key = ?", conversationKey).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresInquiryRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]inquiry.Inquiry, error) {
	var items []inquiry.Inquiry
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
