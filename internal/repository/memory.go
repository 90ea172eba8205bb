package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/event"
	"festora-chat/internal/domain/inquiry"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/domain/participant"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

// MemoryMessageStore is the in-process MessageStore: an append-only log
// plus an id index. Status is the only field mutated after append.
type MemoryMessageStore struct {
	mu   sync.RWMutex
	log  []uuid.UUID
	byID map[uuid.UUID]*message.Message
	seq  int64
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{byID: make(map[uuid.UUID]*message.Message)}
}

func (s *MemoryMessageStore) Append(ctx context.Context, key conversation.Key, m *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[m.ID]; exists {
		return festora_errors.ErrAlreadyExists
	}
	s.seq++
	m.Seq = s.seq
	m.ConversationKey = key.String()
	stored := *m
	s.byID[m.ID] = &stored
	s.log = append(s.log, m.ID)
	return nil
}

func (s *MemoryMessageStore) UpdateStatus(ctx context.Context, id uuid.UUID, status message.DeliveryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return festora_errors.ErrNotFound
	}
	m.Status = status
	if status == message.StatusDeleted {
		m.DeletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return nil
}

func (s *MemoryMessageStore) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return message.Message{}, festora_errors.ErrNotFound
	}
	return *m, nil
}

func (s *MemoryMessageStore) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []message.Message
	for _, id := range s.log {
		m := s.byID[id]
		if m.SenderID == participantID || m.ReceiverID == participantID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *MemoryMessageStore) ListByKey(ctx context.Context, key conversation.Key) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ks := key.String()
	var out []message.Message
	for _, id := range s.log {
		m := s.byID[id]
		if m.ConversationKey == ks {
			out = append(out, *m)
		}
	}
	return out, nil
}

// MemoryInquiryRepository backs inquiry tracking in tests and local runs.
type MemoryInquiryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*inquiry.Inquiry
	ord  []uuid.UUID
}

func NewMemoryInquiryRepository() *MemoryInquiryRepository {
	return &MemoryInquiryRepository{byID: make(map[uuid.UUID]*inquiry.Inquiry)}
}

func (r *MemoryInquiryRepository) Create(ctx context.Context, i *inquiry.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[i.ID]; exists {
		return festora_errors.ErrAlreadyExists
	}
	stored := *i
	r.byID[i.ID] = &stored
	r.ord = append(r.ord, i.ID)
	return nil
}

func (r *MemoryInquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return inquiry.Inquiry{}, festora_errors.ErrNotFound
	}
	return *i, nil
}

func (r *MemoryInquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.InquiryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return festora_errors.ErrNotFound
	}
	i.Status = status
	i.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryInquiryRepository) FindActiveByTarget(ctx context.Context, conversationKey string, t inquiry.Target) (inquiry.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := t.Identity()
	for _, id := range r.ord {
		i := r.byID[id]
		if i.ConversationKey == conversationKey && !i.Status.Terminal() && i.Target.Identity() == want {
			return *i, nil
		}
	}
	return inquiry.Inquiry{}, festora_errors.ErrNotFound
}

func (r *MemoryInquiryRepository) ListByConversation(ctx context.Context, conversationKey string) ([]inquiry.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []inquiry.Inquiry
	for _, id := range r.ord {
		if i := r.byID[id]; i.ConversationKey == conversationKey {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *MemoryInquiryRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]inquiry.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []inquiry.Inquiry
	for _, id := range r.ord {
		if i := r.byID[id]; i.VendorID == vendorID {
			out = append(out, *i)
		}
	}
	return out, nil
}

// MemoryParticipantRepository is the in-process participant directory.
type MemoryParticipantRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]participant.Participant
}

func NewMemoryParticipantRepository() *MemoryParticipantRepository {
	return &MemoryParticipantRepository{byID: make(map[uuid.UUID]participant.Participant)}
}

func (r *MemoryParticipantRepository) Create(ctx context.Context, p *participant.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[p.ID]; exists {
		return festora_errors.ErrAlreadyExists
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *MemoryParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return participant.Participant{}, festora_errors.ErrNotFound
	}
	return p, nil
}

func (r *MemoryParticipantRepository) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]participant.Participant, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// MemoryEventRepository collects outbox rows in-process.
type MemoryEventRepository struct {
	mu   sync.RWMutex
	rows []*event.OutboxEvent
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{}
}

func (r *MemoryEventRepository) CreateOutboxEvent(ctx context.Context, e *event.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	r.rows = append(r.rows, &stored)
	return nil
}

func (r *MemoryEventRepository) GetPendingOutboxEvents(ctx context.Context, limit int) ([]event.OutboxEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	var out []event.OutboxEvent
	for _, e := range r.rows {
		if e.ProcessedAt.Valid {
			continue
		}
		if e.NextRetryAt.Valid && e.NextRetryAt.Time.After(now) {
			continue
		}
		out = append(out, *e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryEventRepository) MarkOutboxEventProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID == id {
			e.ProcessedAt = sql.NullTime{Time: time.Now(), Valid: true}
			e.ErrorMessage = sql.NullString{}
			return nil
		}
	}
	return festora_errors.ErrNotFound
}

func (r *MemoryEventRepository) MarkOutboxEventFailed(ctx context.Context, id uuid.UUID, nextRetry time.Time, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID == id {
			e.RetryCount++
			e.NextRetryAt = sql.NullTime{Time: nextRetry, Valid: true}
			e.ErrorMessage = sql.NullString{String: reason, Valid: true}
			return nil
		}
	}
	return festora_errors.ErrNotFound
}
