package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/event"
	domain "festora-chat/internal/domain/inquiry"
	"festora-chat/internal/events"
	"festora-chat/internal/repository"
	festora_errors "festora-chat/pkg/errors"
	"festora-chat/pkg/logger"

	"github.com/google/uuid"
)

// Linkage tracks inquiry lifecycle anchored to a conversation. Inquiry
// status is a business annotation on the thread; it never feeds back
// into message or conversation state.
type Linkage struct {
	repo      repository.InquiryRepository
	eventRepo repository.EventRepository
	log       *logger.Logger

	// serializes duplicate-detection with creation
	openMu sync.Mutex
}

func NewLinkage(repo repository.InquiryRepository, eventRepo repository.EventRepository, log *logger.Logger) *Linkage {
	return &Linkage{repo: repo, eventRepo: eventRepo, log: log}
}

// Open creates an inquiry in status OPEN. A second open (non-terminal)
// inquiry for the same conversation+target is rejected; once the first
// is converted or closed a new one may be opened.
func (l *Linkage) Open(ctx context.Context, key conversation.Key, target domain.Target, vendorID uuid.UUID, text string) (domain.Inquiry, error) {
	now := time.Now()
	inq := domain.Inquiry{
		ID:              uuid.New(),
		ConversationKey: key.String(),
		Target:          target,
		InquiryText:     text,
		VendorID:        vendorID,
		Status:          domain.StatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := inq.Validate(); err != nil {
		return domain.Inquiry{}, err
	}

	l.openMu.Lock()
	defer l.openMu.Unlock()

	existing, err := l.repo.FindActiveByTarget(ctx, inq.ConversationKey, target)
	if err == nil {
		return domain.Inquiry{}, fmt.Errorf("%w: inquiry %s", festora_errors.ErrDuplicateInquiry, existing.ID)
	}
	if !errors.Is(err, festora_errors.ErrNotFound) {
		return domain.Inquiry{}, err
	}

	if err := l.repo.Create(ctx, &inq); err != nil {
		return domain.Inquiry{}, err
	}
	l.emit(ctx, events.EventTypeInquiryOpened, inq)
	return inq, nil
}

// MarkAnswered moves OPEN -> ANSWERED. Already ANSWERED is a no-op;
// terminal inquiries reject the transition.
func (l *Linkage) MarkAnswered(ctx context.Context, inquiryID uuid.UUID) error {
	inq, err := l.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	if inq.Status == domain.StatusAnswered {
		return nil
	}
	if inq.Status.Terminal() {
		return fmt.Errorf("%w: inquiry %s is %s", festora_errors.ErrInvalidTransition, inquiryID, inq.Status)
	}
	if err := l.repo.UpdateStatus(ctx, inquiryID, domain.StatusAnswered); err != nil {
		return err
	}
	inq.Status = domain.StatusAnswered
	l.emit(ctx, events.EventTypeInquiryAnswered, inq)
	return nil
}

// Convert moves OPEN or ANSWERED to the CONVERTED terminal state.
func (l *Linkage) Convert(ctx context.Context, inquiryID uuid.UUID) error {
	return l.finalize(ctx, inquiryID, domain.StatusConverted, events.EventTypeInquiryConverted)
}

// Close moves OPEN or ANSWERED to the CLOSED terminal state.
func (l *Linkage) Close(ctx context.Context, inquiryID uuid.UUID) error {
	return l.finalize(ctx, inquiryID, domain.StatusClosed, events.EventTypeInquiryClosed)
}

func (l *Linkage) finalize(ctx context.Context, inquiryID uuid.UUID, target domain.InquiryStatus, eventType string) error {
	inq, err := l.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	if inq.Status.Terminal() {
		return fmt.Errorf("%w: inquiry %s is %s", festora_errors.ErrInvalidTransition, inquiryID, inq.Status)
	}
	if err := l.repo.UpdateStatus(ctx, inquiryID, target); err != nil {
		return err
	}
	inq.Status = target
	l.emit(ctx, eventType, inq)
	return nil
}

func (l *Linkage) Get(ctx context.Context, inquiryID uuid.UUID) (domain.Inquiry, error) {
	return l.repo.GetByID(ctx, inquiryID)
}

func (l *Linkage) ListByConversation(ctx context.Context, key conversation.Key) ([]domain.Inquiry, error) {
	return l.repo.ListByConversation(ctx, key.String())
}

func (l *Linkage) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.Inquiry, error) {
	return l.repo.ListByVendor(ctx, vendorID)
}

func (l *Linkage) emit(ctx context.Context, eventType string, inq domain.Inquiry) {
	if l.eventRepo == nil {
		return
	}
	payload, err := json.Marshal(events.InquiryPayload{
		InquiryID:       inq.ID.String(),
		ConversationKey: inq.ConversationKey,
		VendorID:        inq.VendorID.String(),
		Status:          string(inq.Status),
	})
	if err != nil {
		return
	}
	if err := l.eventRepo.CreateOutboxEvent(ctx, &event.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: events.AggregateInquiry,
		AggregateID:   inq.ID.String(),
		EventType:     eventType,
		Payload:       string(payload),
		CreatedAt:     time.Now(),
	}); err != nil && l.log != nil {
		l.log.Errorf("outbox write failed for inquiry %s: %v", inq.ID, err)
	}
}
