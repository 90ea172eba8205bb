package inquiry

import (
	"context"
	"errors"
	"testing"

	"festora-chat/internal/domain/conversation"
	domain "festora-chat/internal/domain/inquiry"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/events"
	"festora-chat/internal/repository"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

func newTestLinkage() (*Linkage, *repository.MemoryEventRepository) {
	eventRepo := repository.NewMemoryEventRepository()
	return NewLinkage(repository.NewMemoryInquiryRepository(), eventRepo, nil), eventRepo
}

func pair() conversation.Key {
	return conversation.NewKey(uuid.New(), uuid.New())
}

func TestOpenInquiry(t *testing.T) {
	linkage, eventRepo := newTestLinkage()
	ctx := context.Background()
	key := pair()
	vendor := uuid.New()
	target := domain.ServiceTarget(uuid.New(), message.ServiceTypeVenue)

	inq, err := linkage.Open(ctx, key, target, vendor, "Is the venue free on 14 March?")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if inq.Status != domain.StatusOpen {
		t.Errorf("status = %s, want OPEN", inq.Status)
	}
	if inq.ConversationKey != key.String() {
		t.Errorf("conversation key = %q, want %q", inq.ConversationKey, key)
	}

	pending, _ := eventRepo.GetPendingOutboxEvents(ctx, 0)
	if len(pending) != 1 || pending[0].EventType != events.EventTypeInquiryOpened {
		t.Errorf("expected one inquiry.opened outbox event, got %+v", pending)
	}
}

func TestOpenRejectsDuplicateTarget(t *testing.T) {
	linkage, _ := newTestLinkage()
	ctx := context.Background()
	key := pair()
	vendor := uuid.New()
	target := domain.ServiceTarget(uuid.New(), message.ServiceTypeCatering)

	first, err := linkage.Open(ctx, key, target, vendor, "first ask")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Same conversation, same target: rejected while the first is active.
	if _, err := linkage.Open(ctx, key, target, vendor, "asking again"); !errors.Is(err, festora_errors.ErrDuplicateInquiry) {
		t.Fatalf("expected ErrDuplicateInquiry, got %v", err)
	}

	// Still a duplicate after the vendor answers: ANSWERED is not terminal.
	if err := linkage.MarkAnswered(ctx, first.ID); err != nil {
		t.Fatalf("MarkAnswered: %v", err)
	}
	if _, err := linkage.Open(ctx, key, target, vendor, "third ask"); !errors.Is(err, festora_errors.ErrDuplicateInquiry) {
		t.Fatalf("expected ErrDuplicateInquiry after answer, got %v", err)
	}
}

func TestOpenAllowedAfterTerminal(t *testing.T) {
	linkage, _ := newTestLinkage()
	ctx := context.Background()
	key := pair()
	vendor := uuid.New()
	target := domain.AdTarget(uuid.New())

	first, err := linkage.Open(ctx, key, target, vendor, "about your ad")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := linkage.Close(ctx, first.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := linkage.Open(ctx, key, target, vendor, "about your ad, again")
	if err != nil {
		t.Fatalf("reopen after close should succeed: %v", err)
	}
	if err := linkage.Convert(ctx, second.ID); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if _, err := linkage.Open(ctx, key, target, vendor, "once more"); err != nil {
		t.Fatalf("reopen after convert should succeed: %v", err)
	}
}

func TestOpenDifferentTargetsCoexist(t *testing.T) {
	linkage, _ := newTestLinkage()
	ctx := context.Background()
	key := pair()
	vendor := uuid.New()

	if _, err := linkage.Open(ctx, key, domain.ServiceTarget(uuid.New(), message.ServiceTypeVenue), vendor, "hall?"); err != nil {
		t.Fatalf("Open venue: %v", err)
	}
	if _, err := linkage.Open(ctx, key, domain.ServiceTarget(uuid.New(), message.ServiceTypePhotography), vendor, "shoot?"); err != nil {
		t.Fatalf("a different target in the same conversation must be allowed: %v", err)
	}

	// Same target in a different conversation is also fine.
	other, _ := newTestLinkage()
	shared := domain.AdTarget(uuid.New())
	if _, err := linkage.Open(ctx, key, shared, vendor, "ad in conv one"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := other.Open(ctx, pair(), shared, vendor, "ad in conv two"); err != nil {
		t.Fatalf("same target in another conversation must be allowed: %v", err)
	}
}

func TestMarkAnsweredIdempotent(t *testing.T) {
	linkage, _ := newTestLinkage()
	ctx := context.Background()

	inq, err := linkage.Open(ctx, pair(), domain.AdTarget(uuid.New()), uuid.New(), "hello")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := linkage.MarkAnswered(ctx, inq.ID); err != nil {
		t.Fatalf("MarkAnswered: %v", err)
	}
	if err := linkage.MarkAnswered(ctx, inq.ID); err != nil {
		t.Fatalf("second MarkAnswered should be a no-op, got %v", err)
	}

	got, err := linkage.Get(ctx, inq.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusAnswered {
		t.Errorf("status = %s, want ANSWERED", got.Status)
	}
}

func TestTerminalInquiryRejectsTransitions(t *testing.T) {
	for _, end := range []struct {
		name     string
		finalize func(*Linkage, context.Context, uuid.UUID) error
	}{
		{"converted", func(l *Linkage, ctx context.Context, id uuid.UUID) error { return l.Convert(ctx, id) }},
		{"closed", func(l *Linkage, ctx context.Context, id uuid.UUID) error { return l.Close(ctx, id) }},
	} {
		t.Run(end.name, func(t *testing.T) {
			linkage, _ := newTestLinkage()
			ctx := context.Background()

			inq, err := linkage.Open(ctx, pair(), domain.AdTarget(uuid.New()), uuid.New(), "hello")
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if err := end.finalize(linkage, ctx, inq.ID); err != nil {
				t.Fatalf("finalize: %v", err)
			}

			if err := linkage.MarkAnswered(ctx, inq.ID); !errors.Is(err, festora_errors.ErrInvalidTransition) {
				t.Errorf("MarkAnswered on terminal: expected ErrInvalidTransition, got %v", err)
			}
			if err := linkage.Convert(ctx, inq.ID); !errors.Is(err, festora_errors.ErrInvalidTransition) {
				t.Errorf("Convert on terminal: expected ErrInvalidTransition, got %v", err)
			}
			if err := linkage.Close(ctx, inq.ID); !errors.Is(err, festora_errors.ErrInvalidTransition) {
				t.Errorf("Close on terminal: expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestOpenValidation(t *testing.T) {
	linkage, _ := newTestLinkage()
	ctx := context.Background()
	key := pair()

	if _, err := linkage.Open(ctx, key, domain.AdTarget(uuid.New()), uuid.New(), "   "); !errors.Is(err, festora_errors.ErrValidation) {
		t.Errorf("blank text: expected ErrValidation, got %v", err)
	}
	if _, err := linkage.Open(ctx, key, domain.AdTarget(uuid.Nil), uuid.New(), "hi"); !errors.Is(err, festora_errors.ErrValidation) {
		t.Errorf("nil ad id: expected ErrValidation, got %v", err)
	}
	if _, err := linkage.Open(ctx, key, domain.ServiceTarget(uuid.New(), "BOUNCY_CASTLE"), uuid.New(), "hi"); !errors.Is(err, festora_errors.ErrValidation) {
		t.Errorf("unknown service type: expected ErrValidation, got %v", err)
	}
	if _, err := linkage.Open(ctx, key, domain.AdTarget(uuid.New()), uuid.Nil, "hi"); !errors.Is(err, festora_errors.ErrValidation) {
		t.Errorf("nil vendor: expected ErrValidation, got %v", err)
	}
}

func TestListByConversationAndVendor(t *testing.T) {
	linkage, _ := newTestLinkage()
	ctx := context.Background()
	keyOne, keyTwo := pair(), pair()
	vendor := uuid.New()

	if _, err := linkage.Open(ctx, keyOne, domain.AdTarget(uuid.New()), vendor, "one"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := linkage.Open(ctx, keyTwo, domain.AdTarget(uuid.New()), vendor, "two"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := linkage.Open(ctx, keyTwo, domain.AdTarget(uuid.New()), uuid.New(), "three"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	byConv, err := linkage.ListByConversation(ctx, keyTwo)
	if err != nil {
		t.Fatalf("ListByConversation: %v", err)
	}
	if len(byConv) != 2 {
		t.Errorf("ListByConversation = %d rows, want 2", len(byConv))
	}

	byVendor, err := linkage.ListByVendor(ctx, vendor)
	if err != nil {
		t.Fatalf("ListByVendor: %v", err)
	}
	if len(byVendor) != 2 {
		t.Errorf("ListByVendor = %d rows, want 2", len(byVendor))
	}
}
