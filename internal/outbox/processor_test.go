package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/event"
	"festora-chat/internal/events"
	"festora-chat/internal/repository"

	"github.com/google/uuid"
)

func seedMessageEvent(t *testing.T, repo *repository.MemoryEventRepository) event.OutboxEvent {
	t.Helper()
	key := conversation.NewKey(uuid.New(), uuid.New())
	payload, _ := json.Marshal(events.MessagePayload{
		MessageID:       uuid.NewString(),
		ConversationKey: key.String(),
		Status:          "SENT",
	})
	e := event.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: events.AggregateMessage,
		AggregateID:   uuid.NewString(),
		EventType:     events.EventTypeMessageSent,
		Payload:       string(payload),
		CreatedAt:     time.Now(),
	}
	if err := repo.CreateOutboxEvent(context.Background(), &e); err != nil {
		t.Fatalf("CreateOutboxEvent: %v", err)
	}
	return e
}

func TestProcessBatchPublishesAndMarks(t *testing.T) {
	repo := repository.NewMemoryEventRepository()
	seedMessageEvent(t, repo)

	var published []string
	pub := events.PublisherFunc(func(ctx context.Context, channel string, payload []byte) error {
		published = append(published, channel)
		var env events.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			t.Errorf("published payload is not an envelope: %v", err)
		}
		return nil
	})

	p := NewProcessor(repo, pub, 100, time.Second, 5)
	p.processBatch(context.Background())

	if len(published) != 2 {
		t.Fatalf("expected a publish per participant channel, got %d", len(published))
	}
	pending, _ := repo.GetPendingOutboxEvents(context.Background(), 0)
	if len(pending) != 0 {
		t.Errorf("event should be marked processed, %d still pending", len(pending))
	}
}

func TestProcessBatchRetriesOnPublishFailure(t *testing.T) {
	repo := repository.NewMemoryEventRepository()
	seeded := seedMessageEvent(t, repo)

	pub := events.PublisherFunc(func(ctx context.Context, channel string, payload []byte) error {
		return errors.New("broker down")
	})
	p := NewProcessor(repo, pub, 100, time.Second, 5)
	p.processBatch(context.Background())

	// The failed event backs off; it is not pending right now but also
	// never marked processed.
	pending, _ := repo.GetPendingOutboxEvents(context.Background(), 0)
	if len(pending) != 0 {
		t.Errorf("failed event should be backing off, got %d pending", len(pending))
	}
	if err := repo.MarkOutboxEventFailed(context.Background(), seeded.ID, time.Now(), "reset backoff"); err != nil {
		t.Fatalf("MarkOutboxEventFailed: %v", err)
	}
	pending, _ = repo.GetPendingOutboxEvents(context.Background(), 0)
	if len(pending) != 1 {
		t.Fatalf("event should be retryable once the backoff expires, got %d", len(pending))
	}
	if pending[0].RetryCount != 2 {
		t.Errorf("retry count = %d, want 2", pending[0].RetryCount)
	}
}

func TestProcessBatchParksExhaustedEvents(t *testing.T) {
	repo := repository.NewMemoryEventRepository()
	seeded := seedMessageEvent(t, repo)
	ctx := context.Background()

	// Burn through the retry budget.
	for i := 0; i < 3; i++ {
		if err := repo.MarkOutboxEventFailed(ctx, seeded.ID, time.Now().Add(-time.Second), "boom"); err != nil {
			t.Fatalf("MarkOutboxEventFailed: %v", err)
		}
	}

	calls := 0
	pub := events.PublisherFunc(func(ctx context.Context, channel string, payload []byte) error {
		calls++
		return nil
	})
	p := NewProcessor(repo, pub, 100, time.Second, 3)
	p.processBatch(ctx)

	if calls != 0 {
		t.Errorf("exhausted event must not be published, saw %d calls", calls)
	}
	pending, _ := repo.GetPendingOutboxEvents(ctx, 0)
	if len(pending) != 0 {
		t.Errorf("exhausted event should be parked, got %d pending", len(pending))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := repository.NewMemoryEventRepository()
	pub := events.PublisherFunc(func(ctx context.Context, channel string, payload []byte) error { return nil })
	p := NewProcessor(repo, pub, 10, 5*time.Millisecond, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
