package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"festora-chat/internal/domain/message"
	"festora-chat/internal/repository"
	"festora-chat/internal/transport"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

func TestComposerSendThroughLoopback(t *testing.T) {
	store := repository.NewMemoryMessageStore()
	tracker := NewDeliveryTracker(store, nil, nil)
	loop := transport.NewLoopback()
	defer loop.Close()
	composer := NewComposer(tracker, loop, nil)

	a, b := uuid.New(), uuid.New()
	stored, err := composer.Send(context.Background(), Draft{
		SenderID:   a,
		ReceiverID: b,
		Kind:       message.MessageKindText,
		Body:       "asar tak jawab de dena",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if stored.Status != message.StatusSent {
		t.Errorf("status = %s, want SENT", stored.Status)
	}

	persisted, err := store.GetByID(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if persisted.Body.String != "asar tak jawab de dena" {
		t.Errorf("body = %q", persisted.Body.String)
	}
}

func TestComposerCancelBeforeSubmit(t *testing.T) {
	store := repository.NewMemoryMessageStore()
	tracker := NewDeliveryTracker(store, nil, nil)
	loop := transport.NewLoopback()
	defer loop.Close()
	composer := NewComposer(tracker, loop, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := composer.Send(ctx, Draft{
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		Kind:       message.MessageKindText,
		Body:       "never goes out",
	})
	if !errors.Is(err, festora_errors.ErrSendCancelled) {
		t.Fatalf("expected ErrSendCancelled, got %v", err)
	}

	// Nothing was appended: the cancel landed before the transport.
	msgs, _ := store.ListByParticipant(context.Background(), uuid.Nil)
	if len(msgs) != 0 {
		t.Errorf("store should be empty, has %d messages", len(msgs))
	}
}

func TestComposerValidatesBeforeTransport(t *testing.T) {
	store := repository.NewMemoryMessageStore()
	tracker := NewDeliveryTracker(store, nil, nil)
	loop := transport.NewLoopback()
	defer loop.Close()
	composer := NewComposer(tracker, loop, nil)

	self := uuid.New()
	_, err := composer.Send(context.Background(), Draft{
		SenderID:   self,
		ReceiverID: self,
		Kind:       message.MessageKindText,
		Body:       "echo",
	})
	if !errors.Is(err, festora_errors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAckPumpAppliesTransportAcks(t *testing.T) {
	store := repository.NewMemoryMessageStore()
	tracker := NewDeliveryTracker(store, nil, nil)
	loop := transport.NewLoopback()
	composer := NewComposer(tracker, loop, nil)
	pump := NewAckPump(tracker, loop, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		pump.Run(ctx)
		close(done)
	}()

	stored, err := composer.Send(ctx, Draft{
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		Kind:       message.MessageKindText,
		Body:       "ping",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	loop.Deliver(stored.ID)
	waitForStatus(t, store, stored.ID, message.StatusDelivered)

	loop.Read(stored.ID)
	waitForStatus(t, store, stored.ID, message.StatusRead)

	// A duplicate and a stale ack are both absorbed without error.
	loop.Read(stored.ID)
	loop.Deliver(stored.ID)
	time.Sleep(20 * time.Millisecond)
	if got := mustStatus(t, store, stored.ID); got != message.StatusRead {
		t.Errorf("status = %s after stale acks, want READ", got)
	}

	loop.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after transport close")
	}
}

func waitForStatus(t *testing.T, store *repository.MemoryMessageStore, id uuid.UUID, want message.DeliveryStatus) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m, err := store.GetByID(context.Background(), id)
		if err == nil && m.Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("message %s never reached %s", id, want)
}
