package conversation

import (
	"database/sql"
	"testing"
	"time"

	"festora-chat/internal/domain/message"

	"github.com/google/uuid"
)

func msgAt(sender, receiver uuid.UUID, at time.Time, seq int64) message.Message {
	return message.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Kind:       message.MessageKindText,
		Body:       sql.NullString{String: "hi", Valid: true},
		Status:     message.StatusSent,
		SentAt:     at,
		Seq:        seq,
	}
}

func TestBuildSortsMessages(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	key := NewKey(a, b)
	base := time.Now()

	m1 := msgAt(a, b, base, 1)
	m2 := msgAt(b, a, base.Add(time.Second), 2)
	m3 := msgAt(a, b, base.Add(2*time.Second), 3)

	// Insertion order must not matter.
	conv := Build(key, []message.Message{m3, m1, m2})
	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}
	for i, want := range []uuid.UUID{m1.ID, m2.ID, m3.ID} {
		if conv.Messages[i].ID != want {
			t.Errorf("position %d: got %v, want %v", i, conv.Messages[i].ID, want)
		}
	}
}

func TestLastMessageSkipsDeleted(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	key := NewKey(a, b)
	base := time.Now()

	m1 := msgAt(a, b, base, 1)
	m2 := msgAt(b, a, base.Add(time.Second), 2)
	m2.Status = message.StatusDeleted

	conv := Build(key, []message.Message{m1, m2})
	last, ok := conv.LastMessage()
	if !ok {
		t.Fatal("expected a last message")
	}
	if last.ID != m1.ID {
		t.Errorf("last message should skip deleted, got %v", last.ID)
	}

	m1.Status = message.StatusDeleted
	conv = Build(key, []message.Message{m1, m2})
	if _, ok := conv.LastMessage(); ok {
		t.Error("all-deleted conversation should have no last message")
	}
}

func TestEmptyConversation(t *testing.T) {
	key := NewKey(uuid.New(), uuid.New())
	conv := Empty(key)
	if !conv.Empty() {
		t.Error("Empty() should have no messages")
	}
	if _, ok := conv.LastMessage(); ok {
		t.Error("empty conversation has no last message")
	}
	if n := conv.UnreadFor(key.A); n != 0 {
		t.Errorf("empty conversation unread = %d, want 0", n)
	}
}

func TestUnreadFor(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	key := NewKey(a, b)
	base := time.Now()

	m1 := msgAt(a, b, base, 1)
	m2 := msgAt(b, a, base.Add(time.Second), 2)
	m3 := msgAt(a, b, base.Add(2*time.Second), 3)
	m3.Status = message.StatusDelivered

	conv := Build(key, []message.Message{m1, m2, m3})
	if n := conv.UnreadFor(b); n != 2 {
		t.Errorf("UnreadFor(b) = %d, want 2", n)
	}
	if n := conv.UnreadFor(a); n != 1 {
		t.Errorf("UnreadFor(a) = %d, want 1", n)
	}
}
