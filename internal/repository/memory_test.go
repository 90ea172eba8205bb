package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/domain/participant"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

func newMessage(sender, receiver uuid.UUID, body string) *message.Message {
	return &message.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Kind:       message.MessageKindText,
		Body:       sql.NullString{String: body, Valid: true},
		Status:     message.StatusSent,
		SentAt:     time.Now(),
	}
}

func TestMemoryStoreAppendAssignsSeq(t *testing.T) {
	store := NewMemoryMessageStore()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	key := conversation.NewKey(a, b)

	first := newMessage(a, b, "one")
	second := newMessage(b, a, "two")
	if err := store.Append(ctx, key, first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, key, second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.Seq == 0 || second.Seq <= first.Seq {
		t.Errorf("seq must grow with arrival order: %d then %d", first.Seq, second.Seq)
	}
	if first.ConversationKey != key.String() {
		t.Errorf("append should stamp the conversation key, got %q", first.ConversationKey)
	}

	if err := store.Append(ctx, key, first); !errors.Is(err, festora_errors.ErrAlreadyExists) {
		t.Errorf("re-appending the same id: expected ErrAlreadyExists, got %v", err)
	}
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	store := NewMemoryMessageStore()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	m := newMessage(a, b, "hi")
	if err := store.Append(ctx, conversation.NewKey(a, b), m); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := store.UpdateStatus(ctx, m.ID, message.StatusDeleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != message.StatusDeleted || !got.DeletedAt.Valid {
		t.Errorf("delete should set status and stamp DeletedAt, got %+v", got)
	}

	if err := store.UpdateStatus(ctx, uuid.New(), message.StatusRead); !errors.Is(err, festora_errors.ErrNotFound) {
		t.Errorf("unknown id: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListScopes(t *testing.T) {
	store := NewMemoryMessageStore()
	ctx := context.Background()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	ab := conversation.NewKey(a, b)
	ac := conversation.NewKey(a, c)
	if err := store.Append(ctx, ab, newMessage(a, b, "to b")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, ac, newMessage(a, c, "to c")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, ab, newMessage(b, a, "from b")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	forA, _ := store.ListByParticipant(ctx, a)
	if len(forA) != 3 {
		t.Errorf("participant a sees %d messages, want 3", len(forA))
	}
	forC, _ := store.ListByParticipant(ctx, c)
	if len(forC) != 1 {
		t.Errorf("participant c sees %d messages, want 1", len(forC))
	}
	inAB, _ := store.ListByKey(ctx, ab)
	if len(inAB) != 2 {
		t.Errorf("conversation a:b holds %d messages, want 2", len(inAB))
	}
	// Value copies: mutating a listed row must not touch the store.
	inAB[0].Status = message.StatusRead
	fresh, _ := store.GetByID(ctx, inAB[0].ID)
	if fresh.Status != message.StatusSent {
		t.Error("list results must be copies, store row was mutated")
	}
}

func TestMemoryParticipantsGetMany(t *testing.T) {
	repo := NewMemoryParticipantRepository()
	ctx := context.Background()

	known := uuid.New()
	if err := repo.Create(ctx, &participant.Participant{ID: known, DisplayName: "Hania", Role: participant.RoleVendor}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetMany(ctx, []uuid.UUID{known, uuid.New()})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 1 || got[known].DisplayName != "Hania" {
		t.Errorf("GetMany = %+v, want only the known participant", got)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, festora_errors.ErrNotFound) {
		t.Errorf("unknown id: expected ErrNotFound, got %v", err)
	}
}
