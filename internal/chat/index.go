package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	"festora-chat/internal/domain/conversation"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/repository"

	"github.com/google/uuid"
)

// ListOptions controls one List call. Paging is restartable: every call
// re-aggregates from the store, so pages can be requested independently
// and in any order.
type ListOptions struct {
	Query string // case-insensitive substring match on the other participant's display name
	Page  int    // 1-based
	Limit int
}

// Summary is one row of a participant's conversation list, viewed from
// that participant's side.
type Summary struct {
	Conversation conversation.Conversation
	OtherID      uuid.UUID
	OtherName    string
	LastMessage  *message.Message
	Unread       int
}

// ConversationIndex aggregates the flat message log into per-participant
// conversation lists. It holds no state of its own.
type ConversationIndex struct {
	store     repository.MessageStore
	directory repository.ParticipantRepository
}

func NewConversationIndex(store repository.MessageStore, directory repository.ParticipantRepository) *ConversationIndex {
	return &ConversationIndex{store: store, directory: directory}
}

// List returns the participant's conversations sorted descending by last
// message time, ties broken by conversation key string. The name filter
// only narrows the returned view; it never touches ordering or counts of
// the underlying data.
func (ix *ConversationIndex) List(ctx context.Context, participantID uuid.UUID, opts ListOptions) ([]Summary, error) {
	msgs, err := ix.store.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]message.Message)
	for _, m := range msgs {
		grouped[m.ConversationKey] = append(grouped[m.ConversationKey], m)
	}

	summaries := make([]Summary, 0, len(grouped))
	otherIDs := make([]uuid.UUID, 0, len(grouped))
	for ks, group := range grouped {
		key, err := conversation.ParseKey(ks)
		if err != nil {
			continue
		}
		conv := conversation.Build(key, group)
		s := Summary{
			Conversation: conv,
			OtherID:      key.Other(participantID),
			Unread:       conv.UnreadFor(participantID),
		}
		if last, ok := conv.LastMessage(); ok {
			lastCopy := last
			s.LastMessage = &lastCopy
		}
		summaries = append(summaries, s)
		otherIDs = append(otherIDs, s.OtherID)
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		at, bt := lastSentAt(a), lastSentAt(b)
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return a.Conversation.Key.String() < b.Conversation.Key.String()
	})

	if ix.directory != nil && len(otherIDs) > 0 {
		names, err := ix.directory.GetMany(ctx, otherIDs)
		if err != nil {
			return nil, err
		}
		for i := range summaries {
			if p, ok := names[summaries[i].OtherID]; ok {
				summaries[i].OtherName = p.DisplayName
			}
		}
	}

	if q := strings.TrimSpace(opts.Query); q != "" {
		q = strings.ToLower(q)
		filtered := summaries[:0]
		for _, s := range summaries {
			if strings.Contains(strings.ToLower(s.OtherName), q) {
				filtered = append(filtered, s)
			}
		}
		summaries = filtered
	}

	return paginate(summaries, opts.Page, opts.Limit), nil
}

// Get returns the pair's conversation, or the well-defined empty
// conversation when the pair has not exchanged a message yet. Absence is
// not an error: a conversation materializes on first send.
func (ix *ConversationIndex) Get(ctx context.Context, participantID, otherParticipantID uuid.UUID) (conversation.Conversation, error) {
	key := conversation.NewKey(participantID, otherParticipantID)
	msgs, err := ix.store.ListByKey(ctx, key)
	if err != nil {
		return conversation.Conversation{}, err
	}
	if len(msgs) == 0 {
		return conversation.Empty(key), nil
	}
	return conversation.Build(key, msgs), nil
}

// UnreadTotal is the badge count: the exact sum of per-conversation
// unread counts for the participant.
func (ix *ConversationIndex) UnreadTotal(ctx context.Context, participantID uuid.UUID) (int, error) {
	msgs, err := ix.store.ListByParticipant(ctx, participantID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range msgs {
		if m.UnreadBy(participantID) {
			total++
		}
	}
	return total, nil
}

// lastSentAt is the sort key; conversations whose every message is
// deleted sort by the zero time, i.e. to the end of the list.
func lastSentAt(s Summary) time.Time {
	if s.LastMessage != nil {
		return s.LastMessage.SentAt
	}
	return time.Time{}
}

func paginate(items []Summary, page, limit int) []Summary {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []Summary{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
