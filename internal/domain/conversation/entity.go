package conversation

import (
	"sort"

	"festora-chat/internal/domain/message"

	"github.com/google/uuid"
)

// Conversation is a derived aggregate over the flat message log. It is
// never persisted as its own row: it materializes the first time two
// participants exchange a message and is rebuilt from the log on read.
type Conversation struct {
	Key      Key
	Messages []message.Message // message.Compare ascending
}

// Empty is the well-defined conversation for a pair that has not yet
// exchanged a message: zero messages, zero unread, no last message.
func Empty(key Key) Conversation {
	return Conversation{Key: key}
}

// Build assembles a conversation from an unordered slice of messages
// belonging to the pair.
func Build(key Key, msgs []message.Message) Conversation {
	sorted := make([]message.Message, len(msgs))
	copy(sorted, msgs)
	sort.Slice(sorted, func(i, j int) bool {
		return message.Compare(sorted[i], sorted[j]) < 0
	})
	return Conversation{Key: key, Messages: sorted}
}

// LastMessage returns the most recent non-deleted message, or false when
// every message is deleted (or the conversation is empty).
func (c Conversation) LastMessage() (message.Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if !c.Messages[i].Deleted() {
			return c.Messages[i], true
		}
	}
	return message.Message{}, false
}

// UnreadFor counts messages addressed to viewer that viewer has not read.
func (c Conversation) UnreadFor(viewer uuid.UUID) int {
	n := 0
	for _, m := range c.Messages {
		if m.UnreadBy(viewer) {
			n++
		}
	}
	return n
}

func (c Conversation) Empty() bool {
	return len(c.Messages) == 0
}
