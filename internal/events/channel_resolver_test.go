package events

import (
	"encoding/json"
	"testing"

	"festora-chat/internal/domain/conversation"

	"github.com/google/uuid"
)

func TestResolveChannelsMessageEvent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	key := conversation.NewKey(a, b)
	payload, _ := json.Marshal(MessagePayload{
		MessageID:       uuid.NewString(),
		ConversationKey: key.String(),
		SenderID:        a.String(),
		ReceiverID:      b.String(),
		Status:          "SENT",
	})

	channels := ResolveChannels(Envelope{
		EventType:     EventTypeMessageSent,
		AggregateType: AggregateMessage,
		Payload:       payload,
	})
	if len(channels) != 2 {
		t.Fatalf("expected both participants, got %v", channels)
	}
	want := map[string]bool{
		"channel:user:" + a.String(): true,
		"channel:user:" + b.String(): true,
	}
	for _, ch := range channels {
		if !want[ch] {
			t.Errorf("unexpected channel %q", ch)
		}
	}
}

func TestResolveChannelsInquiryEvent(t *testing.T) {
	key := conversation.NewKey(uuid.New(), uuid.New())
	payload, _ := json.Marshal(InquiryPayload{
		InquiryID:       uuid.NewString(),
		ConversationKey: key.String(),
		VendorID:        uuid.NewString(),
		Status:          "OPEN",
	})

	channels := ResolveChannels(Envelope{
		EventType:     EventTypeInquiryOpened,
		AggregateType: AggregateInquiry,
		Payload:       payload,
	})
	if len(channels) != 2 {
		t.Fatalf("expected both participants, got %v", channels)
	}
}

func TestResolveChannelsBadInput(t *testing.T) {
	if got := ResolveChannels(Envelope{AggregateType: "unknown"}); got != nil {
		t.Errorf("unknown aggregate should resolve to nothing, got %v", got)
	}

	payload, _ := json.Marshal(MessagePayload{ConversationKey: "not-a-key"})
	if got := ResolveChannels(Envelope{AggregateType: AggregateMessage, Payload: payload}); got != nil {
		t.Errorf("malformed key should resolve to nothing, got %v", got)
	}
}
