package events

import (
	"encoding/json"

	"festora-chat/internal/domain/conversation"
)

// ResolveChannels maps an envelope to the per-participant pub/sub
// channels it should reach. Message and receipt events go to both sides
// of the conversation; inquiry events go to both sides too since either
// party may be watching the inquiry state.
func ResolveChannels(env Envelope) []string {
	switch env.AggregateType {
	case AggregateMessage, AggregateConversation:
		var p MessagePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil
		}
		return participantChannels(p.ConversationKey)
	case AggregateInquiry:
		var p InquiryPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil
		}
		return participantChannels(p.ConversationKey)
	}
	return nil
}

func participantChannels(conversationKey string) []string {
	key, err := conversation.ParseKey(conversationKey)
	if err != nil {
		return nil
	}
	return []string{
		"channel:user:" + key.A.String(),
		"channel:user:" + key.B.String(),
	}
}
