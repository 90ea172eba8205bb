package httpdto

import (
	"festora-chat/internal/chat"
)

type ConversationSummaryResponse struct {
	Key         string           `json:"key"`
	OtherID     string           `json:"other_id"`
	OtherName   string           `json:"other_name,omitempty"`
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	Unread      int              `json:"unread"`
}

type ConversationResponse struct {
	Key      string            `json:"key"`
	Messages []MessageResponse `json:"messages"`
	Unread   int               `json:"unread"`
}

type UnreadResponse struct {
	Unread int `json:"unread"`
}

func ToConversationSummaryResponse(s chat.Summary) ConversationSummaryResponse {
	out := ConversationSummaryResponse{
		Key:       s.Conversation.Key.String(),
		OtherID:   s.OtherID.String(),
		OtherName: s.OtherName,
		Unread:    s.Unread,
	}
	if s.LastMessage != nil {
		last := ToMessageResponse(*s.LastMessage)
		out.LastMessage = &last
	}
	return out
}
