package events

import (
	"encoding/json"
	"time"
)

type Envelope struct {
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// MessagePayload is the envelope payload for message.* and receipt.*
// events. Participants are carried so the resolver can route without a
// second lookup.
type MessagePayload struct {
	MessageID       string `json:"message_id"`
	ConversationKey string `json:"conversation_key"`
	SenderID        string `json:"sender_id"`
	ReceiverID      string `json:"receiver_id"`
	Status          string `json:"status"`
}

// InquiryPayload is the envelope payload for inquiry.* events.
type InquiryPayload struct {
	InquiryID       string `json:"inquiry_id"`
	ConversationKey string `json:"conversation_key"`
	VendorID        string `json:"vendor_id"`
	Status          string `json:"status"`
}
