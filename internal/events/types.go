package events

// Event type constants, format: domain.action

// Message events
const (
	EventTypeMessageSent    = "message.sent"
	EventTypeMessageDeleted = "message.deleted"
)

// Receipt events
const (
	EventTypeReceiptDelivered = "receipt.delivered"
	EventTypeReceiptRead      = "receipt.read"
)

// Conversation events
const (
	EventTypeConversationUpdated = "conversation.updated"
)

// Inquiry events
const (
	EventTypeInquiryOpened    = "inquiry.opened"
	EventTypeInquiryAnswered  = "inquiry.answered"
	EventTypeInquiryConverted = "inquiry.converted"
	EventTypeInquiryClosed    = "inquiry.closed"
)

// Aggregate types
const (
	AggregateMessage      = "message"
	AggregateConversation = "conversation"
	AggregateInquiry      = "inquiry"
)
