package httpdto

import (
	"time"

	"festora-chat/internal/domain/message"
)

type SendMessageRequest struct {
	ReceiverID    string `json:"receiver_id"`
	Kind          string `json:"kind"`
	Body          string `json:"body"`
	AttachmentURL string `json:"attachment_url"`
	ServiceType   string `json:"service_type"`
}

type MessageResponse struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"sender_id"`
	ReceiverID    string    `json:"receiver_id"`
	Kind          string    `json:"kind"`
	Body          string    `json:"body,omitempty"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	ServiceType   string    `json:"service_type,omitempty"`
	Status        string    `json:"status"`
	SentAt        time.Time `json:"sent_at"`
}

func ToMessageResponse(m message.Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID.String(),
		SenderID:      m.SenderID.String(),
		ReceiverID:    m.ReceiverID.String(),
		Kind:          string(m.Kind),
		Body:          m.Body.String,
		AttachmentURL: m.AttachmentURL.String,
		ServiceType:   string(m.ServiceType),
		Status:        string(m.Status),
		SentAt:        m.SentAt,
	}
}
