package httpdto

import (
	"time"

	"festora-chat/internal/domain/inquiry"
)

type OpenInquiryRequest struct {
	OtherParticipantID string `json:"other_participant_id"`
	Kind               string `json:"kind"` // SERVICE or AD
	ServiceID          string `json:"service_id,omitempty"`
	ServiceType        string `json:"service_type,omitempty"`
	AdID               string `json:"ad_id,omitempty"`
	VendorID           string `json:"vendor_id"`
	InquiryText        string `json:"inquiry_text"`
}

type InquiryResponse struct {
	ID              string    `json:"id"`
	ConversationKey string    `json:"conversation_key"`
	Kind            string    `json:"kind"`
	ServiceID       string    `json:"service_id,omitempty"`
	ServiceType     string    `json:"service_type,omitempty"`
	AdID            string    `json:"ad_id,omitempty"`
	VendorID        string    `json:"vendor_id"`
	InquiryText     string    `json:"inquiry_text"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToInquiryResponse(i inquiry.Inquiry) InquiryResponse {
	out := InquiryResponse{
		ID:              i.ID.String(),
		ConversationKey: i.ConversationKey,
		Kind:            string(i.Target.Kind),
		VendorID:        i.VendorID.String(),
		InquiryText:     i.InquiryText,
		Status:          string(i.Status),
		CreatedAt:       i.CreatedAt,
	}
	if i.Target.Kind == inquiry.KindAd {
		out.AdID = i.Target.AdID.String()
	} else {
		out.ServiceID = i.Target.ServiceID.String()
		out.ServiceType = string(i.Target.ServiceType)
	}
	return out
}
