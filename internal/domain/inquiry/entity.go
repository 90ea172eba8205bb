package inquiry

import (
	"fmt"
	"strings"
	"time"

	"festora-chat/internal/domain/message"
	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

type InquiryKind string

const (
	KindService InquiryKind = "SERVICE"
	KindAd      InquiryKind = "AD"
)

// Target identifies what an inquiry is about: a listed service
// (ServiceID + ServiceType) or an advertisement (AdID).
type Target struct {
	Kind        InquiryKind
	ServiceID   uuid.UUID `gorm:"type:uuid"`
	ServiceType message.ServiceType
	AdID        uuid.UUID `gorm:"type:uuid"`
}

func ServiceTarget(serviceID uuid.UUID, serviceType message.ServiceType) Target {
	return Target{Kind: KindService, ServiceID: serviceID, ServiceType: serviceType}
}

func AdTarget(adID uuid.UUID) Target {
	return Target{Kind: KindAd, AdID: adID}
}

func (t Target) Validate() error {
	switch t.Kind {
	case KindService:
		if t.ServiceID == uuid.Nil {
			return fmt.Errorf("%w: service inquiry requires a service id", festora_errors.ErrValidation)
		}
		if t.ServiceType == message.ServiceTypeNone || !t.ServiceType.Valid() {
			return fmt.Errorf("%w: service inquiry requires a service type", festora_errors.ErrValidation)
		}
	case KindAd:
		if t.AdID == uuid.Nil {
			return fmt.Errorf("%w: ad inquiry requires an ad id", festora_errors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown inquiry kind %q", festora_errors.ErrValidation, t.Kind)
	}
	return nil
}

// Identity is the duplicate-detection key within one conversation.
func (t Target) Identity() string {
	if t.Kind == KindAd {
		return "ad:" + t.AdID.String()
	}
	return "service:" + t.ServiceID.String() + ":" + string(t.ServiceType)
}

// Inquiry represents the inquiries table. It annotates a conversation
// with business state and never feeds back into message delivery.
type Inquiry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationKey string    `gorm:"not null;index"`
	Target          Target    `gorm:"embedded;embeddedPrefix:target_"`
	InquiryText     string
	VendorID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          InquiryStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Inquiry) TableName() string {
	return "inquiries"
}

func (i Inquiry) Validate() error {
	if i.ConversationKey == "" {
		return fmt.Errorf("%w: inquiry requires a conversation", festora_errors.ErrValidation)
	}
	if i.VendorID == uuid.Nil {
		return fmt.Errorf("%w: inquiry requires a vendor", festora_errors.ErrValidation)
	}
	if strings.TrimSpace(i.InquiryText) == "" {
		return fmt.Errorf("%w: inquiry text is required", festora_errors.ErrValidation)
	}
	return i.Target.Validate()
}
