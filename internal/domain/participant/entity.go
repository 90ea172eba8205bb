package participant

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
)

// Participant represents the participants table: the directory of actors
// that can appear on either side of a conversation.
type Participant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"not null"`
	Role        Role
	CreatedAt   time.Time
}

func (Participant) TableName() string {
	return "participants"
}
