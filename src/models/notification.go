package models

import (
	"srs/src/types"

	"github.com/google/uuid"
)

// Notification is the audit row for each admin notification attempt.
// Delivery is best effort; the row records the outcome either way.
type Notification struct {
	ID            uuid.UUID              `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Kind          types.NotificationKind `json:"kind"`
	ReservationID uint                   `json:"reservation_id,omitempty"`
	Message       string                 `json:"message,omitempty"`
	Delivered     bool                   `json:"delivered"`
	DeliveryError *string                `json:"delivery_error,omitempty"`

	types.Timestamps
}
