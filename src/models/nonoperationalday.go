package models

import (
	"srs/src/types"
)

// NonOperationalDay blocks bookings on its date for every route, regardless
// of remaining capacity.
type NonOperationalDay struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Date   string `gorm:"uniqueIndex" json:"date"`
	Reason string `json:"reason,omitempty"`

	types.Timestamps
}
