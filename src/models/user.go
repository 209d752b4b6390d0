package models

import (
	"srs/src/types"
)

type User struct {
	ID    uint           `gorm:"primarykey" json:"id"`
	Name  string         `json:"name,omitempty"`
	Email string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone *string        `json:"phone,omitempty"`
	Role  types.UserRole `gorm:"default:'rider'" json:"role,omitempty"`

	Reservations []Reservation `gorm:"foreignKey:user_id" json:"reservations,omitempty"`

	types.Timestamps
}

// HasPhone gates the confirmed status: a reservation may only be created as
// (or promoted to) confirmed once the owner has a phone number on file.
func (u *User) HasPhone() bool {
	return u.Phone != nil && *u.Phone != ""
}
