package models

import (
	"srs/src/types"

	"github.com/google/uuid"
)

// Reservation books seat quantity, not individual seat labels. For any
// (route, reservation_date) pair the sum of seat_quantity over rows with
// status in (pending, confirmed) never exceeds the route's capacity.
// Rows are never hard-deleted; cancellation is a status transition.
type Reservation struct {
	ID              uint                    `gorm:"primarykey" json:"id"`
	Reference       uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid()" json:"reference"`
	UserID          uint                    `json:"user_id,omitempty"`
	RouteID         uint                    `gorm:"index:idx_route_date,priority:1" json:"route_id,omitempty"`
	ReservationDate string                  `gorm:"index:idx_route_date,priority:2" json:"reservation_date,omitempty"`
	SeatQuantity    int                     `json:"seat_quantity,omitempty"`
	Status          types.ReservationStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Pickup          string                  `json:"pickup,omitempty"`
	Dropoff         string                  `json:"dropoff,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Route *Route `gorm:"foreignKey:route_id" json:"route,omitempty"`

	types.Timestamps
}
