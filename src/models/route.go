package models

import (
	"srs/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Route struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	Code          string  `gorm:"uniqueIndex" json:"code,omitempty"`
	Origin        string  `json:"origin,omitempty"`
	Destination   string  `json:"destination,omitempty"`
	DepartureTime string  `json:"departure_time,omitempty"`
	Price         float32 `json:"price"`
	Capacity      uint    `json:"capacity"`

	Reservations []Reservation `gorm:"foreignKey:route_id" json:"reservations,omitempty"`

	Availability *types.RouteAvailability `gorm:"-" json:"availability,omitempty"`

	types.Timestamps
}

func (r *Route) BeforeSave(tx *gorm.DB) error {
	if r.Origin != "" && r.Destination != "" {
		r.Code = slug.Make(r.Origin + "-" + r.Destination + "-" + r.DepartureTime)
	}
	return nil
}

// Name is the display label used in notifications and reports.
func (r *Route) Name() string {
	return r.Origin + " → " + r.Destination
}
