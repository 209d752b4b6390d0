package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type ReservationStatus string

const (
	RESERVATION_PENDING   ReservationStatus = "pending"
	RESERVATION_CONFIRMED ReservationStatus = "confirmed"
	RESERVATION_CANCELLED ReservationStatus = "cancelled"
)

type UserRole string

const (
	ROLE_RIDER UserRole = "rider"
	ROLE_ADMIN UserRole = "admin"
)

type NotificationKind string

const (
	NOTIFY_RESERVATION_CREATED   NotificationKind = "created"
	NOTIFY_RESERVATION_CANCELLED NotificationKind = "cancelled"
)

// Domain errors surfaced by the reservation core. Handlers translate these
// to HTTP statuses; anything else is an infrastructure failure.
var (
	ErrInvalidQuantity     = errors.New("seat quantity must be a positive integer")
	ErrInvalidDate         = errors.New("invalid date format. Use YYYY-MM-DD")
	ErrRouteNotFound       = errors.New("route not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("not authorized to cancel this reservation")
)

type CapacityExceededError struct {
	Available int64
}

func (e *CapacityExceededError) Error() string {
	available := e.Available
	if available < 0 {
		available = 0
	}
	return fmt.Sprintf("only %d seats available", available)
}

type NonOperationalDateError struct {
	Date   string
	Reason string
}

func (e *NonOperationalDateError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("no service on %s", e.Date)
	}
	return fmt.Sprintf("no service on %s: %s", e.Date, e.Reason)
}

type RouteAvailability struct {
	RouteID   uint  `json:"route_id"`
	Capacity  int64 `json:"capacity"`
	Booked    int64 `json:"booked"`
	Available int64 `json:"available"`
}

type CreateReservationParams struct {
	UserID       uint
	RouteID      uint
	Date         string
	SeatQuantity int
	Pickup       string
	Dropoff      string
}

type CreateReservationRequestBody struct {
	RouteID         uint   `json:"route_id" binding:"required"`
	ReservationDate string `json:"reservation_date" binding:"required,traveldate"`
	SeatQuantity    int    `json:"seat_quantity" binding:"required"`
	Pickup          string `json:"pickup,omitempty"`
	Dropoff         string `json:"dropoff,omitempty"`
}

type CreateRouteRequestBody struct {
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureTime string  `json:"departure_time" binding:"required"`
	Price         float32 `json:"price"`
	Capacity      uint    `json:"capacity" binding:"required,gt=0"`
}

type UpdateRouteRequestBody struct {
	Origin        *string  `json:"origin,omitempty"`
	Destination   *string  `json:"destination,omitempty"`
	DepartureTime *string  `json:"departure_time,omitempty"`
	Price         *float32 `json:"price,omitempty"`
	Capacity      *uint    `json:"capacity,omitempty" binding:"omitempty,gt=0"`
}

type CreateNonOperationalDayRequestBody struct {
	Date   string `json:"date" binding:"required,traveldate"`
	Reason string `json:"reason" binding:"required"`
}

type UpdatePhoneRequestBody struct {
	PhoneNumber string `json:"phone_number" binding:"required,e164"`
}

type SeatsReportRequestBody struct {
	Date string `json:"date" binding:"required"`
}

type RegisterUserRequestBody struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type DateRequestParams struct {
	Date string `uri:"date" binding:"required"`
}

type SeatsReportPassenger struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	SeatQuantity int    `json:"seat_quantity"`
	Status       string `json:"status"`
}

type SeatsReportRoute struct {
	RouteName           string                 `json:"route_name"`
	TotalSeats          int64                  `json:"total_seats"`
	OccupiedSeats       int64                  `json:"occupied_seats"`
	OccupancyPercentage int                    `json:"occupancy_percentage"`
	Passengers          []SeatsReportPassenger `json:"passengers"`
}

type SeatsReportDay struct {
	Date   string             `json:"date"`
	Routes []SeatsReportRoute `json:"routes"`
}

type ReservationSummary struct {
	Reference       string `json:"reference"`
	RouteName       string `json:"route_name"`
	DepartureTime   string `json:"departure_time"`
	ReservationDate string `json:"reservation_date"`
	SeatQuantity    int    `json:"seat_quantity"`
	PassengerName   string `json:"passenger_name"`
	PassengerEmail  string `json:"passenger_email"`
	PassengerPhone  string `json:"passenger_phone"`
}
