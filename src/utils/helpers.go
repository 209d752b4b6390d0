package utils

import (
	"errors"
	"os"
	"srs/src/config"
	"srs/src/db"
	"srs/src/models"
	"srs/src/types"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint, role types.UserRole) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userId)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseReservationDate validates the calendar-date layout used across the
// reservations and non_operational_days tables.
func ParseReservationDate(value string) (string, error) {
	d, err := time.Parse(config.DATE_FORMAT, value)
	if err != nil {
		return "", err
	}
	return d.Format(config.DATE_FORMAT), nil
}

// IsOperationalDate reports whether bookings are accepted on the given date.
// The gate is consulted before any capacity read so a blocked day
// short-circuits regardless of remaining seats.
func IsOperationalDate(date string) (operational bool, reason string, err error) {
	db := db.GetDb()
	var day models.NonOperationalDay
	if err := db.
		Where(&models.NonOperationalDay{Date: date}).
		First(&day).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, "", nil
		}
		return false, "", err
	}
	return false, day.Reason, nil
}

// bookedSeats is the single definition of "booked" for a (route, date)
// aggregate: the seat quantities of every reservation that still holds
// capacity. Cancelled rows are excluded, so a cancellation is visible to the
// very next read.
func bookedSeats(tx *gorm.DB, routeID uint, date string) (int64, error) {
	var booked int64
	err := tx.
		Model(&models.Reservation{}).
		Where("route_id = ? AND reservation_date = ?", routeID, date).
		Where(clause.IN{Column: "status", Values: []any{types.RESERVATION_PENDING, types.RESERVATION_CONFIRMED}}).
		Select("COALESCE(SUM(seat_quantity), 0)").
		Scan(&booked).
		Error
	return booked, err
}

// GetRouteAvailability computes the capacity ledger for one (route, date)
// pair. Available may be reported as-is from the arithmetic; clamping for
// display is the caller's concern.
func GetRouteAvailability(routeID uint, date string) (*types.RouteAvailability, error) {
	db := db.GetDb()
	var route models.Route
	if err := db.
		Where(&models.Route{ID: routeID}).
		First(&route).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrRouteNotFound
		}
		return nil, err
	}
	booked, err := bookedSeats(db, route.ID, date)
	if err != nil {
		return nil, err
	}
	return &types.RouteAvailability{
		RouteID:   route.ID,
		Capacity:  int64(route.Capacity),
		Booked:    booked,
		Available: int64(route.Capacity) - booked,
	}, nil
}

// GetDateAvailability returns every route with its ledger for the given date,
// using the same booked-seat definition as the single-route read.
func GetDateAvailability(date string) ([]*models.Route, error) {
	db := db.GetDb()
	var routes []*models.Route
	if err := db.
		Order("departure_time asc").
		Find(&routes).
		Error; err != nil {
		return nil, err
	}
	for _, v := range routes {
		booked, err := bookedSeats(db, v.ID, date)
		if err != nil {
			return nil, err
		}
		v.Availability = &types.RouteAvailability{
			RouteID:   v.ID,
			Capacity:  int64(v.Capacity),
			Booked:    booked,
			Available: int64(v.Capacity) - booked,
		}
	}
	return routes, nil
}

// CreateReservation runs the booking transaction. The row lock on the route
// serializes concurrent capacity checks for that route, so the SUM re-check
// and the INSERT commit or fail as one unit and two requests can never both
// observe the same headroom.
func CreateReservation(params *types.CreateReservationParams) (*models.Reservation, error) {
	if params.SeatQuantity < 1 {
		return nil, types.ErrInvalidQuantity
	}
	date, err := ParseReservationDate(params.Date)
	if err != nil {
		return nil, types.ErrInvalidDate
	}
	operational, reason, err := IsOperationalDate(date)
	if err != nil {
		return nil, err
	}
	if !operational {
		return nil, &types.NonOperationalDateError{Date: date, Reason: reason}
	}

	db := db.GetDb()
	var reservation models.Reservation
	err = db.Transaction(func(tx *gorm.DB) error {
		var route models.Route
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Route{ID: params.RouteID}).
			First(&route).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrRouteNotFound
			}
			return err
		}
		booked, err := bookedSeats(tx, route.ID, date)
		if err != nil {
			return err
		}
		available := int64(route.Capacity) - booked
		if int64(params.SeatQuantity) > available {
			return &types.CapacityExceededError{Available: available}
		}
		var user models.User
		if err := tx.
			Where(&models.User{ID: params.UserID}).
			First(&user).
			Error; err != nil {
			return err
		}
		status := types.RESERVATION_PENDING
		if user.HasPhone() {
			status = types.RESERVATION_CONFIRMED
		}
		reservation = models.Reservation{
			UserID:          params.UserID,
			RouteID:         route.ID,
			ReservationDate: date,
			SeatQuantity:    params.SeatQuantity,
			Status:          status,
			Pickup:          params.Pickup,
			Dropoff:         params.Dropoff,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation transitions a reservation to cancelled. Cancelling an
// already-cancelled reservation is a no-op success; alreadyCancelled tells
// the caller to skip the notification on a repeat request.
func CancelReservation(userID uint, reservationID uint) (reservation *models.Reservation, alreadyCancelled bool, err error) {
	db := db.GetDb()
	var r models.Reservation
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Reservation{ID: reservationID}).
			First(&r).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrReservationNotFound
			}
			return err
		}
		if r.UserID != userID {
			return types.ErrForbidden
		}
		if r.Status == types.RESERVATION_CANCELLED {
			alreadyCancelled = true
			return nil
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: reservationID}).
			Update("status", types.RESERVATION_CANCELLED).
			Error; err != nil {
			return err
		}
		r.Status = types.RESERVATION_CANCELLED
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &r, alreadyCancelled, nil
}

// PromotePendingReservations confirms every pending reservation owned by the
// user. Called once the user has supplied a phone number.
func PromotePendingReservations(userID uint) (int64, error) {
	db := db.GetDb()
	var promoted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{UserID: userID, Status: types.RESERVATION_PENDING}).
			Update("status", types.RESERVATION_CONFIRMED)
		if res.Error != nil {
			return res.Error
		}
		promoted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return promoted, nil
}

// SetPhoneAndPromote stores the user's phone number and confirms their
// pending reservations in one transaction, so a saved phone number can never
// leave a reservation behind in pending.
func SetPhoneAndPromote(userID uint, phone string) (int64, error) {
	db := db.GetDb()
	var promoted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.User{}).
			Where("id = ?", userID).
			Update("phone", phone).
			Error; err != nil {
			return err
		}
		res := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{UserID: userID, Status: types.RESERVATION_PENDING}).
			Update("status", types.RESERVATION_CONFIRMED)
		if res.Error != nil {
			return res.Error
		}
		promoted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return promoted, nil
}

func GetOwnReservations(userID uint) ([]models.Reservation, error) {
	db := db.GetDb()
	var reservations []models.Reservation
	if err := db.
		Model(&models.Reservation{}).
		Where(&models.Reservation{UserID: userID}).
		Preload("Route").
		Order("reservation_date desc").
		Find(&reservations).
		Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// WeeklySeatsReport builds the 7-day occupancy report starting at the given
// date: per day, per route, total and occupied seats with the passenger list.
func WeeklySeatsReport(start string) ([]types.SeatsReportDay, error) {
	startDate, err := time.Parse(config.DATE_FORMAT, start)
	if err != nil {
		return nil, types.ErrInvalidDate
	}
	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, startDate.AddDate(0, 0, i).Format(config.DATE_FORMAT))
	}

	db := db.GetDb()
	var reservations []models.Reservation
	if err := db.
		Model(&models.Reservation{}).
		Where("reservation_date IN (?)", dates).
		Preload("User").
		Preload("Route").
		Order("reservation_date asc").
		Find(&reservations).
		Error; err != nil {
		return nil, err
	}

	days := make([]types.SeatsReportDay, 0, len(dates))
	for _, date := range dates {
		byRoute := map[string]*types.SeatsReportRoute{}
		order := []string{}
		for _, r := range reservations {
			if r.ReservationDate != date || r.Route == nil {
				continue
			}
			name := r.Route.Name()
			entry, ok := byRoute[name]
			if !ok {
				entry = &types.SeatsReportRoute{
					RouteName:  name,
					TotalSeats: int64(r.Route.Capacity),
				}
				byRoute[name] = entry
				order = append(order, name)
			}
			if r.Status != types.RESERVATION_CANCELLED {
				entry.OccupiedSeats += int64(r.SeatQuantity)
			}
			passenger := types.SeatsReportPassenger{
				SeatQuantity: r.SeatQuantity,
				Status:       string(r.Status),
			}
			if r.User != nil {
				passenger.Name = r.User.Name
				passenger.Email = r.User.Email
				if r.User.Phone != nil {
					passenger.Phone = *r.User.Phone
				}
			}
			entry.Passengers = append(entry.Passengers, passenger)
		}
		day := types.SeatsReportDay{Date: date}
		for _, name := range order {
			entry := byRoute[name]
			if entry.TotalSeats > 0 {
				entry.OccupancyPercentage = int(float64(entry.OccupiedSeats) / float64(entry.TotalSeats) * 100)
			}
			day.Routes = append(day.Routes, *entry)
		}
		days = append(days, day)
	}
	return days, nil
}
