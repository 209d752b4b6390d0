package common

import (
	"fmt"
	"log"
	"os"
	"srs/src/config"
	"srs/src/db"
	"srs/src/lib"
	"srs/src/models"
	"srs/src/types"
	"time"

	"gorm.io/gorm"
)

func formatLongDate(date string) string {
	d, err := time.Parse(config.DATE_FORMAT, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, 02 January 2006")
}

func buildReservationMessage(header string, r *models.Reservation) string {
	routeName := ""
	departure := ""
	if r.Route != nil {
		routeName = r.Route.Name()
		departure = r.Route.DepartureTime
	}
	name, email, phone := "", "", ""
	if r.User != nil {
		name = r.User.Name
		email = r.User.Email
		if r.User.Phone != nil {
			phone = *r.User.Phone
		}
	}
	return fmt.Sprintf("%s\n\n"+
		"Date: %s\n"+
		"Route: %s\n"+
		"Departure: %s\n"+
		"Seats: %d\n"+
		"Passenger: %s\n"+
		"Phone: %s\n"+
		"Email: %s",
		header, formatLongDate(r.ReservationDate), routeName, departure,
		r.SeatQuantity, name, phone, email)
}

// NotifyReservation sends the admin notification for a created or cancelled
// reservation over SMS and email. Delivery is best effort: every failure is
// logged and swallowed, and the attempt is recorded as a Notification row.
// Runs outside the booking transaction, never inside it.
func NotifyReservation(kind types.NotificationKind, reservationID uint) {
	gdb := db.GetDb()
	var reservation models.Reservation
	if err := gdb.
		Model(&models.Reservation{}).
		Where(&models.Reservation{ID: reservationID}).
		Preload("User").
		Preload("Route").
		First(&reservation).
		Error; err != nil {
		log.Printf("[notify] Could not load reservation [%d]: %s\n", reservationID, err.Error())
		return
	}

	header := "NEW RESERVATION"
	if kind == types.NOTIFY_RESERVATION_CANCELLED {
		header = "RESERVATION CANCELLED"
	}
	message := buildReservationMessage(header, &reservation)

	delivered := true
	var deliveryError *string
	adminPhone := os.Getenv("ADMIN_PHONE_NUMBER")
	if adminPhone == "" {
		log.Println("[notify] Admin phone number not configured")
		delivered = false
	} else if err := lib.SendSMS(adminPhone, message); err != nil {
		log.Printf("[notify] Error sending admin SMS: %s\n", err.Error())
		delivered = false
		msg := err.Error()
		deliveryError = &msg
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail != "" {
		if err := lib.SendMail(&lib.SendMailInput{
			From:     os.Getenv("SMTP_FROM"),
			FromName: "noreply",
			To:       []string{adminEmail},
			Subject:  header,
			Body:     message,
		}); err != nil {
			log.Printf("[notify] Error sending admin email: %s\n", err.Error())
		}
	}

	if err := gdb.Transaction(func(tx *gorm.DB) error {
		n := models.Notification{
			Kind:          kind,
			ReservationID: reservation.ID,
			Message:       message,
			Delivered:     delivered,
			DeliveryError: deliveryError,
		}
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		log.Printf("[notify] Error recording notification: %s\n", err.Error())
	}
}
