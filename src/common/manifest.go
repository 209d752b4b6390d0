package common

import (
	"fmt"
	"log"
	"os"
	"srs/src/config"
	"srs/src/lib"
	"srs/src/utils"
	"time"
)

// SendDepartureManifest emails the admin tomorrow's seat occupancy per route.
// Scheduled daily from boot; a non-operational day produces no mail.
func SendDepartureManifest() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(config.DATE_FORMAT)
	operational, reason, err := utils.IsOperationalDate(tomorrow)
	if err != nil {
		log.Printf("[manifest] Error checking calendar for %s: %s\n", tomorrow, err.Error())
		return
	}
	if !operational {
		log.Printf("[manifest] %s is non-operational (%s). Skipping\n", tomorrow, reason)
		return
	}

	routes, err := utils.GetDateAvailability(tomorrow)
	if err != nil {
		log.Printf("[manifest] Error computing availability for %s: %s\n", tomorrow, err.Error())
		return
	}

	body := fmt.Sprintf("Departure manifest for %s\n\n", formatLongDate(tomorrow))
	for _, route := range routes {
		if route.Availability == nil {
			continue
		}
		body += fmt.Sprintf("%s (%s): %d/%d seats booked\n",
			route.Name(), route.DepartureTime,
			route.Availability.Booked, route.Availability.Capacity)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("[manifest] Admin email not configured. Skipping")
		return
	}
	if err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "noreply",
		To:       []string{adminEmail},
		Subject:  fmt.Sprintf("Departure manifest %s", tomorrow),
		Body:     body,
	}); err != nil {
		log.Printf("[manifest] Error sending manifest email: %s\n", err.Error())
	}
}
