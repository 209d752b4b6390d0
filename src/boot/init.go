package boot

import (
	"log"
	"srs/src/common"
	"srs/src/db"
	"srs/src/lib"
	"srs/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Route{},
		&models.Reservation{},
		&models.NonOperationalDay{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the background scheduler and queues the daily
// departure-manifest job.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	jid, err := lib.CreateDailyJob(6, 0, common.SendDepartureManifest)
	if err != nil {
		log.Printf("Error scheduling manifest job: %s\n", err.Error())
		return
	}
	log.Printf("Manifest job in queue: %s\n", *jid)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
