package main

import (
	"errors"
	"log"
	"net/http"
	"srs/src/config"
	"srs/src/db"
	"srs/src/lib"
	"srs/src/models"
	"srs/src/types"
	"srs/src/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/routes", func(ctx *gin.Context) {
			var body types.CreateRouteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			route := models.Route{
				Origin:        body.Origin,
				Destination:   body.Destination,
				DepartureTime: body.DepartureTime,
				Price:         body.Price,
				Capacity:      body.Capacity,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&route).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				log.Printf("Error creating route: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.CacheInvalidate(routesCatalogCacheKey)
			ctx.JSON(http.StatusCreated, gin.H{"data": route})
		}).
		PUT("/routes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateRouteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			// Capacity edits only change future availability computations;
			// reservations already on the books are left untouched.
			if err := db.Transaction(func(tx *gorm.DB) error {
				var route models.Route
				if err := tx.
					Where(&models.Route{ID: params.ID}).
					First(&route).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.ErrRouteNotFound
					}
					return err
				}
				if body.Origin != nil {
					route.Origin = *body.Origin
				}
				if body.Destination != nil {
					route.Destination = *body.Destination
				}
				if body.DepartureTime != nil {
					route.DepartureTime = *body.DepartureTime
				}
				if body.Price != nil {
					route.Price = *body.Price
				}
				if body.Capacity != nil {
					route.Capacity = *body.Capacity
				}
				if err := tx.Save(&route).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				if errors.Is(err, types.ErrRouteNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error updating route [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.CacheInvalidate(routesCatalogCacheKey)
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/routes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			today := time.Now().Format(config.DATE_FORMAT)
			if err := db.Transaction(func(tx *gorm.DB) error {
				var active int64
				if err := tx.
					Model(&models.Reservation{}).
					Where("route_id = ? AND reservation_date >= ? AND status <> ?", params.ID, today, types.RESERVATION_CANCELLED).
					Count(&active).
					Error; err != nil {
					return err
				}
				if active > 0 {
					return errors.New("deleting a route with active reservations is not allowed")
				}
				if err := tx.Delete(&models.Route{ID: params.ID}).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				log.Printf("Error deleting route [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.CacheInvalidate(routesCatalogCacheKey)
			ctx.Status(http.StatusNoContent)
		}).
		GET("/non-operational-days", func(ctx *gin.Context) {
			var days []models.NonOperationalDay
			db := db.GetDb()
			if err := db.
				Order("date asc").
				Find(&days).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch non-operational days"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": days, "count": len(days)})
		}).
		POST("/non-operational-days", func(ctx *gin.Context) {
			var body types.CreateNonOperationalDayRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			day := models.NonOperationalDay{
				Date:   body.Date,
				Reason: body.Reason,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&day).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				log.Printf("Error adding non-operational day: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Non-operational day added successfully", "data": day})
		}).
		DELETE("/non-operational-days/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Delete(&models.NonOperationalDay{}, params.ID).Error; err != nil {
				log.Printf("Error deleting non-operational day [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/users", func(ctx *gin.Context) {
			var users []models.User
			db := db.GetDb()
			if err := db.
				Model(&models.User{}).
				Select("id", "name", "email", "phone", "role").
				Order("created_at desc").
				Find(&users).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		POST("/reports/seats", func(ctx *gin.Context) {
			var body types.SeatsReportRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			days, err := utils.WeeklySeatsReport(body.Date)
			if err != nil {
				if errors.Is(err, types.ErrInvalidDate) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error building seats report: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build seats report"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"days": days})
		})
	return g
}
