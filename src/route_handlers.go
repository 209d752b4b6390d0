package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"srs/src/db"
	"srs/src/lib"
	"srs/src/models"
	"srs/src/types"
	"srs/src/utils"
	"time"

	"github.com/gin-gonic/gin"
)

const routesCatalogCacheKey = "routes:catalog"

func routeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/routes", func(ctx *gin.Context) {
			rd := lib.GetRedisClient()
			if rd != nil {
				val := rd.Get(context.Background(), routesCatalogCacheKey).Val()
				if val != "" {
					var routes []models.Route
					if err := json.Unmarshal([]byte(val), &routes); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": routes, "count": len(routes)})
						return
					}
					log.Printf("[redis] Error decoding cached catalog: dropping key %s\n", routesCatalogCacheKey)
					lib.CacheInvalidate(routesCatalogCacheKey)
				}
			}
			var routes []models.Route
			db := db.GetDb()
			if err := db.
				Order("departure_time asc").
				Find(&routes).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
				return
			}
			if rd != nil {
				if b, err := json.Marshal(&routes); err == nil {
					rd.SetEx(context.Background(), routesCatalogCacheKey, string(b), 10*time.Minute)
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": routes, "count": len(routes)})
		}).
		GET("/routes/availability/:date", func(ctx *gin.Context) {
			var params types.DateRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date, err := utils.ParseReservationDate(params.Date)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": types.ErrInvalidDate.Error()})
				return
			}
			operational, reason, err := utils.IsOperationalDate(date)
			if err != nil {
				log.Printf("Error checking calendar for %s: %s\n", date, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route availability"})
				return
			}
			if !operational {
				ctx.JSON(http.StatusOK, gin.H{"is_operational": false, "reason": reason})
				return
			}
			routes, err := utils.GetDateAvailability(date)
			if err != nil {
				log.Printf("Error computing availability for %s: %s\n", date, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route availability"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"is_operational": true, "routes": routes})
		}).
		GET("/routes/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query struct {
				Date string `form:"date" binding:"required"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date, err := utils.ParseReservationDate(query.Date)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": types.ErrInvalidDate.Error()})
				return
			}
			availability, err := utils.GetRouteAvailability(params.ID, date)
			if err != nil {
				if errors.Is(err, types.ErrRouteNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error computing availability for route [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route availability"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": availability})
		})
	return g
}
