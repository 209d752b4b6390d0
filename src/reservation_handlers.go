package main

import (
	"errors"
	"log"
	"net/http"
	"srs/src/common"
	"srs/src/types"
	"srs/src/utils"

	"github.com/gin-gonic/gin"
)

func statusForReservationError(err error) int {
	var capacityErr *types.CapacityExceededError
	var nonOpErr *types.NonOperationalDateError
	switch {
	case errors.Is(err, types.ErrInvalidQuantity),
		errors.Is(err, types.ErrInvalidDate),
		errors.As(err, &capacityErr),
		errors.As(err, &nonOpErr):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrRouteNotFound),
		errors.Is(err, types.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			reservation, err := utils.CreateReservation(&types.CreateReservationParams{
				UserID:       userId,
				RouteID:      body.RouteID,
				Date:         body.ReservationDate,
				SeatQuantity: body.SeatQuantity,
				Pickup:       body.Pickup,
				Dropoff:      body.Dropoff,
			})
			if err != nil {
				status := statusForReservationError(err)
				if status == http.StatusInternalServerError {
					log.Printf("Error creating reservation: %s\n", err.Error())
					ctx.JSON(status, gin.H{"error": "Failed to create reservation"})
					return
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			go common.NotifyReservation(types.NOTIFY_RESERVATION_CREATED, reservation.ID)
			ctx.JSON(http.StatusCreated, gin.H{"data": reservation})
		}).
		GET("/reservations", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			reservations, err := utils.GetOwnReservations(userId)
			if err != nil {
				log.Printf("Error fetching reservations for user [%d]: %s\n", userId, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		PUT("/reservations/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			reservation, alreadyCancelled, err := utils.CancelReservation(userId, params.ID)
			if err != nil {
				status := statusForReservationError(err)
				if status == http.StatusInternalServerError {
					log.Printf("Error cancelling reservation [%d]: %s\n", params.ID, err.Error())
					ctx.JSON(status, gin.H{"error": "Failed to cancel reservation"})
					return
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			if !alreadyCancelled {
				go common.NotifyReservation(types.NOTIFY_RESERVATION_CANCELLED, reservation.ID)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
		})
	return g
}
