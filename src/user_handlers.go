package main

import (
	"log"
	"net/http"
	"srs/src/db"
	"srs/src/models"
	"srs/src/types"
	"srs/src/utils"

	"github.com/gin-gonic/gin"
)

func userHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users/me", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			db := db.GetDb()
			if err := db.
				Model(&models.User{}).
				Select("id", "name", "email", "phone", "role").
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No user account is associated with this token"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		PUT("/users/me/phone", func(ctx *gin.Context) {
			var body types.UpdatePhoneRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			promoted, err := utils.SetPhoneAndPromote(userId, body.PhoneNumber)
			if err != nil {
				log.Printf("Error updating phone for user [%d]: %s\n", userId, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update phone number"})
				return
			}
			if promoted > 0 {
				log.Printf("Confirmed %d pending reservations for user [%d]\n", promoted, userId)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Phone number updated successfully", "confirmed": promoted})
		})
	return g
}
