package controllers

import (
	"errors"
	"log"
	"net/http"
	"srs/src/db"
	"srs/src/models"
	"srs/src/types"
	"srs/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthLogin exchanges an already-verified identity for an API token.
// Identity verification itself lives with the external provider; the caller
// reaches this handler through the identity middleware.
func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var user models.User
	if err := db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusNotFound, errors.New("no user account is associated with this email")
	}

	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating token for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &jwt, http.StatusOK, nil
}

func AuthRegister(ctx *gin.Context) (userId *uint, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	user := models.User{
		Email: body.Email,
		Name:  body.Name,
		Role:  types.ROLE_RIDER,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("an account with this email already exists")
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		log.Printf("[AuthRegister] error: %s\n", err.Error())
		return nil, http.StatusBadRequest, err
	}
	return &user.ID, http.StatusOK, nil
}
