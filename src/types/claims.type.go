package types

import (
	"github.com/golang-jwt/jwt/v4"
)

type Claims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}
