package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims
type Claims struct {
	Subject string `json:"subject"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
