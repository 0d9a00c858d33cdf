package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims are the JWT claims carried by admin session tokens.
type AdminClaims struct {
	AdminID uint `json:"admin_id"`
	jwt.RegisteredClaims
}
