package ds

import (
	"aircond-backend/internal/app/role"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

type JWTClaims struct {
	jwt.StandardClaims
	UserID uuid.UUID `json:"user_id"`
	Role   role.Role `json:"role"`
}
