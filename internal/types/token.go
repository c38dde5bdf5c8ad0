package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
)

// TokenClaims represents the claims in an access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID       `json:"user_id"`
	Role   models.UserRole `json:"role"`
}
