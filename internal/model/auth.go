package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthRequest types
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse types
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, please try again later")
)

// TokenClaims represents JWT claims. Roles and permissions ride in the
// token so the route guard decides without a database round-trip.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID      uuid.UUID `json:"user_id"`
	ClinicID    uuid.UUID `json:"clinic_id"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
}

// Grants returns the combined flat grant set for authorization checks.
func (c *TokenClaims) Grants() []string {
	grants := make([]string, 0, len(c.Permissions)+len(c.Roles))
	grants = append(grants, c.Permissions...)
	grants = append(grants, c.Roles...)
	return grants
}
