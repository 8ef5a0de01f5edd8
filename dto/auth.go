package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard/backend/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,min=5"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
	Avatar    *string `json:"avatar"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest patches the authenticated user's profile. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Token     string          `json:"token"`
	User      models.UserData `json:"user"`
	ExpiresAt time.Time       `json:"expiresAt"`
}
