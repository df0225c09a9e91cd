package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user of a role.
type LoginRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Role     UserRole `json:"role" validate:"required,oneof=admin teacher student parent"`
}

// LoginResponse returns the issued token and the user profile.
type LoginResponse struct {
	Success bool                   `json:"success"`
	Token   string                 `json:"token"`
	User    map[string]interface{} `json:"user"`
}

// UpdatePasswordRequest payload for changing the caller's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"userId"`
	Role     UserRole `json:"role"`
	Username string   `json:"username"`
	jwt.RegisteredClaims
}
