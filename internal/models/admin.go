package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminAuthRequest is the payload of POST /api/admin-auth
type AdminAuthRequest struct {
	SecretKey string `json:"secretKey" binding:"required"`
}

// AdminAuthResponse carries the short-lived admin token
type AdminAuthResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminClaims represents the admin session token claims
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const RoleAdmin = "admin"

// ImportResponse is returned by POST /api/upload-employees
type ImportResponse struct {
	Message      string   `json:"message"`
	AddedCount   int      `json:"addedCount"`
	UpdatedCount int      `json:"updatedCount"`
	Errors       []string `json:"errors"`
}
