package api

import (
	"time"

	"github.com/daemroni/leaflove/internal/db"
	"github.com/daemroni/leaflove/internal/services"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookieName = "leaflove_auth"
	contextUserKey = "current_user"

	authTokenTTL = 7 * 24 * time.Hour

	// Uploads above this size are rejected before anything is written.
	MaxUploadBytes = 5 * 1024 * 1024
)

type Handler struct {
	repos        *db.Repositories
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	uploadDir    string
	tips         *services.TipService
	weather      *services.WeatherService
}

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
