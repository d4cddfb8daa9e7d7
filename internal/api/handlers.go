package api

import (
	"errors"
	"time"

	"github.com/daemroni/leaflove/internal/db"
	"github.com/daemroni/leaflove/internal/services"
	"gorm.io/gorm"
)

type HandlerConfig struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	UploadDir    string
	Tips         *services.TipService
	Weather      *services.WeatherService
}

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}

	location := config.Location
	if location == nil {
		location = time.UTC
	}
	uploadDir := config.UploadDir
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}

	return &Handler{
		repos:        db.NewRepositories(database),
		secretKey:    []byte(config.SecretKey),
		location:     location,
		cookieSecure: config.CookieSecure,
		uploadDir:    uploadDir,
		tips:         config.Tips,
		weather:      config.Weather,
	}, nil
}
