package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/daemroni/leaflove/internal/api"
	"github.com/daemroni/leaflove/internal/db"
	"github.com/daemroni/leaflove/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded configuration from .env")
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	databaseURL := getEnv("DATABASE_URL", "")
	sqlitePath := getEnv("DB_PATH", filepath.Join("data", "leaflove.db"))
	port := getEnv("PORT", "8080")
	uploadDir := getEnv("UPLOAD_DIR", filepath.Join("data", "uploads"))
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"
	latitude := getEnvFloat("WEATHER_LATITUDE", 52.52)
	longitude := getEnvFloat("WEATHER_LONGITUDE", 13.41)

	database, err := db.Open(databaseURL, sqlitePath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	tips := services.NewTipService(0)
	weather := services.NewWeatherService(getEnv("WEATHER_BASE_URL", ""), latitude, longitude)

	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey:    secretKey,
		Location:     location,
		CookieSecure: cookieSecure,
		UploadDir:    uploadDir,
		Tips:         tips,
		Weather:      weather,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Leaflove",
		DisableStartupMessage: true,
		BodyLimit:             api.MaxUploadBytes + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	if corsConfig, enabled := corsSettings(getEnv("CORS_ALLOW_ORIGINS", "")); enabled {
		app.Use(cors.New(corsConfig))
	}

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	tips.Start(lifecycleCtx)
	go func() {
		refreshCtx, cancel := context.WithTimeout(lifecycleCtx, 15*time.Second)
		defer cancel()
		if err := weather.Refresh(refreshCtx); err != nil {
			log.Printf("weather lookup failed: %v", err)
		}
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Leaflove listening on http://0.0.0.0:%s (tz: %s)", port, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// corsSettings builds the cross-origin policy from a comma-separated
// origin allowlist. Cookies ride on every authenticated request, so
// without an explicit allowlist no cross-origin access is granted at
// all.
func corsSettings(allowOrigins string) (cors.Config, bool) {
	origins := strings.TrimSpace(allowOrigins)
	if origins == "" {
		return cors.Config{}, false
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: true,
	}, true
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s %q, falling back to %v", key, raw, fallback)
		return fallback
	}
	return value
}
