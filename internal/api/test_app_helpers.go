package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/daemroni/leaflove/internal/db"
	"github.com/daemroni/leaflove/internal/models"
	"github.com/daemroni/leaflove/internal/services"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "leaflove-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, HandlerConfig{
		SecretKey: "test-secret-key",
		Location:  time.UTC,
		UploadDir: filepath.Join(t.TempDir(), "uploads"),
		Tips:      services.NewTipService(time.Hour),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{BodyLimit: MaxUploadBytes + 1024*1024})
	RegisterRoutes(app, handler)
	return app, database
}

func createTestUser(t *testing.T, database *gorm.DB, email string, password string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}

	t.Fatal("auth cookie is missing in login response")
	return ""
}

func registerAndLogin(t *testing.T, app *fiber.App, database *gorm.DB) string {
	t.Helper()
	createTestUser(t, database, "gardener@example.com", "greenhouse8")
	return loginAndExtractAuthCookie(t, app, "gardener@example.com", "greenhouse8")
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(serialized)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request
}

func authedJSONRequest(t *testing.T, method string, target string, payload any, authCookie string) *http.Request {
	t.Helper()

	request := jsonRequest(t, method, target, payload)
	request.Header.Set("Cookie", authCookie)
	return request
}

func performRequest(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})

	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d", request.Method, request.URL.Path, response.StatusCode, wantStatus)
	}
	return response
}

func decodeResponse(t *testing.T, body io.Reader, destination any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(destination); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	decodeResponse(t, body, &payload)
	return payload["error"]
}

func validPlantPayload() map[string]any {
	return map[string]any{
		"name":                "Monstera",
		"botanicalName":       "Monstera deliciosa",
		"description":         "Fenestrated leaves, climbs with support.",
		"lightNeed":           models.LightPartialShade,
		"waterNeed":           models.WaterMedium,
		"fertiliserSeason":    []string{models.SeasonSpring, models.SeasonSummer},
		"catPoisonous":        models.CatPoisonous,
		"dogPoisonous":        models.DogPoisonous,
		"careLevel":           models.CareLevelBeginner,
		"location":            models.LocationIndoor,
		"humidity":            "60%",
		"temperature":         "20-30°C",
		"airDraftIntolerance": "Yes",
	}
}

func createPlantViaAPI(t *testing.T, app *fiber.App, authCookie string) models.Plant {
	t.Helper()

	request := authedJSONRequest(t, http.MethodPost, "/api/plants", validPlantPayload(), authCookie)
	response := performRequest(t, app, request, http.StatusCreated)

	var plant models.Plant
	decodeResponse(t, response.Body, &plant)
	if plant.ID == "" {
		t.Fatal("created plant has no id")
	}
	return plant
}

func createReminderViaAPI(t *testing.T, app *fiber.App, authCookie string, plantID string, taskType string, dueDate string) models.Reminder {
	t.Helper()

	request := authedJSONRequest(t, http.MethodPost, "/api/reminders", map[string]any{
		"plantId":  plantID,
		"taskType": taskType,
		"dueDate":  dueDate,
	}, authCookie)
	response := performRequest(t, app, request, http.StatusCreated)

	var reminder models.Reminder
	decodeResponse(t, response.Body, &reminder)
	if reminder.ID == "" {
		t.Fatal("created reminder has no id")
	}
	return reminder
}
