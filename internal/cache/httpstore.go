package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/daemroni/leaflove/internal/models"
	"github.com/daemroni/leaflove/internal/services"
)

// RemoteError is a store refusal carried back to the caller with the
// status and message the server answered with.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (remoteError *RemoteError) Error() string {
	return fmt.Sprintf("remote store: %s (status %d)", remoteError.Message, remoteError.StatusCode)
}

// HTTPStore talks to the resource store's JSON API. The cookie jar
// keeps the session established by Login.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

func NewHTTPStore(baseURL string) (*HTTPStore, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Login establishes the session every other call rides on.
func (store *HTTPStore) Login(ctx context.Context, email string, password string) error {
	payload := map[string]string{"email": email, "password": password}
	return store.do(ctx, http.MethodPost, "/api/auth/login", payload, nil)
}

func (store *HTTPStore) ListPlants(ctx context.Context) ([]models.Plant, error) {
	plants := make([]models.Plant, 0)
	if err := store.do(ctx, http.MethodGet, "/api/plants", nil, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (store *HTTPStore) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := store.do(ctx, http.MethodGet, "/api/reminders", nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (store *HTTPStore) CreatePlant(ctx context.Context, input services.PlantInput) (models.Plant, error) {
	var plant models.Plant
	if err := store.do(ctx, http.MethodPost, "/api/plants", input, &plant); err != nil {
		return models.Plant{}, err
	}
	return plant, nil
}

func (store *HTTPStore) UpdatePlant(ctx context.Context, plantID string, patch services.PlantPatch) (models.Plant, error) {
	var plant models.Plant
	if err := store.do(ctx, http.MethodPut, "/api/plants/"+url.PathEscape(plantID), patch, &plant); err != nil {
		return models.Plant{}, err
	}
	return plant, nil
}

func (store *HTTPStore) DeletePlant(ctx context.Context, plantID string) error {
	return store.do(ctx, http.MethodDelete, "/api/plants/"+url.PathEscape(plantID), nil, nil)
}

func (store *HTTPStore) CreateReminder(ctx context.Context, input services.ReminderInput) (models.Reminder, error) {
	var reminder models.Reminder
	if err := store.do(ctx, http.MethodPost, "/api/reminders", input, &reminder); err != nil {
		return models.Reminder{}, err
	}
	return reminder, nil
}

func (store *HTTPStore) UpdateReminder(ctx context.Context, reminderID string, patch services.ReminderPatch) (models.Reminder, error) {
	var reminder models.Reminder
	if err := store.do(ctx, http.MethodPut, "/api/reminders/"+url.PathEscape(reminderID), patch, &reminder); err != nil {
		return models.Reminder{}, err
	}
	return reminder, nil
}

func (store *HTTPStore) DeleteReminder(ctx context.Context, reminderID string) error {
	return store.do(ctx, http.MethodDelete, "/api/reminders/"+url.PathEscape(reminderID), nil, nil)
}

func (store *HTTPStore) UploadImage(ctx context.Context, fileName string, content io.Reader, size int64) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finish upload form: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, store.baseURL+"/api/upload", body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	response, err := store.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", decodeRemoteError(response)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return result.URL, nil
}

func (store *HTTPStore) do(ctx context.Context, method string, path string, payload any, destination any) error {
	var body io.Reader
	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(serialized)
	}

	request, err := http.NewRequestWithContext(ctx, method, store.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := store.client.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeRemoteError(response)
	}

	if destination == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(destination); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeRemoteError(response *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := http.StatusText(response.StatusCode)
	if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &RemoteError{StatusCode: response.StatusCode, Message: message}
}
