package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com"

var ErrWeatherUnavailable = errors.New("weather data unavailable")

// CurrentWeather is the snapshot of outdoor conditions shown next to
// plant care advice.
type CurrentWeather struct {
	Temperature float64   `json:"temperature"`
	WindSpeed   float64   `json:"windspeed"`
	Humidity    float64   `json:"humidity"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// WeatherService fetches current conditions from open-meteo once and
// serves the cached result. A failed lookup leaves the service empty
// rather than failing the application.
type WeatherService struct {
	client    *http.Client
	baseURL   string
	latitude  float64
	longitude float64

	mu      sync.RWMutex
	current *CurrentWeather
}

func NewWeatherService(baseURL string, latitude float64, longitude float64) *WeatherService {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &WeatherService{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		latitude:  latitude,
		longitude: longitude,
	}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
	Hourly struct {
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

// Refresh performs the lookup and replaces the cached snapshot.
func (service *WeatherService) Refresh(ctx context.Context) error {
	query := url.Values{
		"latitude":        {strconv.FormatFloat(service.latitude, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(service.longitude, 'f', -1, 64)},
		"current_weather": {"true"},
		"hourly":          {"relative_humidity_2m"},
	}
	endpoint := fmt.Sprintf("%s/v1/forecast?%s", service.baseURL, query.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build weather request: %w", err)
	}

	response, err := service.client.Do(request)
	if err != nil {
		return fmt.Errorf("fetch weather: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch weather: unexpected status %d", response.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}

	snapshot := &CurrentWeather{
		Temperature: payload.CurrentWeather.Temperature,
		WindSpeed:   payload.CurrentWeather.WindSpeed,
		FetchedAt:   time.Now(),
	}
	if len(payload.Hourly.RelativeHumidity) > 0 {
		snapshot.Humidity = payload.Hourly.RelativeHumidity[0]
	}

	service.mu.Lock()
	service.current = snapshot
	service.mu.Unlock()
	return nil
}

// Current returns the cached snapshot, or ErrWeatherUnavailable when no
// lookup has succeeded yet.
func (service *WeatherService) Current() (CurrentWeather, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()
	if service.current == nil {
		return CurrentWeather{}, ErrWeatherUnavailable
	}
	return *service.current, nil
}
