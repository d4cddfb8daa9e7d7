package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWeatherServiceRefreshCachesConditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("current_weather") != "true" {
			t.Fatalf("missing current_weather flag in query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current_weather": {"temperature": 21.4, "windspeed": 7.2},
			"hourly": {"relative_humidity_2m": [58, 61, 63]}
		}`))
	}))
	defer server.Close()

	service := NewWeatherService(server.URL, 52.52, 13.4)

	if _, err := service.Current(); !errors.Is(err, ErrWeatherUnavailable) {
		t.Fatalf("expected ErrWeatherUnavailable before refresh, got %v", err)
	}

	if err := service.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	current, err := service.Current()
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if current.Temperature != 21.4 {
		t.Fatalf("expected temperature 21.4, got %v", current.Temperature)
	}
	if current.Humidity != 58 {
		t.Fatalf("expected first hourly humidity 58, got %v", current.Humidity)
	}
	if current.FetchedAt.IsZero() {
		t.Fatal("expected fetch timestamp")
	}
}

func TestWeatherServiceRefreshFailureKeepsServiceEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := NewWeatherService(server.URL, 0, 0)

	if err := service.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to fail")
	}
	if _, err := service.Current(); !errors.Is(err, ErrWeatherUnavailable) {
		t.Fatalf("expected ErrWeatherUnavailable after failed refresh, got %v", err)
	}
}
