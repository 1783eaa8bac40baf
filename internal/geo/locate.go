// Package geo holds the clients the current-location panel calls directly:
// IP geolocation (the terminal stand-in for browser geolocation), the
// open-meteo forecast and air-quality APIs, and reverse geocoding. All are
// best-effort; any failure aborts that panel's update for the cycle.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lox/cityweather/internal/httputil"
)

const DefaultLocateURL = "http://ip-api.com/json/"

// Position is a resolved device location.
type Position struct {
	Lat float64
	Lon float64
}

// Locator resolves the device's approximate coordinates from its public IP.
type Locator struct {
	baseURL    string
	httpClient *http.Client
}

func NewLocator(baseURL string) *Locator {
	if baseURL == "" {
		baseURL = DefaultLocateURL
	}
	return &Locator{
		baseURL:    baseURL,
		httpClient: httputil.NewClient(),
	}
}

// Locate performs a single lookup. There is no retry: a failed lookup leaves
// the current-location panel in its terminal "unavailable" state.
func (l *Locator) Locate(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return Position{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("locate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("locate: status %d", resp.StatusCode)
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Position{}, fmt.Errorf("decode: %w", err)
	}
	if payload.Status != "success" {
		return Position{}, fmt.Errorf("locate: status %q", payload.Status)
	}
	return Position{Lat: payload.Lat, Lon: payload.Lon}, nil
}
