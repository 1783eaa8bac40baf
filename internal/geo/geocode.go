package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lox/cityweather/internal/httputil"
)

const DefaultGeocodeURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

// Geocoder resolves coordinates to a locality name.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: httputil.NewClient(),
	}
}

// Reverse returns the city name for a position, or an error when the provider
// is unreachable. An empty city name is not an error; callers render it as-is.
func (g *Geocoder) Reverse(ctx context.Context, pos Position) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", pos.Lat))
	q.Set("longitude", fmt.Sprintf("%f", pos.Lon))
	q.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: status %d", resp.StatusCode)
	}

	var payload struct {
		City string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return payload.City, nil
}
