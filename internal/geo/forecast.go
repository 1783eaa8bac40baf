package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lox/cityweather/internal/httputil"
	"github.com/lox/cityweather/internal/models"
)

const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// CurrentWeather is the open-meteo current + hourly-UV payload consumed by the
// current-location panel.
type CurrentWeather struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		Dewpoint    *float64 `json:"dewpoint_2m"`
		Visibility  *float64 `json:"visibility"`
	} `json:"current"`
	Hourly struct {
		UVIndex []*float64 `json:"uv_index"`
	} `json:"hourly"`
}

// UVAt returns the UV index for the given hour of day, nil when absent.
func (w *CurrentWeather) UVAt(hour int) *float64 {
	if hour < 0 || hour >= len(w.Hourly.UVIndex) {
		return nil
	}
	return w.Hourly.UVIndex[hour]
}

type ForecastClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewForecastClient(baseURL string) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastClient{
		baseURL:    baseURL,
		httpClient: httputil.NewClient(),
	}
}

// Fetch retrieves current conditions and one day of hourly UV for the position.
func (c *ForecastClient) Fetch(ctx context.Context, pos Position, units models.Units) (*CurrentWeather, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", pos.Lat))
	q.Set("longitude", fmt.Sprintf("%f", pos.Lon))
	q.Set("current", "temperature_2m,dewpoint_2m,visibility")
	q.Set("hourly", "uv_index")
	q.Set("temperature_unit", string(units))
	q.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch forecast: status %d", resp.StatusCode)
	}

	var payload CurrentWeather
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &payload, nil
}
