package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lox/cityweather/internal/httputil"
)

const DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

// HourlyAirQuality carries one UTC day of hourly air-quality series. Individual
// hours may be null where the provider has no data.
type HourlyAirQuality struct {
	Hourly struct {
		EuropeanAQI []*float64 `json:"european_aqi"`
		PM10        []*float64 `json:"pm10"`
		PM25        []*float64 `json:"pm2_5"`
		PollenGrass []*float64 `json:"pollen_grass"`
		PollenTree  []*float64 `json:"pollen_tree"`
		PollenWeed  []*float64 `json:"pollen_weed"`
	} `json:"hourly"`
}

func hourValue(series []*float64, hour int) *float64 {
	if hour < 0 || hour >= len(series) {
		return nil
	}
	return series[hour]
}

// At returns the air-quality readings for the given hour of day.
func (a *HourlyAirQuality) At(hour int) (aqi, pm25, pm10, grass, tree, weed *float64) {
	return hourValue(a.Hourly.EuropeanAQI, hour),
		hourValue(a.Hourly.PM25, hour),
		hourValue(a.Hourly.PM10, hour),
		hourValue(a.Hourly.PollenGrass, hour),
		hourValue(a.Hourly.PollenTree, hour),
		hourValue(a.Hourly.PollenWeed, hour)
}

type AirQualityClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAirQualityClient(baseURL string) *AirQualityClient {
	if baseURL == "" {
		baseURL = DefaultAirQualityURL
	}
	return &AirQualityClient{
		baseURL:    baseURL,
		httpClient: httputil.NewClient(),
	}
}

func (c *AirQualityClient) Fetch(ctx context.Context, pos Position) (*HourlyAirQuality, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", pos.Lat))
	q.Set("longitude", fmt.Sprintf("%f", pos.Lon))
	q.Set("hourly", "european_aqi,pm10,pm2_5,pollen_grass,pollen_tree,pollen_weed")
	q.Set("forecast_days", "1")
	q.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch air quality: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch air quality: status %d", resp.StatusCode)
	}

	var payload HourlyAirQuality
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &payload, nil
}
