// Package backend is the client for the dashboard aggregation API. Every call
// is a single attempt: a transport error or non-2xx status is returned to the
// caller and the cycle that issued it is simply skipped. Recovery is the next
// scheduled cycle or the next user action, never an automatic retry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lox/cityweather/internal/httputil"
	"github.com/lox/cityweather/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httputil.NewClient(),
	}
}

// FetchData retrieves aggregated weather for the currently selected cities.
// Unit conversion happens server-side against the stored preference.
func (c *Client) FetchData(ctx context.Context) ([]models.CityWeather, error) {
	var records []models.CityWeather
	if err := c.getJSON(ctx, "/api/data", nil, &records); err != nil {
		return nil, fmt.Errorf("fetch data: %w", err)
	}
	return records, nil
}

// FetchCatalog retrieves the full city catalog used by the picker.
func (c *Client) FetchCatalog(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := c.getJSON(ctx, "/api/cities", nil, &cities); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return cities, nil
}

// FetchSelection retrieves the backend-confirmed selected city list.
func (c *Client) FetchSelection(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := c.getJSON(ctx, "/api/user/cities", nil, &cities); err != nil {
		return nil, fmt.Errorf("fetch selection: %w", err)
	}
	return cities, nil
}

// AddCity asks the backend to add the city to the selection.
func (c *Client) AddCity(ctx context.Context, city models.City) error {
	if err := c.sendJSON(ctx, http.MethodPost, "/api/user/cities", city); err != nil {
		return fmt.Errorf("add city: %w", err)
	}
	return nil
}

// RemoveCity asks the backend to remove the city from the selection.
func (c *Client) RemoveCity(ctx context.Context, city models.City) error {
	if err := c.sendJSON(ctx, http.MethodDelete, "/api/user/cities", city); err != nil {
		return fmt.Errorf("remove city: %w", err)
	}
	return nil
}

// UpdateUnits persists the temperature unit preference server-side. Callers
// must not apply the unit locally until this returns nil.
func (c *Client) UpdateUnits(ctx context.Context, units models.Units) error {
	body := struct {
		Units models.Units `json:"units"`
	}{Units: units}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/user/units", body); err != nil {
		return fmt.Errorf("update units: %w", err)
	}
	return nil
}

// FetchAlerts retrieves active weather alerts for a coordinate pair.
func (c *Client) FetchAlerts(ctx context.Context, lat, lon float64) ([]models.Alert, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))

	var payload struct {
		Alerts []models.Alert `json:"alerts"`
	}
	if err := c.getJSON(ctx, "/api/weather_alerts", q, &payload); err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	return payload.Alerts, nil
}

// FetchHistory retrieves the daily series for [start, end] inclusive, both in
// YYYY-MM-DD form. Temperatures follow units; precipitation is always mm.
func (c *Client) FetchHistory(ctx context.Context, lat, lon float64, start, end string, units models.Units) (*models.History, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("temperature_unit", string(units))

	var history models.History
	if err := c.getJSON(ctx, "/api/historical_weather", q, &history); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return &history, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
