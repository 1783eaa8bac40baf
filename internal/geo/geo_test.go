package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lox/cityweather/internal/models"
)

func TestLocate_FailStatusIsError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	t.Cleanup(srv.Close)

	if _, err := NewLocator(srv.URL).Locate(context.Background()); err == nil {
		t.Fatal("expected error for fail status")
	}
}

func TestLocate_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":-36.794,"lon":146.977}`))
	}))
	t.Cleanup(srv.Close)

	pos, err := NewLocator(srv.URL).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if pos.Lat != -36.794 || pos.Lon != 146.977 {
		t.Errorf("position = %+v", pos)
	}
}

func TestForecastFetch_QueryAndUVAt(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("current") != "temperature_2m,dewpoint_2m,visibility" {
			t.Errorf("current = %q", q.Get("current"))
		}
		if q.Get("temperature_unit") != "fahrenheit" {
			t.Errorf("temperature_unit = %q", q.Get("temperature_unit"))
		}
		if q.Get("forecast_days") != "1" {
			t.Errorf("forecast_days = %q", q.Get("forecast_days"))
		}
		w.Write([]byte(`{
			"current":{"temperature_2m":57.2,"dewpoint_2m":46.4,"visibility":24140},
			"hourly":{"uv_index":[0,0.5,null,2.1]}
		}`))
	}))
	t.Cleanup(srv.Close)

	weather, err := NewForecastClient(srv.URL).Fetch(context.Background(), Position{Lat: 48.85, Lon: 2.35}, models.UnitsFahrenheit)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if weather.Current.Temperature == nil || *weather.Current.Temperature != 57.2 {
		t.Errorf("temperature = %+v", weather.Current.Temperature)
	}
	if uv := weather.UVAt(3); uv == nil || *uv != 2.1 {
		t.Errorf("uv at 3 = %v", uv)
	}
	if weather.UVAt(2) != nil {
		t.Error("null hour should be nil")
	}
	if weather.UVAt(24) != nil {
		t.Error("out-of-range hour should be nil")
	}
}

func TestAirQualityAt_BoundsAndNulls(t *testing.T) {
	t.Parallel()
	var air HourlyAirQuality
	v := 32.0
	air.Hourly.EuropeanAQI = []*float64{nil, &v}
	air.Hourly.PM25 = []*float64{nil}

	aqi, pm25, _, _, _, _ := air.At(1)
	if aqi == nil || *aqi != 32 {
		t.Errorf("aqi = %v", aqi)
	}
	if pm25 != nil {
		t.Error("pm25 beyond series length should be nil")
	}

	aqi, _, _, _, _, _ = air.At(-1)
	if aqi != nil {
		t.Error("negative hour should be nil")
	}
}

func TestReverse_ReturnsCity(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("localityLanguage") != "en" {
			t.Errorf("localityLanguage = %q", r.URL.Query().Get("localityLanguage"))
		}
		w.Write([]byte(`{"city":"Bright","locality":"Bright"}`))
	}))
	t.Cleanup(srv.Close)

	city, err := NewGeocoder(srv.URL).Reverse(context.Background(), Position{Lat: -36.73, Lon: 146.96})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if city != "Bright" {
		t.Errorf("city = %q", city)
	}
}
