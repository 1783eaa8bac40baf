package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lox/cityweather/internal/backend"
	"github.com/lox/cityweather/internal/geo"
)

// hourly series with a value at index 10, matching fixedNow's hour.
const forecastBody = `{
	"current":{"temperature_2m":14.25,"dewpoint_2m":8.1,"visibility":18500},
	"hourly":{"uv_index":[0,0,0,0,0,0,0,0,0,0,4.2]}
}`

const airQualityBody = `{"hourly":{
	"european_aqi":[null,null,null,null,null,null,null,null,null,null,32],
	"pm10":[null,null,null,null,null,null,null,null,null,null,12.5],
	"pm2_5":[null,null,null,null,null,null,null,null,null,null,7.8],
	"pollen_grass":[null,null,null,null,null,null,null,null,null,null,2],
	"pollen_tree":[null,null,null,null,null,null,null,null,null,null,0],
	"pollen_weed":[null,null,null,null,null,null,null,null,null,null,1]
}}`

func newLocationDashboard(t *testing.T, mux *http.ServeMux) *Dashboard {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	providers := Providers{
		Locator:    geo.NewLocator(srv.URL + "/locate"),
		Forecast:   geo.NewForecastClient(srv.URL + "/forecast"),
		AirQuality: geo.NewAirQualityClient(srv.URL + "/air"),
		Geocoder:   geo.NewGeocoder(srv.URL + "/geocode"),
	}
	return New(backend.NewClient(srv.URL), nil,
		WithNow(func() time.Time { return fixedNow }),
		WithProviders(providers))
}

func locationMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/locate", okJSON(`{"status":"success","lat":52.52,"lon":13.405}`))
	mux.HandleFunc("/forecast", okJSON(forecastBody))
	mux.HandleFunc("/air", okJSON(airQualityBody))
	mux.HandleFunc("/geocode", okJSON(`{"city":"Berlin"}`))
	mux.HandleFunc("GET /api/weather_alerts", okJSON(`{"alerts":[{"event":"Storm","description":"High winds"}]}`))
	return mux
}

func TestInitLocation_PopulatesPanel(t *testing.T) {
	d := newLocationDashboard(t, locationMux())
	d.InitLocation(context.Background(), 0, 0)

	panel := d.Location()
	if !panel.Available {
		t.Fatalf("panel unavailable: %q", panel.Message)
	}
	if panel.Lat != 52.52 || panel.Lon != 13.405 {
		t.Errorf("position = %v,%v", panel.Lat, panel.Lon)
	}
	if panel.CityName != "Berlin" {
		t.Errorf("city = %q", panel.CityName)
	}
	if panel.Date != "Saturday, June 1, 2024" {
		t.Errorf("date = %q", panel.Date)
	}
	if panel.Temperature != "14.2°C" || panel.Dewpoint != "8.1°C" {
		t.Errorf("temp/dewpoint = %q/%q", panel.Temperature, panel.Dewpoint)
	}
	if panel.Visibility != "18.5 km" {
		t.Errorf("visibility = %q", panel.Visibility)
	}
	if panel.UV != "4.2" {
		t.Errorf("uv = %q", panel.UV)
	}
	if panel.AQI != "32" || panel.PM25 != "7.8" || panel.PM10 != "12.5" {
		t.Errorf("air = %q/%q/%q", panel.AQI, panel.PM25, panel.PM10)
	}
	if panel.PollenGrass != "2" || panel.PollenTree != "0" || panel.PollenWeed != "1" {
		t.Errorf("pollen = %q/%q/%q", panel.PollenGrass, panel.PollenTree, panel.PollenWeed)
	}
	if len(panel.Alerts) != 1 || panel.Alerts[0].Event != "Storm" {
		t.Errorf("alerts = %+v", panel.Alerts)
	}
}

func TestInitLocation_ExplicitCoordinatesSkipLocator(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/locate", func(w http.ResponseWriter, r *http.Request) {
		t.Error("locator called despite explicit coordinates")
	})
	mux.HandleFunc("/forecast", okJSON(forecastBody))
	mux.HandleFunc("/air", okJSON(airQualityBody))
	mux.HandleFunc("/geocode", okJSON(`{"city":"Paris"}`))
	mux.HandleFunc("GET /api/weather_alerts", okJSON(`{"alerts":[]}`))

	d := newLocationDashboard(t, mux)
	d.InitLocation(context.Background(), 48.8566, 2.3522)

	panel := d.Location()
	if !panel.Available || panel.Lat != 48.8566 {
		t.Errorf("panel = %+v", panel)
	}
}

func TestInitLocation_LocatorFailureIsTerminal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/locate", okJSON(`{"status":"fail"}`))

	d := newLocationDashboard(t, mux)
	d.InitLocation(context.Background(), 0, 0)

	panel := d.Location()
	if panel.Available {
		t.Fatal("panel available after locator denial")
	}
	if panel.Message != LocationUnavailableMsg {
		t.Errorf("message = %q", panel.Message)
	}
}

func TestRefreshLocation_ProviderFailureKeepsPriorPanel(t *testing.T) {
	failAir := false
	flaky := http.NewServeMux()
	flaky.HandleFunc("/locate", okJSON(`{"status":"success","lat":52.52,"lon":13.405}`))
	flaky.HandleFunc("/forecast", okJSON(forecastBody))
	flaky.HandleFunc("/air", func(w http.ResponseWriter, r *http.Request) {
		if failAir {
			http.Error(w, "provider down", http.StatusServiceUnavailable)
			return
		}
		okJSON(airQualityBody)(w, r)
	})
	flaky.HandleFunc("/geocode", okJSON(`{"city":"Berlin"}`))
	flaky.HandleFunc("GET /api/weather_alerts", okJSON(`{"alerts":[]}`))

	d := newLocationDashboard(t, flaky)
	d.InitLocation(context.Background(), 0, 0)
	if got := d.Location().CityName; got != "Berlin" {
		t.Fatalf("city = %q", got)
	}

	failAir = true
	d.RefreshLocation(context.Background())

	panel := d.Location()
	if panel.CityName != "Berlin" || panel.AQI != "32" {
		t.Errorf("panel lost prior contents: %+v", panel)
	}
}
