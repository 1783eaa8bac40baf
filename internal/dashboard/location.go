package dashboard

import (
	"context"
	"errors"
	"log"

	"github.com/lox/cityweather/internal/geo"
	"github.com/lox/cityweather/internal/models"
)

// LocationUnavailableMsg is the fixed message shown when the device location
// cannot be determined. The panel takes no further action after showing it.
const LocationUnavailableMsg = "Could not determine your location. Local conditions are unavailable."

// LocationPanel is the non-card panel for the device's own position. It is
// populated once at startup and again only when the unit changes.
type LocationPanel struct {
	Available bool
	Message   string

	Lat float64
	Lon float64

	CityName    string
	Date        string
	Temperature string
	Dewpoint    string
	Visibility  string
	UV          string
	AQI         string
	PM25        string
	PM10        string
	PollenGrass string
	PollenTree  string
	PollenWeed  string

	Alerts []models.Alert
}

// Location returns the current-location panel state.
func (d *Dashboard) Location() LocationPanel { return d.location }

// ApplyLocation replaces the panel wholesale.
func (d *Dashboard) ApplyLocation(panel LocationPanel) { d.location = panel }

// ResolvePosition resolves the device position once. Explicit coordinates act
// as a pre-granted location; otherwise the IP locator is the capability check.
func (d *Dashboard) ResolvePosition(ctx context.Context, lat, lon float64) (geo.Position, error) {
	if lat != 0 || lon != 0 {
		return geo.Position{Lat: lat, Lon: lon}, nil
	}
	if d.providers.Locator == nil {
		return geo.Position{}, errors.New("no locator configured")
	}
	return d.providers.Locator.Locate(ctx)
}

// InitLocation resolves the device position at startup and populates the
// panel. Denial or failure is terminal for this panel: a fixed message, no
// retry, no polling loop.
func (d *Dashboard) InitLocation(ctx context.Context, lat, lon float64) {
	pos, err := d.ResolvePosition(ctx, lat, lon)
	if err != nil {
		log.Printf("location: %v", err)
		d.location = LocationPanel{Message: LocationUnavailableMsg}
		return
	}
	d.location.Lat, d.location.Lon = pos.Lat, pos.Lon
	d.location.Available = true
	d.RefreshLocation(ctx)
}

// BuildLocationPanel combines the four provider responses (forecast, reverse
// geocode, air quality, backend alerts) into a panel value, keyed by the
// current hour index. It touches no engine state, so event-loop callers can
// run it off-loop and hand the result to ApplyLocation. All four fetches must
// succeed; the first failure aborts the build.
func (d *Dashboard) BuildLocationPanel(ctx context.Context, pos geo.Position, units models.Units) (LocationPanel, error) {
	p := d.providers
	if p.Forecast == nil || p.AirQuality == nil || p.Geocoder == nil {
		return LocationPanel{}, errors.New("location providers not configured")
	}

	weather, err := p.Forecast.Fetch(ctx, pos, units)
	if err != nil {
		return LocationPanel{}, err
	}
	cityName, err := p.Geocoder.Reverse(ctx, pos)
	if err != nil {
		return LocationPanel{}, err
	}
	air, err := p.AirQuality.Fetch(ctx, pos)
	if err != nil {
		return LocationPanel{}, err
	}
	alerts, err := d.backend.FetchAlerts(ctx, pos.Lat, pos.Lon)
	if err != nil {
		return LocationPanel{}, err
	}

	now := d.now()
	hour := now.Hour()
	suffix := "°" + units.Symbol()

	panel := LocationPanel{
		Available:   true,
		Lat:         pos.Lat,
		Lon:         pos.Lon,
		CityName:    cityName,
		Date:        now.Format("Monday, January 2, 2006"),
		Temperature: withSuffix(fmtFixed1(weather.Current.Temperature), suffix),
		Dewpoint:    withSuffix(fmtFixed1(weather.Current.Dewpoint), suffix),
		Visibility:  withSuffix(fmtKilometres(weather.Current.Visibility), " km"),
		UV:          fmtFixed1(weather.UVAt(hour)),
		Alerts:      alerts,
	}

	aqi, pm25, pm10, grass, tree, weed := air.At(hour)
	panel.AQI = fmtWhole(aqi)
	panel.PM25 = fmtFixed1(pm25)
	panel.PM10 = fmtFixed1(pm10)
	panel.PollenGrass = fmtWhole(grass)
	panel.PollenTree = fmtWhole(tree)
	panel.PollenWeed = fmtWhole(weed)

	return panel, nil
}

// RefreshLocation rebuilds the panel in place. Any provider failure aborts
// this update and keeps the previous panel contents.
func (d *Dashboard) RefreshLocation(ctx context.Context) {
	if !d.location.Available {
		return
	}
	pos := geo.Position{Lat: d.location.Lat, Lon: d.location.Lon}
	panel, err := d.BuildLocationPanel(ctx, pos, d.units)
	if err != nil {
		log.Printf("location: %v", err)
		return
	}
	d.location = panel
}

func withSuffix(value, suffix string) string {
	if value == Placeholder {
		return value
	}
	return value + suffix
}
