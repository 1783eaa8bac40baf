package dashboard

import (
	"fmt"

	"github.com/lox/cityweather/internal/models"
)

const (
	windyBaseURL = "https://www.windy.com/embed2.html"
	mapZoom      = 5
)

// SetLayer switches the active map overlay and keeps the current focus.
func (d *Dashboard) SetLayer(layer models.MapLayer) {
	d.mapState.Layer = layer
}

// FocusCity points the map panel at a city's coordinates (card click).
func (d *Dashboard) FocusCity(city models.City) {
	d.mapState.Lat = city.Lat
	d.mapState.Lon = city.Lon
}

// MapURL derives the embed URL for the current focus and layer. The panel's
// own load failures are the embed provider's problem, not ours.
func (d *Dashboard) MapURL() string {
	m := d.mapState
	return fmt.Sprintf(
		"%s?lat=%v&lon=%v&zoom=%d&points=one&overlay=%s&product=ecmwf&metric_temp=c&metric_wind=km/h&detailLat=%v&detailLon=%v&detail=true&marker=true&message=true&calendar=false&actualGrid=false&radarRange=-1",
		windyBaseURL, m.Lat, m.Lon, mapZoom, m.Layer.Overlay(), m.Lat, m.Lon,
	)
}
