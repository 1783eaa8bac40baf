package dashboard

import (
	"fmt"
	"time"

	"github.com/lox/cityweather/internal/models"
)

// Placeholder renders in place of any null or missing numeric field. Absent
// data is never shown as "0" or "NaN".
const Placeholder = "—"

// Card is the rendered view state of one selected city. All value fields are
// pre-formatted strings; suffixes that depend on the active unit are stored
// alongside so a unit change re-renders every label consistently.
type Card struct {
	City models.City

	Time        string
	Temperature string
	Wind        string
	Dewpoint    string
	Visibility  string
	UV          string
	AQI         string
	PM25        string
	PM10        string
	PollenGrass string
	PollenTree  string
	PollenWeed  string

	Alerts   []models.Alert
	Outfit   string
	Activity string
	Tip      string

	Forecast []ForecastCell

	TempSuffix string // "°C" or "°F", applied to temperature and dewpoint rows
}

// ForecastCell is one rendered day of the forward-looking forecast strip.
type ForecastCell struct {
	Day     string
	Glyph   string
	TempMax string
	TempMin string
	UV      string
}

func newCard(city models.City, units models.Units) *Card {
	return &Card{
		City:        city,
		Time:        Placeholder,
		Temperature: Placeholder,
		Wind:        Placeholder,
		Dewpoint:    Placeholder,
		Visibility:  Placeholder,
		UV:          Placeholder,
		AQI:         Placeholder,
		PM25:        Placeholder,
		PM10:        Placeholder,
		PollenGrass: Placeholder,
		PollenTree:  Placeholder,
		PollenWeed:  Placeholder,
		Outfit:      Placeholder,
		Activity:    Placeholder,
		Tip:         Placeholder,
		TempSuffix:  "°" + units.Symbol(),
	}
}

// RebuildCards destroys every card and creates a fresh one per selected city,
// in selection order. Clock entries for cities that remain selected survive;
// everything else about a removed city is dropped. Trading efficiency for
// correctness here guarantees no card ever shows data for an unselected city.
func (d *Dashboard) RebuildCards() {
	old := d.records
	d.records = make(map[int64]*cityRecord, len(d.selected))
	for _, city := range d.selected {
		rec := &cityRecord{card: newCard(city, d.units)}
		if prev, ok := old[city.ID]; ok {
			rec.clock = prev.clock
		}
		d.records[city.ID] = rec
	}

	// Focus defaults to the first selected city; an explicit card-click focus
	// survives rebuilds as long as any selection remains.
	if len(d.selected) == 0 {
		d.mapState.Lat, d.mapState.Lon = 0, 0
	} else if d.mapState.Lat == 0 && d.mapState.Lon == 0 {
		d.FocusCity(d.selected[0])
	}
}

// applySnapshot overwrites a card's value fields from a freshly polled record.
func (c *Card) applySnapshot(snap *models.CityWeather, units models.Units) {
	c.TempSuffix = "°" + units.Symbol()

	if w := snap.Weather; w != nil {
		c.Temperature = fmtFixed1(w.Temperature)
		c.Wind = fmtFixed1(w.Windspeed)
		c.Dewpoint = fmtFixed1(w.Dewpoint)
		c.Visibility = fmtKilometres(w.Visibility)
	} else {
		c.Temperature = Placeholder
		c.Wind = Placeholder
		c.Dewpoint = Placeholder
		c.Visibility = Placeholder
	}

	if len(snap.Forecast) > 0 {
		c.UV = fmt.Sprintf("%.1f", snap.Forecast[0].UVIndex)
	} else {
		c.UV = Placeholder
	}

	if aq := snap.AirQuality; aq != nil {
		c.AQI = fmtWhole(aq.EuropeanAQI)
		c.PM25 = fmtFixed1(aq.PM25)
		c.PM10 = fmtFixed1(aq.PM10)
		c.PollenGrass = fmtWhole(aq.PollenGrass)
		c.PollenTree = fmtWhole(aq.PollenTree)
		c.PollenWeed = fmtWhole(aq.PollenWeed)
	} else {
		c.AQI = Placeholder
		c.PM25 = Placeholder
		c.PM10 = Placeholder
		c.PollenGrass = Placeholder
		c.PollenTree = Placeholder
		c.PollenWeed = Placeholder
	}

	c.Alerts = snap.Alerts
	c.Outfit = orPlaceholder(snap.OutfitRecommendation)
	c.Activity = orPlaceholder(snap.ActivityRecommendation)
	c.Tip = orPlaceholder(snap.WeatherTip)

	c.Forecast = c.Forecast[:0]
	for _, day := range snap.Forecast {
		c.Forecast = append(c.Forecast, ForecastCell{
			Day:     dayOfWeek(day.Date),
			Glyph:   weatherGlyph(day.WeatherCode),
			TempMax: fmt.Sprintf("%.0f%s", day.TempMax, c.TempSuffix),
			TempMin: fmt.Sprintf("%.0f%s", day.TempMin, c.TempSuffix),
			UV:      fmt.Sprintf("UV: %.1f", day.UVIndex),
		})
	}
}

func fmtFixed1(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtWhole(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.0f", *v)
}

// fmtKilometres converts a visibility reading in metres to kilometres.
func fmtKilometres(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f", *v/1000)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func dayOfWeek(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}

// weatherGlyph maps WMO weather codes to a display glyph, mirroring the icon
// table the web dashboard used.
func weatherGlyph(code int) string {
	switch code {
	case 0:
		return "☀"
	case 1, 2:
		return "⛅"
	case 3:
		return "☁"
	case 45, 48:
		return "🌫"
	case 51, 53, 61, 63:
		return "🌧"
	case 55, 65, 80, 81, 82:
		return "⛈"
	case 95:
		return "🌩"
	default:
		return "?"
	}
}
