// Package dashboard is the state synchronization engine behind the city
// weather view. Three independently-updating inputs feed it: the periodic
// backend poll, user-driven selection edits, and the per-second clock tick.
// The engine reconciles them against a single per-city record so the rendered
// cards, clocks, map focus and chart never disagree about which cities exist.
//
// The engine is not safe for concurrent use. Callers serialize all access on
// one goroutine: the headless scheduler's select loop or the TUI update loop.
package dashboard

import (
	"log"
	"time"

	"github.com/lox/cityweather/internal/backend"
	"github.com/lox/cityweather/internal/geo"
	"github.com/lox/cityweather/internal/models"
	"github.com/lox/cityweather/internal/store"
)

// cityRecord joins everything the engine tracks for one selected city. Keeping
// snapshot, clock entry and card in a single record keyed by city id means the
// three can never drift out of key-sync.
type cityRecord struct {
	card     *Card
	snapshot *models.CityWeather
	clock    *models.ClockEntry
}

type MapState struct {
	Layer models.MapLayer
	Lat   float64
	Lon   float64
}

// Providers bundles the third-party clients used by the current-location
// panel. Any of them may be nil, which disables the panel.
type Providers struct {
	Locator    *geo.Locator
	Forecast   *geo.ForecastClient
	AirQuality *geo.AirQualityClient
	Geocoder   *geo.Geocoder
}

type Dashboard struct {
	backend   *backend.Client
	settings  *store.Store
	providers Providers

	units models.Units
	theme models.Theme

	selected []models.City
	records  map[int64]*cityRecord
	catalog  []models.City

	mapState MapState
	chart    *Chart

	location LocationPanel

	tzCache map[string]*time.Location
	now     func() time.Time
}

type Option func(*Dashboard)

// WithNow overrides the wall clock, letting tests drive time deterministically.
func WithNow(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

func WithProviders(p Providers) Option {
	return func(d *Dashboard) { d.providers = p }
}

func New(client *backend.Client, settings *store.Store, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend:  client,
		settings: settings,
		units:    models.UnitsCelsius,
		theme:    models.ThemeDark,
		records:  make(map[int64]*cityRecord),
		mapState: MapState{Layer: models.LayerWind},
		tzCache:  make(map[string]*time.Location),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if settings != nil {
		theme, err := settings.Theme()
		if err != nil {
			log.Printf("dashboard: load theme: %v", err)
		} else {
			d.theme = theme
		}
	}
	return d
}

// Backend exposes the API client so schedulers and UI commands can issue
// fetches off the event loop and hand results back in.
func (d *Dashboard) Backend() *backend.Client { return d.backend }

func (d *Dashboard) Units() models.Units { return d.units }
func (d *Dashboard) Theme() models.Theme { return d.theme }
func (d *Dashboard) Map() MapState       { return d.mapState }

// Selected returns the selection in display order. Callers must not mutate it.
func (d *Dashboard) Selected() []models.City { return d.selected }

// Cards returns one card per selected city, in selection order.
func (d *Dashboard) Cards() []*Card {
	cards := make([]*Card, 0, len(d.selected))
	for _, city := range d.selected {
		if rec, ok := d.records[city.ID]; ok {
			cards = append(cards, rec.card)
		}
	}
	return cards
}

// CardFor returns the card for a city id, or nil when the city is not
// selected.
func (d *Dashboard) CardFor(id int64) *Card {
	if rec, ok := d.records[id]; ok {
		return rec.card
	}
	return nil
}

// ClockFor returns the clock entry for a city id, or nil when unset.
func (d *Dashboard) ClockFor(id int64) *models.ClockEntry {
	if rec, ok := d.records[id]; ok {
		return rec.clock
	}
	return nil
}

// SnapshotFor returns the last applied snapshot for a city id, or nil.
func (d *Dashboard) SnapshotFor(id int64) *models.CityWeather {
	if rec, ok := d.records[id]; ok {
		return rec.snapshot
	}
	return nil
}

func (d *Dashboard) loadLocation(name string) (*time.Location, error) {
	if loc, ok := d.tzCache[name]; ok {
		if loc == nil {
			return nil, errBadTimezone
		}
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		d.tzCache[name] = nil
		return nil, err
	}
	d.tzCache[name] = loc
	return loc, nil
}
