package dashboard

import (
	"context"
	"log"
	"strings"

	"github.com/lox/cityweather/internal/metrics"
	"github.com/lox/cityweather/internal/models"
)

// PickerRow is one row of the editable city-picker list.
type PickerRow struct {
	City     models.City
	Selected bool
}

// SetCatalog replaces the cached full city catalog used by the picker.
func (d *Dashboard) SetCatalog(cities []models.City) {
	d.catalog = cities
}

// SetSelection replaces the selection wholesale (startup and picker-open
// resync) and rebuilds the cards.
func (d *Dashboard) SetSelection(cities []models.City) {
	d.selected = dedupeByID(cities)
	d.RebuildCards()
}

// RefreshPicker fetches the catalog and the backend-confirmed selection, as
// the picker does on open.
func (d *Dashboard) RefreshPicker(ctx context.Context) error {
	catalog, err := d.backend.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	selection, err := d.backend.FetchSelection(ctx)
	if err != nil {
		return err
	}
	d.SetCatalog(catalog)
	d.SetSelection(selection)
	return nil
}

// FilterCatalog returns the picker rows matching a case-insensitive substring
// of the city name or country, recomputed on every keystroke. Membership in
// the selection decides whether a row offers add or remove.
func (d *Dashboard) FilterCatalog(query string) []PickerRow {
	query = strings.ToLower(query)
	rows := make([]PickerRow, 0, len(d.catalog))
	for _, city := range d.catalog {
		if query != "" &&
			!strings.Contains(strings.ToLower(city.Name), query) &&
			!strings.Contains(strings.ToLower(city.Country), query) {
			continue
		}
		rows = append(rows, PickerRow{City: city, Selected: d.IsSelected(city.ID)})
	}
	return rows
}

func (d *Dashboard) IsSelected(id int64) bool {
	for _, city := range d.selected {
		if city.ID == id {
			return true
		}
	}
	return false
}

// AddCity sends the addition to the backend and, only on confirmation, applies
// it locally, rebuilds the dashboard and polls immediately. A rejected call
// leaves selection, cards and picker state untouched.
func (d *Dashboard) AddCity(ctx context.Context, city models.City) error {
	if err := d.backend.AddCity(ctx, city); err != nil {
		metrics.SelectionMutationsTotal.WithLabelValues("add", "rejected").Inc()
		log.Printf("reconciler: add city %d: %v", city.ID, err)
		return err
	}
	d.ConfirmAdd(city)
	d.Poll(ctx)
	return nil
}

// RemoveCity mirrors AddCity for removal.
func (d *Dashboard) RemoveCity(ctx context.Context, city models.City) error {
	if err := d.backend.RemoveCity(ctx, city); err != nil {
		metrics.SelectionMutationsTotal.WithLabelValues("remove", "rejected").Inc()
		log.Printf("reconciler: remove city %d: %v", city.ID, err)
		return err
	}
	d.ConfirmRemove(city)
	d.Poll(ctx)
	return nil
}

// ConfirmAdd applies a backend-confirmed addition. Split out so event-loop
// callers can run the network call off-loop and apply the mutation on-loop.
func (d *Dashboard) ConfirmAdd(city models.City) {
	metrics.SelectionMutationsTotal.WithLabelValues("add", "confirmed").Inc()
	if d.IsSelected(city.ID) {
		// Overlapping double-add: the backend confirmed both, the second is a
		// no-op locally.
		return
	}
	d.selected = append(d.selected, city)
	d.RebuildCards()
}

// ConfirmRemove applies a backend-confirmed removal.
func (d *Dashboard) ConfirmRemove(city models.City) {
	metrics.SelectionMutationsTotal.WithLabelValues("remove", "confirmed").Inc()
	kept := d.selected[:0]
	for _, c := range d.selected {
		if c.ID != city.ID {
			kept = append(kept, c)
		}
	}
	d.selected = kept
	d.RebuildCards()
}

func dedupeByID(cities []models.City) []models.City {
	seen := make(map[int64]bool, len(cities))
	out := cities[:0]
	for _, c := range cities {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
