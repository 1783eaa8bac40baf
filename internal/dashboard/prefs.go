package dashboard

import (
	"context"
	"log"

	"github.com/lox/cityweather/internal/models"
)

// SetUnits runs the unit-change pipeline: persist server-side, and only on
// confirmation apply locally and cascade: one re-poll, a card re-render for
// the new suffixes, a chart re-fetch when one is displayed, and a
// current-location refresh. The clock ticker is unaffected. A rejected call
// changes nothing.
func (d *Dashboard) SetUnits(ctx context.Context, units models.Units) error {
	if err := d.backend.UpdateUnits(ctx, units); err != nil {
		log.Printf("prefs: update units: %v", err)
		return err
	}
	d.ConfirmUnits(units)
	d.Poll(ctx)
	d.refreshChart(ctx)
	d.RefreshLocation(ctx)
	return nil
}

// ConfirmUnits applies a backend-confirmed unit change and re-renders every
// unit-suffixed label. Event-loop callers use this with the cascade dispatched
// as their own follow-up effects.
func (d *Dashboard) ConfirmUnits(units models.Units) {
	d.units = units
	for _, rec := range d.records {
		rec.card.TempSuffix = "°" + units.Symbol()
		if rec.snapshot != nil {
			// Re-render from the last snapshot so forecast temperature labels
			// pick up the new suffix without waiting for the next poll.
			rec.card.applySnapshot(rec.snapshot, units)
		}
	}
}

// ChartNeedsRefresh reports whether a unit change must re-fetch history.
func (d *Dashboard) ChartNeedsRefresh() bool { return d.chart != nil }

// ToggleTheme flips the theme and persists it locally. Theme is the only
// client-persisted state; a storage failure is logged and the in-memory
// toggle stands.
func (d *Dashboard) ToggleTheme() models.Theme {
	d.theme = d.theme.Toggled()
	if d.settings != nil {
		if err := d.settings.SetTheme(d.theme); err != nil {
			log.Printf("prefs: persist theme: %v", err)
		}
	}
	return d.theme
}
