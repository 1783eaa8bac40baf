package dashboard

import (
	"context"
	"log"
	"time"

	"github.com/lox/cityweather/internal/metrics"
	"github.com/lox/cityweather/internal/models"
)

// Poll fetches aggregated data for the current selection and applies it. A
// transport error or non-2xx status abandons the cycle: the previous snapshot
// stays on screen until the next successful cycle. Stale-but-present beats a
// blanked card.
func (d *Dashboard) Poll(ctx context.Context) error {
	records, err := d.backend.FetchData(ctx)
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("skipped").Inc()
		log.Printf("poller: cycle skipped: %v", err)
		return err
	}
	d.ApplyPoll(records)
	return nil
}

// ApplyPoll merges a poll response into the rendered cards. Records whose id
// has no card are ignored: the city may have been removed between dispatch and
// response, and last-render-wins is the contract. Cards absent from the
// response keep their previous values.
func (d *Dashboard) ApplyPoll(records []models.CityWeather) {
	matched := 0
	for i := range records {
		rec, ok := d.records[records[i].ID]
		if !ok {
			continue
		}
		matched++

		snap := records[i]
		rec.snapshot = &snap
		rec.card.applySnapshot(&snap, d.units)

		rec.clock = clockEntry(&snap)
	}
	metrics.PollCyclesTotal.WithLabelValues("applied").Inc()
	log.Printf("poller: applied %d/%d records", matched, len(records))
}

// clockEntry derives a city's clock entry from its snapshot. Both datetime and
// timezone must be present; otherwise the entry is cleared, which suppresses
// the time display for that city.
func clockEntry(snap *models.CityWeather) *models.ClockEntry {
	if snap.Datetime == "" || snap.Timezone == "" {
		return nil
	}
	ref, err := time.Parse(time.RFC3339, snap.Datetime)
	if err != nil {
		log.Printf("poller: bad datetime %q for city %d: %v", snap.Datetime, snap.ID, err)
		return nil
	}
	return &models.ClockEntry{Reference: ref, Timezone: snap.Timezone}
}
