package dashboard

import (
	"errors"
	"log"
	"time"

	"github.com/lox/cityweather/internal/metrics"
)

var errBadTimezone = errors.New("unrecognised timezone")

const clockFormat = "15:04:05"

// TickClocks reprojects the current instant through every city's stored
// timezone and writes it into that city's time display. It never refetches:
// polling owns the (instant, timezone) pairs, this only owns "now". Cities
// without a clock entry are left untouched.
func (d *Dashboard) TickClocks(now time.Time) {
	for _, rec := range d.records {
		if rec.clock == nil {
			continue
		}
		loc, err := d.loadLocation(rec.clock.Timezone)
		if err != nil {
			// Fall back to local machine time rather than erroring the card.
			log.Printf("clock: timezone %q for city %d: %v", rec.clock.Timezone, rec.card.City.ID, err)
			rec.card.Time = now.Format(clockFormat)
			continue
		}
		rec.card.Time = now.In(loc).Format(clockFormat)
	}
	metrics.ClockTicksTotal.Inc()
}
