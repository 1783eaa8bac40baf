package dashboard

import (
	"context"
	"log"

	"github.com/lox/cityweather/internal/metrics"
	"github.com/lox/cityweather/internal/models"
)

const historyDateFormat = "2006-01-02"

// Chart is the one live historical-trend instance. It owns its series slices;
// replacing a chart destroys the previous instance first so two charts never
// exist at once.
type Chart struct {
	City  models.City
	Start string
	End   string
	Units models.Units

	Labels  []string
	TempMax []float64
	TempMin []float64
	Precip  []float64 // always millimetres, regardless of temperature unit

	destroyed bool
}

// Destroy releases the chart's series. A destroyed chart must not be rendered.
func (c *Chart) Destroy() {
	c.destroyed = true
	c.Labels = nil
	c.TempMax = nil
	c.TempMin = nil
	c.Precip = nil
}

// Destroyed reports whether Destroy has been called.
func (c *Chart) Destroyed() bool { return c.destroyed }

// Chart returns the live chart instance, or nil when none is displayed.
func (d *Dashboard) Chart() *Chart { return d.chart }

// CloseChart destroys the live chart and leaves none displayed. No-op when no
// chart exists.
func (d *Dashboard) CloseChart() {
	if d.chart == nil {
		return
	}
	d.chart.Destroy()
	d.chart = nil
}

// ChartWindow resolves an explicit date range, defaulting to the trailing
// 30-day window ending today.
func (d *Dashboard) ChartWindow(start, end string) (string, string) {
	if start != "" && end != "" {
		return start, end
	}
	now := d.now()
	return now.AddDate(0, 0, -30).Format(historyDateFormat), now.Format(historyDateFormat)
}

// FetchChart fetches history for a city and renders it. On failure nothing is
// created or replaced: a previously rendered chart stays visible.
func (d *Dashboard) FetchChart(ctx context.Context, city models.City, start, end string) error {
	start, end = d.ChartWindow(start, end)
	history, err := d.backend.FetchHistory(ctx, city.Lat, city.Lon, start, end, d.units)
	if err != nil {
		metrics.ChartBuildsTotal.WithLabelValues("failed").Inc()
		log.Printf("chart: fetch history for city %d: %v", city.ID, err)
		return err
	}
	d.ApplyChart(city, start, end, history)
	return nil
}

// ApplyChart replaces the live chart with one built from a successful history
// response. The old instance is destroyed before the new one exists.
func (d *Dashboard) ApplyChart(city models.City, start, end string, history *models.History) {
	if d.chart != nil {
		d.chart.Destroy()
	}
	d.chart = &Chart{
		City:    city,
		Start:   start,
		End:     end,
		Units:   d.units,
		Labels:  history.Daily.Time,
		TempMax: history.Daily.TemperatureMax,
		TempMin: history.Daily.TemperatureMin,
		Precip:  history.Daily.PrecipitationSum,
	}
	metrics.ChartBuildsTotal.WithLabelValues("built").Inc()
}

// refreshChart re-fetches the live chart's range in the current unit, used by
// the unit-change cascade. No-op when no chart is displayed.
func (d *Dashboard) refreshChart(ctx context.Context) {
	if d.chart == nil {
		return
	}
	d.FetchChart(ctx, d.chart.City, d.chart.Start, d.chart.End)
}
