package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityweather_poll_cycles_total",
			Help: "Total dashboard poll cycles by outcome",
		},
		[]string{"outcome"},
	)

	ClockTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cityweather_clock_ticks_total",
			Help: "Total per-second clock projection passes",
		},
	)

	SelectionMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityweather_selection_mutations_total",
			Help: "City add/remove attempts by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	ChartBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityweather_chart_builds_total",
			Help: "Historical chart fetch-and-render attempts by outcome",
		},
		[]string{"outcome"},
	)
)
