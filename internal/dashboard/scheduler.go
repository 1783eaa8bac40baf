package dashboard

import (
	"context"
	"log"
	"time"

	"github.com/lox/cityweather/internal/metrics"
	"github.com/lox/cityweather/internal/models"
)

const (
	DefaultPollInterval = 60 * time.Second
	DefaultTickInterval = 1 * time.Second
)

// Scheduler owns the dashboard's two periodic tasks: the 60-second data poll
// and the 1-second clock tick. Both run interleaved on one select loop, so
// every engine mutation happens on a single goroutine. Poll fetches run off
// the loop and their results are applied back on it, which means a hung
// request delays only its own cycle; ticks and later polls keep firing.
type Scheduler struct {
	dash         *Dashboard
	pollInterval time.Duration
	tickInterval time.Duration
	noPoll       bool
}

func NewScheduler(d *Dashboard) *Scheduler {
	return &Scheduler{
		dash:         d,
		pollInterval: DefaultPollInterval,
		tickInterval: DefaultTickInterval,
	}
}

// SetIntervals overrides the task periods, mainly for tests.
func (s *Scheduler) SetIntervals(poll, tick time.Duration) {
	s.pollInterval = poll
	s.tickInterval = tick
}

// DisablePolling leaves only the clock task running, for local development
// against a backend that should not receive traffic.
func (s *Scheduler) DisablePolling() {
	s.noPoll = true
}

type pollResult struct {
	records []models.CityWeather
	err     error
}

// Run executes both periodic tasks until the context is cancelled. One eager
// poll is dispatched at startup. There is no request cancellation or
// deduplication: an in-flight poll whose selection changed mid-flight still
// completes and merges against whatever cards exist then.
func (s *Scheduler) Run(ctx context.Context) {
	results := make(chan pollResult)

	dispatch := func() {
		if s.noPoll {
			return
		}
		go func() {
			records, err := s.dash.Backend().FetchData(ctx)
			select {
			case results <- pollResult{records: records, err: err}:
			case <-ctx.Done():
			}
		}()
	}
	dispatch()

	pollTicker := time.NewTicker(s.pollInterval)
	clockTicker := time.NewTicker(s.tickInterval)
	defer pollTicker.Stop()
	defer clockTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: shutting down")
			return
		case <-pollTicker.C:
			dispatch()
		case res := <-results:
			if res.err != nil {
				metrics.PollCyclesTotal.WithLabelValues("skipped").Inc()
				log.Printf("scheduler: poll skipped: %v", res.err)
				continue
			}
			s.dash.ApplyPoll(res.records)
		case now := <-clockTicker.C:
			s.dash.TickClocks(now)
		}
	}
}
