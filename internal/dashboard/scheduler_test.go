package dashboard

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lox/cityweather/internal/models"
)

func TestScheduler_PollsAndTicks(t *testing.T) {
	var polls atomic.Int64
	d := newTestDashboard(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		okJSON(`[{"id":1,"weather":{"temperature":19.5},"datetime":"2024-06-01T10:00:00Z","timezone":"UTC"}]`)(w, r)
	}))
	d.SetSelection([]models.City{paris})

	s := NewScheduler(d)
	s.SetIntervals(20*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if polls.Load() < 2 {
		t.Errorf("polls = %d, want eager dispatch plus at least one tick", polls.Load())
	}
	card := d.CardFor(1)
	if card.Temperature != "19.5" {
		t.Errorf("temperature = %q", card.Temperature)
	}
	if card.Time == Placeholder {
		t.Error("clock never ticked")
	}
}

func TestScheduler_DisablePolling(t *testing.T) {
	var polls atomic.Int64
	d := newTestDashboard(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		okJSON(`[]`)(w, r)
	}))
	d.SetSelection([]models.City{paris})

	s := NewScheduler(d)
	s.SetIntervals(10*time.Millisecond, 5*time.Millisecond)
	s.DisablePolling()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if polls.Load() != 0 {
		t.Errorf("polls = %d, want none with polling disabled", polls.Load())
	}
	if got := d.CardFor(1).Temperature; got != Placeholder {
		t.Errorf("temperature = %q, want placeholder", got)
	}
}

func TestScheduler_FailedCycleDoesNotStopLoop(t *testing.T) {
	var polls atomic.Int64
	d := newTestDashboard(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		if n == 1 {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		okJSON(`[{"id":1,"weather":{"temperature":21.0}}]`)(w, r)
	}))
	d.SetSelection([]models.City{paris})

	s := NewScheduler(d)
	s.SetIntervals(15*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if polls.Load() < 2 {
		t.Fatalf("polls = %d, want retry on next scheduled cycle", polls.Load())
	}
	if got := d.CardFor(1).Temperature; got != "21.0" {
		t.Errorf("temperature = %q, want value from a later cycle", got)
	}
}
