package dashboard

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/lox/cityweather/internal/models"
)

func TestAddCity_ConfirmedAppendsAndPolls(t *testing.T) {
	var polls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/user/cities", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /api/data", func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		okJSON(`[{"id":2,"weather":{"temperature":27.0},"datetime":"2024-06-01T10:00:00Z","timezone":"Asia/Tokyo"}]`)(w, r)
	})

	d := newTestDashboard(t, mux)
	d.SetSelection([]models.City{paris})

	if err := d.AddCity(context.Background(), tokyo); err != nil {
		t.Fatalf("add city: %v", err)
	}

	if got := d.Selected(); len(got) != 2 || got[1].ID != 2 {
		t.Fatalf("selection = %+v", got)
	}
	if polls.Load() != 1 {
		t.Errorf("polls = %d, want exactly one immediate poll", polls.Load())
	}
	if got := d.CardFor(2).Temperature; got != "27.0" {
		t.Errorf("tokyo temperature = %q", got)
	}
}

func TestAddCity_RejectedLeavesStateUntouched(t *testing.T) {
	var polls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/user/cities", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "catalog changed", http.StatusConflict)
	})
	mux.HandleFunc("GET /api/data", func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		okJSON(`[]`)(w, r)
	})

	d := newTestDashboard(t, mux)
	d.SetSelection([]models.City{paris})

	if err := d.AddCity(context.Background(), tokyo); err == nil {
		t.Fatal("expected rejection error")
	}

	if got := d.Selected(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("selection = %+v, want paris only", got)
	}
	if d.CardFor(2) != nil {
		t.Error("card exists for rejected addition")
	}
	if polls.Load() != 0 {
		t.Errorf("polls = %d, rejection must not trigger a poll", polls.Load())
	}
}

func TestRemoveCity_DropsCardAndClock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/user/cities", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/data", okJSON(`[]`))

	d := newTestDashboard(t, mux)
	d.SetSelection([]models.City{paris, tokyo})
	d.ApplyPoll([]models.CityWeather{
		{ID: 2, Weather: &models.Conditions{Temperature: fp(27)}, Datetime: "2024-06-01T10:00:00Z", Timezone: "Asia/Tokyo"},
	})

	if err := d.RemoveCity(context.Background(), tokyo); err != nil {
		t.Fatalf("remove city: %v", err)
	}

	if d.CardFor(2) != nil {
		t.Error("card survived removal")
	}
	if d.ClockFor(2) != nil {
		t.Error("clock entry survived removal")
	}
	if len(d.Cards()) != 1 {
		t.Errorf("cards = %d, want 1", len(d.Cards()))
	}
}

func TestConfirmAdd_DoubleAddIsNoOp(t *testing.T) {
	d := newTestDashboard(t, http.NotFoundHandler())
	d.SetSelection([]models.City{paris})

	d.ConfirmAdd(tokyo)
	d.ConfirmAdd(tokyo)

	if got := len(d.Selected()); got != 2 {
		t.Errorf("selection size = %d, want 2", got)
	}
	if got := len(d.Cards()); got != 2 {
		t.Errorf("cards = %d, want 2", got)
	}
}

func TestSetSelection_DedupesById(t *testing.T) {
	d := newTestDashboard(t, http.NotFoundHandler())
	d.SetSelection([]models.City{paris, paris, tokyo})

	if got := len(d.Selected()); got != 2 {
		t.Errorf("selection size = %d, want 2", got)
	}
}

func TestFilterCatalog(t *testing.T) {
	d := newTestDashboard(t, http.NotFoundHandler())
	d.SetCatalog([]models.City{paris, tokyo, oslo})
	d.SetSelection([]models.City{tokyo})

	rows := d.FilterCatalog("")
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want all 3", len(rows))
	}
	if !rows[1].Selected || rows[0].Selected {
		t.Errorf("selection flags wrong: %+v", rows)
	}

	rows = d.FilterCatalog("PAR")
	if len(rows) != 1 || rows[0].City.ID != 1 {
		t.Errorf("name match rows = %+v", rows)
	}

	// Country matches too.
	rows = d.FilterCatalog("norway")
	if len(rows) != 1 || rows[0].City.ID != 3 {
		t.Errorf("country match rows = %+v", rows)
	}

	if rows = d.FilterCatalog("zzz"); len(rows) != 0 {
		t.Errorf("no-match rows = %+v", rows)
	}
}

func TestRefreshPicker(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cities", okJSON(`[
		{"id":1,"name":"Paris","country":"France"},
		{"id":2,"name":"Tokyo","country":"Japan"},
		{"id":3,"name":"Oslo","country":"Norway"}
	]`))
	mux.HandleFunc("GET /api/user/cities", okJSON(`[{"id":2,"name":"Tokyo","country":"Japan"}]`))

	d := newTestDashboard(t, mux)
	if err := d.RefreshPicker(context.Background()); err != nil {
		t.Fatalf("refresh picker: %v", err)
	}

	if got := len(d.FilterCatalog("")); got != 3 {
		t.Errorf("catalog rows = %d", got)
	}
	if !d.IsSelected(2) || d.IsSelected(1) {
		t.Error("selection not synced from backend")
	}
}
