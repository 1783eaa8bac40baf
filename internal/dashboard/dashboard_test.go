package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lox/cityweather/internal/backend"
	"github.com/lox/cityweather/internal/models"
)

var (
	paris = models.City{ID: 1, Name: "Paris", Country: "France", Lat: 48.8566, Lon: 2.3522}
	tokyo = models.City{ID: 2, Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lon: 139.6503}
	oslo  = models.City{ID: 3, Name: "Oslo", Country: "Norway", Lat: 59.9139, Lon: 10.7522}
)

// fixedNow pins the engine clock for deterministic window and hour math.
var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestDashboard(t *testing.T, handler http.Handler) *Dashboard {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d := New(backend.NewClient(srv.URL), nil, WithNow(func() time.Time { return fixedNow }))
	return d
}

func fp(v float64) *float64 { return &v }

func okJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}
