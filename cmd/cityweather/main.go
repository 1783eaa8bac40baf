package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/cityweather/internal/backend"
	"github.com/lox/cityweather/internal/dashboard"
	"github.com/lox/cityweather/internal/geo"
	"github.com/lox/cityweather/internal/store"
	"github.com/lox/cityweather/internal/ui"
)

var cli struct {
	ServerURL   string  `help:"Aggregation API base URL." default:"http://localhost:8000" env:"CITYWEATHER_SERVER_URL"`
	DB          string  `help:"Path to the local settings database." default:"cityweather.db" env:"CITYWEATHER_DB"`
	MetricsAddr string  `help:"Prometheus listen address, empty to disable." env:"CITYWEATHER_METRICS_ADDR"`
	Lat         float64 `help:"Device latitude, overrides IP geolocation." env:"CITYWEATHER_LAT"`
	Lon         float64 `help:"Device longitude, overrides IP geolocation." env:"CITYWEATHER_LON"`
	NoLocation  bool    `help:"Disable the current-location panel."`
	NoPoll      bool    `help:"Disable the periodic data poll (local dev)."`
	Once        bool    `help:"Poll once, print the cards and exit."`
	Headless    bool    `help:"Run the poll and clock loops without the terminal UI."`
	LogFile     string  `help:"Write logs here instead of stderr; required to see logs in TUI mode." env:"CITYWEATHER_LOG_FILE"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("cityweather"),
		kong.Description("Terminal dashboard client for the city weather aggregation API."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	tui := !cli.Once && !cli.Headless
	if cli.LogFile != "" {
		f, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if tui {
		// Interleaved stderr writes would corrupt the alternate screen.
		log.SetOutput(io.Discard)
	}

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	settings := store.New(db)
	if err := settings.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	opts := []dashboard.Option{}
	if !cli.NoLocation {
		opts = append(opts, dashboard.WithProviders(dashboard.Providers{
			Locator:    geo.NewLocator(""),
			Forecast:   geo.NewForecastClient(""),
			AirQuality: geo.NewAirQualityClient(""),
			Geocoder:   geo.NewGeocoder(""),
		}))
	}
	dash := dashboard.New(backend.NewClient(cli.ServerURL), settings, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cli.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("metrics listening on %s", cli.MetricsAddr)
			if err := http.ListenAndServe(cli.MetricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	if cli.Once {
		runOnce(ctx, dash)
		return
	}

	if cli.Headless {
		runHeadless(ctx, dash)
		return
	}

	uiOpts := []ui.Option{ui.WithCoordinates(cli.Lat, cli.Lon)}
	if cli.NoPoll {
		uiOpts = append(uiOpts, ui.WithoutPolling())
	}
	program := tea.NewProgram(
		ui.New(dash, uiOpts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		log.Fatalf("ui: %v", err)
	}
}

// runOnce syncs the selection, polls a single cycle and prints the cards.
func runOnce(ctx context.Context, dash *dashboard.Dashboard) {
	if err := dash.RefreshPicker(ctx); err != nil {
		log.Fatalf("sync selection: %v", err)
	}
	if err := dash.Poll(ctx); err != nil {
		log.Fatalf("poll: %v", err)
	}
	for _, card := range dash.Cards() {
		fmt.Printf("%s, %s: %s%s  wind %s km/h  AQI %s\n",
			card.City.Name, card.City.Country,
			card.Temperature, card.TempSuffix, card.Wind, card.AQI)
	}
}

// runHeadless drives the engine with the scheduler's select loop. Useful for
// soak testing the poll path and for exporting metrics without a terminal.
func runHeadless(ctx context.Context, dash *dashboard.Dashboard) {
	if err := dash.RefreshPicker(ctx); err != nil {
		log.Fatalf("sync selection: %v", err)
	}
	if !cli.NoLocation {
		dash.InitLocation(ctx, cli.Lat, cli.Lon)
	}
	sched := dashboard.NewScheduler(dash)
	if cli.NoPoll {
		log.Println("polling disabled (--no-poll)")
		sched.DisablePolling()
	}
	log.Printf("headless: polling %s for %d cities", cli.ServerURL, len(dash.Selected()))
	sched.Run(ctx)
}
