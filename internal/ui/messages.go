package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/cityweather/internal/dashboard"
	"github.com/lox/cityweather/internal/models"
)

// Messages. Network commands run off the update loop and carry their results
// back in; every engine mutation happens inside Update.
type (
	clockTickMsg time.Time
	pollTickMsg  time.Time

	pollDoneMsg struct {
		records []models.CityWeather
		err     error
	}

	pickerDataMsg struct {
		catalog   []models.City
		selection []models.City
		err       error
	}

	cityAddedMsg struct {
		city models.City
		err  error
	}

	cityRemovedMsg struct {
		city models.City
		err  error
	}

	unitsSavedMsg struct {
		units models.Units
		err   error
	}

	chartLoadedMsg struct {
		city    models.City
		start   string
		end     string
		history *models.History
		err     error
	}

	locationMsg struct {
		panel   dashboard.LocationPanel
		refresh bool
		err     error
	}
)

func clockTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func (m Model) pollCmd() tea.Cmd {
	client := m.dash.Backend()
	return func() tea.Msg {
		records, err := client.FetchData(context.Background())
		return pollDoneMsg{records: records, err: err}
	}
}

func (m Model) pickerDataCmd() tea.Cmd {
	client := m.dash.Backend()
	return func() tea.Msg {
		catalog, err := client.FetchCatalog(context.Background())
		if err != nil {
			return pickerDataMsg{err: err}
		}
		selection, err := client.FetchSelection(context.Background())
		if err != nil {
			return pickerDataMsg{err: err}
		}
		return pickerDataMsg{catalog: catalog, selection: selection}
	}
}

func (m Model) addCityCmd(city models.City) tea.Cmd {
	client := m.dash.Backend()
	return func() tea.Msg {
		return cityAddedMsg{city: city, err: client.AddCity(context.Background(), city)}
	}
}

func (m Model) removeCityCmd(city models.City) tea.Cmd {
	client := m.dash.Backend()
	return func() tea.Msg {
		return cityRemovedMsg{city: city, err: client.RemoveCity(context.Background(), city)}
	}
}

func (m Model) saveUnitsCmd(units models.Units) tea.Cmd {
	client := m.dash.Backend()
	return func() tea.Msg {
		return unitsSavedMsg{units: units, err: client.UpdateUnits(context.Background(), units)}
	}
}

// chartCmd fetches history for the window in the engine's current unit. The
// unit is resolved on the loop before the command runs, so a concurrent unit
// change cannot tear the request.
func (m Model) chartCmd(city models.City, start, end string) tea.Cmd {
	client := m.dash.Backend()
	start, end = m.dash.ChartWindow(start, end)
	units := m.dash.Units()
	return func() tea.Msg {
		history, err := client.FetchHistory(context.Background(), city.Lat, city.Lon, start, end, units)
		return chartLoadedMsg{city: city, start: start, end: end, history: history, err: err}
	}
}

// locationCmd resolves the device position (on first use) and builds the
// current-location panel off-loop. refresh marks a re-fetch of an already
// available panel, where a failure keeps the previous contents instead of
// going terminal.
func (m Model) locationCmd(lat, lon float64, refresh bool) tea.Cmd {
	dash := m.dash
	units := m.dash.Units()
	return func() tea.Msg {
		ctx := context.Background()
		pos, err := dash.ResolvePosition(ctx, lat, lon)
		if err != nil {
			return locationMsg{refresh: refresh, err: err}
		}
		panel, err := dash.BuildLocationPanel(ctx, pos, units)
		if err != nil {
			return locationMsg{refresh: refresh, err: err}
		}
		return locationMsg{panel: panel, refresh: refresh}
	}
}
