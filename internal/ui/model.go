// Package ui is the terminal front end. It renders the engine's card grid,
// map-embed panel, current-location panel and history chart, and translates
// key presses into engine mutations. All engine access happens inside Update,
// which bubbletea guarantees runs on a single goroutine; commands only talk to
// the network and report back with messages.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/cityweather/internal/dashboard"
	"github.com/lox/cityweather/internal/models"
)

// mode selects which surface owns the keyboard.
type mode int

const (
	modeCards mode = iota
	modePicker
	modeDateEntry
)

type Model struct {
	dash *dashboard.Dashboard

	pollInterval time.Duration
	tickInterval time.Duration

	// Coordinates from the command line, zero when the locator decides.
	initLat float64
	initLon float64

	noPoll bool

	mode     mode
	focusIdx int // index into the selection for the focused card

	search    textinput.Model
	pickerIdx int
	pickerErr string

	dateEntry textinput.Model
	dateErr   string

	status string // transient message in the footer, cleared on next success

	width  int
	height int
	ready  bool

	st styles
}

type Option func(*Model)

// WithIntervals overrides the poll and tick cadences, mainly for tests.
func WithIntervals(poll, tick time.Duration) Option {
	return func(m *Model) {
		m.pollInterval = poll
		m.tickInterval = tick
	}
}

// WithCoordinates pins the device position instead of using the IP locator.
func WithCoordinates(lat, lon float64) Option {
	return func(m *Model) {
		m.initLat = lat
		m.initLon = lon
	}
}

// WithoutPolling disables the periodic data poll; the clock still ticks and
// manual refresh still works.
func WithoutPolling() Option {
	return func(m *Model) { m.noPoll = true }
}

func New(dash *dashboard.Dashboard, opts ...Option) Model {
	search := textinput.New()
	search.Placeholder = "type to filter cities"
	search.CharLimit = 64

	dateEntry := textinput.New()
	dateEntry.Placeholder = "YYYY-MM-DD YYYY-MM-DD (empty for last 30 days)"
	dateEntry.CharLimit = 21

	m := Model{
		dash:         dash,
		pollInterval: dashboard.DefaultPollInterval,
		tickInterval: dashboard.DefaultTickInterval,
		search:       search,
		dateEntry:    dateEntry,
		st:           stylesFor(dash.Theme()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the selection sync, the eager first poll, the location lookup
// and both tickers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.pickerDataCmd(),
		m.locationCmd(m.initLat, m.initLon, false),
		clockTickCmd(m.tickInterval),
	}
	if !m.noPoll {
		cmds = append(cmds, m.pollCmd(), pollTickCmd(m.pollInterval))
	}
	return tea.Batch(cmds...)
}

// focusedCity returns the city under the card cursor, or false when the
// selection is empty.
func (m Model) focusedCity() (models.City, bool) {
	selected := m.dash.Selected()
	if len(selected) == 0 {
		return models.City{}, false
	}
	idx := m.focusIdx
	if idx >= len(selected) {
		idx = len(selected) - 1
	}
	return selected[idx], true
}

// clampFocus keeps the card cursor inside the selection after edits.
func (m *Model) clampFocus() {
	n := len(m.dash.Selected())
	if n == 0 {
		m.focusIdx = 0
		return
	}
	if m.focusIdx >= n {
		m.focusIdx = n - 1
	}
	if m.focusIdx < 0 {
		m.focusIdx = 0
	}
}
