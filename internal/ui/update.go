package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/cityweather/internal/dashboard"
	"github.com/lox/cityweather/internal/metrics"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modePicker:
			return m.updatePicker(msg)
		case modeDateEntry:
			return m.updateDateEntry(msg)
		default:
			return m.updateCards(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case clockTickMsg:
		m.dash.TickClocks(time.Time(msg))
		return m, clockTickCmd(m.tickInterval)

	case pollTickMsg:
		return m, tea.Batch(m.pollCmd(), pollTickCmd(m.pollInterval))

	case pollDoneMsg:
		if msg.err != nil {
			metrics.PollCyclesTotal.WithLabelValues("skipped").Inc()
			m.status = fmt.Sprintf("poll failed: %v", msg.err)
			return m, nil
		}
		m.dash.ApplyPoll(msg.records)
		m.status = ""
		return m, nil

	case pickerDataMsg:
		if msg.err != nil {
			m.pickerErr = fmt.Sprintf("picker: %v", msg.err)
			return m, nil
		}
		m.pickerErr = ""
		m.dash.SetCatalog(msg.catalog)
		m.dash.SetSelection(msg.selection)
		m.clampFocus()
		return m, nil

	case cityAddedMsg:
		if msg.err != nil {
			metrics.SelectionMutationsTotal.WithLabelValues("add", "rejected").Inc()
			m.pickerErr = fmt.Sprintf("add %s: %v", msg.city.Name, msg.err)
			return m, nil
		}
		m.pickerErr = ""
		m.dash.ConfirmAdd(msg.city)
		m.clampFocus()
		return m, m.pollCmd()

	case cityRemovedMsg:
		if msg.err != nil {
			metrics.SelectionMutationsTotal.WithLabelValues("remove", "rejected").Inc()
			m.pickerErr = fmt.Sprintf("remove %s: %v", msg.city.Name, msg.err)
			return m, nil
		}
		m.pickerErr = ""
		m.dash.ConfirmRemove(msg.city)
		m.clampFocus()
		return m, m.pollCmd()

	case unitsSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("unit change rejected: %v", msg.err)
			return m, nil
		}
		m.dash.ConfirmUnits(msg.units)
		m.status = ""
		cmds := []tea.Cmd{m.pollCmd()}
		if ch := m.dash.Chart(); ch != nil {
			cmds = append(cmds, m.chartCmd(ch.City, ch.Start, ch.End))
		}
		if loc := m.dash.Location(); loc.Available {
			cmds = append(cmds, m.locationCmd(loc.Lat, loc.Lon, true))
		}
		return m, tea.Batch(cmds...)

	case chartLoadedMsg:
		if msg.err != nil {
			metrics.ChartBuildsTotal.WithLabelValues("failed").Inc()
			m.status = fmt.Sprintf("history for %s: %v", msg.city.Name, msg.err)
			return m, nil
		}
		m.dash.ApplyChart(msg.city, msg.start, msg.end, msg.history)
		m.status = ""
		return m, nil

	case locationMsg:
		if msg.err != nil {
			if !msg.refresh {
				m.dash.ApplyLocation(dashboard.LocationPanel{Message: dashboard.LocationUnavailableMsg})
			}
			return m, nil
		}
		m.dash.ApplyLocation(msg.panel)
		return m, nil
	}

	return m, nil
}

func (m Model) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "p":
		m.mode = modePicker
		m.pickerIdx = 0
		m.search.Reset()
		m.search.Focus()
		return m, m.pickerDataCmd()

	case "u":
		return m, m.saveUnitsCmd(m.dash.Units().Toggled())

	case "t":
		m.st = stylesFor(m.dash.ToggleTheme())
		return m, nil

	case "l":
		m.dash.SetLayer(m.dash.Map().Layer.Next())
		return m, nil

	case "left", "h":
		if m.focusIdx > 0 {
			m.focusIdx--
		}
		m.syncFocus()
		return m, nil

	case "right":
		if m.focusIdx < len(m.dash.Selected())-1 {
			m.focusIdx++
		}
		m.syncFocus()
		return m, nil

	case "c":
		if city, ok := m.focusedCity(); ok {
			return m, m.chartCmd(city, "", "")
		}
		return m, nil

	case "d":
		if _, ok := m.focusedCity(); ok {
			m.mode = modeDateEntry
			m.dateErr = ""
			m.dateEntry.Reset()
			m.dateEntry.Focus()
		}
		return m, nil

	case "x":
		m.dash.CloseChart()
		return m, nil

	case "r":
		return m, m.pollCmd()
	}
	return m, nil
}

func (m *Model) syncFocus() {
	if city, ok := m.focusedCity(); ok {
		m.dash.FocusCity(city)
	}
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeCards
		m.search.Blur()
		return m, nil

	case "up":
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
		return m, nil

	case "down":
		if m.pickerIdx < len(m.dash.FilterCatalog(m.search.Value()))-1 {
			m.pickerIdx++
		}
		return m, nil

	case "enter":
		rows := m.dash.FilterCatalog(m.search.Value())
		if m.pickerIdx >= len(rows) {
			return m, nil
		}
		row := rows[m.pickerIdx]
		if row.Selected {
			return m, m.removeCityCmd(row.City)
		}
		return m, m.addCityCmd(row.City)
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.pickerIdx = 0
	}
	return m, cmd
}

func (m Model) updateDateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeCards
		m.dateEntry.Blur()
		return m, nil

	case "enter":
		city, ok := m.focusedCity()
		if !ok {
			m.mode = modeCards
			return m, nil
		}
		start, end, err := parseDateRange(m.dateEntry.Value())
		if err != nil {
			m.dateErr = err.Error()
			return m, nil
		}
		m.mode = modeCards
		m.dateEntry.Blur()
		return m, m.chartCmd(city, start, end)
	}

	var cmd tea.Cmd
	m.dateEntry, cmd = m.dateEntry.Update(msg)
	return m, cmd
}

// parseDateRange accepts "" (default window) or "YYYY-MM-DD YYYY-MM-DD".
func parseDateRange(input string) (start, end string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", nil
	}
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("expected two dates, got %d", len(fields))
	}
	for _, f := range fields {
		if _, perr := time.Parse("2006-01-02", f); perr != nil {
			return "", "", fmt.Errorf("bad date %q", f)
		}
	}
	if fields[0] > fields[1] {
		return "", "", fmt.Errorf("start %s is after end %s", fields[0], fields[1])
	}
	return fields[0], fields[1], nil
}
