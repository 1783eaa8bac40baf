package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cityweather/internal/dashboard"
)

const cardsPerRow = 3

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerBar())
	b.WriteString("\n")

	switch m.mode {
	case modePicker:
		b.WriteString(m.viewPicker())
	case modeDateEntry:
		b.WriteString(m.viewDateEntry())
	default:
		b.WriteString(m.viewCards())
	}

	b.WriteString("\n")
	b.WriteString(m.footerBar())
	return b.String()
}

func (m Model) headerBar() string {
	text := fmt.Sprintf(" cityweather    units: °%s    map: %s    theme: %s ",
		m.dash.Units().Symbol(), m.dash.Map().Layer, m.dash.Theme())
	return m.st.header.Render(padOrTrunc(text, m.width))
}

func (m Model) footerBar() string {
	if m.status != "" {
		return m.st.errorBar.Render(padOrTrunc(" "+m.status+" ", m.width))
	}
	help := " q quit  p cities  u units  t theme  l layer  ←/→ focus  c chart  d dates  x close chart  r refresh"
	return m.st.footer.Render(padOrTrunc(help, m.width))
}

func (m Model) viewCards() string {
	sections := []string{}

	if panel := m.viewLocation(); panel != "" {
		sections = append(sections, panel)
	}

	cards := m.dash.Cards()
	if len(cards) == 0 {
		sections = append(sections, m.st.dim.Render("  No cities selected. Press p to add some."))
	} else {
		focused, _ := m.focusedCity()
		var rendered []string
		for _, card := range cards {
			rendered = append(rendered, m.viewCard(card, card.City.ID == focused.ID))
		}
		for i := 0; i < len(rendered); i += cardsPerRow {
			end := i + cardsPerRow
			if end > len(rendered) {
				end = len(rendered)
			}
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i:end]...))
		}
	}

	sections = append(sections, m.viewMap())

	if chart := m.dash.Chart(); chart != nil && !chart.Destroyed() {
		sections = append(sections, m.viewChart(chart))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewCard(card *dashboard.Card, focused bool) string {
	var b strings.Builder
	b.WriteString(m.st.cardTitle.Render(fmt.Sprintf("%s, %s", card.City.Name, card.City.Country)))
	b.WriteString("\n")
	b.WriteString(m.st.value.Render(card.Time))
	b.WriteString("\n")

	row := func(label, value, suffix string) {
		if value != dashboard.Placeholder {
			value += suffix
		}
		b.WriteString(m.st.label.Render(fmt.Sprintf("%-11s", label)))
		b.WriteString(m.st.value.Render(value))
		b.WriteString("\n")
	}
	row("Temp", card.Temperature, card.TempSuffix)
	row("Wind", card.Wind, " km/h")
	row("Dew point", card.Dewpoint, card.TempSuffix)
	row("Visibility", card.Visibility, " km")
	row("UV index", card.UV, "")
	row("AQI", card.AQI, "")
	row("PM2.5", card.PM25, "")
	row("PM10", card.PM10, "")
	row("Grass", card.PollenGrass, "")
	row("Tree", card.PollenTree, "")
	row("Weed", card.PollenWeed, "")

	for _, alert := range card.Alerts {
		b.WriteString(m.st.alert.Render("⚠ " + alert.Event))
		b.WriteString("\n")
	}

	if len(card.Forecast) > 0 {
		b.WriteString("\n")
		var days, temps, uvs []string
		for _, cell := range card.Forecast {
			days = append(days, fmt.Sprintf("%-8s", cell.Day+" "+cell.Glyph))
			temps = append(temps, fmt.Sprintf("%-8s", cell.TempMax+"/"+cell.TempMin))
			uvs = append(uvs, fmt.Sprintf("%-8s", cell.UV))
		}
		b.WriteString(m.st.label.Render(strings.Join(days, "")))
		b.WriteString("\n")
		b.WriteString(m.st.value.Render(strings.Join(temps, "")))
		b.WriteString("\n")
		b.WriteString(m.st.dim.Render(strings.Join(uvs, "")))
		b.WriteString("\n")
	}

	if card.Outfit != dashboard.Placeholder {
		b.WriteString(m.st.dim.Render("Outfit: " + card.Outfit))
		b.WriteString("\n")
	}
	if card.Activity != dashboard.Placeholder {
		b.WriteString(m.st.dim.Render("Activity: " + card.Activity))
		b.WriteString("\n")
	}
	if card.Tip != dashboard.Placeholder {
		b.WriteString(m.st.dim.Render("Tip: " + card.Tip))
		b.WriteString("\n")
	}

	style := m.st.card
	if focused {
		style = m.st.cardFocus
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewLocation() string {
	loc := m.dash.Location()
	if !loc.Available {
		if loc.Message == "" {
			return ""
		}
		return m.st.panel.Render(m.st.dim.Render(loc.Message))
	}

	var b strings.Builder
	b.WriteString(m.st.panelName.Render(loc.CityName))
	b.WriteString(m.st.dim.Render("  " + loc.Date))
	b.WriteString("\n")
	b.WriteString(m.st.value.Render(fmt.Sprintf(
		"Temp %s   Dew point %s   Visibility %s   UV %s",
		loc.Temperature, loc.Dewpoint, loc.Visibility, loc.UV)))
	b.WriteString("\n")
	b.WriteString(m.st.value.Render(fmt.Sprintf(
		"AQI %s   PM2.5 %s   PM10 %s   Pollen %s/%s/%s",
		loc.AQI, loc.PM25, loc.PM10, loc.PollenGrass, loc.PollenTree, loc.PollenWeed)))
	for _, alert := range loc.Alerts {
		b.WriteString("\n")
		b.WriteString(m.st.alert.Render("⚠ " + alert.Event + ": " + alert.Description))
	}
	return m.st.panel.Render(b.String())
}

func (m Model) viewMap() string {
	var b strings.Builder
	b.WriteString(m.st.panelName.Render("Map"))
	b.WriteString(m.st.dim.Render("  overlay: " + string(m.dash.Map().Layer)))
	b.WriteString("\n")
	b.WriteString(m.st.value.Render(m.dash.MapURL()))
	return m.st.panel.Render(b.String())
}

// viewChart renders the history series as per-day rows with a temperature bar,
// scaled to the series maximum.
func (m Model) viewChart(chart *dashboard.Chart) string {
	var b strings.Builder
	b.WriteString(m.st.panelName.Render(fmt.Sprintf(
		"History: %s, %s", chart.City.Name, chart.City.Country)))
	b.WriteString(m.st.dim.Render(fmt.Sprintf("  %s to %s (°%s)", chart.Start, chart.End, chart.Units.Symbol())))
	b.WriteString("\n")

	maxTemp := 0.0
	for _, v := range chart.TempMax {
		if v > maxTemp {
			maxTemp = v
		}
	}

	const barWidth = 30
	for i, label := range chart.Labels {
		if i >= len(chart.TempMax) || i >= len(chart.TempMin) {
			break
		}
		bar := 0
		if maxTemp > 0 {
			bar = int(chart.TempMax[i] / maxTemp * barWidth)
		}
		if bar < 0 {
			bar = 0
		}
		precip := ""
		if i < len(chart.Precip) {
			precip = fmt.Sprintf("%5.1fmm", chart.Precip[i])
		}
		b.WriteString(m.st.dim.Render(label))
		b.WriteString("  ")
		b.WriteString(m.st.chartMax.Render(fmt.Sprintf("%-*s", barWidth, strings.Repeat("▇", bar))))
		b.WriteString(m.st.value.Render(fmt.Sprintf(" %5.1f", chart.TempMax[i])))
		b.WriteString(m.st.chartMin.Render(fmt.Sprintf(" %5.1f", chart.TempMin[i])))
		b.WriteString(m.st.chartRain.Render(" " + precip))
		b.WriteString("\n")
	}
	return m.st.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.st.panelName.Render("Cities"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	rows := m.dash.FilterCatalog(m.search.Value())
	if len(rows) == 0 {
		b.WriteString(m.st.dim.Render("  no matches"))
		b.WriteString("\n")
	}
	for i, row := range rows {
		mark := "  "
		if row.Selected {
			mark = "✓ "
		}
		line := fmt.Sprintf("%s%s, %s", mark, row.City.Name, row.City.Country)
		if i == m.pickerIdx {
			b.WriteString(m.st.selected.Render(line))
		} else {
			b.WriteString(m.st.value.Render(line))
		}
		b.WriteString("\n")
	}

	if m.pickerErr != "" {
		b.WriteString("\n")
		b.WriteString(m.st.alert.Render(m.pickerErr))
	}
	b.WriteString("\n")
	b.WriteString(m.st.dim.Render("enter add/remove  ↑/↓ move  esc back"))
	return m.st.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewDateEntry() string {
	city, _ := m.focusedCity()
	var b strings.Builder
	b.WriteString(m.st.panelName.Render("History range for " + city.Name))
	b.WriteString("\n")
	b.WriteString(m.dateEntry.View())
	if m.dateErr != "" {
		b.WriteString("\n")
		b.WriteString(m.st.alert.Render(m.dateErr))
	}
	b.WriteString("\n")
	b.WriteString(m.st.dim.Render("enter fetch  esc cancel"))
	return m.st.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return s
	}
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
