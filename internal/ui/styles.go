package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cityweather/internal/models"
)

// styles is the resolved style set for the active theme. Both palettes are
// built up front; toggling the theme just swaps which set renders.
type styles struct {
	header    lipgloss.Style
	footer    lipgloss.Style
	card      lipgloss.Style
	cardFocus lipgloss.Style
	cardTitle lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	alert     lipgloss.Style
	dim       lipgloss.Style
	panel     lipgloss.Style
	panelName lipgloss.Style
	chartMax  lipgloss.Style
	chartMin  lipgloss.Style
	chartRain lipgloss.Style
	selected  lipgloss.Style
	errorBar  lipgloss.Style
}

func darkStyles() styles {
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		cardFocus: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1),
		cardTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		alert:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		panelName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		chartMax:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		chartMin:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		chartRain: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")),
		errorBar:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
	}
}

func lightStyles() styles {
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
		cardFocus: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1),
		cardTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
		alert:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
		panelName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		chartMax:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		chartMin:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		chartRain: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		errorBar:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
	}
}

func stylesFor(theme models.Theme) styles {
	if theme == models.ThemeLight {
		return lightStyles()
	}
	return darkStyles()
}
