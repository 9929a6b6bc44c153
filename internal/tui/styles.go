package tui

import (
	"renamer/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups every style the rename screen renders with
type Styles struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	ToggleOn  lipgloss.Style
	ToggleOff lipgloss.Style
	Panel     lipgloss.Style
	Changed   lipgloss.Style
	Unchanged lipgloss.Style
	Arrow     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles builds the styles for a named theme
func NewStyles(theme string) Styles {
	p := config.GetTheme(theme)
	color := func(name string) lipgloss.Color { return lipgloss.Color(p[name]) }

	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(color("primary")).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(color("info")).
			Width(13),
		ToggleOn: lipgloss.NewStyle().
			Foreground(color("success")).
			Bold(true),
		ToggleOff: lipgloss.NewStyle().
			Foreground(color("muted")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color("muted")).
			Padding(0, 1),
		Changed: lipgloss.NewStyle().
			Foreground(color("emphasis")),
		Unchanged: lipgloss.NewStyle().
			Foreground(color("muted")),
		Arrow: lipgloss.NewStyle().
			Foreground(color("primary")),
		Status: lipgloss.NewStyle().
			Foreground(color("muted")),
		Error: lipgloss.NewStyle().
			Foreground(color("error")),
		Success: lipgloss.NewStyle().
			Foreground(color("success")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(color("primary")),
		Muted: lipgloss.NewStyle().
			Foreground(color("muted")),
	}
}
