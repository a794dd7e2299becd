package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors for the application.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	Mauve  lipgloss.Color
	Red    lipgloss.Color
	Peach  lipgloss.Color
	Yellow lipgloss.Color
	Green  lipgloss.Color
	Teal   lipgloss.Color
	Blue   lipgloss.Color

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// OriginColor returns the badge color for a history record's origin.
func (t Theme) OriginColor(origin string) lipgloss.Color {
	switch origin {
	case "scanned":
		return t.Blue
	case "generated":
		return t.Green
	default:
		return t.Text
	}
}

// Default returns the default theme.
func Default() Theme {
	return CatppuccinMocha
}
