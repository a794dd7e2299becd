package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Key      lipgloss.Style
	Hint     lipgloss.Style

	// Navigation
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	NavActive   lipgloss.Style
	NavInactive lipgloss.Style
	StatusBar   lipgloss.Style
	StatusText  lipgloss.Style

	// Lists
	Selected lipgloss.Style
	Cursor   lipgloss.Style

	// History badges
	BadgeScanned   lipgloss.Style
	BadgeGenerated lipgloss.Style

	// QRCode frames the rendered symbol. It is always dark on light so
	// phones can read it off the screen whatever the theme.
	QRCode lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.Subtext),
		Normal:   lipgloss.NewStyle().Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Bold:     lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(t.Red),
		Success:  lipgloss.NewStyle().Foreground(t.Green),
		Warning:  lipgloss.NewStyle().Foreground(t.Yellow),
		Key:      lipgloss.NewStyle().Foreground(t.Mauve),
		Hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(t.Subtext).
			Padding(0, 2),
		NavActive: lipgloss.NewStyle().
			Foreground(t.Mauve).
			Bold(true).
			PaddingLeft(1),
		NavInactive: lipgloss.NewStyle().
			Foreground(t.Subtext).
			PaddingLeft(1),
		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),
		StatusText: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		Cursor: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text),

		BadgeScanned: lipgloss.NewStyle().
			Foreground(t.Base).
			Background(t.OriginColor("scanned")).
			Padding(0, 1),
		BadgeGenerated: lipgloss.NewStyle().
			Foreground(t.Base).
			Background(t.OriginColor("generated")).
			Padding(0, 1),

		QRCode: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ffffff")),
	}
}

// OriginBadge returns the badge style for a record origin.
func (s Styles) OriginBadge(origin string) lipgloss.Style {
	if origin == "generated" {
		return s.BadgeGenerated
	}
	return s.BadgeScanned
}
