package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

var navIcons = map[state.View]string{
	state.ViewScanner:   "◉",
	state.ViewGenerator: "▦",
	state.ViewHistory:   "☰",
}

// Nav switches between the top-level views. It draws as a tab bar on
// narrow terminals and as a column on wide ones.
type Nav struct {
	active state.View
	side   bool
	width  int
	height int
	theme  theme.Theme
	styles theme.Styles
}

// NewNav creates the navigation on the scanner view.
func NewNav(t theme.Theme, s theme.Styles) Nav {
	return Nav{
		theme:  t,
		styles: s,
	}
}

// SetActive marks the active view.
func (m *Nav) SetActive(v state.View) {
	m.active = v
}

// Active returns the active view.
func (m Nav) Active() state.View {
	return m.active
}

// SetSide switches between column and tab bar rendering.
func (m *Nav) SetSide(side bool) {
	m.side = side
}

// SetSize sets the available size. Height only matters for the column.
func (m *Nav) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Init implements tea.Model.
func (m Nav) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Nav) Update(msg tea.Msg) (Nav, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("["))):
			return m, func() tea.Msg { return msgs.PrevViewMsg{} }
		case key.Matches(msg, key.NewBinding(key.WithKeys("]"))):
			return m, func() tea.Msg { return msgs.NextViewMsg{} }
		}
	}
	return m, nil
}

// View renders the navigation.
func (m Nav) View() string {
	if m.side {
		return m.column()
	}
	return m.tabs()
}

func (m Nav) label(v state.View) string {
	return navIcons[v] + " " + v.String()
}

func (m Nav) tabs() string {
	sep := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("│")

	parts := make([]string, 0, len(state.Views))
	for _, v := range state.Views {
		if v == m.active {
			parts = append(parts, m.styles.TabActive.Render(m.label(v)))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(m.label(v)))
		}
	}

	rendered := strings.Join(parts, sep)
	if w := lipgloss.Width(rendered); w < m.width {
		rendered += strings.Repeat(" ", m.width-w)
	}
	return rendered
}

func (m Nav) column() string {
	title := lipgloss.NewStyle().
		Foreground(m.theme.Mauve).
		Bold(true).
		PaddingLeft(1).
		Render("qrdeck")

	lines := []string{title, ""}
	for _, v := range state.Views {
		if v == m.active {
			lines = append(lines, m.styles.NavActive.Render("▌"+m.label(v)))
		} else {
			lines = append(lines, m.styles.NavInactive.Render(" "+m.label(v)))
		}
	}

	inner := m.width - 1
	if inner < 1 {
		inner = 1
	}
	return lipgloss.NewStyle().
		Width(inner).
		Height(m.height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(m.theme.BorderUnfocused).
		Render(strings.Join(lines, "\n"))
}
