package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	view     string
	scanner  string
	torch    bool
	scanned  int
	created  int
	lastScan time.Time
	degraded bool
	mode     msgs.AppMode
	message  string
	width    int
	now      func() time.Time
	theme    theme.Theme
	styles   theme.Styles
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme, s theme.Styles) StatusBar {
	return StatusBar{
		theme:  t,
		styles: s,
		mode:   msgs.ModeNormal,
		now:    time.Now,
	}
}

// SetView sets the active view name.
func (m *StatusBar) SetView(name string) {
	m.view = name
}

// SetScanner sets the scanner state shown while the scanner is not idle.
func (m *StatusBar) SetScanner(state string, torch bool) {
	m.scanner = state
	m.torch = torch
}

// SetCounts sets the history totals by origin.
func (m *StatusBar) SetCounts(scanned, generated int) {
	m.scanned = scanned
	m.created = generated
}

// SetLastScan records when the last code was scanned.
func (m *StatusBar) SetLastScan(at time.Time) {
	m.lastScan = at
}

// SetDegraded marks history as unsaved.
func (m *StatusBar) SetDegraded(d bool) {
	m.degraded = d
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) {
	m.message = text
}

// Init implements tea.Model.
func (m StatusBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatusBar) Update(tea.Msg) (StatusBar, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m StatusBar) View() string {
	barStyle := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Width(m.width)
	seg := func(fg lipgloss.Color, bold bool, s string) string {
		return lipgloss.NewStyle().Foreground(fg).Background(m.theme.Surface).Bold(bold).Render(s)
	}

	var leftParts []string
	if m.message != "" {
		leftParts = append(leftParts, seg(m.theme.Text, false, m.message))
	} else {
		if m.view != "" {
			leftParts = append(leftParts, seg(m.theme.Text, true, m.view))
		}
		if m.scanner != "" && m.scanner != "idle" {
			s := "camera " + m.scanner
			if m.torch {
				s += " (torch)"
			}
			leftParts = append(leftParts, seg(m.theme.Teal, false, s))
		}
		leftParts = append(leftParts, seg(m.theme.Subtext, false,
			fmt.Sprintf("%d scanned · %d generated", m.scanned, m.created)))
		if !m.lastScan.IsZero() {
			leftParts = append(leftParts, seg(m.theme.Muted, false,
				"last scan "+humanize.RelTime(m.lastScan, m.now(), "ago", "from now")))
		}
		if m.degraded {
			leftParts = append(leftParts, seg(m.theme.Yellow, true, "history not saved"))
		}
	}
	left := strings.Join(leftParts, " │ ")

	modeStr := seg(m.theme.Mauve, true, "["+m.mode.String()+"]")
	hint := seg(m.theme.Muted, false, "?:help  Ctrl+K:command")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(modeStr)
	rightWidth := lipgloss.Width(hint)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent+2 >= m.width {
		return barStyle.Render(" " + left + " " + modeStr + " " + hint)
	}

	remaining := m.width - totalContent - 2
	gap1 := remaining / 2
	gap2 := remaining - gap1

	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint

	return barStyle.Render(line)
}
