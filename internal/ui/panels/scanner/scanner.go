// Package scanner is the panel that drives the camera and shows the most
// recent scan.
package scanner

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/ui/components"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

// Model is the scanner panel.
type Model struct {
	state       scan.State
	illuminated bool
	hasCamera   bool
	source      string
	last        *history.Record
	err         string

	width   int
	height  int
	focused bool

	now func() time.Time

	theme  theme.Theme
	styles theme.Styles
}

// New creates a new scanner panel. source describes where frames come
// from and is shown while the camera runs.
func New(t theme.Theme, s theme.Styles, source string, hasCamera bool) Model {
	return Model{
		theme:     t,
		styles:    s,
		source:    source,
		hasCamera: hasCamera,
		now:       time.Now,
	}
}

// SetState records the producer's lifecycle state.
func (m *Model) SetState(st scan.State) {
	m.state = st
	if st == scan.Idle {
		m.illuminated = false
	}
}

// State returns the last recorded producer state.
func (m Model) State() scan.State {
	return m.state
}

// SetIlluminated records whether the torch is on.
func (m *Model) SetIlluminated(on bool) {
	m.illuminated = on
}

// SetLast shows rec as the most recent scan.
func (m *Model) SetLast(rec *history.Record) {
	m.last = rec
	if rec != nil {
		m.err = ""
	}
}

// SetError shows a camera problem until the next successful action.
func (m *Model) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// SetStyles swaps the theme after a theme change.
func (m *Model) SetStyles(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "s", "enter":
		if m.state == scan.Idle {
			return m, func() tea.Msg { return msgs.StartScanMsg{} }
		}
	case "x":
		if m.state != scan.Idle {
			return m, func() tea.Msg { return msgs.StopScanMsg{} }
		}
	case "t":
		return m, func() tea.Msg { return msgs.ToggleIlluminationMsg{} }
	case "c", "y":
		if m.last != nil {
			text := m.last.Text
			return m, func() tea.Msg { return msgs.CopyMsg{Text: text} }
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	finder := m.viewfinder(innerW)
	last := m.lastScanned(innerW)

	lines := []string{m.styles.Title.Render("Scanner"), "", finder, "", last}
	if m.err != "" {
		lines = append(lines, "", m.styles.Error.Render("  "+m.err))
	}

	content := components.FitHeight(strings.Join(lines, "\n"), max(innerH-1, 0)) + "\n" + m.footer()
	return border.
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) viewfinder(w int) string {
	var status []string
	switch m.state {
	case scan.Idle:
		if !m.hasCamera {
			status = []string{
				m.styles.Warning.Render("No camera found"),
				m.styles.Muted.Render("Frames are read from " + m.source),
			}
		} else {
			status = []string{
				m.styles.Subtitle.Render("Camera is off"),
				m.styles.Muted.Render("Press s to start scanning"),
			}
		}
	case scan.Starting:
		status = []string{m.styles.Warning.Render("Starting camera…")}
	case scan.Active:
		status = []string{
			m.styles.Success.Render("● Scanning"),
			m.styles.Muted.Render("Point a code at the camera"),
		}
		if m.source != "" {
			status = append(status, m.styles.Muted.Render(components.FitWidth("watching "+m.source, max(w-8, 1))))
		}
		if m.illuminated {
			status = append(status, m.styles.Warning.Render("flashlight on"))
		}
	}

	frameColor := m.theme.BorderUnfocused
	if m.state == scan.Active {
		frameColor = m.theme.Green
	}
	frameW := min(max(w-4, 20), 44)
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(frameColor).
		Width(frameW).
		Align(lipgloss.Center).
		Padding(1, 0).
		Render(strings.Join(status, "\n"))
}

func (m Model) lastScanned(w int) string {
	title := m.styles.Subtitle.Render("Last Scanned")
	if m.last == nil {
		return title + "\n" + m.styles.Muted.Render("  Nothing scanned yet")
	}
	when := humanize.RelTime(m.last.CreatedAt, m.now(), "ago", "from now")
	text := lipgloss.NewStyle().Width(max(w-2, 1)).Render(components.Ellipsize(m.last.Text, 500))
	return title + "  " + m.styles.Muted.Render(when) + "\n" +
		m.styles.Normal.Render(text)
}

func (m Model) footer() string {
	var hints []string
	if m.state == scan.Idle {
		hints = append(hints, m.styles.Key.Render("s")+m.styles.Hint.Render(" start"))
	} else {
		hints = append(hints, m.styles.Key.Render("x")+m.styles.Hint.Render(" stop"))
		hints = append(hints, m.styles.Key.Render("t")+m.styles.Hint.Render(" flashlight"))
	}
	if m.last != nil {
		hints = append(hints, m.styles.Key.Render("c")+m.styles.Hint.Render(" copy"))
	}
	return strings.Join(hints, "  ")
}
