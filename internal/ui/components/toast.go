package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

const defaultToastDuration = 3 * time.Second

// toastDismissMsg dismisses the toast shown with the same sequence number.
type toastDismissMsg struct {
	seq int
}

// Toast is an auto-dismiss notification with a title and an optional line
// of detail.
type Toast struct {
	Visible  bool
	title    string
	text     string
	isError  bool
	duration time.Duration
	seq      int
	theme    theme.Theme
	styles   theme.Styles
}

// NewToast creates a new toast component.
func NewToast(t theme.Theme, s theme.Styles) Toast {
	return Toast{
		theme:    t,
		styles:   s,
		duration: defaultToastDuration,
	}
}

// Show displays a toast and returns a Cmd for auto-dismiss. A newer toast
// is not dismissed by an older toast's timer.
func (m *Toast) Show(title, text string, isError bool, duration time.Duration) tea.Cmd {
	m.Visible = true
	m.title = title
	m.text = text
	m.isError = isError
	m.seq++
	if duration > 0 {
		m.duration = duration
	} else {
		m.duration = defaultToastDuration
	}
	seq := m.seq
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return toastDismissMsg{seq: seq}
	})
}

// Title returns the current toast title.
func (m Toast) Title() string {
	return m.title
}

// Text returns the current toast detail line.
func (m Toast) Text() string {
	return m.text
}

// IsError reports whether the current toast uses error styling.
func (m Toast) IsError() bool {
	return m.isError
}

// Init implements tea.Model.
func (m Toast) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case toastDismissMsg:
		if msg.seq == m.seq {
			m.Visible = false
			m.title, m.text = "", ""
		}
	}
	return m, nil
}

// View renders the toast notification.
func (m Toast) View() string {
	if !m.Visible || m.title == "" {
		return ""
	}

	fg := m.theme.Green
	if m.isError {
		fg = m.theme.Red
	}

	content := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(m.title)
	if m.text != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(m.theme.Subtext).Render(m.text)
	}

	style := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Padding(0, 2).
		MaxWidth(48).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg)

	return style.Render(content)
}
