// Package generator is the panel where text is typed and turned into a QR
// code.
package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/qrdeck/internal/render"
	"github.com/sadopc/qrdeck/internal/templates"
	"github.com/sadopc/qrdeck/internal/ui/components"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

// sideBySideWidth is the panel width from which input and code sit next
// to each other.
const sideBySideWidth = 90

// Model is the generator panel.
type Model struct {
	input    textarea.Model
	editing  bool
	artifact *render.Artifact
	reused   bool

	width   int
	height  int
	focused bool

	theme  theme.Theme
	styles theme.Styles
}

// New creates a new generator panel.
func New(t theme.Theme, s theme.Styles) Model {
	ta := textarea.New()
	ta.Placeholder = "Text or URL to encode..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4096
	ta.SetWidth(40)
	ta.SetHeight(5)

	return Model{
		input:  ta,
		theme:  t,
		styles: s,
	}
}

// Value returns the current input.
func (m Model) Value() string {
	return m.input.Value()
}

// SetText replaces the input.
func (m *Model) SetText(s string) {
	m.input.SetValue(s)
}

// Editing reports whether the input has focus.
func (m Model) Editing() bool {
	return m.editing
}

// Artifact returns the code on display, or nil.
func (m Model) Artifact() *render.Artifact {
	return m.artifact
}

// SetArtifact shows art. reused marks a code recalled from history
// instead of newly added.
func (m *Model) SetArtifact(art *render.Artifact, reused bool) {
	m.artifact = art
	m.reused = reused
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	inputW := max(w-4, 10)
	if w >= sideBySideWidth {
		inputW = max(w/2-4, 10)
	}
	m.input.SetWidth(inputW)
}

// SetFocused sets whether this panel has focus. Losing focus also leaves
// the input.
func (m *Model) SetFocused(f bool) {
	m.focused = f
	if !f {
		m.editing = false
		m.input.Blur()
	}
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
	switch msg := msg.(type) {
	case msgs.FillTemplateMsg:
		m.input.SetValue(msg.Payload)
		return m, nil
	case tea.KeyMsg:
		if cmd, ok := m.templateKey(msg); ok {
			return m, cmd
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// templateKey handles alt+1 through alt+N in either mode.
func (m Model) templateKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !msg.Alt || len(msg.Runes) != 1 {
		return nil, false
	}
	n, err := strconv.Atoi(string(msg.Runes))
	if err != nil {
		return nil, false
	}
	tpl, ok := templates.At(n)
	if !ok {
		return nil, false
	}
	return func() tea.Msg { return msgs.FillTemplateMsg{Payload: tpl.Payload} }, true
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, setMode(msgs.ModeNormal)
	case "ctrl+g", "ctrl+s":
		return m, m.generate()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "i", "e", "a":
		m.editing = true
		cmd := m.input.Focus()
		return m, tea.Batch(cmd, setMode(msgs.ModeInsert))
	case "enter", "ctrl+g", "g":
		return m, m.generate()
	case "X":
		m.input.Reset()
		m.artifact = nil
		return m, nil
	}

	if m.artifact == nil {
		return m, nil
	}
	switch msg.String() {
	case "c", "y":
		text := m.artifact.Text
		return m, func() tea.Msg { return msgs.CopyMsg{Text: text} }
	case "d":
		return m, func() tea.Msg { return msgs.DownloadMsg{} }
	case "S":
		return m, func() tea.Msg { return msgs.ShareMsg{} }
	}
	return m, nil
}

func (m Model) generate() tea.Cmd {
	text := m.input.Value()
	return func() tea.Msg { return msgs.GenerateMsg{Text: text} }
}

func setMode(mode msgs.AppMode) tea.Cmd {
	return func() tea.Msg { return msgs.SetModeMsg{Mode: mode} }
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	left := strings.Join([]string{
		m.styles.Title.Render("Generator"),
		"",
		m.inputBox(),
		"",
		m.templateList(),
	}, "\n")

	var body string
	if m.width >= sideBySideWidth {
		leftW := innerW / 2
		right := m.codeView(innerW-leftW, innerH)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(leftW).Render(left),
			lipgloss.NewStyle().Width(innerW-leftW).Render(right),
		)
	} else {
		body = left + "\n\n" + m.codeView(innerW, innerH)
	}

	content := components.FitHeight(body, max(innerH-1, 0)) + "\n" + m.footer()
	return border.
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) inputBox() string {
	frame := m.styles.UnfocusedBorder
	if m.editing {
		frame = m.styles.FocusedBorder
	}
	return frame.Render(m.input.View())
}

func (m Model) templateList() string {
	lines := []string{m.styles.Subtitle.Render("Templates")}
	for i, tpl := range templates.All() {
		lines = append(lines, fmt.Sprintf("  %s %s %s",
			m.styles.Key.Render(fmt.Sprintf("alt+%d", i+1)),
			m.styles.Normal.Render(tpl.Name),
			m.styles.Muted.Render(tpl.Payload),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) codeView(w, h int) string {
	if m.artifact == nil {
		return m.styles.Muted.Render("Your QR code will appear here")
	}

	code := m.artifact.Terminal()
	codeW := lipgloss.Width(code)
	codeH := strings.Count(code, "\n") + 1
	header := m.styles.Subtitle.Render("QR Code")
	if m.reused {
		header += m.styles.Muted.Render("  from history")
	}
	// The symbol is only useful when it is shown whole.
	if codeW > w || codeH > h-2 {
		return header + "\n" + m.styles.Warning.Render(
			fmt.Sprintf("Enlarge the terminal to %dx%d to display this code", codeW+2, codeH+4))
	}
	return header + "\n" + m.styles.QRCode.Render(code)
}

func (m Model) footer() string {
	if m.editing {
		return m.styles.Key.Render("ctrl+g") + m.styles.Hint.Render(" generate") + "  " +
			m.styles.Key.Render("esc") + m.styles.Hint.Render(" done")
	}
	hints := []string{
		m.styles.Key.Render("i") + m.styles.Hint.Render(" edit"),
		m.styles.Key.Render("enter") + m.styles.Hint.Render(" generate"),
	}
	if m.artifact != nil {
		hints = append(hints,
			m.styles.Key.Render("c")+m.styles.Hint.Render(" copy"),
			m.styles.Key.Render("d")+m.styles.Hint.Render(" download"),
			m.styles.Key.Render("S")+m.styles.Hint.Render(" share"),
		)
	}
	return strings.Join(hints, "  ")
}
