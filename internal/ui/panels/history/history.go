// Package history is the panel listing past scans and generations.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	hist "github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/review"
	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/ui/components"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

// previewRunes is how much of a record's text a row shows.
const previewRunes = 50

// Model is the history panel.
type Model struct {
	records  []hist.Record
	filtered []hist.Record
	cursor   int

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	now func() time.Time

	theme  theme.Theme
	styles theme.Styles
}

// New creates a new history panel.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search history"
	ti.CharLimit = 128

	return Model{
		theme:       t,
		styles:      s,
		filterInput: ti,
		now:         time.Now,
	}
}

// SetRecords replaces the listed records, newest first.
func (m *Model) SetRecords(records []hist.Record) {
	m.records = records
	m.applyFilter()
}

// Records returns the full, unfiltered list.
func (m Model) Records() []hist.Record {
	return m.records
}

// Selected returns the record under the cursor.
func (m Model) Selected() (hist.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return hist.Record{}, false
	}
	return m.filtered[m.cursor], true
}

// Filtering reports whether the search input has focus.
func (m Model) Filtering() bool {
	return m.filtering
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
	if m.filtering {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case msgs.HistoryChangedMsg:
		m.SetRecords(msg.Records)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if len(m.records) == 0 {
		switch msg.String() {
		case "s":
			return m, switchTo(state.ViewScanner)
		case "n":
			return m, switchTo(state.ViewGenerator)
		}
		return m, nil
	}

	switch msg.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, tea.Batch(textinput.Blink, setMode(msgs.ModeSearch))
	case "C":
		return m, func() tea.Msg { return msgs.ClearHistoryMsg{} }
	}

	if len(m.filtered) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.filtered) - 1
	case "enter", "r":
		rec := m.filtered[m.cursor]
		return m, func() tea.Msg { return msgs.RecallMsg{Record: rec} }
	case "c", "y":
		text := m.filtered[m.cursor].Text
		return m, func() tea.Msg { return msgs.CopyMsg{Text: text} }
	case "d", "delete":
		id := m.filtered[m.cursor].ID
		return m, func() tea.Msg { return msgs.DeleteRecordMsg{ID: id} }
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if key.String() == "esc" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, setMode(msgs.ModeNormal)
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) applyFilter() {
	m.filtered = review.Filter(m.records, m.filterInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func switchTo(v state.View) tea.Cmd {
	return func() tea.Msg { return msgs.SwitchViewMsg{View: v} }
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

	var lines []string
	lines = append(lines, m.header(innerW), "")

	if len(m.records) == 0 {
		lines = append(lines, m.emptyState()...)
	} else if len(m.filtered) == 0 {
		lines = append(lines, m.styles.Muted.Render("  No matches"))
	} else {
		listH := innerH - len(lines) - 2
		if m.filtering || m.filterInput.Value() != "" {
			listH--
		}
		start, end := window(m.cursor, len(m.filtered), max(listH, 1))
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(m.filtered[i], i == m.cursor, innerW))
		}
	}

	body := strings.Join(lines, "\n")
	footer := m.footer()
	if m.filtering || m.filterInput.Value() != "" {
		footer = m.filterInput.View() + "\n" + footer
	}
	footerH := strings.Count(footer, "\n") + 1
	content := components.FitHeight(body, max(innerH-footerH, 0)) + "\n" + footer

	return border.
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) header(w int) string {
	sum := review.Summarize(m.records)
	title := m.styles.Title.Render("History")
	counts := m.styles.Muted.Render(fmt.Sprintf("%d scanned · %d generated", sum.Scanned, sum.Generated))
	gap := max(w-lipgloss.Width(title)-lipgloss.Width(counts), 1)
	return title + strings.Repeat(" ", gap) + counts
}

func (m Model) emptyState() []string {
	return []string{
		m.styles.Subtitle.Render("  No history yet"),
		m.styles.Muted.Render("  Scanned and generated codes show up here."),
		"",
		"  " + m.styles.Key.Render("s") + m.styles.Hint.Render(" start scanning") +
			"    " + m.styles.Key.Render("n") + m.styles.Hint.Render(" generate a code"),
	}
}

func (m Model) renderRow(rec hist.Record, isCursor bool, w int) string {
	badge := m.styles.OriginBadge(string(rec.Origin)).Render(padLabel(rec.Origin.Label()))
	when := humanize.RelTime(rec.CreatedAt, m.now(), "ago", "from now")
	text := components.Ellipsize(strings.ReplaceAll(rec.Text, "\n", " "), previewRunes)

	avail := w - lipgloss.Width(badge) - lipgloss.Width(when) - 3
	text = components.FitWidth(text, max(avail, 0))
	gap := max(w-lipgloss.Width(badge)-lipgloss.Width(text)-lipgloss.Width(when)-1, 1)

	if isCursor {
		return badge + " " + m.styles.Cursor.Render(text+strings.Repeat(" ", gap)+when)
	}
	return badge + " " + m.styles.Normal.Render(text) + strings.Repeat(" ", gap) + m.styles.Muted.Render(when)
}

func (m Model) footer() string {
	if len(m.records) == 0 {
		return ""
	}
	hints := []string{
		m.styles.Key.Render("enter") + m.styles.Hint.Render(" recall"),
		m.styles.Key.Render("c") + m.styles.Hint.Render(" copy"),
		m.styles.Key.Render("d") + m.styles.Hint.Render(" delete"),
		m.styles.Key.Render("/") + m.styles.Hint.Render(" search"),
		m.styles.Key.Render("C") + m.styles.Hint.Render(" clear all"),
	}
	return strings.Join(hints, "  ")
}

// padLabel keeps badges the same width.
func padLabel(s string) string {
	const n = 9
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// window returns the slice of rows to draw so the cursor stays visible.
func window(cursor, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	start = max(start, 0)
	start = min(start, total-height)
	return start, start + height
}
