package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a.quit()
	}

	if a.commandPalette.Visible {
		var cmd tea.Cmd
		a.commandPalette, cmd = a.commandPalette.Update(msg)
		if !a.commandPalette.Visible && a.mode == msgs.ModeCommandPalette {
			a.setMode(msgs.ModeNormal)
		}
		return a, cmd
	}
	if a.help.Visible {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}
	if a.modal.Visible {
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	}

	// Text entry owns every key until it is left.
	if a.generator.Editing() || a.history.Filtering() {
		cmd := a.updateActivePanel(msg)
		return a, cmd
	}

	if cmd, ok := a.handleGlobalKey(msg); ok {
		return a, cmd
	}

	var cmd tea.Cmd
	a.nav, cmd = a.nav.Update(msg)
	if cmd != nil {
		return a, cmd
	}

	cmd = a.updateActivePanel(msg)
	return a, cmd
}

func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		_, cmd := a.quit()
		return cmd, true
	case key.Matches(msg, a.keys.CommandPalette):
		return func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }, true
	case key.Matches(msg, a.keys.Help):
		return func() tea.Msg { return msgs.ShowHelpMsg{} }, true
	case key.Matches(msg, a.keys.ToggleNav):
		return func() tea.Msg { return msgs.ToggleNavMsg{} }, true
	case key.Matches(msg, a.keys.Scanner):
		return a.switchView(state.ViewScanner), true
	case key.Matches(msg, a.keys.Generator):
		return a.switchView(state.ViewGenerator), true
	case key.Matches(msg, a.keys.History):
		return a.switchView(state.ViewHistory), true
	case key.Matches(msg, a.keys.NextView):
		return func() tea.Msg { return msgs.NextViewMsg{} }, true
	case key.Matches(msg, a.keys.PrevView):
		return func() tea.Msg { return msgs.PrevViewMsg{} }, true
	}
	return nil, false
}
