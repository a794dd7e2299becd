package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-wide keybindings. View-specific keys
// live in the panels.
type KeyMap struct {
	// Global
	Quit           key.Binding
	ForceQuit      key.Binding
	CommandPalette key.Binding
	Help           key.Binding
	ToggleNav      key.Binding

	// View navigation
	Scanner   key.Binding
	Generator key.Binding
	History   key.Binding
	NextView  key.Binding
	PrevView  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		CommandPalette: key.NewBinding(
			key.WithKeys("ctrl+k", ":"),
			key.WithHelp("ctrl+k", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ToggleNav: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle navigation"),
		),
		Scanner: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "scanner"),
		),
		Generator: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "generator"),
		),
		History: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
	}
}
