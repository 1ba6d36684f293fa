package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the timer key bindings.
type KeyMap struct {
	Primary key.Binding
	Skip    key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap provides the default key bindings.
var DefaultKeyMap = KeyMap{
	Primary: key.NewBinding(
		key.WithKeys(" ", "space", "p", "enter"),
		key.WithHelp("space", "pause/resume/continue"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset cycle"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Primary, keys.Skip, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Primary, keys.Skip, keys.Reset},
		{keys.Help, keys.Quit},
	}
}
