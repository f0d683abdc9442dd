// Package keys contains keybinding definitions for the trainer screens.
// Editing keys are not listed here: in play mode every key that is not an
// application binding goes to the editor.
package keys

import "github.com/charmbracelet/bubbles/key"

// MenuKeyMap holds the challenge menu bindings.
type MenuKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Start       key.Binding
	Sandbox     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Sandbox, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSection, k.PrevSection}, // Navigation
		{k.Start, k.Sandbox},                         // Actions
		{k.Help, k.Quit},                             // General
	}
}

// PlayKeyMap holds the bindings active while editing. They all use ctrl so
// that plain keys reach the editor.
type PlayKeyMap struct {
	Hint         key.Binding
	Reset        key.Binding
	Next         key.Binding
	ToggleTarget key.Binding
	KeyGuide     key.Binding
	Menu         key.Binding
	Quit         key.Binding
}

// ShortHelp implements help.KeyMap.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hint, k.Reset, k.KeyGuide, k.Menu}
}

// FullHelp implements help.KeyMap.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hint, k.Reset, k.Next},
		{k.ToggleTarget, k.KeyGuide},
		{k.Menu, k.Quit},
	}
}

// ResultKeyMap holds the bindings of the completion panel.
type ResultKeyMap struct {
	Next  key.Binding
	Retry key.Binding
	Menu  key.Binding
	Quit  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ResultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Retry, k.Menu, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ResultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Menu is the challenge menu keymap.
var Menu = MenuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	NextSection: key.NewBinding(
		key.WithKeys("tab", "l", "right"),
		key.WithHelp("tab", "next category"),
	),
	PrevSection: key.NewBinding(
		key.WithKeys("shift+tab", "h", "left"),
		key.WithHelp("shift+tab", "previous category"),
	),
	Start: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start challenge"),
	),
	Sandbox: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sandbox"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Play is the editing screen keymap.
var Play = PlayKeyMap{
	Hint: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "reveal hint"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next challenge"),
	),
	ToggleTarget: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle target"),
	),
	KeyGuide: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "key guide"),
	),
	Menu: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Result is the completion panel keymap.
var Result = ResultKeyMap{
	Next: key.NewBinding(
		key.WithKeys("enter", "n"),
		key.WithHelp("enter", "next challenge"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Menu: key.NewBinding(
		key.WithKeys("esc", "m"),
		key.WithHelp("esc", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
