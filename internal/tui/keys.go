package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings of the rename screen and the history panel
type keyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Editing
	NextField   key.Binding
	PrevField   key.Binding
	ToggleRegex key.Binding
	ToggleCase  key.Binding
	Apply       key.Binding

	// Preview scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// History panel
	History      key.Binding
	Up           key.Binding
	Down         key.Binding
	UseEntry     key.Binding
	ClearHistory key.Binding
	Close        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),

		NextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		ToggleRegex: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regex")),
		ToggleCase:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "ignore case")),
		Apply:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "rename")),

		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),

		History:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "history")),
		Up:           key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("↑", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("↓", "down")),
		UseEntry:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use")),
		ClearHistory: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear history")),
		Close:        key.NewBinding(key.WithKeys("esc", "ctrl+p"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.ToggleRegex, k.ToggleCase, k.History, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Apply},
		{k.ToggleRegex, k.ToggleCase},
		{k.ScrollUp, k.ScrollDown},
		{k.History, k.ClearHistory},
		{k.Help, k.Quit},
	}
}

// historyKeys is shown while the history panel is open
type historyKeys keyMap

func (k historyKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.UseEntry, k.ClearHistory, k.Close}
}

func (k historyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
