package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Clear  key.Binding
	Focus  key.Binding
	Edit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Edit:   key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a/i", "new task")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Clear, k.Focus, k.Edit},
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Help, k.Quit},
	}
}
