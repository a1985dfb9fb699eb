package demo

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the keys of the demo page.
type KeyMap struct {
	Modal   key.Binding
	Drawer  key.Binding
	Confirm key.Binding
	Quit    key.Binding
	Force   key.Binding
}

// DefaultKeyMap returns the demo page keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Modal:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "modal")),
		Drawer:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drawer")),
		Confirm: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "confirm")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Modal, k.Drawer, k.Confirm, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
