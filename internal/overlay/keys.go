package overlay

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the key bindings handled by the controller itself. Every other
// key is forwarded to the content of the top-most overlay.
type KeyMap struct {
	Close key.Binding
}

// DefaultKeyMap returns the default overlay keybindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap([]string{"esc"})
}

// NewKeyMap builds a KeyMap closing overlays on any of closeKeys.
func NewKeyMap(closeKeys []string) KeyMap {
	helpKey := "esc"
	if len(closeKeys) > 0 {
		helpKey = closeKeys[0]
	}
	return KeyMap{
		Close: key.NewBinding(
			key.WithKeys(closeKeys...),
			key.WithHelp(helpKey, "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Close}}
}
