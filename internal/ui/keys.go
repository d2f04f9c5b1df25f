package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the launcher
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	First        key.Binding
	Last         key.Binding
	AutoComplete key.Binding
	Confirm      key.Binding
	Favorite     key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the launcher keybindings. favoriteChord is
// the configured favorite-toggle chord; a blank value falls back to
// alt+f.
func DefaultKeyMap(favoriteChord string) KeyMap {
	chord := strings.TrimSpace(favoriteChord)
	if chord == "" {
		chord = "alt+f"
	}
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		First: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "last"),
		),
		AutoComplete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		Favorite: key.NewBinding(
			key.WithKeys(chord),
			key.WithHelp(chord, "favorite"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.AutoComplete, k.Favorite, k.Escape}
}

// FullHelp returns all keybindings for full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Confirm, k.AutoComplete, k.Favorite},
		{k.Escape, k.Quit},
	}
}
