package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/source"
)

// KeyMap defines the key bindings for the viewer
type KeyMap struct {
	Quit        key.Binding
	Next        key.Binding
	Previous    key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Unselect    key.Binding
	Follow      key.Binding
	Filter      key.Binding
	ClearView   key.Binding
	ResetCutoff key.Binding
	Export      key.Binding
	Help        key.Binding

	// Levels toggles source.Levels[i] with key i+1
	Levels []key.Binding
}

// NewKeyMap builds the key bindings from config
func NewKeyMap(cfg config.KeybindingConfig) KeyMap {
	levels := make([]key.Binding, len(source.Levels))
	for i, level := range source.Levels {
		k := string(rune('1' + i))
		levels[i] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, "toggle "+level.String()))
	}

	return KeyMap{
		Quit:        binding(cfg.Quit, "quit"),
		Next:        binding(cfg.Next, "next"),
		Previous:    binding(cfg.Previous, "previous"),
		PageUp:      binding(cfg.PageUp, "page up"),
		PageDown:    binding(cfg.PageDown, "page down"),
		Top:         binding(cfg.Top, "first"),
		Bottom:      binding(cfg.Bottom, "last"),
		Unselect:    binding(cfg.Unselect, "unselect/close"),
		Follow:      binding(cfg.Follow, "follow"),
		Filter:      binding(cfg.Filter, "filter"),
		ClearView:   binding(cfg.ClearView, "clear view"),
		ResetCutoff: binding(cfg.ResetCutoff, "show cleared"),
		Export:      binding(cfg.Export, "export"),
		Help:        binding(cfg.Help, "help"),
		Levels:      levels,
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Follow, k.Filter, k.ClearView, k.Export, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Unselect},
		{k.Follow, k.Filter, k.ClearView, k.ResetCutoff, k.Export, k.Help, k.Quit},
		k.Levels,
	}
}
