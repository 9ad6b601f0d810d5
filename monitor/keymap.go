package monitor

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	quit key.Binding
	help key.Binding
}

var defaultKeymap = keymap{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "end session"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "thresholds"),
	),
}
