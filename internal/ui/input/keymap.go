package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Refresh  key.Binding
	Increase key.Binding
	Decrease key.Binding
	Quit     key.Binding
	Config   key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	Accept   key.Binding
	Back     key.Binding
}

var Default = Map{ //nolint:gochecknoglobals
	Refresh: key.NewBinding(
		key.WithKeys("r", "R", "f5"),
		key.WithHelp("r", "Refresh"),
	),
	Increase: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "LP/win up"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "LP/win down"),
	),
	Help: key.NewBinding(
		key.WithKeys("h", "H", "?"),
		key.WithHelp("h", "Help"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Config: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "Conf"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "shift+tab"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "tab"),
		key.WithHelp("↓", "Down"),
	),
}
