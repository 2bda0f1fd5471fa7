package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Suspend    key.Binding
	Retry      key.Binding

	// Controls
	VolumeDown     key.Binding
	VolumeUp       key.Binding
	BrightnessDown key.Binding
	BrightnessUp   key.Binding

	// Power actions
	Sleep    key.Binding
	Restart  key.Binding
	Shutdown key.Binding

	// Confirmation prompt
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "Suspend"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry now"),
		),

		// Controls
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Volume down"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Volume up"),
		),
		BrightnessDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Brightness down"),
		),
		BrightnessUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Brightness up"),
		),

		// Power actions
		Sleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sleep"),
		),
		Restart: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Restart"),
		),
		Shutdown: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Shut down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.VolumeDown, k.VolumeUp, k.BrightnessDown, k.BrightnessUp, k.Retry, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.VolumeDown, k.VolumeUp, k.BrightnessDown, k.BrightnessUp},
		{k.Sleep, k.Restart, k.Shutdown},
		{k.Retry, k.CycleTheme, k.Suspend, k.Help, k.Quit},
	}
}
