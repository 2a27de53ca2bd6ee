package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the task client. Letter keys are not used for
// global actions because the title and description fields take free text.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding

	// Selectors: status, priority, due date and the delete target.
	OptionPrev key.Binding
	OptionNext key.Binding

	// Due date only.
	MonthPrev key.Binding
	MonthNext key.Binding
	Today     key.Binding

	Confirm key.Binding
	Submit  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "prev field"),
	),
	OptionPrev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev"),
	),
	OptionNext: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next"),
	),
	MonthPrev: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev month"),
	),
	MonthNext: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next month"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "create task"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.OptionPrev, k.OptionNext, k.Confirm, k.Submit, k.Refresh, k.Quit}
}
