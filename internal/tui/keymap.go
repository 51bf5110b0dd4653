package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	NextSheet key.Binding
	PrevSheet key.Binding

	// View
	NextPerson  key.Binding
	ClearFilter key.Binding
	SortWho     key.Binding
	SortWhy     key.Binding
	SortAmount  key.Binding

	// Rows
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Form
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Files
	Import     key.Binding
	ExportXLSX key.Binding
	ExportCSV  key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first row"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last row"),
		),
		NextSheet: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("Tab/l", "next sheet"),
		),
		PrevSheet: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("S-Tab/h", "previous sheet"),
		),

		NextPerson: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter by next person"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "clear filter"),
		),
		SortWho: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort by who"),
		),
		SortWhy: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort by why"),
		),
		SortAmount: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort by amount"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add row"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/Enter", "edit row"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete row"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab", "previous field"),
		),

		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import file"),
		),
		ExportXLSX: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export xlsx"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "export csv"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.NextSheet, k.NextPerson, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.NextSheet, k.PrevSheet, k.NextPerson, k.ClearFilter},
		{k.SortWho, k.SortWhy, k.SortAmount},
		{k.Add, k.Edit, k.Delete},
		{k.Import, k.ExportXLSX, k.ExportCSV},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
