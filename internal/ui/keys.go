package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Layout     key.Binding
	Logs       key.Binding
	Newsletter key.Binding
	Escape     key.Binding

	// Pages
	TogglePage  key.Binding
	Muscles     key.Binding
	BodyParts   key.Binding
	Equipment   key.Binding
	CycleFilter key.Binding

	// Catalog
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Search    key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Remove    key.Binding
	Refresh   key.Binding

	// Detail overlay
	Favorite key.Binding
	Rate     key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
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
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Layout: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Toggle list/grid"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Show logs"),
		),
		Newsletter: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Subscribe"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		// Pages
		TogglePage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Home/Favorites"),
		),
		Muscles: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Muscles"),
		),
		BodyParts: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Body parts"),
		),
		Equipment: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Equipment"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),

		// Catalog
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / Start"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "Back to categories"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search exercises"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "First page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Last page"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove favorite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "Reload"),
		),

		// Detail overlay
		Favorite: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add/remove favorite"),
		),
		Rate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Give a rating"),
		),

		// Forms
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Send"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePage, k.Muscles, k.BodyParts, k.Equipment, k.CycleFilter},
		{k.Up, k.Down, k.Open, k.Back, k.Search},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.Remove, k.Refresh},
		{k.Favorite, k.Rate},
		{k.Newsletter, k.Layout, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
