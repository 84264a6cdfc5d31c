package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Login      key.Binding

	// View switching
	ViewCatalog     key.Binding
	ViewCart        key.Binding
	ViewOrders      key.Binding
	ViewCollections key.Binding
	ViewAbout       key.Binding
	ViewActivity    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Shopping
	AddToCart key.Binding
	Increase  key.Binding
	Decrease  key.Binding
	Remove    key.Binding
	ClearCart key.Binding
	Checkout  key.Binding
	Recommend key.Binding

	// Owner
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	NextStatus key.Binding

	// Activity
	CycleLevel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "owner login/logout"),
		),

		ViewCatalog: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "catalog"),
		),
		ViewCart: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "cart"),
		),
		ViewOrders: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "orders"),
		),
		ViewCollections: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "collections"),
		),
		ViewAbout: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "about"),
		),
		ViewActivity: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "activity"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),

		AddToCart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to cart"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear cart"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "checkout"),
		),
		Recommend: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "ask for a suggestion"),
		),

		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		NextStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "advance status"),
		),

		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "level filter"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Tab, k.Login, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewCatalog, k.ViewCart, k.ViewOrders, k.ViewCollections, k.ViewAbout, k.ViewActivity},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Escape},
		{k.AddToCart, k.Increase, k.Decrease, k.Remove, k.ClearCart, k.Checkout, k.Recommend},
		{k.New, k.Edit, k.Delete, k.NextStatus, k.CycleLevel},
		{k.Login, k.CycleTheme, k.Help, k.Quit},
	}
}
