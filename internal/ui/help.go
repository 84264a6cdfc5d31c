package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// viewHints returns the bindings shown in the footer for the current view.
func (m Model) viewHints() []key.Binding {
	k := m.keys
	var hints []key.Binding
	switch m.currentView {
	case ViewCatalog:
		hints = []key.Binding{k.Open, k.AddToCart, k.Recommend}
		if m.snapshot.Owner {
			hints = append(hints, k.New, k.Edit, k.Delete)
		}
	case ViewCart:
		hints = []key.Binding{k.Increase, k.Decrease, k.Remove, k.Checkout}
	case ViewOrders:
		if m.snapshot.Owner {
			hints = []key.Binding{k.NextStatus}
		}
	case ViewCollections:
		hints = []key.Binding{k.Open}
		if m.snapshot.Owner {
			hints = append(hints, k.New, k.Edit, k.Delete)
		}
	case ViewAbout:
		if m.snapshot.Owner {
			hints = []key.Binding{k.Edit}
		}
	case ViewActivity:
		hints = []key.Binding{k.CycleLevel}
	}
	return append(hints, k.ShortHelp()...)
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	h := m.help
	h.ShowAll = true
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	h.Styles.FullDesc = styles.Text
	h.Styles.FullSeparator = styles.FaintText

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(h.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Level filter: " + m.activityLevel.String() + "   Theme: " + m.theme.Name))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
