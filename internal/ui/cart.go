package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/shop"
)

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.snapshot.Cart
	if m.moveCursor(msg, &m.cursors[ViewCart], len(lines)) {
		return m, nil
	}
	if len(lines) == 0 {
		return m, nil
	}
	line := lines[clamp(m.cursors[ViewCart], len(lines))]

	switch {
	case key.Matches(msg, m.keys.Increase):
		m.store.UpdateQuantity(line.ID, line.Quantity+1)
	case key.Matches(msg, m.keys.Decrease):
		// Dropping below one removes the line.
		m.store.UpdateQuantity(line.ID, line.Quantity-1)
	case key.Matches(msg, m.keys.Remove):
		m.store.RemoveFromCart(line.ID)
		m.setFlash("removed "+line.Title, false)
	case key.Matches(msg, m.keys.ClearCart):
		m.confirm = &confirmPrompt{
			question: "Empty the cart?",
			onYes: func(m *Model) tea.Cmd {
				m.store.ClearCart()
				m.refresh()
				return nil
			},
		}
		return m, nil
	case key.Matches(msg, m.keys.Checkout), key.Matches(msg, m.keys.Open):
		m.form = checkoutForm()
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// renderCart renders cart lines and totals.
func (m Model) renderCart() string {
	styles := m.theme.Styles()
	lines := m.snapshot.Cart
	if len(lines) == 0 {
		return styles.MutedText.Render("Your cart is empty.") + "\n" +
			styles.FaintText.Render("Browse the catalog (1) and press a to add a book.")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	qtyW, priceW := 5, 11
	titleW := width - qtyW - 2*priceW - 4

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(
		padRight("BOOK", titleW) + " " + padRight("QTY", qtyW) + " " +
			padRight("EACH", priceW) + " " + padRight("TOTAL", priceW)))

	start, end := listWindow(m.cursors[ViewCart], len(lines), m.contentHeight()-4)
	for i := start; i < end; i++ {
		l := lines[i]
		row := padRight(l.Title, titleW) + " " + padRight(strconv.Itoa(l.Quantity), qtyW) + " " +
			padRight(formatPrice(m.prefs.Currency, l.Price), priceW) + " " +
			padRight(formatPrice(m.prefs.Currency, l.LineTotal()), priceW)
		b.WriteString("\n")
		if i == m.cursors[ViewCart] {
			b.WriteString(styles.Selected.Render(padRight(row, width)))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderCartSummary(lines))
	return b.String()
}

func (m Model) renderCartSummary(lines []shop.CartLine) string {
	styles := m.theme.Styles()
	return styles.MutedText.Render(pluralize(m.snapshot.CartCount, "book")+" · total ") +
		styles.SuccessText.Render(formatPrice(m.prefs.Currency, shop.CartTotal(lines))) +
		styles.FaintText.Render("   +/- quantity · x remove · X clear · c checkout")
}
