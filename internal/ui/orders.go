package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/shop"
)

// handleOrdersKey processes keyboard input for the orders view.
func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.snapshot.Owner {
		return m, nil
	}
	orders := m.snapshot.Orders
	if m.moveCursor(msg, &m.cursors[ViewOrders], len(orders)) {
		return m, nil
	}
	if len(orders) == 0 || !key.Matches(msg, m.keys.NextStatus) {
		return m, nil
	}

	order := orders[clamp(m.cursors[ViewOrders], len(orders))]
	next := order.Status.Next()
	if err := m.store.UpdateOrderStatus(order.ID, next); err != nil {
		m.setFlash("update status: "+err.Error(), true)
		return m, nil
	}
	m.refresh()
	m.setFlash(fmt.Sprintf("%s is now %s", order.ID, next), false)
	return m, nil
}

// renderOrders renders the order log for the owner.
func (m Model) renderOrders() string {
	styles := m.theme.Styles()
	if !m.snapshot.Owner {
		return styles.MutedText.Render("Orders are visible to the shop owner.") + "\n" +
			styles.FaintText.Render("Press L to sign in.")
	}
	orders := m.snapshot.Orders
	if len(orders) == 0 {
		return styles.MutedText.Render("No orders yet.")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	idW, dateW, totalW, statusW := 30, 17, 11, 12
	nameW := width - idW - dateW - totalW - statusW - 4
	if nameW < 8 {
		nameW = 8
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(
		padRight("ORDER", idW) + " " + padRight("PLACED", dateW) + " " + padRight("CUSTOMER", nameW) + " " +
			padRight("TOTAL", totalW) + " " + "STATUS"))

	cursor := clamp(m.cursors[ViewOrders], len(orders))
	listHeight := (m.contentHeight() - 2) / 2
	start, end := listWindow(cursor, len(orders), listHeight)
	for i := start; i < end; i++ {
		o := orders[i]
		row := padRight(o.ID, idW) + " " + padRight(formatOrderDate(o.Date), dateW) + " " +
			padRight(o.Customer.Name, nameW) + " " + padRight(formatPrice(m.prefs.Currency, o.Total), totalW) + " "
		b.WriteString("\n")
		if i == cursor {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString(styles.StatusStyle(string(o.Status)).Width(statusW).Render(string(o.Status)))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderOrderDetail(orders[cursor]))
	return b.String()
}

func (m Model) renderOrderDetail(o shop.Order) string {
	styles := m.theme.Styles()
	var b strings.Builder

	c := o.Customer
	contact := strings.Join(nonEmpty(c.Email, c.Phone), " · ")
	b.WriteString(styles.Text.Bold(true).Render(c.Name))
	if contact != "" {
		b.WriteString(styles.MutedText.Render("  " + contact))
	}
	b.WriteString("\n")
	if c.Address != "" {
		b.WriteString(styles.MutedText.Render(c.Address) + "\n")
	}
	for _, l := range o.Items {
		b.WriteString(styles.Text.Render(fmt.Sprintf("  %d × %s", l.Quantity, l.Title)))
		b.WriteString(styles.FaintText.Render("  " + formatPrice(m.prefs.Currency, l.LineTotal())))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("s advances the status"))
	return b.String()
}

func formatOrderDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
