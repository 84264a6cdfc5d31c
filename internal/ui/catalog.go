package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/recommend"
	"github.com/five82/storefront/internal/shop"
	"github.com/five82/storefront/internal/state"
)

type recommendMsg struct {
	query string
	items []shop.Item
	err   error
}

func (m Model) selectedItem() (shop.Item, bool) {
	items := m.snapshot.Catalog
	if len(items) == 0 {
		return shop.Item{}, false
	}
	return items[clamp(m.cursors[ViewCatalog], len(items))], true
}

// handleCatalogKey processes keyboard input for the catalog view.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveCursor(msg, &m.cursors[ViewCatalog], len(m.snapshot.Catalog)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Recommend):
		m.form = recommendForm(m.suggestQuery)
		return m, nil

	case key.Matches(msg, m.keys.New):
		if m.requireOwner() {
			m.form = itemForm(nil)
		}
		return m, nil
	}

	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		m.itemDetail = !m.itemDetail

	case key.Matches(msg, m.keys.AddToCart):
		m.store.AddToCart(item, 1)
		m.refresh()
		m.setFlash("added "+item.Title+" to cart", false)

	case key.Matches(msg, m.keys.Edit):
		if m.requireOwner() {
			m.form = itemForm(&item)
		}

	case key.Matches(msg, m.keys.Delete):
		if m.requireOwner() {
			id, title := item.ID, item.Title
			m.confirm = &confirmPrompt{
				question: fmt.Sprintf("Delete %q from the catalog?", title),
				onYes: func(m *Model) tea.Cmd {
					m.itemDetail = false
					return m.runOp("deleted "+title, func(ctx context.Context) error {
						return m.store.DeleteItem(ctx, id)
					})
				},
			}
		}
	}
	return m, nil
}

// startRecommendation asks the recommender for items matching query,
// prompting for a key first when none is held.
func (m Model) startRecommendation(query string) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m, nil
	}
	if m.recommender == nil {
		m.setFlash("suggestions are not configured", true)
		return m, nil
	}
	if _, ok := m.recommender.Credentials().Get(); !ok {
		m.pendingQuery = query
		m.form = apiKeyForm("")
		return m, nil
	}
	m.thinking = true
	m.suggestQuery = query
	return m, recommendCmd(m.ctx, m.recommender, query, m.snapshot.Catalog)
}

func recommendCmd(ctx context.Context, svc *recommend.Service, query string, catalog []shop.Item) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.Recommend(ctx, query, catalog)
		return recommendMsg{query: query, items: items, err: err}
	}
}

func (m Model) handleRecommendation(msg recommendMsg) (tea.Model, tea.Cmd) {
	m.thinking = false
	switch {
	case errors.Is(msg.err, recommend.ErrInvalidCredential):
		m.pendingQuery = msg.query
		m.form = apiKeyForm("the key was rejected, enter another")
		return m, nil
	case msg.err != nil:
		m.setFlash("suggestions unavailable, try again later", true)
		return m, nil
	}
	m.suggestions = msg.items
	m.suggestQuery = msg.query
	if len(msg.items) == 0 {
		m.setFlash("no matching books found", false)
	}
	return m, nil
}

// renderCatalog renders the book list with optional suggestions and detail.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.thinking {
		b.WriteString(styles.InfoText.Render(fmt.Sprintf("Finding books for %q...", m.suggestQuery)))
		b.WriteString("\n")
	} else if len(m.suggestions) > 0 {
		b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("Suggested for %q", m.suggestQuery)))
		b.WriteString("\n")
		for _, it := range m.suggestions {
			b.WriteString("  " + styles.WarningText.Render("★") + " " +
				styles.Text.Render(it.Title) + styles.MutedText.Render(" · "+it.Author+" · "+formatPrice(m.prefs.Currency, it.Price)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	items := m.snapshot.Catalog
	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render("The catalog is empty."))
		if m.snapshot.Owner {
			b.WriteString(styles.FaintText.Render("  n adds a book"))
		}
		return b.String()
	}

	if m.itemDetail {
		if item, ok := m.selectedItem(); ok {
			b.WriteString(m.renderItemDetail(item))
			return b.String()
		}
	}

	used := strings.Count(b.String(), "\n")
	height := m.contentHeight() - used - 1
	b.WriteString(m.renderItemTable(items, m.cursors[ViewCatalog], height))
	return b.String()
}

// renderItemTable renders a header row plus a window of items around cursor.
func (m Model) renderItemTable(items []shop.Item, cursor, height int) string {
	styles := m.theme.Styles()
	width := m.width
	if width <= 0 {
		width = 80
	}
	priceW, stockW, genreW := 10, 6, 14
	rest := width - priceW - stockW - genreW - 6
	titleW := rest * 3 / 5
	authorW := rest - titleW

	var b strings.Builder
	header := padRight("TITLE", titleW) + " " + padRight("AUTHOR", authorW) + " " +
		padRight("GENRE", genreW) + " " + padRight("PRICE", priceW) + " " + padRight("STOCK", stockW)
	b.WriteString(styles.FaintText.Render(header))

	start, end := listWindow(cursor, len(items), height)
	for i := start; i < end; i++ {
		it := items[i]
		title := it.Title
		if state.IsLocalID(it.ID) {
			title += " *"
		}
		row := padRight(title, titleW) + " " + padRight(it.Author, authorW) + " " +
			padRight(it.Category, genreW) + " " + padRight(formatPrice(m.prefs.Currency, it.Price), priceW) + " " +
			padRight(strconv.Itoa(it.Stock), stockW)
		b.WriteString("\n")
		if i == cursor {
			b.WriteString(styles.Selected.Render(padRight(row, width)))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
	}
	return b.String()
}

func (m Model) renderItemDetail(it shop.Item) string {
	styles := m.theme.Styles()
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(it.Title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("by " + it.Author))
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"Price", formatPrice(m.prefs.Currency, it.Price)},
		{"In stock", strconv.Itoa(it.Stock)},
		{"Genre", it.Category},
		{"Publisher", it.Note},
		{"Cover", truncate(it.Image, width-12)},
		{"Id", it.ID.String()},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		b.WriteString(styles.FaintText.Render(padRight(r.label, 11)) + " " + styles.Text.Render(r.value) + "\n")
	}
	if state.IsLocalID(it.ID) {
		b.WriteString(styles.WarningText.Render("Saved on this device only; not yet in the shared catalog.") + "\n")
	}
	if it.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(wrapText(it.Description, width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("a add to cart · esc back"))
	return b.String()
}
