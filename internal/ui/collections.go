package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/shop"
)

func findCollection(cols []shop.Collection, id shop.ID) *shop.Collection {
	for i := range cols {
		if cols[i].ID == id {
			c := cols[i].Clone()
			return &c
		}
	}
	return nil
}

func (m Model) collectionByID(id shop.ID) (shop.Collection, bool) {
	if c := findCollection(m.snapshot.Collections, id); c != nil {
		return *c, true
	}
	return shop.Collection{}, false
}

// handleCollectionsKey processes keyboard input for the collections view.
func (m Model) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.openCollection != nil {
		return m.handleMembersKey(msg)
	}

	cols := m.snapshot.Collections
	if m.moveCursor(msg, &m.cursors[ViewCollections], len(cols)) {
		return m, nil
	}
	if key.Matches(msg, m.keys.New) {
		if m.requireOwner() {
			m.form = collectionForm(nil)
		}
		return m, nil
	}
	if len(cols) == 0 {
		return m, nil
	}
	c := cols[clamp(m.cursors[ViewCollections], len(cols))].Clone()

	switch {
	case key.Matches(msg, m.keys.Open):
		m.openCollection = &c
		m.memberCursor = 0
	case key.Matches(msg, m.keys.Edit):
		if m.requireOwner() {
			m.form = collectionForm(&c)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.requireOwner() {
			m.confirm = &confirmPrompt{
				question: fmt.Sprintf("Delete collection %q?", c.Name),
				onYes: func(m *Model) tea.Cmd {
					if err := m.store.DeleteCollection(c.ID); err != nil {
						m.setFlash("delete collection: "+err.Error(), true)
						return nil
					}
					m.refresh()
					m.setFlash("deleted "+c.Name, false)
					return nil
				},
			}
		}
	}
	return m, nil
}

func (m Model) handleMembersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	members := m.store.ResolveCollection(*m.openCollection)
	if m.moveCursor(msg, &m.memberCursor, len(members)) {
		return m, nil
	}
	if len(members) > 0 && key.Matches(msg, m.keys.AddToCart) {
		item := members[clamp(m.memberCursor, len(members))]
		m.store.AddToCart(item, 1)
		m.refresh()
		m.setFlash("added "+item.Title+" to cart", false)
	}
	return m, nil
}

// renderCollections renders the collection list or one opened collection.
func (m Model) renderCollections() string {
	styles := m.theme.Styles()
	if m.openCollection != nil {
		c := *m.openCollection
		members := m.store.ResolveCollection(c)
		var b strings.Builder
		b.WriteString(styles.AccentText.Bold(true).Render(c.Name))
		b.WriteString(styles.MutedText.Render("  " + pluralize(len(members), "book")))
		b.WriteString("\n")
		if len(members) == 0 {
			b.WriteString(styles.MutedText.Render("None of this collection's books are in the catalog."))
			return b.String()
		}
		b.WriteString(m.renderItemTable(members, clamp(m.memberCursor, len(members)), m.contentHeight()-3))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("a add to cart · esc back"))
		return b.String()
	}

	cols := m.snapshot.Collections
	if len(cols) == 0 {
		msg := styles.MutedText.Render("No collections yet.")
		if m.snapshot.Owner {
			msg += styles.FaintText.Render("  n creates one")
		}
		return msg
	}

	var b strings.Builder
	cursor := clamp(m.cursors[ViewCollections], len(cols))
	start, end := listWindow(cursor, len(cols), m.contentHeight()-1)
	for i := start; i < end; i++ {
		c := cols[i]
		row := padRight(c.Name, 32) + " " + pluralize(len(c.ItemIDs), "book")
		if i == cursor {
			b.WriteString(styles.Selected.Render(padRight(row, m.width)))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString("\n")
	}
	hint := "enter open"
	if m.snapshot.Owner {
		hint += " · n new · e edit · d delete"
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}
