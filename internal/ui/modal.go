package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/state"
)

// handleFormKey routes keys to the open form and acts on submission.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	submitted, cancelled, cmd := m.form.update(msg)
	switch {
	case cancelled:
		if m.form.kind == formAPIKey {
			m.pendingQuery = ""
		}
		m.form = nil
		return m, nil
	case submitted:
		return m.submitForm()
	}
	return m, cmd
}

// submitForm applies the open form. Validation errors keep the form open
// with the message shown under the fields.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	if m.store == nil {
		m.form = nil
		return m, nil
	}

	switch f.kind {
	case formLogin:
		if !m.store.Login(f.value(0)) {
			f.err = "incorrect password"
			f.fields[0].input.SetValue("")
			return m, nil
		}
		m.form = nil
		m.refresh()
		m.setFlash("signed in as owner", false)
		return m, nil

	case formCheckout:
		customer, err := f.customer()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		order, err := m.store.PlaceOrder(customer)
		m.form = nil
		if errors.Is(err, state.ErrEmptyCart) {
			m.setFlash("your cart is empty", true)
			return m, nil
		}
		if err != nil {
			m.setFlash("checkout failed: "+err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.setFlash(fmt.Sprintf("order %s placed · %s", order.ID, formatPrice(m.prefs.Currency, order.Total)), false)
		return m, nil

	case formNewItem:
		in, err := f.itemInput()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		return m, m.runOp("added "+in.Title, func(ctx context.Context) error {
			_, err := m.store.AddItem(ctx, in)
			return err
		})

	case formEditItem:
		in, err := f.itemInput()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		item := in.WithID(f.target)
		return m, m.runOp("saved "+item.Title, func(ctx context.Context) error {
			return m.store.UpdateItem(ctx, item)
		})

	case formContent:
		pc := f.pageContent()
		m.form = nil
		return m, m.runOp("page content saved", func(ctx context.Context) error {
			return m.store.SetContent(ctx, pc)
		})

	case formNewCollection, formEditCollection:
		name, ids, err := f.collectionMembers()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		if f.kind == formNewCollection {
			_, err = m.store.AddCollection(name, ids)
		} else {
			c, ok := m.collectionByID(f.target)
			if !ok {
				err = state.ErrCollectionNotFound
			} else {
				c.Name, c.ItemIDs = name, ids
				err = m.store.UpdateCollection(c)
			}
		}
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.refresh()
		m.setFlash("saved collection "+name, false)
		return m, nil

	case formRecommend:
		query := f.value(0)
		m.form = nil
		return m.startRecommendation(query)

	case formAPIKey:
		apiKey := f.value(0)
		if apiKey == "" {
			f.err = "enter a key or press esc"
			return m, nil
		}
		m.form = nil
		if m.recommender != nil {
			m.recommender.Credentials().Set(apiKey)
		}
		query := m.pendingQuery
		m.pendingQuery = ""
		return m.startRecommendation(query)
	}

	m.form = nil
	return m, nil
}

// renderModal centers content in a bordered box.
func (m Model) renderModal(content string) string {
	box := m.theme.Styles().Modal.Width(m.modalWidth()).Render(content)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	return styles.WarningText.Bold(true).Render(m.confirm.question) + "\n\n" +
		styles.FaintText.Render("y confirm · any other key cancels")
}
