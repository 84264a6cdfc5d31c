package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/shop"
)

func (m Model) handleAboutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Edit) && m.requireOwner() {
		m.form = contentForm(m.snapshot.Content)
	}
	return m, nil
}

// renderAbout renders the editable page content.
func (m Model) renderAbout() string {
	styles := m.theme.Styles()
	pc := m.snapshot.Content
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render(orDefault(pc.HeroTitle, shop.StoreName)))
	b.WriteString("\n")
	if pc.HeroSubtitle != "" {
		b.WriteString(styles.AccentText.Render(pc.HeroSubtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if pc.About != "" {
		b.WriteString(styles.Text.Render(wrapText(pc.About, width)))
		b.WriteString("\n\n")
	}
	for _, img := range []struct{ label, uri string }{
		{"Hero image", pc.HeroImage},
		{"Logo", pc.LogoImage},
	} {
		if img.uri == "" {
			continue
		}
		b.WriteString(styles.FaintText.Render(padRight(img.label, 11)) + " " +
			styles.MutedText.Render(truncate(img.uri, width-12)) + "\n")
	}
	if m.snapshot.Owner {
		b.WriteString("\n" + styles.FaintText.Render("e edit page content"))
	}
	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
