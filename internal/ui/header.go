package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/shop"
	"github.com/five82/storefront/internal/state"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100
	sep := bg.Spaces(2)
	snap := m.snapshot

	parts := []string{
		bg.Render(shop.StoreName, styles.Logo),
		m.renderSyncBadge(snap),
	}

	if snap.Owner {
		parts = append(parts, bg.Render("OWNER", styles.WarningText.Bold(true)))
	}

	parts = append(parts,
		bg.Render("Cart:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", snap.CartCount), styles.Text)+bg.Space()+
			bg.Render(formatPrice(m.prefs.Currency, snap.CartTotal), styles.SuccessText),
	)

	if !compact {
		parts = append(parts,
			bg.Render("Books:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(snap.Catalog)), styles.Text),
		)
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, bg.Render("synced "+humanizeDuration(time.Since(snap.LastUpdated))+" ago", styles.FaintText))
		}
	}

	if snap.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("!", styles.DangerText)+bg.Space()+
				bg.Render(truncate(snap.LastError.Error(), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderSyncBadge shows where the data comes from.
func (m Model) renderSyncBadge(snap state.Snapshot) string {
	label := snap.Sync.String()
	if snap.IsOffline() {
		label = "offline"
	}
	return m.theme.Styles().StatusStyle(snap.Sync.String()).Render(strings.ToUpper(label))
}

// renderCommandBar renders the view tabs.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	var tabs []string
	for v := View(0); v < viewCount; v++ {
		label := fmt.Sprintf("%d %s", v+1, v)
		if v == ViewCart && m.snapshot.CartCount > 0 {
			label += fmt.Sprintf(" (%d)", m.snapshot.CartCount)
		}
		if v == m.currentView {
			tabs = append(tabs, styles.Selected.Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Padding(0, 1).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderFooter shows the transient status line or the short help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.flash != "" {
		if m.flashErr {
			return styles.DangerText.Render(truncate(m.flash, m.width))
		}
		return styles.SuccessText.Render(truncate(m.flash, m.width))
	}
	return m.help.ShortHelpView(m.viewHints())
}
