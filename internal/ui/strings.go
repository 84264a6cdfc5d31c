package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads or truncates rendered text to exactly width cells.
func padRight(value string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(value)
	if w > width {
		return truncate(value, width)
	}
	return value + strings.Repeat(" ", width-w)
}

// formatPrice renders amount with two decimals behind the currency symbol.
func formatPrice(currency string, amount float64) string {
	if currency == "" {
		currency = "$"
	}
	return currency + strconv.FormatFloat(amount, 'f', 2, 64)
}

// pluralize returns "1 book" or "3 books".
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// humanizeDuration renders a coarse age like "12s" or "3m".
func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return strconv.Itoa(int(d.Seconds())) + "s"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d"
	}
}

// listWindow returns the [start, end) slice of a list of total rows that
// keeps cursor visible in height rows.
func listWindow(cursor, total, height int) (int, int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

// clamp keeps a cursor inside a list of n rows.
func clamp(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// splitIDs parses a comma or space separated id list.
func splitIDs(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// wrapText wraps value to width cells, keeping paragraph breaks.
func wrapText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return lipgloss.NewStyle().Width(width).Render(value)
}
