package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/logtail"
)

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, activityLines)
		if err != nil {
			return activityMsg{err: err}
		}
		return activityMsg{entries: logtail.ParseLines(lines)}
	}
}

// nextLevel cycles the minimum level shown: debug, info, warn, error.
func nextLevel(l slog.Level) slog.Level {
	switch {
	case l < slog.LevelInfo:
		return slog.LevelInfo
	case l < slog.LevelWarn:
		return slog.LevelWarn
	case l < slog.LevelError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.CycleLevel) {
		m.activityLevel = nextLevel(m.activityLevel)
		m.updateActivityViewport(true)
		return m, nil
	}
	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

// updateActivityViewport re-renders the log entries. With follow set the
// view stays pinned to the newest line if it was already there.
func (m *Model) updateActivityViewport(follow bool) {
	if !m.ready {
		return
	}
	atBottom := m.activityViewport.AtBottom()
	m.activityViewport.SetContent(m.renderEntries(logtail.Filter(m.activity, m.activityLevel)))
	if follow && atBottom {
		m.activityViewport.GotoBottom()
	}
}

func (m Model) renderEntries(entries []logtail.Entry) string {
	styles := m.theme.Styles()
	if len(entries) == 0 {
		return styles.MutedText.Render("No activity at " + m.activityLevel.String() + " or above.")
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		if !e.Parsed {
			b.WriteString(styles.FaintText.Render(e.Raw))
			continue
		}
		b.WriteString(styles.FaintText.Render(shortTime(e.Time)))
		b.WriteString(" ")
		b.WriteString(m.levelStyle(e.Level).Render(padRight(e.Level.String(), 5)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		for _, a := range e.Attrs {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(a.Key + "="))
			b.WriteString(styles.AccentText.Render(a.Value))
		}
	}
	return b.String()
}

func (m Model) levelStyle(l slog.Level) lipgloss.Style {
	styles := m.theme.Styles()
	switch {
	case l >= slog.LevelError:
		return styles.DangerText
	case l >= slog.LevelWarn:
		return styles.WarningText
	case l >= slog.LevelInfo:
		return styles.InfoText
	default:
		return styles.FaintText
	}
}

// shortTime renders an RFC 3339 timestamp as a wall clock time.
func shortTime(value string) string {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return value
	}
	return t.Local().Format("15:04:05")
}

func (m Model) renderActivity() string {
	if m.logPath == "" {
		return m.theme.Styles().MutedText.Render("Logging to a file is disabled.")
	}
	return m.activityViewport.View()
}
