// Package prefs keeps per-user storefront UI preferences in
// ~/.config/storefront/prefs.toml. Preferences never block start-up: a
// missing or unreadable file yields the defaults.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds UI preferences. They are per user, not per store, so they
// live outside the local store.
type Prefs struct {
	Theme string `toml:"theme"`
	// View is the tab shown on start-up.
	View string `toml:"view"`
	// Currency prefixes prices.
	Currency string `toml:"currency"`
}

const (
	defaultPrefsPath = "~/.config/storefront/prefs.toml"
	defaultTheme     = "Dracula"
	defaultView      = "catalog"
	defaultCurrency  = "$"
)

// Default returns the preferences used when none are stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, View: defaultView, Currency: defaultCurrency}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// normalized trims every field and fills blanks from the defaults.
func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	p.View = strings.ToLower(strings.TrimSpace(p.View))
	p.Currency = strings.TrimSpace(p.Currency)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	if p.View == "" {
		p.View = defaultView
	}
	if p.Currency == "" {
		p.Currency = defaultCurrency
	}
	return p
}

// Load reads preferences from path (empty means the default path). Any
// failure returns the defaults; the error is reserved for callers that
// want to log it and is nil for a missing file.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// Save writes preferences to path, creating directories as needed. The
// file is replaced by rename so a crash never leaves it half written.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "prefs.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
