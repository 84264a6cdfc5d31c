package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Remote drivers.
const (
	RemoteNone      = ""
	RemoteREST      = "rest"
	RemoteFirestore = "firestore"
)

// Config is the storefront configuration.
type Config struct {
	DataDir       string
	LocalDriver   string
	OwnerPassword string
	LogFile       string
	LogLevel      slog.Level
	Remote        Remote
	AI            AI
}

// Remote selects and configures the remote document store. An empty Driver
// means local-only mode.
type Remote struct {
	Driver          string
	URL             string
	PollInterval    time.Duration
	ProjectID       string
	CredentialsFile string
	ItemsCollection string
	ContentDocument string
}

// AI configures the recommendation service.
type AI struct {
	Model     string
	APIKeyEnv string
}

const (
	defaultConfigPath   = "~/.config/storefront/config.toml"
	defaultDataDir      = "~/.local/share/storefront"
	defaultLogFile      = "~/.local/share/storefront/storefront.log"
	defaultLocalDriver  = "file"
	defaultPollInterval = 2 * time.Second
	defaultAIModel      = "gemini-2.5-flash"
	defaultAPIKeyEnv    = "GEMINI_API_KEY"

	// OwnerPasswordEnv overrides owner_password when set.
	OwnerPasswordEnv = "STOREFRONT_OWNER_PASSWORD"
)

type rawConfig struct {
	DataDir       string `toml:"data_dir"`
	LocalDriver   string `toml:"local_driver"`
	OwnerPassword string `toml:"owner_password"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	Remote        struct {
		Driver          string `toml:"driver"`
		URL             string `toml:"url"`
		PollSeconds     int    `toml:"poll_seconds"`
		ProjectID       string `toml:"project_id"`
		CredentialsFile string `toml:"credentials_file"`
		ItemsCollection string `toml:"items_collection"`
		ContentDocument string `toml:"content_document"`
	} `toml:"remote"`
	AI struct {
		Model     string `toml:"model"`
		APIKeyEnv string `toml:"api_key_env"`
	} `toml:"ai"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:     mustExpand(defaultDataDir),
		LocalDriver: defaultLocalDriver,
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    slog.LevelInfo,
		Remote:      Remote{PollInterval: defaultPollInterval},
		AI:          AI{Model: defaultAIModel, APIKeyEnv: defaultAPIKeyEnv},
	}
}

// Load locates and parses the storefront config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if driver := strings.ToLower(strings.TrimSpace(raw.LocalDriver)); driver != "" {
		cfg.LocalDriver = driver
	}
	cfg.OwnerPassword = strings.TrimSpace(raw.OwnerPassword)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}

	cfg.Remote.Driver = strings.ToLower(strings.TrimSpace(raw.Remote.Driver))
	switch cfg.Remote.Driver {
	case RemoteNone, RemoteREST, RemoteFirestore:
	default:
		return Config{}, fmt.Errorf("unknown remote driver %q", raw.Remote.Driver)
	}
	cfg.Remote.URL = strings.TrimSpace(raw.Remote.URL)
	if raw.Remote.PollSeconds > 0 {
		cfg.Remote.PollInterval = time.Duration(raw.Remote.PollSeconds) * time.Second
	}
	cfg.Remote.ProjectID = strings.TrimSpace(raw.Remote.ProjectID)
	if creds := strings.TrimSpace(raw.Remote.CredentialsFile); creds != "" {
		cfg.Remote.CredentialsFile = mustExpand(creds)
	}
	cfg.Remote.ItemsCollection = strings.TrimSpace(raw.Remote.ItemsCollection)
	cfg.Remote.ContentDocument = strings.TrimSpace(raw.Remote.ContentDocument)

	if model := strings.TrimSpace(raw.AI.Model); model != "" {
		cfg.AI.Model = model
	}
	if env := strings.TrimSpace(raw.AI.APIKeyEnv); env != "" {
		cfg.AI.APIKeyEnv = env
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if pw := strings.TrimSpace(os.Getenv(OwnerPasswordEnv)); pw != "" {
		cfg.OwnerPassword = pw
	}
}

// RemoteEnabled reports whether a usable remote is configured. A driver
// without its required settings counts as not configured.
func (c Config) RemoteEnabled() bool {
	switch c.Remote.Driver {
	case RemoteREST:
		return c.Remote.URL != ""
	case RemoteFirestore:
		return c.Remote.ProjectID != ""
	default:
		return false
	}
}

// AIKey returns the API key from the configured environment variable.
func (c Config) AIKey() string {
	if c.AI.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.AI.APIKeyEnv))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
