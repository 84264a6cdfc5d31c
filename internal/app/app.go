package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/recommend"
	"github.com/five82/storefront/internal/state"
	"github.com/five82/storefront/internal/ui"
)

// Options configure the storefront application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/storefront/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	DataDir    string // overrides data_dir when set
}

// Run boots the storefront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.Remote.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	logger, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	rt, err := start(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	return ui.Run(ui.Options{
		Context:     ctx,
		Store:       rt.Store,
		Recommender: rt.Recommender,
		LogPath:     cfg.LogFile,
		Prefs:       userPrefs,
		PrefsPath:   opts.PrefsPath,
		Logger:      logger,
	})
}

// runtime holds everything the UI needs plus what must be released on exit.
type runtime struct {
	Store       *state.Store
	Recommender *recommend.Service

	local  *localstore.Store
	remote *remotes
}

// start opens storage, connects the remote and initializes the store. Only
// local storage failures are fatal; a remote that cannot be reached leaves
// the store in local-only mode.
func start(ctx context.Context, cfg config.Config, logger *slog.Logger) (*runtime, error) {
	backend, err := localstore.Open(cfg.LocalDriver, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	local := localstore.New(backend, logger)

	rem, err := openRemote(ctx, cfg, logger)
	if err != nil {
		logger.Warn("remote unavailable, running local-only", "driver", cfg.Remote.Driver, "error", err)
		rem = &remotes{}
	}

	store := state.New(state.Options{
		Local:       local,
		Items:       rem.items,
		Content:     rem.content,
		OwnerSecret: cfg.OwnerPassword,
		Logger:      logger,
	})
	if err := store.Init(ctx); err != nil {
		rem.Close()
		_ = local.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info("storefront started",
		"local_driver", cfg.LocalDriver,
		"data_dir", cfg.DataDir,
		"remote", remoteLabel(cfg, rem))

	creds := recommend.NewCredentialHolder(cfg.AIKey())
	return &runtime{
		Store:       store,
		Recommender: recommend.NewService(recommend.NewGemini(cfg.AI.Model), creds, logger),
		local:       local,
		remote:      rem,
	}, nil
}

// Close stops sync and releases storage, in that order.
func (rt *runtime) Close() error {
	rt.Store.Close()
	rt.remote.Close()
	if err := rt.local.Close(); err != nil {
		return fmt.Errorf("close local store: %w", err)
	}
	return nil
}

func remoteLabel(cfg config.Config, rem *remotes) string {
	if rem.items == nil && rem.content == nil {
		return "none"
	}
	return cfg.Remote.Driver
}
