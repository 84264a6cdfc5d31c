package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/remote/fsdoc"
	"github.com/five82/storefront/internal/remote/rest"
)

// remotes are the adapters handed to the store. Both are nil in local-only mode.
type remotes struct {
	items   remote.Items
	content remote.Content
	closer  func() error
}

func (r *remotes) Close() {
	if r == nil || r.closer == nil {
		return
	}
	if err := r.closer(); err != nil {
		slog.Warn("close remote failed", "error", err)
	}
}

// openRemote builds the adapters selected by the config.
func openRemote(ctx context.Context, cfg config.Config, logger *slog.Logger) (*remotes, error) {
	if !cfg.RemoteEnabled() {
		return &remotes{}, nil
	}

	switch cfg.Remote.Driver {
	case config.RemoteREST:
		client, err := rest.NewClient(cfg.Remote.URL, rest.WithPollInterval(cfg.Remote.PollInterval))
		if err != nil {
			return nil, fmt.Errorf("init rest client: %w", err)
		}
		return &remotes{items: client, content: rest.ContentDocument{Client: client}}, nil

	case config.RemoteFirestore:
		client, err := fsdoc.Open(ctx, fsdoc.Config{
			ProjectID:       cfg.Remote.ProjectID,
			CredentialsFile: cfg.Remote.CredentialsFile,
			ItemsCollection: cfg.Remote.ItemsCollection,
			ContentDocument: cfg.Remote.ContentDocument,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &remotes{items: client.Items(), content: client.Content(), closer: client.Close}, nil

	default:
		return nil, fmt.Errorf("unknown remote driver %q", cfg.Remote.Driver)
	}
}
