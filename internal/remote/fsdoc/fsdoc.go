// Package fsdoc implements the remote contracts on Cloud Firestore.
//
// The catalog lives in one collection (default "books") ordered by title and
// the page content in a single document (default "pageContent/home").
// Subscriptions use Firestore snapshot listeners, so callbacks run on a
// listener goroutine owned by this package.
package fsdoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/five82/storefront/internal/remote"
)

const (
	DefaultItemsCollection = "books"
	DefaultContentDocument = "pageContent/home"
)

// Config selects the Firebase project and document locations.
type Config struct {
	ProjectID       string
	CredentialsFile string
	ItemsCollection string
	ContentDocument string
}

// Client owns the Firestore connection shared by the Items and Content adapters.
type Client struct {
	fs      *firestore.Client
	items   string
	content string
	logger  *slog.Logger
}

// Open connects to Firestore through a Firebase app.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, errors.New("firestore project id is empty")
	}
	var opts []option.ClientOption
	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore: %w", err)
	}
	return newClient(fs, cfg, logger), nil
}

func newClient(fs *firestore.Client, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	items := strings.TrimSpace(cfg.ItemsCollection)
	if items == "" {
		items = DefaultItemsCollection
	}
	content := strings.Trim(strings.TrimSpace(cfg.ContentDocument), "/")
	if content == "" || strings.Count(content, "/") != 1 {
		content = DefaultContentDocument
	}
	return &Client{fs: fs, items: items, content: content, logger: logger}
}

// Items returns the catalog adapter.
func (c *Client) Items() *Items {
	return &Items{client: c, coll: c.fs.Collection(c.items)}
}

// Content returns the page content adapter.
func (c *Client) Content() *Content {
	return &Content{client: c, ref: c.fs.Doc(c.content)}
}

// Close releases the Firestore connection.
func (c *Client) Close() error {
	if c == nil || c.fs == nil {
		return nil
	}
	if err := c.fs.Close(); err != nil {
		return fmt.Errorf("close firestore: %w", err)
	}
	return nil
}

// wrapNotFound maps the gRPC not-found code onto remote.ErrNotFound.
func wrapNotFound(op string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, remote.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// stopped reports whether a listener error just means the listener ended.
func stopped(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	code := status.Code(err)
	return code == codes.Canceled || code == codes.DeadlineExceeded
}
