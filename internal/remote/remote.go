// Package remote defines the contracts of the remote document store used to
// persist and live-sync the catalog and the page content.
//
// Two adapters implement them: rest (a JSON document service over HTTP,
// subscriptions by polling) and fsdoc (Cloud Firestore, subscriptions by
// snapshot listeners). When neither is configured the state manager runs in
// local-only mode with nil adapters.
//
// All calls may fail. The caller decides the policy: the catalog keeps its
// optimistic change, the content rolls back.
package remote

import (
	"context"
	"errors"

	"github.com/five82/storefront/internal/shop"
)

// ErrNotFound reports a missing document.
var ErrNotFound = errors.New("document not found")

// Unsubscribe stops a subscription. It is safe to call more than once.
type Unsubscribe func()

// Items is the remote catalog collection.
type Items interface {
	// FetchAll returns every item ordered by title.
	FetchAll(ctx context.Context) ([]shop.Item, error)
	// Subscribe delivers ordered snapshots until ctx ends or the returned
	// func is called. Callbacks run on an adapter goroutine.
	Subscribe(ctx context.Context, onSnapshot func([]shop.Item), onError func(error)) Unsubscribe
	// Create stores a new item and returns the id the store assigned.
	Create(ctx context.Context, in shop.ItemInput) (shop.ID, error)
	Update(ctx context.Context, item shop.Item) error
	Delete(ctx context.Context, id shop.ID) error
	// Seed writes item under its existing id; used for first-run population.
	Seed(ctx context.Context, item shop.Item) error
}

// Content is the remote page content document.
type Content interface {
	// Fetch returns the stored content, or ErrNotFound if none exists yet.
	Fetch(ctx context.Context) (shop.PageContent, error)
	Subscribe(ctx context.Context, onValue func(shop.PageContent), onError func(error)) Unsubscribe
	Save(ctx context.Context, content shop.PageContent) error
}
