package fsdoc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

var _ remote.Content = (*Content)(nil)

// Content is the singleton page content document.
type Content struct {
	client *Client
	ref    *firestore.DocumentRef
}

// Fetch reads the document, returning remote.ErrNotFound if it does not exist.
func (a *Content) Fetch(ctx context.Context) (shop.PageContent, error) {
	snap, err := a.ref.Get(ctx)
	if err != nil {
		return shop.PageContent{}, wrapNotFound("fetch content", err)
	}
	if !snap.Exists() {
		return shop.PageContent{}, fmt.Errorf("fetch content: %w", remote.ErrNotFound)
	}
	return contentFromData(snap.Data()), nil
}

// Subscribe listens to the document. Snapshots of a missing document are skipped.
func (a *Content) Subscribe(ctx context.Context, onValue func(shop.PageContent), onError func(error)) remote.Unsubscribe {
	ctx, cancel := context.WithCancel(ctx)
	it := a.ref.Snapshots(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			snap, err := it.Next()
			if err != nil {
				if errors.Is(err, iterator.Done) || stopped(ctx, err) {
					return
				}
				a.client.logger.Warn("content listener failed", "document", a.client.content, "error", err)
				if onError != nil {
					onError(fmt.Errorf("listen content: %w", err))
				}
				return
			}
			if !snap.Exists() {
				continue
			}
			onValue(contentFromData(snap.Data()))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			it.Stop()
			wg.Wait()
		})
	}
}

// Save merges content into the document and stamps updatedAt.
func (a *Content) Save(ctx context.Context, content shop.PageContent) error {
	data := contentData(content)
	data["updatedAt"] = firestore.ServerTimestamp
	if _, err := a.ref.Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("save content: %w", err)
	}
	return nil
}
