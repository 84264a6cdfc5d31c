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

var _ remote.Items = (*Items)(nil)

// Items is the catalog collection.
type Items struct {
	client *Client
	coll   *firestore.CollectionRef
}

func (a *Items) ordered() firestore.Query {
	return a.coll.OrderBy("title", firestore.Asc)
}

// FetchAll returns every item ordered by title.
func (a *Items) FetchAll(ctx context.Context) ([]shop.Item, error) {
	docs, err := a.ordered().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	return itemsFromDocs(docs), nil
}

// Subscribe attaches a snapshot listener to the ordered collection.
func (a *Items) Subscribe(ctx context.Context, onSnapshot func([]shop.Item), onError func(error)) remote.Unsubscribe {
	ctx, cancel := context.WithCancel(ctx)
	it := a.ordered().Snapshots(ctx)
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
				a.client.logger.Warn("items listener failed", "collection", a.client.items, "error", err)
				if onError != nil {
					onError(fmt.Errorf("listen items: %w", err))
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				if onError != nil {
					onError(fmt.Errorf("read items snapshot: %w", err))
				}
				continue
			}
			onSnapshot(itemsFromDocs(docs))
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

// Create writes a new document with a generated id.
func (a *Items) Create(ctx context.Context, in shop.ItemInput) (shop.ID, error) {
	ref := a.coll.NewDoc()
	item := in.WithID(shop.ID(ref.ID))
	data := itemData(item)
	data["createdAt"] = firestore.ServerTimestamp
	data["updatedAt"] = firestore.ServerTimestamp
	if _, err := ref.Set(ctx, data); err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}
	return item.ID, nil
}

// Update modifies an existing document. A missing document is an error.
func (a *Items) Update(ctx context.Context, item shop.Item) error {
	item = item.Sanitized()
	updates := make([]firestore.Update, 0, 10)
	for field, value := range itemData(item) {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	_, err := a.coll.Doc(string(item.ID)).Update(ctx, updates)
	return wrapNotFound(fmt.Sprintf("update item %s", item.ID), err)
}

// Delete removes a document.
func (a *Items) Delete(ctx context.Context, id shop.ID) error {
	id = shop.NormalizeID(id)
	if _, err := a.coll.Doc(string(id)).Delete(ctx); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// Seed writes item under its own id.
func (a *Items) Seed(ctx context.Context, item shop.Item) error {
	item = item.Sanitized()
	data := itemData(item)
	data["createdAt"] = firestore.ServerTimestamp
	data["updatedAt"] = firestore.ServerTimestamp
	if _, err := a.coll.Doc(string(item.ID)).Set(ctx, data); err != nil {
		return fmt.Errorf("seed item %s: %w", item.ID, err)
	}
	return nil
}

func itemsFromDocs(docs []*firestore.DocumentSnapshot) []shop.Item {
	items := make([]shop.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, itemFromData(doc.Ref.ID, doc.Data()))
	}
	return items
}
