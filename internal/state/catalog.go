package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/storefront/internal/shop"
)

// localIDPrefix marks items that never reached the remote store.
const localIDPrefix = "local_"

// Catalog returns the current items ordered by title.
func (s *Store) Catalog() []shop.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shop.CloneItems(s.catalog)
}

// Item looks up a catalog item by id.
func (s *Store) Item(id shop.ID) (shop.Item, bool) {
	id = shop.NormalizeID(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.catalog {
		if it.ID == id {
			return it, true
		}
	}
	return shop.Item{}, false
}

// AddItem creates an item. The id comes from the remote store; when the
// remote is missing or the create fails the item gets a local id and the
// failure is only logged.
func (s *Store) AddItem(ctx context.Context, in shop.ItemInput) (shop.Item, error) {
	if err := s.requireOwner(); err != nil {
		return shop.Item{}, err
	}

	var id shop.ID
	if s.items != nil {
		created, err := s.items.Create(ctx, in)
		if err != nil {
			s.remoteFailed("create item", err)
		} else {
			id = shop.NormalizeID(created)
		}
	}
	if id == "" {
		id = newLocalID()
	}
	item := in.WithID(id)

	s.mu.Lock()
	s.catalog = append(s.catalog, item)
	sortByTitle(s.catalog)
	s.persistCatalogLocked()
	s.mu.Unlock()
	s.notify()
	return item, nil
}

// UpdateItem replaces the item with the same id, then writes it remotely.
// A failed remote write keeps the local change. An unknown id returns
// ErrItemNotFound and touches nothing.
func (s *Store) UpdateItem(ctx context.Context, item shop.Item) error {
	if err := s.requireOwner(); err != nil {
		return err
	}
	item = item.Sanitized()

	s.mu.Lock()
	replaced := false
	for i := range s.catalog {
		if s.catalog[i].ID == item.ID {
			s.catalog[i] = item
			replaced = true
		}
	}
	if !replaced {
		s.mu.Unlock()
		return fmt.Errorf("update item %s: %w", item.ID, ErrItemNotFound)
	}
	sortByTitle(s.catalog)
	s.persistCatalogLocked()
	s.mu.Unlock()
	s.notify()

	if s.items != nil && !IsLocalID(item.ID) {
		if err := s.items.Update(ctx, item); err != nil {
			s.remoteFailed("update item "+string(item.ID), err)
		}
	}
	return nil
}

// DeleteItem removes the item, then deletes it remotely. A failed remote
// delete keeps the local removal.
func (s *Store) DeleteItem(ctx context.Context, id shop.ID) error {
	if err := s.requireOwner(); err != nil {
		return err
	}
	id = shop.NormalizeID(id)

	s.mu.Lock()
	kept := s.catalog[:0:0]
	for _, it := range s.catalog {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.catalog = kept
	s.persistCatalogLocked()
	s.mu.Unlock()
	s.notify()

	if s.items != nil && !IsLocalID(id) {
		if err := s.items.Delete(ctx, id); err != nil {
			s.remoteFailed("delete item "+string(id), err)
		}
	}
	return nil
}

// IsLocalID reports whether id was issued locally rather than by the remote.
func IsLocalID(id shop.ID) bool {
	return strings.HasPrefix(string(id), localIDPrefix)
}

func newLocalID() shop.ID {
	return shop.ID(localIDPrefix + uuid.NewString())
}

// applyCatalog handles a remote catalog snapshot.
func (s *Store) applyCatalog(items []shop.Item) {
	s.mu.Lock()
	var seed []shop.Item
	switch {
	case len(items) > 0:
		s.catalog = sanitizeItems(items)
		sortByTitle(s.catalog)
		s.seeded = true
	case !s.seeded:
		s.seeded = true
		seed = shop.CloneItems(s.catalog)
	default:
		s.catalog = nil
	}
	s.persistCatalogLocked()
	s.remoteOKLocked()
	ctx := s.runCtx
	s.mu.Unlock()
	s.notify()

	if len(seed) > 0 {
		s.seedRemote(ctx, seed)
	}
}

// seedRemote populates an empty remote collection with the current catalog.
// Items still carrying a local id are created remotely instead, and the new
// id replaces the local one everywhere it is referenced. An item whose
// create fails keeps its local id and is left out of the remote.
func (s *Store) seedRemote(ctx context.Context, items []shop.Item) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.logger.Info("seeding remote catalog", "items", len(items))
	for _, it := range items {
		if IsLocalID(it.ID) {
			s.promoteLocalItem(ctx, it)
			continue
		}
		if err := s.items.Seed(ctx, it); err != nil {
			s.remoteFailed("seed item "+string(it.ID), err)
			return
		}
	}
}

// promoteLocalItem creates a locally issued item remotely and rewrites its id.
func (s *Store) promoteLocalItem(ctx context.Context, it shop.Item) {
	created, err := s.items.Create(ctx, it.Input())
	if err != nil {
		s.remoteFailed("create item "+string(it.ID), err)
		return
	}
	id := shop.NormalizeID(created)
	if id == "" {
		return
	}

	s.mu.Lock()
	s.replaceIDLocked(it.ID, id)
	s.mu.Unlock()
	s.logger.Info("promoted local item", "local_id", it.ID, "id", id)
	s.notify()
}

// replaceIDLocked swaps an item id in the catalog, cart and collections.
// Callers hold s.mu.
func (s *Store) replaceIDLocked(old, id shop.ID) {
	for i := range s.catalog {
		if s.catalog[i].ID == old {
			s.catalog[i].ID = id
		}
	}
	for i := range s.cart {
		if s.cart[i].ID == old {
			s.cart[i].ID = id
		}
	}
	for i := range s.collections {
		c := s.collections[i].Clone()
		for j, member := range c.ItemIDs {
			if member == old {
				c.ItemIDs[j] = id
			}
		}
		s.collections[i] = c
	}
	s.persistCatalogLocked()
	s.persistCartLocked()
	s.persistCollectionsLocked()
}
