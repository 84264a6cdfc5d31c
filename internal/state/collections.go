package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/storefront/internal/shop"
)

// Collections returns the owner's curated groupings.
func (s *Store) Collections() []shop.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCollections(s.collections)
}

// AddCollection creates a collection with a time-based id.
func (s *Store) AddCollection(name string, ids []shop.ID) (shop.Collection, error) {
	if err := s.requireOwner(); err != nil {
		return shop.Collection{}, err
	}

	s.mu.Lock()
	next := s.now().UnixMilli()
	for s.hasCollectionLocked(shop.ID(strconv.FormatInt(next, 10))) {
		next++
	}
	c := normalizeCollection(shop.Collection{
		ID:      shop.ID(strconv.FormatInt(next, 10)),
		Name:    name,
		ItemIDs: ids,
	})
	s.collections = append(s.collections, c)
	s.persistCollectionsLocked()
	s.mu.Unlock()
	s.notify()
	return c.Clone(), nil
}

// UpdateCollection replaces the collection with the same id.
func (s *Store) UpdateCollection(c shop.Collection) error {
	if err := s.requireOwner(); err != nil {
		return err
	}
	c = normalizeCollection(c)

	s.mu.Lock()
	found := false
	for i := range s.collections {
		if s.collections[i].ID == c.ID {
			s.collections[i] = c
			found = true
			break
		}
	}
	if found {
		s.persistCollectionsLocked()
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, c.ID)
	}
	s.notify()
	return nil
}

// DeleteCollection removes a collection.
func (s *Store) DeleteCollection(id shop.ID) error {
	if err := s.requireOwner(); err != nil {
		return err
	}
	id = shop.NormalizeID(id)

	s.mu.Lock()
	kept := s.collections[:0:0]
	for _, c := range s.collections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	found := len(kept) != len(s.collections)
	if found {
		s.collections = kept
		s.persistCollectionsLocked()
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, id)
	}
	s.notify()
	return nil
}

// ResolveCollection returns the catalog items c references, in c's order.
// Ids with no matching item are skipped.
func (s *Store) ResolveCollection(c shop.Collection) []shop.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[shop.ID]shop.Item, len(s.catalog))
	for _, it := range s.catalog {
		byID[it.ID] = it
	}
	var out []shop.Item
	for _, id := range c.ItemIDs {
		if it, ok := byID[shop.NormalizeID(id)]; ok {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) hasCollectionLocked(id shop.ID) bool {
	for _, c := range s.collections {
		if c.ID == id {
			return true
		}
	}
	return false
}

// normalizeCollection trims the name and reduces member ids to a
// de-duplicated list of normalized ids.
func normalizeCollection(c shop.Collection) shop.Collection {
	c.ID = shop.NormalizeID(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	ids := make([]shop.ID, 0, len(c.ItemIDs))
	seen := make(map[shop.ID]bool, len(c.ItemIDs))
	for _, id := range c.ItemIDs {
		id = shop.NormalizeID(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	c.ItemIDs = ids
	return c
}
