package state

import (
	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/shop"
)

// loadLocked replaces the defaults with whatever the local store holds.
// Callers hold s.mu.
func (s *Store) loadLocked() {
	var catalog []shop.Item
	if s.local.Get(localstore.KeyCatalog, &catalog) {
		s.catalog = sanitizeItems(catalog)
		sortByTitle(s.catalog)
	}

	var collections []shop.Collection
	if s.local.Get(localstore.KeyCollections, &collections) {
		for i := range collections {
			collections[i] = normalizeCollection(collections[i])
		}
		s.collections = collections
	}

	var cart []shop.CartLine
	if s.local.Get(localstore.KeyCart, &cart) {
		s.cart = normalizeCart(cart)
	}

	var orders []shop.Order
	if s.local.Get(localstore.KeyOrders, &orders) {
		s.orders = orders
		if s.migrateStatusesLocked() {
			s.persistOrdersLocked()
		}
	}

	var page shop.PageContent
	if s.local.Get(localstore.KeyContent, &page) {
		s.page = page
	}

	var owner bool
	if s.local.Get(localstore.KeyOwner, &owner) {
		s.owner = owner
	}
}

// migrateStatusesLocked moves orders with labels outside the closed set to
// Pending and reports whether anything changed.
func (s *Store) migrateStatusesLocked() bool {
	changed := false
	for i := range s.orders {
		if s.orders[i].Status.Valid() {
			continue
		}
		s.logger.Warn("order status migrated",
			"order", s.orders[i].ID,
			"from", string(s.orders[i].Status),
			"to", string(shop.StatusPending))
		s.orders[i].Status = shop.StatusPending
		changed = true
	}
	return changed
}

func sanitizeItems(items []shop.Item) []shop.Item {
	out := make([]shop.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Sanitized())
	}
	return out
}

// normalizeCart drops lines with no quantity and merges duplicate ids.
func normalizeCart(lines []shop.CartLine) []shop.CartLine {
	var out []shop.CartLine
	index := make(map[shop.ID]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		l.Item = l.Item.Sanitized()
		if i, ok := index[l.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

func (s *Store) persistCatalogLocked() {
	s.local.Set(localstore.KeyCatalog, nonNil(s.catalog))
}

func (s *Store) persistCollectionsLocked() {
	s.local.Set(localstore.KeyCollections, nonNil(s.collections))
}

func (s *Store) persistCartLocked() {
	s.local.Set(localstore.KeyCart, nonNil(s.cart))
}

func (s *Store) persistOrdersLocked() {
	s.local.Set(localstore.KeyOrders, nonNil(s.orders))
}

func (s *Store) persistContentLocked() {
	s.local.Set(localstore.KeyContent, s.page)
}

func (s *Store) persistOwnerLocked() {
	s.local.Set(localstore.KeyOwner, s.owner)
}

// nonNil makes empty aggregates encode as [] rather than null.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
