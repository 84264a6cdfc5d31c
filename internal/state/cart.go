package state

import "github.com/five82/storefront/internal/shop"

// Cart returns the current lines.
func (s *Store) Cart() []shop.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shop.CloneLines(s.cart)
}

// AddToCart adds qty of item, merging with an existing line for the same id.
// The line keeps the price it was first added with. A qty below 1 counts as 1.
func (s *Store) AddToCart(item shop.Item, qty int) {
	if qty < 1 {
		qty = 1
	}
	item = item.Sanitized()

	s.mu.Lock()
	merged := false
	for i := range s.cart {
		if s.cart[i].ID == item.ID {
			s.cart[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, shop.CartLine{Item: item, Quantity: qty})
	}
	s.persistCartLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateQuantity sets a line's quantity. A qty below 1 removes the line.
func (s *Store) UpdateQuantity(id shop.ID, qty int) {
	if qty < 1 {
		s.RemoveFromCart(id)
		return
	}
	id = shop.NormalizeID(id)

	s.mu.Lock()
	changed := false
	for i := range s.cart {
		if s.cart[i].ID == id && s.cart[i].Quantity != qty {
			s.cart[i].Quantity = qty
			changed = true
		}
	}
	if changed {
		s.persistCartLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// RemoveFromCart deletes the line for id if present.
func (s *Store) RemoveFromCart(id shop.ID) {
	id = shop.NormalizeID(id)

	s.mu.Lock()
	kept := s.cart[:0:0]
	for _, l := range s.cart {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	changed := len(kept) != len(s.cart)
	if changed {
		s.cart = kept
		s.persistCartLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.persistCartLocked()
	s.mu.Unlock()
	s.notify()
}

// CartCount sums the line quantities.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shop.CartCount(s.cart)
}

// CartTotal sums price times quantity using each line's stored price.
func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shop.CartTotal(s.cart)
}
