package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/storefront/internal/shop"
)

// Orders returns the order history, most recent first.
func (s *Store) Orders() []shop.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders)
}

// PlaceOrder turns the cart into a Pending order and empties the cart in one
// step. An empty cart returns ErrEmptyCart and changes nothing.
func (s *Store) PlaceOrder(customer shop.Customer) (shop.Order, error) {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return shop.Order{}, ErrEmptyCart
	}
	now := s.now()
	order := shop.Order{
		ID:       newOrderID(now.UnixMilli()),
		Customer: customer,
		Items:    shop.CloneLines(s.cart),
		Total:    shop.CartTotal(s.cart),
		Date:     now.UTC().Round(0),
		Status:   shop.StatusPending,
	}
	s.orders = append([]shop.Order{order}, s.orders...)
	s.cart = nil
	s.persistOrdersLocked()
	s.persistCartLocked()
	s.mu.Unlock()

	s.logger.Info("order placed", "order", order.ID, "lines", len(order.Items), "total", order.Total)
	s.notify()
	return order.Clone(), nil
}

// UpdateOrderStatus changes only the status of an order. Any status may
// follow any other.
func (s *Store) UpdateOrderStatus(orderID string, status shop.Status) error {
	if err := s.requireOwner(); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	found := false
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			found = true
			break
		}
	}
	if found {
		s.persistOrdersLocked()
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	s.notify()
	return nil
}

// newOrderID is time-based with a random suffix.
func newOrderID(unixMilli int64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("order_%d_%s", unixMilli, suffix)
}
