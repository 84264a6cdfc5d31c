package shop

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the order status drawn from a closed set shared by the admin
// views and storage.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

var statusOrder = []Status{StatusPending, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled}

// labels written by earlier storefront variants
var statusAliases = map[string]Status{
	"pending":          StatusPending,
	"preparing":        StatusPreparing,
	"processing":       StatusPreparing,
	"baking":           StatusPreparing,
	"shipped":          StatusShipped,
	"out for delivery": StatusShipped,
	"out_for_delivery": StatusShipped,
	"delivered":        StatusDelivered,
	"completed":        StatusDelivered,
	"cancelled":        StatusCancelled,
	"canceled":         StatusCancelled,
}

// Statuses returns the closed status set in workflow order.
func Statuses() []Status {
	return append([]Status(nil), statusOrder...)
}

// Valid reports whether s belongs to the closed set.
func (s Status) Valid() bool {
	for _, candidate := range statusOrder {
		if s == candidate {
			return true
		}
	}
	return false
}

// Next returns the following status in workflow order, wrapping around.
func (s Status) Next() Status {
	for i, candidate := range statusOrder {
		if s == candidate {
			return statusOrder[(i+1)%len(statusOrder)]
		}
	}
	return StatusPending
}

// ParseStatus maps a stored label onto the closed set.
func ParseStatus(label string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if s, ok := statusAliases[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown order status %q", label)
}

// UnmarshalJSON maps legacy labels onto the closed set. Unknown labels are
// kept verbatim so the loader can report them before migrating.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		*s = Status(strings.TrimSpace(raw))
		return nil
	}
	*s = parsed
	return nil
}
