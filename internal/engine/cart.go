package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/telarmoda/shipping/pkg/parcel"
)

// CartSource provides the physical line items of a cart. The CRUD
// layer owns carts; this engine only consumes their shippable shape.
type CartSource interface {
	Items(ctx context.Context, cartID string) ([]parcel.LineItem, error)
}

// StaticCartSource is an in-memory CartSource for tests and local
// wiring.
type StaticCartSource struct {
	mu    sync.RWMutex
	carts map[string][]parcel.LineItem
}

// NewStaticCartSource creates an empty in-memory cart source.
func NewStaticCartSource() *StaticCartSource {
	return &StaticCartSource{carts: make(map[string][]parcel.LineItem)}
}

// Set stores the line items of a cart.
func (s *StaticCartSource) Set(cartID string, items []parcel.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = items
}

// Items returns the line items of a cart.
func (s *StaticCartSource) Items(_ context.Context, cartID string) ([]parcel.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart not found: %s", cartID)
	}
	return items, nil
}
