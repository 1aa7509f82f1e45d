package courier

import (
	"context"
	"fmt"
	"sync"

	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"golang.org/x/sync/errgroup"
)

// Registry manages the configured local courier providers. Providers
// missing their credentials are simply never registered, so an empty
// registry is a normal state.
type Registry struct {
	couriers map[string]Courier
	mu       sync.RWMutex
}

// NewRegistry creates a new courier registry.
func NewRegistry() *Registry {
	return &Registry{
		couriers: make(map[string]Courier),
	}
}

// Register adds a courier to the registry.
func (r *Registry) Register(c Courier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.couriers[c.Name()] = c
}

// Get returns a courier by name.
func (r *Registry) Get(name string) (Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.couriers[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("courier not registered: %s", name)
}

// All returns all registered couriers.
func (r *Registry) All() []Courier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Courier, 0, len(r.couriers))
	for _, c := range r.couriers {
		result = append(result, c)
	}
	return result
}

// Names returns the names of all registered couriers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.couriers))
	for name := range r.couriers {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered couriers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.couriers)
}

// QuoteAll queries every registered courier in parallel and merges
// their quotes. Best-effort: a provider outage yields zero quotes from
// that provider, never a hard error; individual failures are returned
// for diagnostics only.
func (r *Registry) QuoteAll(ctx context.Context, origin, destination postal.Address, p parcel.Descriptor) ([]quoter.Quote, []error) {
	couriers := r.All()
	if len(couriers) == 0 {
		return nil, nil
	}

	quotes := make([]quoter.Quote, 0, len(couriers))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, c := range couriers {
		c := c
		// The orchestrator has already bounded the pair to one metro
		// zone; the provider's own service radius still applies.
		if dist, ok := postal.DistanceKm(origin, destination); ok && c.MaxRadiusKm() > 0 && dist > c.MaxRadiusKm() {
			continue
		}
		g.Go(func() error {
			result, err := c.Quote(ctx, origin, destination, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
				return nil // one provider's failure must not cancel the others
			}
			quotes = append(quotes, result...)
			return nil
		})
	}

	g.Wait()
	return quotes, errs
}
