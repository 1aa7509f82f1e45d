package postal

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Tier is one source in the resolution cascade. Implementations report
// "not found" by returning false; they never abort the cascade.
type Tier interface {
	// Name identifies the tier in logs and metrics.
	Name() string

	// TryResolve attempts to resolve the postal code for the given
	// country. A false return means the next tier is consulted.
	TryResolve(ctx context.Context, country CountryGuess, postalCode string) (Address, bool)
}

// TierObserver is notified which tier satisfied each resolution.
// Optional; used to feed metrics without coupling this package to a
// metrics registry.
type TierObserver func(tier string)

// Resolver resolves (postal code, optional country hint) pairs into
// structured addresses. The cascade is an ordered tier list: first
// success wins, every non-cache result is written back to the cache,
// and the final generic tier guarantees termination.
type Resolver struct {
	detector *Detector
	cache    *addressCache
	tiers    []Tier
	logger   *otelzap.Logger
	observe  TierObserver
}

// NewResolver builds a resolver over the given tier cascade. Callers
// construct one instance at startup and share it; the cache inside is
// safe for concurrent use.
func NewResolver(detector *Detector, tiers []Tier, logger *otelzap.Logger, observe TierObserver) *Resolver {
	return &Resolver{
		detector: detector,
		cache:    newAddressCache(),
		tiers:    tiers,
		logger:   logger,
		observe:  observe,
	}
}

// Resolve maps a postal code to an address. The country hint, when
// present, bypasses shape detection. Resolve only fails if every tier
// including the generic fallback declines, which indicates a broken
// cascade rather than bad input.
func (r *Resolver) Resolve(ctx context.Context, postalCode string, countryHint *string) (Address, error) {
	var country CountryGuess
	if countryHint != nil && *countryHint != "" {
		country = GuessFor(*countryHint)
	} else {
		country = r.detector.Detect(postalCode)
	}

	normalized := NormalizeCode(postalCode)

	if addr, ok := r.cache.Get(country.Code, normalized); ok {
		r.observed("cache")
		return addr, nil
	}

	for _, tier := range r.tiers {
		addr, ok := tier.TryResolve(ctx, country, normalized)
		if !ok {
			continue
		}
		r.cache.Put(addr)
		r.observed(tier.Name())
		r.logger.Info("postal code resolved",
			zap.String("tier", tier.Name()),
			zap.String("country", country.Code),
			zap.String("postal_code", normalized),
			zap.Bool("generic", addr.IsGeneric),
		)
		return addr, nil
	}

	return Address{}, fmt.Errorf("postal cascade exhausted for %s/%s", country.Code, normalized)
}

// Flush drops every cached address. Operational escape hatch; there is
// no TTL-based invalidation.
func (r *Resolver) Flush() {
	r.cache.Flush()
}

// CacheSize reports the number of cached addresses.
func (r *Resolver) CacheSize() int {
	return r.cache.Len()
}

func (r *Resolver) observed(tier string) {
	if r.observe != nil {
		r.observe(tier)
	}
}
