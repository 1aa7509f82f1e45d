// Package engine hosts the hybrid quote orchestrator: destination
// resolution, parcel aggregation, local-dispatch eligibility, and the
// parallel fan-out over rate providers.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/telarmoda/shipping/internal/telemetry"
	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/telarmoda/shipping/pkg/quoter/courier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NationalQuoter is the national/international rate provider interface.
type NationalQuoter interface {
	Name() string
	Quote(ctx context.Context, req *quoter.Request) ([]quoter.Quote, error)
}

// Config holds the orchestrator's fixed inputs.
type Config struct {
	Origin                postal.Address
	Zones                 MetroZones
	PostalTimeout         time.Duration
	NationalTimeout       time.Duration
	LocalTimeout          time.Duration
	FastDeliveryThreshold time.Duration
}

// Engine is the single entry point of the quoting subsystem. It is the
// only place concurrency is introduced: a fan-out over independent
// provider calls, each bounded by its own timeout so a slow provider
// degrades the result instead of stalling it.
type Engine struct {
	cfg      Config
	resolver *postal.Resolver
	national NationalQuoter
	local    *courier.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// New creates the orchestrator. All collaborators are injected;
// construct one instance at startup and share it.
func New(cfg Config, resolver *postal.Resolver, national NationalQuoter, local *courier.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Engine {
	if cfg.PostalTimeout == 0 {
		cfg.PostalTimeout = 10 * time.Second
	}
	if cfg.NationalTimeout == 0 {
		cfg.NationalTimeout = 30 * time.Second
	}
	if cfg.LocalTimeout == 0 {
		cfg.LocalTimeout = 10 * time.Second
	}
	if cfg.FastDeliveryThreshold == 0 {
		cfg.FastDeliveryThreshold = 3 * time.Hour
	}
	return &Engine{
		cfg:      cfg,
		resolver: resolver,
		national: national,
		local:    local,
		logger:   logger,
		metrics:  metrics,
	}
}

// Quote resolves the destination, aggregates the cart into one parcel,
// and fans out to the eligible providers. It returns a hard error only
// for invalid input, missing configuration, or failed carrier
// authentication; everything else degrades into a best-effort Result.
func (e *Engine) Quote(ctx context.Context, items []parcel.LineItem, destinationPostalCode string, countryHint *string) (quoter.Result, error) {
	if len(items) == 0 {
		return quoter.Result{}, fmt.Errorf("%w: empty cart", quoter.ErrInvalidInput)
	}
	if strings.TrimSpace(destinationPostalCode) == "" {
		return quoter.Result{}, fmt.Errorf("%w: missing destination postal code", quoter.ErrInvalidInput)
	}

	resolveCtx, cancel := context.WithTimeout(ctx, e.cfg.PostalTimeout)
	destination, err := e.resolver.Resolve(resolveCtx, destinationPostalCode, countryHint)
	cancel()
	if err != nil {
		// Only a broken cascade reaches here; unresolvable codes come
		// back as a generic address instead.
		return quoter.Result{}, fmt.Errorf("resolving destination: %w", err)
	}

	descriptor := parcel.Aggregate(items)
	req := &quoter.Request{
		Origin:      e.cfg.Origin,
		Destination: destination,
		Parcel:      descriptor,
		Items:       items,
	}

	zone, localEligible := e.localEligibility(destination, countryHint)

	quotes, err := e.fanOut(ctx, req, zone, localEligible)
	if err != nil {
		return quoter.Result{Success: false, ResolvedAddress: destination, Error: err.Error()}, err
	}

	quoter.SortByPrice(quotes)
	result := quoter.Result{
		Success:         true,
		Quotes:          quotes,
		Recommendation:  e.recommend(quotes),
		ResolvedAddress: destination,
	}
	if len(quotes) == 0 {
		result.Error = quoter.ErrNoQuotes.Error()
	}
	return result, nil
}

// localEligibility decides whether same-metro courier dispatch applies:
// destination resolved to the origin country, both postal prefixes in
// one configured metro zone, and no hint forcing another country.
func (e *Engine) localEligibility(destination postal.Address, countryHint *string) (string, bool) {
	origin := e.cfg.Origin
	if destination.CountryCode != origin.CountryCode {
		return "", false
	}
	if countryHint != nil && !strings.EqualFold(*countryHint, origin.CountryCode) {
		return "", false
	}
	return e.cfg.Zones.SameZone(origin.PostalCode, destination.PostalCode)
}

// fanOut launches the national quote always and the local courier fan
// in parallel when eligible, each under its own deadline. A provider
// failure or timeout yields zero quotes from that source; only fatal
// classes abort the request.
func (e *Engine) fanOut(ctx context.Context, req *quoter.Request, zone string, localEligible bool) ([]quoter.Quote, error) {
	var (
		mu       sync.Mutex
		quotes   []quoter.Quote
		fatalErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(gctx, e.cfg.NationalTimeout)
		defer cancel()

		national, err := e.national.Quote(callCtx, req)
		elapsed := time.Since(start).Seconds()

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			e.metrics.RecordQuote("national", "error", elapsed)
			if quoter.IsFatal(err) {
				fatalErr = err
				return err // cancels the group; the request is over
			}
			e.metrics.RecordProviderError(e.national.Name(), "quote_failed")
			e.logger.Warn("national quoting degraded", zap.Error(err))
			return nil
		}
		e.metrics.RecordQuote("national", "ok", elapsed)
		quotes = append(quotes, national...)
		return nil
	})

	if localEligible {
		g.Go(func() error {
			start := time.Now()
			callCtx, cancel := context.WithTimeout(gctx, e.cfg.LocalTimeout)
			defer cancel()

			local, errs := e.local.QuoteAll(callCtx, req.Origin, req.Destination, req.Parcel)
			elapsed := time.Since(start).Seconds()

			mu.Lock()
			defer mu.Unlock()
			for _, err := range errs {
				e.metrics.RecordProviderError("local", "quote_failed")
				e.logger.Warn("local courier degraded", zap.Error(err))
			}
			status := "ok"
			if len(local) == 0 {
				status = "empty"
			}
			e.metrics.RecordQuote("local", status, elapsed)
			for i := range local {
				local[i].Zone = zone
			}
			quotes = append(quotes, local...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fatalErr
	}
	return quotes, nil
}

// recommend prefers the cheapest local quote under the fast-delivery
// threshold; otherwise the globally cheapest quote. Quotes must already
// be sorted ascending by price.
func (e *Engine) recommend(quotes []quoter.Quote) *quoter.Quote {
	threshold := int(e.cfg.FastDeliveryThreshold.Minutes())
	for i := range quotes {
		q := quotes[i]
		if q.Type == quoter.TypeLocal && q.EstimatedMinutes > 0 && q.EstimatedMinutes < threshold {
			return &quotes[i]
		}
	}
	if len(quotes) > 0 {
		return &quotes[0]
	}
	return nil
}
