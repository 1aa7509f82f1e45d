// Package courier provides an abstraction layer for same-metro local
// courier providers and a registry that queries them in parallel.
package courier

import (
	"context"

	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
)

// Courier defines the interface that all local same-day providers must
// implement.
type Courier interface {
	// Name returns the provider identifier (e.g. "ivoy", "minutos99").
	Name() string

	// MaxRadiusKm is the provider's maximum service radius. The
	// orchestrator checks it before dispatching; zero means no limit.
	MaxRadiusKm() float64

	// Quote returns same-day delivery quotes for a parcel between two
	// resolved addresses inside one metro zone.
	Quote(ctx context.Context, origin, destination postal.Address, p parcel.Descriptor) ([]quoter.Quote, error)
}
