// Package mock provides a mock courier implementation for testing.
package mock

import (
	"context"
	"time"

	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
)

// Client is a mock courier for testing.
type Client struct {
	name string

	// Price and Minutes shape the default canned quote.
	Price   float64
	Minutes int

	// Err makes every call fail with this error.
	Err error

	// Delay blocks each call until it elapses or the context is done,
	// simulating a slow or hanging provider.
	Delay time.Duration

	// Radius overrides MaxRadiusKm (zero means unlimited).
	Radius float64
}

// New creates a new mock courier.
func New(name string) *Client {
	return &Client{name: name, Price: 80.00, Minutes: 95}
}

// Name returns the courier name.
func (c *Client) Name() string {
	return c.name
}

// MaxRadiusKm returns the configured service radius.
func (c *Client) MaxRadiusKm() float64 {
	return c.Radius
}

// Quote returns a canned same-day quote.
func (c *Client) Quote(ctx context.Context, origin, destination postal.Address, p parcel.Descriptor) ([]quoter.Quote, error) {
	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Delay):
		}
	}
	if c.Err != nil {
		return nil, c.Err
	}

	return []quoter.Quote{
		{
			Provider:         c.name,
			Service:          "same-day",
			Price:            c.Price,
			Currency:         "MXN",
			EstimatedMinutes: c.Minutes,
			Type:             quoter.TypeLocal,
		},
	}, nil
}
