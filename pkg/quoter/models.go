// Package quoter defines the normalized quote model shared by every
// rate provider, local or national, plus the error taxonomy of the
// quoting engine.
package quoter

import (
	"sort"

	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
)

// QuoteType distinguishes same-metro courier dispatch from national or
// international carrier quoting.
type QuoteType string

const (
	TypeLocal    QuoteType = "local"
	TypeNational QuoteType = "national"
)

// Quote is the normalized result of any provider.
type Quote struct {
	Provider string    `json:"provider"`
	Service  string    `json:"service"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	// EstimatedDays is set for national quotes, EstimatedMinutes for
	// local same-day quotes; the unused one is zero.
	EstimatedDays    int       `json:"estimated_days,omitempty"`
	EstimatedMinutes int       `json:"estimated_minutes,omitempty"`
	Zone             string    `json:"zone,omitempty"`
	Type             QuoteType `json:"type"`
	// Raw retains the original provider payload for audit and
	// debugging. Never used for business logic.
	Raw any `json:"-"`
}

// Request is the ephemeral input of a single quoting call. Built fresh
// per request, never persisted or reused.
type Request struct {
	Origin      postal.Address
	Destination postal.Address
	Parcel      parcel.Descriptor
	Items       []parcel.LineItem
}

// Result is the structured answer returned to the API layer. Zero
// quotes is a valid outcome, not an error.
type Result struct {
	Success         bool           `json:"success"`
	Quotes          []Quote        `json:"quotes"`
	Recommendation  *Quote         `json:"recommendation,omitempty"`
	ResolvedAddress postal.Address `json:"resolved_address"`
	Error           string         `json:"error,omitempty"`
}

// SortByPrice orders quotes ascending by price, in place.
func SortByPrice(quotes []Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Price < quotes[j].Price
	})
}
