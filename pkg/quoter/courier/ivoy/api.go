// Package ivoy provides integration with the iVoy same-day courier API.
package ivoy

import (
	"context"
	"fmt"
)

// APIClient defines the interface for iVoy API operations.
type APIClient interface {
	// QuoteOrder prices a same-day delivery between two points.
	QuoteOrder(ctx context.Context, req *OrderQuoteRequest) (*OrderQuoteResponse, error)
}

// ============================================================================
// API Request/Response Types
// ============================================================================

// OrderQuoteRequest is the order-quote payload.
// POST /order/quote
type OrderQuoteRequest struct {
	Order OrderInfo `json:"order"`
}

// OrderInfo describes the delivery to be priced.
type OrderInfo struct {
	PackageTypeID int            `json:"idPackageSize"` // 1 small .. 4 extra large
	PaymentMethod int            `json:"idPaymentMethod"`
	Addresses     []OrderAddress `json:"addresses"` // pickup first, dropoff second
}

// OrderAddress is a pickup or dropoff point. iVoy takes free-form
// address strings plus the postal code; coordinates are optional hints.
type OrderAddress struct {
	Address   string  `json:"address"`
	ZipCode   string  `json:"zipCode"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// OrderQuoteResponse is the priced quote. Amounts are MXN cents.
type OrderQuoteResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"message,omitempty"`
	Data struct {
		Order struct {
			TotalCents int `json:"total"`
			EtaMinutes int `json:"etaMinutes"`
			DistanceM  int `json:"distance"`
		} `json:"order"`
	} `json:"data"`
}

// APIError represents an error response from the iVoy API.
type APIError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("ivoy API error %d: %s", e.Code, e.Message)
}
