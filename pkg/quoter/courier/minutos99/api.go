// Package minutos99 provides integration with the 99minutos same-day
// delivery API.
package minutos99

import (
	"context"
	"fmt"
)

// APIClient defines the interface for 99minutos API operations.
type APIClient interface {
	// QuoteDelivery prices delivery options between two points.
	QuoteDelivery(ctx context.Context, req *DeliveryQuoteRequest) (*DeliveryQuoteResponse, error)
}

// ============================================================================
// API Request/Response Types
// ============================================================================

// DeliveryQuoteRequest is the delivery-quote payload.
// POST /v1/delivery/quote
type DeliveryQuoteRequest struct {
	Pickup   Point   `json:"pickup"`
	Dropoff  Point   `json:"dropoff"`
	Size     string  `json:"size"` // "S", "M", "L", "XL"
	WeightKg float64 `json:"weight_kg"`
}

// Point is a pickup or dropoff location. Coordinates are preferred;
// the postal code plus city is the fallback.
type Point struct {
	ZipCode   string  `json:"zip_code"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"lat,omitempty"`
	Longitude float64 `json:"lng,omitempty"`
}

// DeliveryQuoteResponse lists the priced service levels.
type DeliveryQuoteResponse struct {
	Quotes []ServiceQuote `json:"quotes"`
}

// ServiceQuote is one priced service level.
type ServiceQuote struct {
	Service          string  `json:"service"` // "99minutos", "same_day", "next_day"
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	EstimatedMinutes int     `json:"estimated_time_minutes"`
}

// APIError represents an error response from the 99minutos API.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("99minutos API error %s: %s", e.Code, e.Message)
}
