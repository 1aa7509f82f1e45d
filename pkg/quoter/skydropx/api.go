// Package skydropx provides integration with the Skydropx national
// rate-quoting API, including its OAuth2 client-credentials flow.
package skydropx

import (
	"context"
	"fmt"
)

// APIClient defines the interface for Skydropx API operations. The
// abstraction allows mock implementations during testing and the real
// HTTP implementation in production.
type APIClient interface {
	// Authenticate performs the client-credentials token exchange.
	Authenticate(ctx context.Context, req *TokenRequest) (*TokenResponse, error)

	// CreateQuotation submits a quotation request under the given
	// bearer token and returns the per-carrier rate list.
	CreateQuotation(ctx context.Context, token string, req *QuotationRequest) (*QuotationResponse, error)
}

// ============================================================================
// API Request/Response Types
// ============================================================================

// TokenRequest is the OAuth2 client-credentials exchange.
// POST /oauth/token (form-encoded)
type TokenRequest struct {
	ClientID     string
	ClientSecret string
	Scope        string
}

// TokenResponse is the token endpoint's answer.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// QuotationRequest wraps the quotation payload.
// POST /quotations
type QuotationRequest struct {
	Quotation Quotation `json:"quotation"`
}

// Quotation describes one shipment to be rated.
type Quotation struct {
	OrderID      string            `json:"order_id"`
	AddressFrom  QuotationAddress  `json:"address_from"`
	AddressTo    QuotationAddress  `json:"address_to"`
	Parcels      []QuotationParcel `json:"parcels"`
	ShipmentType string            `json:"shipment_type"` // "national" | "international"
	QuoteType    string            `json:"quote_type"`    // "carrier"
}

// QuotationAddress is an origin or destination.
type QuotationAddress struct {
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
	AreaLevel1  string `json:"area_level1"` // state / region
	AreaLevel2  string `json:"area_level2"` // municipality / city
	AreaLevel3  string `json:"area_level3"` // settlement / district
}

// QuotationParcel is one physical parcel with its customs lines.
type QuotationParcel struct {
	Length        int                `json:"length"` // whole cm
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Weight        float64            `json:"weight"` // kg
	DeclaredValue float64            `json:"declared_value"`
	Products      []QuotationProduct `json:"products"`
}

// QuotationProduct is a per-line-item customs declaration, required for
// international quoting.
type QuotationProduct struct {
	HSCode        string  `json:"hs_code"`
	DescriptionEn string  `json:"description_en"`
	CountryCode   string  `json:"country_code"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

// QuotationResponse carries the flat rate list. Each candidate
// carrier/service pair is tagged success true/false individually; the
// call as a whole succeeds even when every row failed.
type QuotationResponse struct {
	ID    string          `json:"id"`
	Rates []QuotationRate `json:"rates"`
}

// QuotationRate is one carrier/service candidate.
type QuotationRate struct {
	Success             bool     `json:"success"`
	ProviderDisplayName string   `json:"provider_display_name"`
	ProviderServiceName string   `json:"provider_service_name"`
	Total               float64  `json:"total"`
	CurrencyCode        string   `json:"currency_code"`
	Days                int      `json:"days"`
	ErrorMessages       []string `json:"error_messages,omitempty"`
}

// APIError represents an error response from the Skydropx API.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("skydropx API error %s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether the error is an HTTP 401, which
// triggers the single forced token refresh.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}
