package skydropx

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	// TokenExpiresIn overrides the mock token lifetime (seconds).
	TokenExpiresIn int

	OnAuthenticate    func(ctx context.Context, req *TokenRequest) (*TokenResponse, error)
	OnCreateQuotation func(ctx context.Context, token string, req *QuotationRequest) (*QuotationResponse, error)

	authCalls      atomic.Int64
	quotationCalls atomic.Int64
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// AuthenticateCalls reports how many token exchanges were performed.
func (m *MockAPIClient) AuthenticateCalls() int64 {
	return m.authCalls.Load()
}

// CreateQuotationCalls reports how many quotation calls were performed.
func (m *MockAPIClient) CreateQuotationCalls() int64 {
	return m.quotationCalls.Load()
}

// Authenticate returns a mock bearer token.
func (m *MockAPIClient) Authenticate(ctx context.Context, req *TokenRequest) (*TokenResponse, error) {
	m.authCalls.Add(1)

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_AUTH_ERROR", Message: "Simulated auth error", StatusCode: 401}
	}
	if m.OnAuthenticate != nil {
		return m.OnAuthenticate(ctx, req)
	}

	expiresIn := m.TokenExpiresIn
	if expiresIn == 0 {
		expiresIn = 7200
	}
	return &TokenResponse{
		AccessToken: "mock-token-" + uuid.New().String()[:8],
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// CreateQuotation returns mock carrier rates, including one failed row
// to exercise the success/failure tagging path.
func (m *MockAPIClient) CreateQuotation(ctx context.Context, token string, req *QuotationRequest) (*QuotationResponse, error) {
	m.quotationCalls.Add(1)

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error", StatusCode: 500}
	}
	if m.OnCreateQuotation != nil {
		return m.OnCreateQuotation(ctx, token, req)
	}

	return &QuotationResponse{
		ID: "quot-" + uuid.New().String()[:8],
		Rates: []QuotationRate{
			{
				Success:             true,
				ProviderDisplayName: "Estafeta",
				ProviderServiceName: "Terrestre",
				Total:               145.00,
				CurrencyCode:        "MXN",
				Days:                4,
			},
			{
				Success:             true,
				ProviderDisplayName: "FedEx",
				ProviderServiceName: "Express Saver",
				Total:               210.50,
				CurrencyCode:        "MXN",
				Days:                2,
			},
			{
				Success:             true,
				ProviderDisplayName: "DHL",
				ProviderServiceName: "Economy Select",
				Total:               189.90,
				CurrencyCode:        "MXN",
				Days:                3,
			},
			{
				Success:             false,
				ProviderDisplayName: "Redpack",
				ProviderServiceName: "Metropolitano",
				ErrorMessages:       []string{"postal code outside coverage"},
			},
		},
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
