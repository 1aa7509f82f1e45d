package minutos99

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnQuoteDelivery func(ctx context.Context, req *DeliveryQuoteRequest) (*DeliveryQuoteResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// QuoteDelivery returns mock delivery quotes for two service levels.
func (m *MockAPIClient) QuoteDelivery(ctx context.Context, req *DeliveryQuoteRequest) (*DeliveryQuoteResponse, error) {
	if m.SimulateLatency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.SimulateLatency):
		}
	}
	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error", StatusCode: 500}
	}
	if m.OnQuoteDelivery != nil {
		return m.OnQuoteDelivery(ctx, req)
	}

	return &DeliveryQuoteResponse{
		Quotes: []ServiceQuote{
			{
				Service:          "99minutos",
				Price:            119.00,
				Currency:         "MXN",
				EstimatedMinutes: 99,
			},
			{
				Service:          "same_day",
				Price:            75.00,
				Currency:         "MXN",
				EstimatedMinutes: 360,
			},
		},
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
