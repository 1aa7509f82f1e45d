package ivoy

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnQuoteOrder func(ctx context.Context, req *OrderQuoteRequest) (*OrderQuoteResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// QuoteOrder returns a mock same-day quote.
func (m *MockAPIClient) QuoteOrder(ctx context.Context, req *OrderQuoteRequest) (*OrderQuoteResponse, error) {
	if m.SimulateLatency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.SimulateLatency):
		}
	}
	if m.SimulateErrors {
		return nil, &APIError{Code: 500, Message: "Simulated API error", StatusCode: 500}
	}
	if m.OnQuoteOrder != nil {
		return m.OnQuoteOrder(ctx, req)
	}

	var resp OrderQuoteResponse
	resp.Data.Order.TotalCents = 8900 // MXN $89.00
	resp.Data.Order.EtaMinutes = 95
	resp.Data.Order.DistanceM = 7400
	return &resp, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
