package minutos99_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/telarmoda/shipping/pkg/quoter/courier/minutos99"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockAPI *minutos99.MockAPIClient) *minutos99.Client {
	logger := otelzap.New(zap.NewNop())
	return minutos99.NewWithAPIClient(minutos99.Config{APIKey: "test-key"}, mockAPI, logger, nil)
}

func testAddresses() (postal.Address, postal.Address) {
	origin := postal.Address{
		CountryCode:    "MX",
		City:           "Cuauhtémoc",
		PostalCode:     "06600",
		Latitude:       19.4270,
		Longitude:      -99.1677,
		HasCoordinates: true,
	}
	destination := postal.Address{
		CountryCode: "MX",
		City:        "Benito Juárez",
		PostalCode:  "03100",
	}
	return origin, destination
}

func TestClient_Quote_Success(t *testing.T) {
	mockAPI := minutos99.NewMockAPIClient()
	client := newTestClient(mockAPI)

	origin, destination := testAddresses()
	p := parcel.Descriptor{TotalWeightKg: 1.2, LengthCm: 30, WidthCm: 25, HeightCm: 10}

	quotes, err := client.Quote(context.Background(), origin, destination, p)
	require.NoError(t, err)
	require.Len(t, quotes, 2, "the mock offers two service levels")

	for _, q := range quotes {
		assert.Equal(t, "99minutos", q.Provider)
		assert.Equal(t, quoter.TypeLocal, q.Type)
		assert.Equal(t, "MXN", q.Currency)
		assert.Positive(t, q.EstimatedMinutes)
	}
}

func TestClient_Quote_APIError(t *testing.T) {
	mockAPI := minutos99.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	origin, destination := testAddresses()
	_, err := client.Quote(context.Background(), origin, destination, parcel.Descriptor{})

	require.Error(t, err)
	var provErr *quoter.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "99minutos", provErr.Provider)
}

func TestClient_Quote_DefaultCurrency(t *testing.T) {
	mockAPI := minutos99.NewMockAPIClient()
	mockAPI.OnQuoteDelivery = func(ctx context.Context, req *minutos99.DeliveryQuoteRequest) (*minutos99.DeliveryQuoteResponse, error) {
		return &minutos99.DeliveryQuoteResponse{
			Quotes: []minutos99.ServiceQuote{
				{Service: "same_day", Price: 75, EstimatedMinutes: 360},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	origin, destination := testAddresses()
	quotes, err := client.Quote(context.Background(), origin, destination, parcel.Descriptor{})
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	assert.Equal(t, "MXN", quotes[0].Currency)
}

func TestClient_Quote_SizeCategories(t *testing.T) {
	tests := []struct {
		name string
		p    parcel.Descriptor
		want string
	}{
		{"small", parcel.Descriptor{TotalWeightKg: 1, LengthCm: 20, WidthCm: 15, HeightCm: 8}, "S"},
		{"medium by weight", parcel.Descriptor{TotalWeightKg: 5, LengthCm: 20, WidthCm: 15, HeightCm: 8}, "M"},
		{"large by volume", parcel.Descriptor{TotalWeightKg: 1, LengthCm: 60, WidthCm: 40, HeightCm: 35}, "L"},
		{"extra large", parcel.Descriptor{TotalWeightKg: 30, LengthCm: 100, WidthCm: 60, HeightCm: 60}, "XL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAPI := minutos99.NewMockAPIClient()
			var captured *minutos99.DeliveryQuoteRequest
			mockAPI.OnQuoteDelivery = func(ctx context.Context, req *minutos99.DeliveryQuoteRequest) (*minutos99.DeliveryQuoteResponse, error) {
				captured = req
				return &minutos99.DeliveryQuoteResponse{}, nil
			}
			client := newTestClient(mockAPI)

			origin, destination := testAddresses()
			_, err := client.Quote(context.Background(), origin, destination, tt.p)
			require.NoError(t, err)

			assert.Equal(t, tt.want, captured.Size)
		})
	}
}

func TestClient_Quote_PointMapping(t *testing.T) {
	mockAPI := minutos99.NewMockAPIClient()
	var captured *minutos99.DeliveryQuoteRequest
	mockAPI.OnQuoteDelivery = func(ctx context.Context, req *minutos99.DeliveryQuoteRequest) (*minutos99.DeliveryQuoteResponse, error) {
		captured = req
		return &minutos99.DeliveryQuoteResponse{}, nil
	}
	client := newTestClient(mockAPI)

	origin, destination := testAddresses()
	_, err := client.Quote(context.Background(), origin, destination, parcel.Descriptor{TotalWeightKg: 2})
	require.NoError(t, err)

	assert.Equal(t, "06600", captured.Pickup.ZipCode)
	assert.InDelta(t, 19.4270, captured.Pickup.Latitude, 0.001)
	assert.Equal(t, "03100", captured.Dropoff.ZipCode)
	assert.Zero(t, captured.Dropoff.Latitude, "addresses without a fix carry no coordinates")
	assert.InDelta(t, 2, captured.WeightKg, 0.001)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(minutos99.NewMockAPIClient())
	assert.Equal(t, "99minutos", client.Name())
}

func TestClient_MaxRadiusKm(t *testing.T) {
	logger := otelzap.New(zap.NewNop())

	byDefault := minutos99.NewWithAPIClient(minutos99.Config{}, minutos99.NewMockAPIClient(), logger, nil)
	assert.Equal(t, 50.0, byDefault.MaxRadiusKm())

	configured := minutos99.NewWithAPIClient(minutos99.Config{MaxRadiusKm: 25}, minutos99.NewMockAPIClient(), logger, nil)
	assert.Equal(t, 25.0, configured.MaxRadiusKm())
}

func TestClient_New_WithMock(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	client := minutos99.New(minutos99.Config{UseMock: true}, logger, nil)

	origin, destination := testAddresses()
	quotes, err := client.Quote(context.Background(), origin, destination, parcel.Descriptor{TotalWeightKg: 1})
	require.NoError(t, err)
	assert.Len(t, quotes, 2)
}
