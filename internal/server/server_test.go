package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telarmoda/shipping/internal/engine"
	"github.com/telarmoda/shipping/internal/server"
	"github.com/telarmoda/shipping/internal/telemetry"
	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/telarmoda/shipping/pkg/quoter/courier"
	"github.com/telarmoda/shipping/pkg/quoter/courier/mock"
	"github.com/telarmoda/shipping/pkg/quoter/skydropx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var testMetrics = telemetry.NewMetrics()

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	logger := otelzap.New(zap.NewNop())

	origin := postal.Address{
		CountryCode:    "MX",
		Region:         "Ciudad de México",
		City:           "Cuauhtémoc",
		District:       "Juárez",
		PostalCode:     "06600",
		Latitude:       19.4270,
		Longitude:      -99.1677,
		HasCoordinates: true,
	}

	resolver := postal.NewResolver(
		postal.NewDetector("MX"),
		[]postal.Tier{postal.NewManualTier(), postal.NewGenericTier()},
		logger,
		nil,
	)

	national := skydropx.NewWithAPIClient(
		skydropx.Config{ClientID: "test-id", ClientSecret: "test-secret"},
		skydropx.NewMockAPIClient(),
		logger,
		nil,
	)

	registry := courier.NewRegistry()
	registry.Register(mock.New("ivoy"))

	eng := engine.New(engine.Config{
		Origin: origin,
		Zones:  engine.ParseMetroZones("cdmx=01,06"),
	}, resolver, national, registry, logger, testMetrics)

	carts := engine.NewStaticCartSource()
	carts.Set("cart-42", []parcel.LineItem{
		{ProductName: "Playera básica", CategoryName: "playeras", UnitPrice: 249, Quantity: 2, UnitWeightKg: 0.2, LengthCm: 30, WidthCm: 25, HeightCm: 3},
	})

	return server.New(server.Config{Port: 8080}, eng, carts, logger).Handler()
}

func TestServer_Health(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Quote_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/quote", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestServer_Quote_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid JSON")
}

func TestServer_Quote_InlineItems(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"items": [
			{"product_name": "Playera básica", "category_name": "playeras", "unit_price": 249, "quantity": 2, "unit_weight_kg": 0.2, "length_cm": 30, "width_cm": 25, "height_cm": 3}
		],
		"destination_postal_code": "01000"
	}`

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.Success)
	// Three national mock rates plus the registered local courier.
	assert.Len(t, resp.Quotes, 4)
	require.NotNil(t, resp.Recommendation)
	assert.Equal(t, "01000", resp.ResolvedAddress.PostalCode)

	for i := 1; i < len(resp.Quotes); i++ {
		assert.LessOrEqual(t, resp.Quotes[i-1].Price, resp.Quotes[i].Price, "quotes must be price-sorted")
	}
}

func TestServer_Quote_CartLookup(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"cart_id": "cart-42", "destination_postal_code": "64000"}`

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.Success)
	// Monterrey is outside the configured metro zone, so national only.
	assert.Len(t, resp.Quotes, 3)
	for _, q := range resp.Quotes {
		assert.Equal(t, quoter.TypeNational, q.Type)
	}
}

func TestServer_Quote_UnknownCart(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"cart_id": "no-such-cart", "destination_postal_code": "01000"}`

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "cart not found")
}

func TestServer_Quote_EmptyCartRejected(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"items": [], "destination_postal_code": "01000"}`

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
}

func TestServer_Quote_CountryHint(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"items": [
			{"product_name": "Playera básica", "category_name": "playeras", "unit_price": 249, "quantity": 1, "unit_weight_kg": 0.2, "length_cm": 30, "width_cm": 25, "height_cm": 3}
		],
		"destination_postal_code": "10001",
		"country_hint": "US"
	}`

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoter.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "US", resp.ResolvedAddress.CountryCode)
	assert.Equal(t, "New York", resp.ResolvedAddress.City)
}
