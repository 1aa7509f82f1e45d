package minutos99

import (
	"context"
	"time"

	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const courierName = "99minutos"

const defaultMaxRadiusKm = 50.0

// Config holds 99minutos configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	MaxRadiusKm float64
	UseMock     bool
}

// Client is the 99minutos courier client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new 99minutos client. If cfg.UseMock is true, it uses a
// mock API client for testing.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient
	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: 10 * time.Second,
		})
	}
	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new 99minutos client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the courier name.
func (c *Client) Name() string {
	return courierName
}

// MaxRadiusKm returns the service radius limit.
func (c *Client) MaxRadiusKm() float64 {
	if c.config.MaxRadiusKm > 0 {
		return c.config.MaxRadiusKm
	}
	return defaultMaxRadiusKm
}

// Quote prices same-day delivery options through 99minutos.
func (c *Client) Quote(ctx context.Context, origin, destination postal.Address, p parcel.Descriptor) ([]quoter.Quote, error) {
	apiReq := &DeliveryQuoteRequest{
		Pickup:   pointToAPI(origin),
		Dropoff:  pointToAPI(destination),
		Size:     sizeCategory(p),
		WeightKg: p.TotalWeightKg,
	}

	apiResp, err := c.apiClient.QuoteDelivery(ctx, apiReq)
	if err != nil {
		c.logger.Warn("99minutos quote failed", zap.Error(err))
		return nil, quoter.NewProviderError(courierName, "QUOTE_FAILED", "delivery quote failed").WithCause(err)
	}

	quotes := make([]quoter.Quote, 0, len(apiResp.Quotes))
	for _, q := range apiResp.Quotes {
		currency := q.Currency
		if currency == "" {
			currency = "MXN"
		}
		quotes = append(quotes, quoter.Quote{
			Provider:         courierName,
			Service:          q.Service,
			Price:            q.Price,
			Currency:         currency,
			EstimatedMinutes: q.EstimatedMinutes,
			Type:             quoter.TypeLocal,
			Raw:              q,
		})
	}
	return quotes, nil
}

func pointToAPI(addr postal.Address) Point {
	pt := Point{
		ZipCode: addr.PostalCode,
		City:    addr.City,
	}
	if addr.HasCoordinates {
		pt.Latitude = addr.Latitude
		pt.Longitude = addr.Longitude
	}
	return pt
}

// sizeCategory buckets the parcel by dimensional weight the way the
// provider's rate card does.
func sizeCategory(p parcel.Descriptor) string {
	volumetric := p.LengthCm * p.WidthCm * p.HeightCm / 5000
	kg := p.TotalWeightKg
	if volumetric > kg {
		kg = volumetric
	}
	switch {
	case kg <= 2:
		return "S"
	case kg <= 8:
		return "M"
	case kg <= 20:
		return "L"
	default:
		return "XL"
	}
}
