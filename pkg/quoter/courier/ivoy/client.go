package ivoy

import (
	"context"
	"fmt"
	"time"

	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const courierName = "ivoy"

// defaultMaxRadiusKm bounds iVoy dispatch to the metro core.
const defaultMaxRadiusKm = 35.0

// Config holds iVoy configuration.
type Config struct {
	Token       string
	BaseURL     string
	MaxRadiusKm float64
	UseMock     bool
}

// Client is the iVoy courier client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new iVoy client. If cfg.UseMock is true, it uses a mock
// API client for testing.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient
	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
			Timeout: 10 * time.Second,
		})
	}
	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new iVoy client with a custom API client.
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

// Quote prices a same-day delivery through iVoy.
func (c *Client) Quote(ctx context.Context, origin, destination postal.Address, p parcel.Descriptor) ([]quoter.Quote, error) {
	apiReq := &OrderQuoteRequest{
		Order: OrderInfo{
			PackageTypeID: packageSizeID(p),
			PaymentMethod: 1, // account billing
			Addresses: []OrderAddress{
				addressToAPI(origin),
				addressToAPI(destination),
			},
		},
	}

	apiResp, err := c.apiClient.QuoteOrder(ctx, apiReq)
	if err != nil {
		c.logger.Warn("ivoy quote failed", zap.Error(err))
		return nil, quoter.NewProviderError(courierName, "QUOTE_FAILED", "order quote failed").WithCause(err)
	}

	quote := quoter.Quote{
		Provider:         courierName,
		Service:          "same-day",
		Price:            float64(apiResp.Data.Order.TotalCents) / 100,
		Currency:         "MXN",
		EstimatedMinutes: apiResp.Data.Order.EtaMinutes,
		Type:             quoter.TypeLocal,
		Raw:              apiResp,
	}
	return []quoter.Quote{quote}, nil
}

func addressToAPI(addr postal.Address) OrderAddress {
	a := OrderAddress{
		Address: fmt.Sprintf("%s, %s, %s", addr.District, addr.City, addr.Region),
		ZipCode: addr.PostalCode,
	}
	if addr.HasCoordinates {
		a.Latitude = addr.Latitude
		a.Longitude = addr.Longitude
	}
	return a
}

// packageSizeID maps parcel dimensions onto iVoy's size categories.
func packageSizeID(p parcel.Descriptor) int {
	longest := p.LengthCm
	if p.WidthCm > longest {
		longest = p.WidthCm
	}
	if p.HeightCm > longest {
		longest = p.HeightCm
	}
	switch {
	case p.TotalWeightKg <= 1 && longest <= 30:
		return 1
	case p.TotalWeightKg <= 5 && longest <= 50:
		return 2
	case p.TotalWeightKg <= 15 && longest <= 80:
		return 3
	default:
		return 4
	}
}
