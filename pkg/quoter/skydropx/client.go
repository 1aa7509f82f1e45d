package skydropx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const providerName = "skydropx"

// Config holds Skydropx configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	Scope        string
	BaseURL      string
	UseMock      bool // When true, uses the mock API client
}

// Client is the national rate-quoting client. It builds quotation
// requests from the resolved destination, the aggregated parcel, and
// per-line-item customs metadata, and normalizes the provider's mixed
// success/failure rate list into quoter.Quotes.
type Client struct {
	config    Config
	apiClient APIClient
	auth      *AuthClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Skydropx client. If cfg.UseMock is true, it uses a
// mock API client for testing; otherwise the real HTTP client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient
	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			Timeout: 30 * time.Second,
		})
	}
	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new Skydropx client with a custom API
// client. This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		auth:      NewAuthClient(apiClient, cfg.ClientID, cfg.ClientSecret, cfg.Scope, logger),
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// Quote submits one quotation and returns the successful carrier rates.
// A 401 mid-flight triggers exactly one forced token refresh and one
// retry. Zero successful rate rows is a valid empty result, not an
// error; transport and HTTP failures return a ProviderError the
// orchestrator absorbs.
func (c *Client) Quote(ctx context.Context, req *quoter.Request) ([]quoter.Quote, error) {
	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	apiReq := c.buildQuotation(req)
	c.logger.Info("requesting national rates",
		zap.String("order_id", apiReq.Quotation.OrderID),
		zap.String("destination_postal_code", req.Destination.PostalCode),
		zap.String("shipment_type", apiReq.Quotation.ShipmentType),
	)

	apiResp, err := c.apiClient.CreateQuotation(ctx, token, apiReq)
	if isUnauthorized(err) {
		token, err = c.auth.Refresh(ctx)
		if err != nil {
			return nil, err
		}
		apiResp, err = c.apiClient.CreateQuotation(ctx, token, apiReq)
	}
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			return nil, fmt.Errorf("%w: still unauthorized after refresh", quoter.ErrAuthenticationFailed)
		}
		c.logger.Error("skydropx quotation failed", zap.Error(err))
		return nil, quoter.NewProviderError(providerName, "QUOTATION_FAILED", "quotation request failed").WithCause(err)
	}

	return c.normalize(apiResp), nil
}

func (c *Client) buildQuotation(req *quoter.Request) *QuotationRequest {
	shipmentType := "national"
	if !strings.EqualFold(req.Origin.CountryCode, req.Destination.CountryCode) {
		shipmentType = "international"
	}

	return &QuotationRequest{
		Quotation: Quotation{
			OrderID:     uuid.New().String(),
			AddressFrom: addressToAPI(req.Origin),
			AddressTo:   addressToAPI(req.Destination),
			Parcels: []QuotationParcel{
				{
					Length:        int(req.Parcel.LengthCm),
					Width:         int(req.Parcel.WidthCm),
					Height:        int(req.Parcel.HeightCm),
					Weight:        req.Parcel.TotalWeightKg,
					DeclaredValue: req.Parcel.DeclaredValue,
					Products:      customsProducts(req.Items, req.Origin.CountryCode),
				},
			},
			ShipmentType: shipmentType,
			QuoteType:    "carrier",
		},
	}
}

// normalize filters the mixed success/failure rate list down to usable
// quotes. Failed rows feed the diagnostics log only; they never reach
// callers.
func (c *Client) normalize(resp *QuotationResponse) []quoter.Quote {
	quotes := make([]quoter.Quote, 0, len(resp.Rates))
	for _, rate := range resp.Rates {
		if !rate.Success {
			c.logger.Warn("carrier rate unavailable",
				zap.String("carrier", rate.ProviderDisplayName),
				zap.String("service", rate.ProviderServiceName),
				zap.Strings("reasons", rate.ErrorMessages),
			)
			continue
		}
		quotes = append(quotes, quoter.Quote{
			Provider:      rate.ProviderDisplayName,
			Service:       rate.ProviderServiceName,
			Price:         rate.Total,
			Currency:      rate.CurrencyCode,
			EstimatedDays: rate.Days,
			Type:          quoter.TypeNational,
			Raw:           rate,
		})
	}
	return quotes
}

func addressToAPI(addr postal.Address) QuotationAddress {
	return QuotationAddress{
		CountryCode: addr.CountryCode,
		PostalCode:  addr.PostalCode,
		AreaLevel1:  addr.Region,
		AreaLevel2:  addr.City,
		AreaLevel3:  addr.District,
	}
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}
