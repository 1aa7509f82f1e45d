package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// GeoLookupTier queries a public postal-code-to-place HTTP service
// (zippopotam-style GET /{country}/{postalCode}). Any network or parse
// failure skips the tier; the cascade continues.
type GeoLookupTier struct {
	baseURL    string
	httpClient *http.Client
	logger     *otelzap.Logger
}

// NewGeoLookupTier creates the generic external lookup tier.
func NewGeoLookupTier(baseURL string, timeout time.Duration, logger *otelzap.Logger) *GeoLookupTier {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &GeoLookupTier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (t *GeoLookupTier) Name() string { return "geolookup" }

// Wire shape of the place service. Field names contain spaces.
type geoLookupResponse struct {
	Country     string `json:"country"`
	CountryCode string `json:"country abbreviation"`
	Places      []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

func (t *GeoLookupTier) TryResolve(ctx context.Context, country CountryGuess, postalCode string) (Address, bool) {
	url := fmt.Sprintf("%s/%s/%s", t.baseURL, strings.ToLower(country.Code), postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Warn("postal place lookup failed",
			zap.String("country", country.Code),
			zap.String("postal_code", postalCode),
			zap.Error(err),
		)
		return Address{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, false
	}

	var decoded geoLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.logger.Warn("postal place lookup returned malformed body",
			zap.String("postal_code", postalCode),
			zap.Error(err),
		)
		return Address{}, false
	}
	if len(decoded.Places) == 0 {
		return Address{}, false
	}

	place := decoded.Places[0]
	addr := Address{
		CountryCode: country.Code,
		CountryName: country.Name,
		Region:      place.State,
		City:        place.PlaceName,
		PostalCode:  postalCode,
	}
	lat, latErr := strconv.ParseFloat(place.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(place.Longitude, 64)
	if latErr == nil && lngErr == nil {
		addr.Latitude = lat
		addr.Longitude = lng
		addr.HasCoordinates = true
	}
	return addr, true
}
