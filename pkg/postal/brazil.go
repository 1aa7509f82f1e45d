package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// BrazilTier resolves Brazilian CEPs against the ViaCEP service
// (GET /ws/{cep}/json/). It is the country-specific extension slot of
// the cascade: new dedicated sources are added as sibling tiers, not by
// editing the generic ones.
type BrazilTier struct {
	baseURL    string
	httpClient *http.Client
	logger     *otelzap.Logger
}

// NewBrazilTier creates the Brazil-specific lookup tier.
func NewBrazilTier(baseURL string, timeout time.Duration, logger *otelzap.Logger) *BrazilTier {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &BrazilTier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (t *BrazilTier) Name() string { return "viacep" }

type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro,omitempty"`
}

func (t *BrazilTier) TryResolve(ctx context.Context, country CountryGuess, postalCode string) (Address, bool) {
	if country.Code != "BR" {
		return Address{}, false
	}
	if len(postalCode) != 8 || !allDigits(postalCode) {
		return Address{}, false
	}

	url := fmt.Sprintf("%s/ws/%s/json/", t.baseURL, postalCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, false
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Warn("viacep lookup failed",
			zap.String("cep", postalCode),
			zap.Error(err),
		)
		return Address{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, false
	}

	var decoded viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil || decoded.Erro {
		return Address{}, false
	}
	if decoded.City == "" {
		return Address{}, false
	}

	return Address{
		CountryCode: "BR",
		CountryName: country.Name,
		Region:      decoded.State,
		City:        decoded.City,
		District:    decoded.Neighborhood,
		PostalCode:  postalCode,
	}, true
}
