package postal

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Dataset field layout of the national postal bulk export
// (pipe-delimited, one row per settlement):
//
//	code|settlement|settlement_type|municipality|state|city|...
const (
	datasetFieldCode         = 0
	datasetFieldSettlement   = 1
	datasetFieldMunicipality = 3
	datasetFieldState        = 4
	datasetMinFields         = 5
	datasetCodeLen           = 5
)

// DatasetTier resolves origin-country postal codes from a bulk
// delimited dataset loaded lazily on first use. Duplicate postal codes
// keep the first-seen settlement; malformed rows are skipped at load.
type DatasetTier struct {
	path        string
	countryCode string

	mu      sync.RWMutex
	loaded  bool
	records map[string]Address

	sf     singleflight.Group
	logger *otelzap.Logger
}

// NewDatasetTier creates the bulk-dataset tier. It only answers for
// countryCode (the origin country); every other country is passed down
// the cascade untouched.
func NewDatasetTier(path, countryCode string, logger *otelzap.Logger) *DatasetTier {
	return &DatasetTier{
		path:        path,
		countryCode: strings.ToUpper(countryCode),
		records:     make(map[string]Address),
		logger:      logger,
	}
}

func (t *DatasetTier) Name() string { return "dataset" }

// TryResolve looks the code up in the loaded dataset, loading it first
// if needed. Concurrent first lookups share a single load.
func (t *DatasetTier) TryResolve(ctx context.Context, country CountryGuess, postalCode string) (Address, bool) {
	if country.Code != t.countryCode || t.path == "" {
		return Address{}, false
	}

	if !t.isLoaded() {
		if err := t.load(); err != nil {
			t.logger.Warn("postal dataset unavailable",
				zap.String("path", t.path),
				zap.Error(err),
			)
			return Address{}, false
		}
	}

	t.mu.RLock()
	addr, ok := t.records[postalCode]
	t.mu.RUnlock()
	return addr, ok
}

func (t *DatasetTier) isLoaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loaded
}

func (t *DatasetTier) load() error {
	_, err, _ := t.sf.Do("load", func() (interface{}, error) {
		if t.isLoaded() {
			return nil, nil
		}

		f, err := os.Open(t.path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		records := make(map[string]Address)
		skipped := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			addr, ok := t.parseRow(scanner.Text())
			if !ok {
				skipped++
				continue
			}
			// First-seen record wins; a postal code spans many
			// settlements and the export lists the main one first.
			if _, exists := records[addr.PostalCode]; !exists {
				records[addr.PostalCode] = addr
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}

		t.mu.Lock()
		t.records = records
		t.loaded = true
		t.mu.Unlock()

		t.logger.Info("postal dataset loaded",
			zap.String("path", t.path),
			zap.Int("postal_codes", len(records)),
			zap.Int("skipped_rows", skipped),
		)
		return nil, nil
	})
	return err
}

func (t *DatasetTier) parseRow(line string) (Address, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < datasetMinFields {
		return Address{}, false
	}

	code := strings.TrimSpace(fields[datasetFieldCode])
	if len(code) != datasetCodeLen || !allDigits(code) {
		return Address{}, false
	}

	state := strings.TrimSpace(fields[datasetFieldState])
	municipality := strings.TrimSpace(fields[datasetFieldMunicipality])
	settlement := strings.TrimSpace(fields[datasetFieldSettlement])
	if state == "" || municipality == "" {
		return Address{}, false
	}

	return Address{
		CountryCode: t.countryCode,
		CountryName: guessFor(t.countryCode).Name,
		Region:      state,
		City:        municipality,
		District:    settlement,
		PostalCode:  code,
	}, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
