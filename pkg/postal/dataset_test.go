package postal_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func writeDataset(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codes.txt")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}

func newDatasetTier(t *testing.T, rows string) *postal.DatasetTier {
	t.Helper()
	logger := otelzap.New(zap.NewNop())
	return postal.NewDatasetTier(writeDataset(t, rows), "MX", logger)
}

func TestDatasetTier_TryResolve(t *testing.T) {
	tier := newDatasetTier(t,
		"06600|Juárez|Colonia|Cuauhtémoc|Ciudad de México|Ciudad de México\n"+
			"44100|Centro|Colonia|Guadalajara|Jalisco|Guadalajara\n")

	addr, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "06600")
	require.True(t, ok)

	assert.Equal(t, "MX", addr.CountryCode)
	assert.Equal(t, "Ciudad de México", addr.Region)
	assert.Equal(t, "Cuauhtémoc", addr.City)
	assert.Equal(t, "Juárez", addr.District)
	assert.Equal(t, "06600", addr.PostalCode)
	assert.False(t, addr.IsGeneric)
}

func TestDatasetTier_TryResolve_UnknownCode(t *testing.T) {
	tier := newDatasetTier(t, "06600|Juárez|Colonia|Cuauhtémoc|Ciudad de México\n")

	_, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "99999")
	assert.False(t, ok)
}

func TestDatasetTier_TryResolve_OtherCountryPassedDown(t *testing.T) {
	tier := newDatasetTier(t, "10001|Chelsea|District|New York|New York\n")

	_, ok := tier.TryResolve(context.Background(), postal.GuessFor("US"), "10001")
	assert.False(t, ok, "the dataset only answers for its own country")
}

func TestDatasetTier_SkipsMalformedRows(t *testing.T) {
	tier := newDatasetTier(t,
		"garbage line without delimiters\n"+
			"123|Too|Short|Code|State\n"+ // postal code not 5 digits
			"ABCDE|Non|Numeric|Code|State\n"+
			"06600|Juárez|Colonia||\n"+ // missing municipality and state
			"44100|Centro|Colonia|Guadalajara|Jalisco\n")

	_, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "06600")
	assert.False(t, ok)

	addr, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "44100")
	require.True(t, ok)
	assert.Equal(t, "Jalisco", addr.Region)
}

func TestDatasetTier_FirstSeenWins(t *testing.T) {
	tier := newDatasetTier(t,
		"06600|Juárez|Colonia|Cuauhtémoc|Ciudad de México\n"+
			"06600|Roma Norte|Colonia|Cuauhtémoc|Ciudad de México\n")

	addr, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "06600")
	require.True(t, ok)
	assert.Equal(t, "Juárez", addr.District)
}

func TestDatasetTier_MissingFile(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	tier := postal.NewDatasetTier(filepath.Join(t.TempDir(), "nope.txt"), "MX", logger)

	_, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "06600")
	assert.False(t, ok, "an unreadable dataset must skip the tier, not fail the cascade")
}

func TestDatasetTier_EmptyPathDisabled(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	tier := postal.NewDatasetTier("", "MX", logger)

	_, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "06600")
	assert.False(t, ok)
}

func TestDatasetTier_ConcurrentFirstLookup(t *testing.T) {
	tier := newDatasetTier(t, "06600|Juárez|Colonia|Cuauhtémoc|Ciudad de México\n")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addr, ok := tier.TryResolve(context.Background(), postal.GuessFor("MX"), "06600")
			assert.True(t, ok)
			assert.Equal(t, "Cuauhtémoc", addr.City)
		}()
	}
	wg.Wait()
}
