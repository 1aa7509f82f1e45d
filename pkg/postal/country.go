package postal

import (
	"regexp"
	"strings"
)

// CountryGuess is the result of shape-based country detection.
type CountryGuess struct {
	Code string
	Name string
}

type countryPattern struct {
	code    string
	pattern *regexp.Regexp
}

// Detector infers a country from the shape of a postal code.
//
// Many countries share the bare five-digit shape, so detection is
// biased: the configured bias country is checked before any other
// pattern, and unmatched input falls back to the bias country. Callers
// that already know the true country must pass an explicit hint to the
// resolver, which bypasses detection entirely.
type Detector struct {
	bias     string
	patterns []countryPattern
}

var countryNames = map[string]string{
	"MX": "Mexico",
	"US": "United States",
	"CA": "Canada",
	"BR": "Brazil",
	"AR": "Argentina",
	"GB": "United Kingdom",
	"NL": "Netherlands",
	"ES": "Spain",
	"CO": "Colombia",
}

// Shape patterns in priority order. The bias country is evaluated
// before all of these regardless of where its shape appears here.
var defaultPatterns = []countryPattern{
	{"CA", regexp.MustCompile(`^[A-Z]\d[A-Z]\s?\d[A-Z]\d$`)},
	{"GB", regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\s?\d[A-Z]{2}$`)},
	{"NL", regexp.MustCompile(`^\d{4}\s?[A-Z]{2}$`)},
	{"AR", regexp.MustCompile(`^[A-Z]\d{4}[A-Z]{3}$`)},
	{"BR", regexp.MustCompile(`^\d{5}-?\d{3}$`)},
	{"US", regexp.MustCompile(`^\d{5}(-\d{4})?$`)},
	{"MX", regexp.MustCompile(`^\d{5}$`)},
}

// NewDetector creates a detector biased toward the given country code
// (the shop's origin market, e.g. "MX").
func NewDetector(biasCountry string) *Detector {
	return &Detector{
		bias:     strings.ToUpper(biasCountry),
		patterns: defaultPatterns,
	}
}

// Detect returns a country guess for the postal code. Total and
// deterministic; never errors.
func (d *Detector) Detect(postalCode string) CountryGuess {
	code := strings.ToUpper(strings.TrimSpace(postalCode))

	// Business-priority override: the bias country wins ties for
	// ambiguous shapes (bare 5-digit codes in particular).
	for _, p := range d.patterns {
		if p.code == d.bias && p.pattern.MatchString(code) {
			return guessFor(d.bias)
		}
	}

	for _, p := range d.patterns {
		if p.pattern.MatchString(code) {
			return guessFor(p.code)
		}
	}

	// Unrecognized shape: default to the primary market.
	return guessFor(d.bias)
}

// GuessFor builds a CountryGuess for an explicitly hinted country code.
func GuessFor(countryCode string) CountryGuess {
	return guessFor(strings.ToUpper(strings.TrimSpace(countryCode)))
}

func guessFor(code string) CountryGuess {
	name, ok := countryNames[code]
	if !ok {
		name = code
	}
	return CountryGuess{Code: code, Name: name}
}
