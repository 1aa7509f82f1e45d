// Package postal resolves destination postal codes into structured
// addresses through a cascade of heterogeneous data sources.
package postal

import (
	"math"
	"strings"
)

// Address is a resolved postal location. Once constructed it is never
// mutated; the resolver caches and returns copies by value.
type Address struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	District    string  `json:"district,omitempty"`
	PostalCode  string  `json:"postal_code"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	// HasCoordinates distinguishes a real (0,0) fix from "no fix".
	HasCoordinates bool `json:"has_coordinates"`
	// IsGeneric marks a last-resort synthetic address built from
	// country-level placeholders. Callers may downweight confidence.
	IsGeneric bool `json:"is_generic"`
}

const earthRadiusKm = 6371.0

// DistanceKm is the great-circle distance between two addresses. The
// second return is false when either address has no coordinate fix.
func DistanceKm(a, b Address) (float64, bool) {
	if !a.HasCoordinates || !b.HasCoordinates {
		return 0, false
	}
	rad := math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * rad
	dLng := (b.Longitude - a.Longitude) * rad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*rad)*math.Cos(b.Latitude*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), true
}

// NormalizeCode canonicalizes a postal code for cache keys and provider
// calls: uppercase, no interior whitespace or hyphens.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "-", "")
	return code
}
