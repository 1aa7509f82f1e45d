// Package parcel folds cart line items into a single physical parcel
// descriptor suitable for carrier rate requests.
package parcel

import (
	"math"
	"strconv"
	"strings"
)

// Compression levels express what fraction of nominal stacked height
// survives packing. Soft garments compress well; rigid goods do not.
const (
	CompressionLow    = "low"
	CompressionMedium = "medium"
	CompressionHigh   = "high"
)

const (
	ratioLow    = 0.9
	ratioMedium = 0.7
	ratioHigh   = 0.5

	// defaultCompression is the conservative assumption for items that
	// declare no compression behavior.
	defaultCompression = ratioMedium
)

// Carrier minimums. Applied after aggregation, never per item.
const (
	MinWeightKg = 0.5
	MinLengthCm = 20.0
	MinWidthCm  = 15.0
	MinHeightCm = 8.0
)

// LineItem is one cart entry with its per-category physical attributes.
type LineItem struct {
	ProductName  string
	CategoryName string
	HSCode       string
	UnitPrice    float64
	Quantity     int
	UnitWeightKg float64
	LengthCm     float64
	WidthCm      float64
	HeightCm     float64
	// Compression is "low", "medium", "high", a numeric ratio in
	// (0, 1], or empty for the default.
	Compression string
}

// Descriptor is the aggregated parcel: what actually goes in the box.
type Descriptor struct {
	TotalWeightKg     float64
	DeclaredValue     float64
	LengthCm          float64
	WidthCm           float64
	HeightCm          float64
	CompressionFactor float64
}

// Aggregate folds line items into one parcel descriptor. Deterministic,
// no I/O, never errors. Items are assumed packed side by side in the
// length/width axes and stacked in height, with the mean compression
// ratio applied to the stack. Dimensions are ceiling-rounded to whole
// centimeters because carriers reject fractional values.
func Aggregate(items []LineItem) Descriptor {
	var (
		weight    float64
		value     float64
		maxLength float64
		maxWidth  float64
		stack     float64
	)

	var ratioSum float64
	var ratioCount int
	for _, it := range items {
		qty := float64(it.Quantity)
		weight += it.UnitWeightKg * qty
		value += it.UnitPrice * qty
		maxLength = math.Max(maxLength, it.LengthCm)
		maxWidth = math.Max(maxWidth, it.WidthCm)
		stack += it.HeightCm * qty

		if r, ok := compressionRatio(it.Compression); ok {
			ratioSum += r
			ratioCount++
		}
	}

	factor := defaultCompression
	if ratioCount > 0 {
		factor = ratioSum / float64(ratioCount)
	}
	height := stack * factor

	return Descriptor{
		TotalWeightKg:     math.Max(weight, MinWeightKg),
		DeclaredValue:     value,
		LengthCm:          math.Ceil(math.Max(maxLength, MinLengthCm)),
		WidthCm:           math.Ceil(math.Max(maxWidth, MinWidthCm)),
		HeightCm:          math.Ceil(math.Max(height, MinHeightCm)),
		CompressionFactor: factor,
	}
}

// compressionRatio maps a declared compression level to a ratio.
// Numeric values in (0, 1] pass through unchanged.
func compressionRatio(level string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return 0, false
	case CompressionLow:
		return ratioLow, true
	case CompressionMedium:
		return ratioMedium, true
	case CompressionHigh:
		return ratioHigh, true
	}
	if v, err := strconv.ParseFloat(level, 64); err == nil && v > 0 && v <= 1 {
		return v, true
	}
	return 0, false
}
