package skydropx

import (
	"strings"

	"github.com/telarmoda/shipping/pkg/parcel"
)

// Providers reject customs descriptions under ~15 characters and
// truncate nothing themselves, so both bounds are enforced here.
const (
	minDescriptionLen = 15
	maxDescriptionLen = 100
)

// genericHSCode is the fallback customs classification for apparel
// lines whose category carries no HS code of its own.
const genericHSCode = "6109.90.00"

// hsCodesByCategory maps catalog categories to their Harmonized System
// classification. Keys are lowercase.
var hsCodesByCategory = map[string]string{
	"playeras":   "6109.10.00",
	"camisas":    "6205.20.00",
	"vestidos":   "6204.42.00",
	"pantalones": "6203.42.00",
	"faldas":     "6204.52.00",
	"sudaderas":  "6110.20.00",
	"chamarras":  "6201.92.00",
	"zapatos":    "6403.99.00",
	"accesorios": "6217.10.00",
	"bolsas":     "4202.22.00",
}

// englishTermsByCategory maps catalog categories to the English terms
// international carriers require on customs declarations.
var englishTermsByCategory = map[string]string{
	"playeras":   "cotton knit t-shirts",
	"camisas":    "men's woven shirts",
	"vestidos":   "women's dresses",
	"pantalones": "denim trousers",
	"faldas":     "women's skirts",
	"sudaderas":  "cotton sweatshirts",
	"chamarras":  "outerwear jackets",
	"zapatos":    "leather footwear",
	"accesorios": "clothing accessories",
	"bolsas":     "textile handbags",
}

const genericEnglishTerm = "assorted apparel merchandise"

// hsCodeFor returns the line item's HS code, falling back to the
// category table and then the generic textile code.
func hsCodeFor(item parcel.LineItem) string {
	if item.HSCode != "" {
		return item.HSCode
	}
	if code, ok := hsCodesByCategory[strings.ToLower(item.CategoryName)]; ok {
		return code
	}
	return genericHSCode
}

// englishDescriptionFor produces the customs description for a line
// item, clamped to the provider's accepted length range.
func englishDescriptionFor(item parcel.LineItem) string {
	desc, ok := englishTermsByCategory[strings.ToLower(item.CategoryName)]
	if !ok {
		desc = genericEnglishTerm
	}
	return clampDescription(desc)
}

func clampDescription(desc string) string {
	if len(desc) < minDescriptionLen {
		desc += " - textile goods"
	}
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen]
	}
	return desc
}

// customsProducts builds the per-line-item customs declarations for a
// quotation.
func customsProducts(items []parcel.LineItem, originCountry string) []QuotationProduct {
	products := make([]QuotationProduct, len(items))
	for i, item := range items {
		products[i] = QuotationProduct{
			HSCode:        hsCodeFor(item),
			DescriptionEn: englishDescriptionFor(item),
			CountryCode:   originCountry,
			Quantity:      item.Quantity,
			Price:         item.UnitPrice,
		}
	}
	return products
}
