package silver

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/retailworks/medallion/internal/pipeline/bronze"
)

// Fixed category taxonomy. Categories not listed here map to Other/Other.
var categoryTaxonomy = map[string]struct{ parent, level string }{
	"Tents":           {"Camping Gear", "Shelter"},
	"Backpacks":       {"Hiking Gear", "Carry"},
	"Hiking Clothing": {"Apparel", "Outdoor Wear"},
	"Hiking Footwear": {"Footwear", "Outdoor Shoes"},
	"Camping Tables":  {"Camping Gear", "Furniture"},
	"Camping Stoves":  {"Camping Gear", "Cooking"},
	"Sleeping Bags":   {"Camping Gear", "Sleep"},
}

// Assumed margin when no cost data is available.
const assumedMarginRate = 0.30

// Product is a cleaned and standardized product row.
type Product struct {
	ID                 *int64
	ProductName        string
	Price              *float64
	Category           string
	CategoryParent     string
	CategoryLevel      string
	Brand              string
	ProductDescription string

	PriceTier *string

	DescriptionLength    int64
	DescriptionWordCount int64
	IsWaterproof         bool
	IsLightweight        bool
	IsDurable            bool

	EstimatedMargin *float64
	WeightKg        float64
	WeightCategory  *string

	ProcessedAt           time.Time
	DataCompletenessScore float64
}

// cleanProducts standardizes the raw product records.
func cleanProducts(records []bronze.Record, now time.Time) []Product {
	products := make([]Product, 0, len(records))
	for _, rec := range records {
		p := Product{
			ID:                 parseInt(rec.Get("id")),
			ProductName:        strings.TrimSpace(rec.Get("product_name")),
			Price:              parseFloat(rec.Get("price")),
			Category:           titleCase(strings.TrimSpace(rec.Get("category"))),
			Brand:              strings.TrimSpace(rec.Get("brand")),
			ProductDescription: rec.Get("product_description"),
			ProcessedAt:        now,
		}

		p.CategoryParent, p.CategoryLevel = "Other", "Other"
		if tax, ok := categoryTaxonomy[p.Category]; ok {
			p.CategoryParent, p.CategoryLevel = tax.parent, tax.level
		}

		p.PriceTier = priceTier(p.Price)

		p.DescriptionLength = int64(utf8.RuneCountInString(p.ProductDescription))
		p.DescriptionWordCount = int64(len(strings.Fields(p.ProductDescription)))
		desc := strings.ToLower(p.ProductDescription)
		p.IsWaterproof = strings.Contains(desc, "water")
		p.IsLightweight = strings.Contains(desc, "lightweight") || strings.Contains(desc, "light weight")
		p.IsDurable = strings.Contains(desc, "durable") || strings.Contains(desc, "durability")

		if p.Price != nil {
			p.EstimatedMargin = floatp(round2(*p.Price * assumedMarginRate))
		}

		// The source schema carries no weight column; assume 1kg.
		p.WeightKg = 1
		p.WeightCategory = weightCategory(p.WeightKg)

		fields := 0
		if p.ProductName != "" {
			fields++
		}
		if p.Price != nil {
			fields++
		}
		if p.Category != "" {
			fields++
		}
		if p.Brand != "" {
			fields++
		}
		p.DataCompletenessScore = round1(float64(fields) / 4 * 100)

		products = append(products, p)
	}
	return products
}

// priceTier buckets price at 75/150/300; non-positive or missing prices get
// no tier.
func priceTier(price *float64) *string {
	if price == nil {
		return nil
	}
	var tier string
	switch p := *price; {
	case p <= 0:
		return nil
	case p <= 75:
		tier = "Budget"
	case p <= 150:
		tier = "Mid-Range"
	case p <= 300:
		tier = "Premium"
	default:
		tier = "Luxury"
	}
	return &tier
}

// weightCategory buckets weight (kg) at 1/5/10.
func weightCategory(kg float64) *string {
	var cat string
	switch {
	case kg <= 0:
		return nil
	case kg <= 1:
		cat = "Light"
	case kg <= 5:
		cat = "Medium"
	case kg <= 10:
		cat = "Heavy"
	default:
		cat = "Very Heavy"
	}
	return &cat
}
