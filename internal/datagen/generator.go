package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/retailworks/medallion/internal/logging"
)

// Config controls how much sample data is generated and where it goes.
type Config struct {
	OutputDir string
	Customers int
	Products  int
	Orders    int
	Seed      uint64
}

const dateFormat = "2006-01-02"

var memberships = []string{"Base", "Gold", "Platinum"}

type catalogEntry struct {
	category string
	names    []string
}

// Outdoor-gear catalog. Descriptions carry the attribute keywords that
// downstream feature flags look for.
var catalog = []catalogEntry{
	{"Tents", []string{"Alpine Dome Tent", "Trailhead 2-Person Tent", "Basecamp Family Tent"}},
	{"Backpacks", []string{"Summit 65L Backpack", "Dayhike 22L Pack", "Ridgeline 45L Backpack"}},
	{"Hiking Clothing", []string{"Storm Shell Jacket", "Trail Zip-Off Pants", "Merino Base Layer"}},
	{"Hiking Footwear", []string{"Granite Hiking Boots", "Creekside Trail Runners", "Scramble Approach Shoes"}},
	{"Camping Tables", []string{"Roll-Top Camp Table", "Compact Folding Table"}},
	{"Camping Stoves", []string{"Single Burner Stove", "Twin Flame Camp Stove"}},
	{"Sleeping Bags", []string{"Glacier -10 Sleeping Bag", "Meadow 3-Season Bag"}},
}

var brands = []string{"NorthCrest", "TrailForge", "Wildpath", "Cascade Supply", "Summit Co"}

var descriptionTemplates = []string{
	"Durable %s built for extended trips in rough terrain.",
	"Lightweight %s that packs small without giving up comfort.",
	"Waterproof %s tested in sustained rain and wind.",
	"Versatile %s for weekend campers and thru-hikers alike.",
	"Light weight %s with reinforced stitching for durability.",
}

// Generate writes customers.csv, products.csv and orders.csv into the
// output directory. A fraction of orders carry a wrong total or a return
// flag so downstream quality checks have signal.
func Generate(cfg Config) error {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	now := time.Now().UTC()
	customers := generateCustomers(f, cfg.Customers, now)
	products := generateProducts(f, cfg.Products)
	orders := generateOrders(f, cfg.Orders, customers, products)

	files := []struct {
		name string
		rows [][]string
	}{
		{"customers.csv", customers},
		{"products.csv", products},
		{"orders.csv", orders},
	}
	for _, file := range files {
		path := filepath.Join(cfg.OutputDir, file.name)
		if err := writeCSV(path, file.rows); err != nil {
			return err
		}
		logging.Info().
			Str("file", path).
			Int("rows", len(file.rows)-1).
			Msg("Sample data written")
	}
	return nil
}

func generateCustomers(f *Faker, n int, now time.Time) [][]string {
	rows := [][]string{{
		"id", "first_name", "last_name", "gender", "date_of_birth",
		"age", "email", "phone", "post_address", "membership",
	}}
	for i := 1; i <= n; i++ {
		dob := f.DateOfBirth(now)
		age := int(now.Sub(dob).Hours() / 24 / 365.25)
		rows = append(rows, []string{
			strconv.Itoa(i),
			f.FirstName(),
			f.LastName(),
			f.Gender(),
			dob.Format(dateFormat),
			strconv.Itoa(age),
			f.Email(),
			f.Phone(),
			f.PostAddress(),
			Pick(f, memberships),
		})
	}
	return rows
}

func generateProducts(f *Faker, n int) [][]string {
	rows := [][]string{{
		"id", "product_name", "price", "category", "brand", "product_description",
	}}
	for i := 1; i <= n; i++ {
		entry := catalog[(i-1)%len(catalog)]
		name := Pick(f, entry.names)
		price := f.Float(20, 600)
		rows = append(rows, []string{
			strconv.Itoa(i),
			name,
			strconv.FormatFloat(float64(int(price*100))/100, 'f', 2, 64),
			entry.category,
			Pick(f, brands),
			fmt.Sprintf(Pick(f, descriptionTemplates), name),
		})
	}
	return rows
}

func generateOrders(f *Faker, n int, customers, products [][]string) [][]string {
	rows := [][]string{{
		"id", "customer_id", "customer_first_name", "customer_last_name",
		"customer_gender", "customer_age", "customer_email", "customer_phone",
		"order_date", "product_id", "product_name", "quantity", "unit_price",
		"total", "category", "brand", "product_description", "return_status",
	}}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	id := 1
	for id <= n {
		customer := customers[f.Number(1, len(customers)-1)]
		date := f.DateBetween(start, end)

		// Roughly a third of orders are multi-line baskets on the same
		// date, which feeds the cross-sell pair mining.
		lines := 1
		if f.Bool(0.35) {
			lines = f.Number(2, 3)
		}
		for line := 0; line < lines && id <= n; line++ {
			product := products[f.Number(1, len(products)-1)]
			quantity := f.Number(1, 5)
			unitPrice, _ := strconv.ParseFloat(product[2], 64)
			total := unitPrice * float64(quantity)
			if f.Bool(0.03) {
				total += 5 // deliberate mismatch
			}
			returned := "false"
			if f.Bool(0.05) {
				returned = "true"
			}
			rows = append(rows, []string{
				strconv.Itoa(id),
				customer[0], customer[1], customer[2], customer[3],
				customer[5], customer[6], customer[7],
				date.Format(dateFormat),
				product[0], product[1],
				strconv.Itoa(quantity),
				product[2],
				strconv.FormatFloat(total, 'f', 2, 64),
				product[3], product[4], product[5],
				returned,
			})
			id++
		}
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
