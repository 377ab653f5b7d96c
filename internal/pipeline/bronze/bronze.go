// Package bronze implements the raw ingestion layer. Source CSV files are
// loaded unmodified (every field kept as a string) and tagged with ingestion
// metadata; no row content is validated at this stage.
package bronze

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/retailworks/medallion/internal/logging"
	"github.com/retailworks/medallion/internal/table"
)

// Expected source file headers, from the upstream retail schema.
var (
	CustomerColumns = []string{
		"id", "first_name", "last_name", "gender", "date_of_birth", "age",
		"email", "phone", "post_address", "membership",
	}
	ProductColumns = []string{
		"id", "product_name", "price", "category", "brand", "product_description",
	}
	OrderColumns = []string{
		"id", "customer_id", "customer_first_name", "customer_last_name",
		"customer_gender", "customer_age", "customer_email", "customer_phone",
		"order_date", "product_id", "product_name", "quantity", "unit_price",
		"total", "category", "brand", "product_description", "return_status",
	}
)

// Record is one raw row: source field values by column name, plus ingestion
// metadata.
type Record struct {
	Fields     map[string]string
	SourceFile string
	RecordID   int64
}

// Get returns the named field, or "" when the source row did not carry it.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Layer holds the three raw tables of one ingestion run.
type Layer struct {
	Customers []Record
	Products  []Record
	Orders    []Record

	// IngestedAt is the single ingestion timestamp shared by every record
	// of the run.
	IngestedAt time.Time
}

// Ingest loads customers.csv, products.csv and orders.csv from dir. A
// missing or unreadable file fails the whole ingestion; no partial layer is
// returned.
func Ingest(dir string, now time.Time) (*Layer, error) {
	layer := &Layer{IngestedAt: now}

	var err error
	if layer.Customers, err = readRaw(dir, "customers.csv", CustomerColumns, now); err != nil {
		return nil, err
	}
	if layer.Products, err = readRaw(dir, "products.csv", ProductColumns, now); err != nil {
		return nil, err
	}
	if layer.Orders, err = readRaw(dir, "orders.csv", OrderColumns, now); err != nil {
		return nil, err
	}

	logging.Info().
		Int("customers", len(layer.Customers)).
		Int("products", len(layer.Products)).
		Int("orders", len(layer.Orders)).
		Msg("Bronze ingestion complete")

	return layer, nil
}

func readRaw(dir, filename string, columns []string, now time.Time) ([]Record, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bronze ingestion failed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bronze ingestion failed: parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("bronze ingestion failed: %s: missing header row", path)
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("bronze ingestion failed: %s: missing column %q", path, col)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields := make(map[string]string, len(columns))
		for _, col := range columns {
			if j := index[col]; j < len(row) {
				fields[col] = row[j]
			}
		}
		records = append(records, Record{
			Fields:     fields,
			SourceFile: filename,
			RecordID:   int64(i) + 1,
		})
	}
	return records, nil
}

// Tables returns the bronze layer as generic tables for persistence, raw
// source columns first, metadata columns last.
func (l *Layer) Tables() []*table.Table {
	return []*table.Table{
		rawTable("customers", CustomerColumns, l.Customers, l.IngestedAt),
		rawTable("products", ProductColumns, l.Products, l.IngestedAt),
		rawTable("orders", OrderColumns, l.Orders, l.IngestedAt),
	}
}

func rawTable(name string, columns []string, records []Record, ingestedAt time.Time) *table.Table {
	cols := make([]table.Column, 0, len(columns)+3)
	for _, c := range columns {
		cols = append(cols, table.Column{Name: c, Type: table.String})
	}
	cols = append(cols,
		table.Column{Name: "_ingestion_timestamp", Type: table.Time},
		table.Column{Name: "_source_file", Type: table.String},
		table.Column{Name: "_record_id", Type: table.Int},
	)

	t := table.New(name, cols)
	for _, rec := range records {
		row := make([]any, 0, len(cols))
		for _, c := range columns {
			row = append(row, rec.Fields[c])
		}
		row = append(row, ingestedAt, rec.SourceFile, rec.RecordID)
		t.Rows = append(t.Rows, row)
	}
	return t
}
