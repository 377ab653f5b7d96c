package db

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailworks/medallion/internal/logging"
)

type columnKind int

const (
	kindString columnKind = iota
	kindInt
	kindFloat
	kindDate
	kindBool
)

type columnSpec struct {
	name string
	kind columnKind
}

var tableSpecs = map[string][]columnSpec{
	"customers": {
		{"id", kindInt}, {"first_name", kindString}, {"last_name", kindString},
		{"gender", kindString}, {"date_of_birth", kindDate}, {"age", kindInt},
		{"email", kindString}, {"phone", kindString},
		{"post_address", kindString}, {"membership", kindString},
	},
	"products": {
		{"id", kindInt}, {"product_name", kindString}, {"price", kindFloat},
		{"category", kindString}, {"brand", kindString},
		{"product_description", kindString},
	},
	"orders": {
		{"id", kindInt}, {"customer_id", kindInt},
		{"customer_first_name", kindString}, {"customer_last_name", kindString},
		{"customer_gender", kindString}, {"customer_age", kindInt},
		{"customer_email", kindString}, {"customer_phone", kindString},
		{"order_date", kindDate}, {"product_id", kindInt},
		{"product_name", kindString}, {"quantity", kindInt},
		{"unit_price", kindFloat}, {"total", kindFloat},
		{"category", kindString}, {"brand", kindString},
		{"product_description", kindString}, {"return_status", kindBool},
	},
}

// LoadTable bulk-inserts one raw CSV into its table via CopyFrom. Empty
// fields become NULL; unparsable fields are an error, the raw tables are
// the system of record.
func LoadTable(ctx context.Context, pool *pgxpool.Pool, name, csvPath string) (int64, error) {
	specs, ok := tableSpecs[name]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", name)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", filepath.Base(csvPath), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", filepath.Base(csvPath), err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%s is empty", filepath.Base(csvPath))
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, spec := range specs {
		if _, ok := index[spec.name]; !ok {
			return 0, fmt.Errorf("%s missing column %q", filepath.Base(csvPath), spec.name)
		}
	}

	columns := make([]string, len(specs))
	rows := make([][]any, 0, len(records)-1)
	for i, spec := range specs {
		columns[i] = spec.name
	}
	for rowNum, record := range records[1:] {
		row := make([]any, len(specs))
		for i, spec := range specs {
			value, err := convertField(record[index[spec.name]], spec.kind)
			if err != nil {
				return 0, fmt.Errorf("%s row %d column %s: %w",
					filepath.Base(csvPath), rowNum+2, spec.name, err)
			}
			row[i] = value
		}
		rows = append(rows, row)
	}

	count, err := pool.CopyFrom(ctx, pgx.Identifier{name}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy into %s: %w", name, err)
	}

	logging.Info().
		Str("table", name).
		Int64("rows", count).
		Msg("Table loaded")
	return count, nil
}

func convertField(field string, kind columnKind) (any, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	switch kind {
	case kindInt:
		return strconv.ParseInt(field, 10, 64)
	case kindFloat:
		return strconv.ParseFloat(field, 64)
	case kindDate:
		return time.Parse("2006-01-02", field)
	case kindBool:
		return strconv.ParseBool(field)
	default:
		return field, nil
	}
}
