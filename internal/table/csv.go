package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Timestamps round-trip through CSV in RFC3339Nano.
const csvTimeFormat = time.RFC3339Nano

// WriteCSV writes the table to path with a header row. Missing cells are
// written as empty fields.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadCSV reads a table from path using the given name and column schema.
// The file header must contain every schema column; extra file columns are
// ignored. Empty fields become nil cells, as do fields that fail to parse
// as the column type.
func ReadCSV(path, name string, columns []Column) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}

	header := records[0]
	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = -1
		for j, h := range header {
			if h == col.Name {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("read %s: missing column %q", path, col.Name)
		}
	}

	t := New(name, columns)
	for _, record := range records[1:] {
		row := make([]any, len(columns))
		for i, col := range columns {
			if idx[i] >= len(record) {
				continue
			}
			row[i] = parseCell(record[idx[i]], col.Type)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(csvTimeFormat)
	default:
		return fmt.Sprint(v)
	}
}

func parseCell(field string, typ Type) any {
	if field == "" {
		return nil
	}
	switch typ {
	case String:
		return field
	case Int:
		if v, err := strconv.ParseInt(field, 10, 64); err == nil {
			return v
		}
	case Float:
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			return v
		}
	case Bool:
		if v, err := strconv.ParseBool(field); err == nil {
			return v
		}
	case Time:
		if v, err := time.Parse(csvTimeFormat, field); err == nil {
			return v
		}
	}
	return nil
}
