// Package table provides the tabular representation shared by all pipeline
// layers. A Table is an ordered set of typed columns; cells are nil when a
// value is missing, and every writer/reader preserves that distinction where
// the format allows it.
package table

import (
	"fmt"
	"time"
)

// Type identifies the value type of a column.
type Type int

const (
	String Type = iota
	Int
	Float
	Bool
	Time
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	default:
		return "unknown"
	}
}

// Column describes one column of a table.
type Column struct {
	Name string
	Type Type
}

// Table is an in-memory table. Cell values are string, int64, float64, bool
// or time.Time according to the column type, or nil when missing.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// New creates an empty table with the given columns.
func New(name string, columns []Column) *Table {
	return &Table{Name: name, Columns: columns}
}

// AppendRow adds a row to the table. The row length must match the column
// count; cell types are checked against the column types.
func (t *Table) AppendRow(row []any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("table %s: row has %d cells, want %d",
			t.Name, len(row), len(t.Columns))
	}
	for i, cell := range row {
		if cell == nil {
			continue
		}
		ok := false
		switch t.Columns[i].Type {
		case String:
			_, ok = cell.(string)
		case Int:
			_, ok = cell.(int64)
		case Float:
			_, ok = cell.(float64)
		case Bool:
			_, ok = cell.(bool)
		case Time:
			_, ok = cell.(time.Time)
		}
		if !ok {
			return fmt.Errorf("table %s: column %s: cell type %T does not match column type %s",
				t.Name, t.Columns[i].Name, cell, t.Columns[i].Type)
		}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}
