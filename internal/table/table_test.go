package table

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testColumns() []Column {
	return []Column{
		{Name: "id", Type: Int},
		{Name: "name", Type: String},
		{Name: "price", Type: Float},
		{Name: "active", Type: Bool},
		{Name: "created", Type: Time},
	}
}

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl := New("widgets", testColumns())
	created := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	rows := [][]any{
		{int64(1), "anvil", 19.99, true, created},
		{int64(2), "hammer", 7.5, false, created.AddDate(0, 0, 1)},
		{nil, "n/a", nil, nil, nil},
	}
	for _, row := range rows {
		if err := tbl.AppendRow(row); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
	}
	return tbl
}

func TestAppendRowChecksLength(t *testing.T) {
	tbl := New("widgets", testColumns())
	if err := tbl.AppendRow([]any{int64(1), "anvil"}); err == nil {
		t.Error("Expected error for short row, got nil")
	}
}

func TestAppendRowChecksTypes(t *testing.T) {
	tbl := New("widgets", testColumns())
	row := []any{"not-an-int", "anvil", 19.99, true, time.Now()}
	if err := tbl.AppendRow(row); err == nil {
		t.Error("Expected error for mistyped cell, got nil")
	}
}

func TestColumnIndex(t *testing.T) {
	tbl := New("widgets", testColumns())
	if got := tbl.ColumnIndex("price"); got != 2 {
		t.Errorf("ColumnIndex(price) = %d, want 2", got)
	}
	if got := tbl.ColumnIndex("missing"); got != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", got)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := testTable(t)
	path := filepath.Join(t.TempDir(), "widgets.csv")

	if err := tbl.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	got, err := ReadCSV(path, "widgets", testColumns())
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	assertTablesEqual(t, tbl, got)
}

func TestReadCSVMissingColumn(t *testing.T) {
	tbl := testTable(t)
	path := filepath.Join(t.TempDir(), "widgets.csv")
	if err := tbl.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	columns := append(testColumns(), Column{Name: "weight", Type: Float})
	if _, err := ReadCSV(path, "widgets", columns); err == nil {
		t.Error("Expected error for missing schema column, got nil")
	}
}

func TestReadCSVUnparsableBecomesNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	tbl := New("bad", []Column{{Name: "id", Type: String}})
	tbl.Rows = append(tbl.Rows, []any{"not-a-number"})
	if err := tbl.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(path, "bad", []Column{{Name: "id", Type: Int}})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.Rows[0][0] != nil {
		t.Errorf("Expected nil cell for unparsable int, got %v", got.Rows[0][0])
	}
}

func TestParquetRoundTrip(t *testing.T) {
	tbl := testTable(t)
	path := filepath.Join(t.TempDir(), "widgets.parquet")

	if err := tbl.WriteParquet(path); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}
	got, err := ReadParquet(context.Background(), path, "widgets")
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}

	assertTablesEqual(t, tbl, got)
}

func assertTablesEqual(t *testing.T, want, got *Table) {
	t.Helper()

	if got.NumRows() != want.NumRows() {
		t.Fatalf("Row count = %d, want %d", got.NumRows(), want.NumRows())
	}
	wantNames := want.ColumnNames()
	gotNames := got.ColumnNames()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("Column count = %d, want %d", len(gotNames), len(wantNames))
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Errorf("Column %d = %q, want %q", i, gotNames[i], wantNames[i])
		}
	}

	for r, wantRow := range want.Rows {
		for c, wantCell := range wantRow {
			gotCell := got.Rows[r][c]
			if wantCell == nil {
				if gotCell != nil {
					t.Errorf("Row %d col %s = %v, want nil", r, wantNames[c], gotCell)
				}
				continue
			}
			if wantTime, ok := wantCell.(time.Time); ok {
				gotTime, ok := gotCell.(time.Time)
				if !ok || !gotTime.Equal(wantTime) {
					t.Errorf("Row %d col %s = %v, want %v", r, wantNames[c], gotCell, wantCell)
				}
				continue
			}
			if gotCell != wantCell {
				t.Errorf("Row %d col %s = %v (%T), want %v (%T)",
					r, wantNames[c], gotCell, gotCell, wantCell, wantCell)
			}
		}
	}
}
