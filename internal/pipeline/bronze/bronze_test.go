package bronze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	customersCSV = `id,first_name,last_name,gender,date_of_birth,age,email,phone,post_address,membership
1,Ada,Lovell,Female,1985-03-02,39,ada@example.com,555-0101,"12 Pine St, Boulder, CO 80301",Gold
2,Ben,Okafor,Male,1990-07-15,34,ben@example.com,555-0102,"9 Oak Ave, Salem, OR 97301",Base
`
	productsCSV = `id,product_name,price,category,brand,product_description
1,Alpine Dome Tent,299.99,Tents,NorthCrest,Waterproof tent for alpine trips.
`
	ordersCSV = `id,customer_id,customer_first_name,customer_last_name,customer_gender,customer_age,customer_email,customer_phone,order_date,product_id,product_name,quantity,unit_price,total,category,brand,product_description,return_status
1,1,Ada,Lovell,Female,39,ada@example.com,555-0101,2024-01-10,1,Alpine Dome Tent,1,299.99,299.99,Tents,NorthCrest,Waterproof tent for alpine trips.,false
`
)

func writeInputDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func allInputFiles() map[string]string {
	return map[string]string{
		"customers.csv": customersCSV,
		"products.csv":  productsCSV,
		"orders.csv":    ordersCSV,
	}
}

func TestIngest(t *testing.T) {
	dir := writeInputDir(t, allInputFiles())
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	layer, err := Ingest(dir, now)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if len(layer.Customers) != 2 {
		t.Errorf("Customers = %d, want 2", len(layer.Customers))
	}
	if len(layer.Products) != 1 {
		t.Errorf("Products = %d, want 1", len(layer.Products))
	}
	if len(layer.Orders) != 1 {
		t.Errorf("Orders = %d, want 1", len(layer.Orders))
	}
	if !layer.IngestedAt.Equal(now) {
		t.Errorf("IngestedAt = %v, want %v", layer.IngestedAt, now)
	}

	// Field values are kept verbatim
	if got := layer.Customers[0].Get("email"); got != "ada@example.com" {
		t.Errorf("customer email = %q", got)
	}
	if got := layer.Customers[1].Get("post_address"); got != "9 Oak Ave, Salem, OR 97301" {
		t.Errorf("customer post_address = %q", got)
	}

	// Lineage metadata
	if layer.Customers[0].SourceFile != "customers.csv" {
		t.Errorf("SourceFile = %q", layer.Customers[0].SourceFile)
	}
	if layer.Customers[0].RecordID != 1 || layer.Customers[1].RecordID != 2 {
		t.Errorf("RecordIDs = %d, %d, want 1, 2",
			layer.Customers[0].RecordID, layer.Customers[1].RecordID)
	}
}

func TestIngestMissingFile(t *testing.T) {
	files := allInputFiles()
	delete(files, "orders.csv")
	dir := writeInputDir(t, files)

	_, err := Ingest(dir, time.Now())
	if err == nil {
		t.Fatal("Expected error for missing orders.csv, got nil")
	}
	if !strings.Contains(err.Error(), "bronze ingestion failed") {
		t.Errorf("Error %q should mention bronze ingestion", err)
	}
}

func TestIngestMissingColumn(t *testing.T) {
	files := allInputFiles()
	files["products.csv"] = "id,product_name\n1,Tent\n"
	dir := writeInputDir(t, files)

	_, err := Ingest(dir, time.Now())
	if err == nil {
		t.Fatal("Expected error for missing column, got nil")
	}
	if !strings.Contains(err.Error(), "missing column") {
		t.Errorf("Error %q should mention the missing column", err)
	}
}

func TestTablesCarryMetadataColumns(t *testing.T) {
	dir := writeInputDir(t, allInputFiles())
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	layer, err := Ingest(dir, now)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	tables := layer.Tables()
	if len(tables) != 3 {
		t.Fatalf("Tables = %d, want 3", len(tables))
	}

	customers := tables[0]
	if customers.Name != "customers" {
		t.Errorf("First table = %q, want customers", customers.Name)
	}
	for _, meta := range []string{"_ingestion_timestamp", "_source_file", "_record_id"} {
		if customers.ColumnIndex(meta) < 0 {
			t.Errorf("Missing metadata column %s", meta)
		}
	}

	idx := customers.ColumnIndex("_ingestion_timestamp")
	ts, ok := customers.Rows[0][idx].(time.Time)
	if !ok || !ts.Equal(now) {
		t.Errorf("_ingestion_timestamp = %v, want %v", customers.Rows[0][idx], now)
	}
}
