// Package persist writes pipeline layers to the output directory. Every
// table lands twice, as Parquet for downstream tooling and as CSV for
// inspection, plus the validation findings and the run manifest as JSON.
package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/retailworks/medallion/internal/logging"
	"github.com/retailworks/medallion/internal/table"
)

// WriteLayer writes each table under outputDir/layer as name.parquet and
// name.csv. Writes are not transactional; a failure aborts but files
// already written stay on disk.
func WriteLayer(outputDir, layer string, tables []*table.Table) error {
	dir := filepath.Join(outputDir, layer)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", layer, err)
	}

	for _, t := range tables {
		parquetPath := filepath.Join(dir, t.Name+".parquet")
		if err := t.WriteParquet(parquetPath); err != nil {
			return fmt.Errorf("writing %s/%s.parquet: %w", layer, t.Name, err)
		}
		csvPath := filepath.Join(dir, t.Name+".csv")
		if err := t.WriteCSV(csvPath); err != nil {
			return fmt.Errorf("writing %s/%s.csv: %w", layer, t.Name, err)
		}
		logging.Debug().
			Str("layer", layer).
			Str("table", t.Name).
			Int("rows", t.NumRows()).
			Msg("Table written")
	}

	logging.Info().
		Str("layer", layer).
		Int("tables", len(tables)).
		Msg("Layer persisted")
	return nil
}

func tableNames(tables []*table.Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
