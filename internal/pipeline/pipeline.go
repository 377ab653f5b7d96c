// Package pipeline orchestrates the Bronze, Silver and Gold stages of the
// batch run and persists every layer.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/retailworks/medallion/internal/logging"
	"github.com/retailworks/medallion/internal/pipeline/bronze"
	"github.com/retailworks/medallion/internal/pipeline/gold"
	"github.com/retailworks/medallion/internal/pipeline/persist"
	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// Config holds everything one run needs. ReferenceTime anchors all
// time-relative metrics so reruns over the same input are reproducible.
type Config struct {
	InputDir      string
	OutputDir     string
	ReferenceTime time.Time
}

// Run executes the full pipeline: ingest raw CSVs, clean, derive the
// analytics views, and write all three layers plus the run artifacts.
func Run(ctx context.Context, cfg Config) error {
	start := time.Now()

	now := cfg.ReferenceTime
	if now.IsZero() {
		now = time.Now().UTC()
	}

	logging.Info().
		Str("input", cfg.InputDir).
		Str("output", cfg.OutputDir).
		Time("reference_time", now).
		Msg("Pipeline run starting")

	b, err := bronze.Ingest(cfg.InputDir, now)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s := silver.Transform(b, now)
	g := gold.Transform(s, now)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	bronzeTables := b.Tables()
	silverTables := s.Tables()
	goldTables := g.Tables()

	if err := persist.WriteLayer(cfg.OutputDir, "bronze", bronzeTables); err != nil {
		return err
	}
	if err := persist.WriteLayer(cfg.OutputDir, "silver", silverTables); err != nil {
		return err
	}
	if err := persist.WriteLayer(cfg.OutputDir, "gold", goldTables); err != nil {
		return err
	}

	if err := persist.WriteFindings(cfg.OutputDir, s.Findings); err != nil {
		return err
	}

	manifest := persist.NewManifest(bronzeTables, silverTables, goldTables, now)
	if err := persist.WriteManifest(cfg.OutputDir, manifest); err != nil {
		return err
	}

	logging.Info().
		Str("run_id", manifest.RunID).
		Dur("elapsed", time.Since(start)).
		Msg("Pipeline run complete")
	return nil
}
