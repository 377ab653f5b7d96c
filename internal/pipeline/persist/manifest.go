package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/retailworks/medallion/internal/pipeline/silver"
	"github.com/retailworks/medallion/internal/table"
)

// Manifest documents one pipeline run: what each layer contains and what
// was done to it.
type Manifest struct {
	RunID    string        `json:"run_id"`
	Overview Overview      `json:"pipeline_overview"`
	Bronze   LayerManifest `json:"bronze_layer"`
	Silver   LayerManifest `json:"silver_layer"`
	Gold     LayerManifest `json:"gold_layer"`
	Value    BusinessValue `json:"business_value"`
}

type Overview struct {
	Name         string `json:"name"`
	Architecture string `json:"architecture"`
	Description  string `json:"description"`
	ProcessedAt  string `json:"processed_timestamp"`
}

type LayerManifest struct {
	Description     string   `json:"description"`
	Tables          []string `json:"tables"`
	Transformations []string `json:"transformations,omitempty"`
	Analytics       []string `json:"analytics,omitempty"`
}

type BusinessValue struct {
	CustomerInsights    string `json:"customer_insights"`
	ProductInsights     string `json:"product_insights"`
	SalesInsights       string `json:"sales_insights"`
	OperationalInsights string `json:"operational_insights"`
}

// NewManifest builds the run manifest from the persisted table sets.
func NewManifest(bronze, silverTables, gold []*table.Table, processedAt time.Time) Manifest {
	return Manifest{
		RunID: uuid.NewString(),
		Overview: Overview{
			Name:         "Retail Medallion Pipeline",
			Architecture: "Bronze-Silver-Gold Medallion",
			Description:  "End-to-end batch pipeline for retail analytics",
			ProcessedAt:  processedAt.Format(time.RFC3339),
		},
		Bronze: LayerManifest{
			Description: "Raw data ingestion with minimal processing",
			Tables:      tableNames(bronze),
			Transformations: []string{
				"Added ingestion timestamps",
				"Added source file metadata",
				"Added record identifiers",
			},
		},
		Silver: LayerManifest{
			Description: "Cleaned and standardized data",
			Tables:      tableNames(silverTables),
			Transformations: []string{
				"Data type conversions",
				"Data standardization",
				"Address parsing",
				"Data quality scoring",
				"Business rule validation",
				"Cross-table integrity checks",
			},
		},
		Gold: LayerManifest{
			Description: "Business-ready analytics tables",
			Tables:      tableNames(gold),
			Analytics: []string{
				"RFM customer segmentation",
				"Customer lifetime value",
				"Product performance ranking",
				"Sales trend analysis",
				"Cross-selling analytics",
				"Time series forecasting data",
			},
		},
		Value: BusinessValue{
			CustomerInsights:    "RFM segmentation, CLV, churn risk",
			ProductInsights:     "Performance ranking, cross-sell opportunities",
			SalesInsights:       "Trend analysis, growth metrics, forecasting",
			OperationalInsights: "Data quality monitoring, pipeline health",
		},
	}
}

// WriteManifest writes the run manifest to pipeline_documentation.json at
// the output root.
func WriteManifest(outputDir string, m Manifest) error {
	return writeJSON(filepath.Join(outputDir, "pipeline_documentation.json"), m)
}

// WriteFindings writes the referential-integrity findings to
// silver_data_validation.json at the output root.
func WriteFindings(outputDir string, f silver.Findings) error {
	return writeJSON(filepath.Join(outputDir, "silver_data_validation.json"), f)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
