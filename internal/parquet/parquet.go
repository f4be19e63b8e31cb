// Package parquet exports archived dossier summaries to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/cybercompass/schema"
	"github.com/parquet-go/parquet-go"
)

// Dossier is one archived dossier summary.
// This struct maps to the cybercompass_dossiers database table.
type Dossier struct {
	// DossierID is the archive identifier of the dossier
	DossierID int64 `parquet:"dossier_id,snappy"`

	// SessionID is the quiz session the dossier was built from
	SessionID string `parquet:"session_id,snappy"`

	// RecordedAt is when the dossier was generated
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	Path           string  `parquet:"path,snappy,dict"`
	Archetype      string  `parquet:"archetype,snappy,dict"`
	Dominant       string  `parquet:"dominant,snappy,dict"`
	KnowledgeLevel int32   `parquet:"knowledge_level,snappy"`
	WorkRoleID     string  `parquet:"work_role_id,snappy,dict"`
	TopRolePct     float64 `parquet:"top_role_pct,snappy"`
	XP             int32   `parquet:"xp,snappy"`
	Rank           string  `parquet:"agent_rank,snappy,dict"`
}

// DossierScore is one category row of an archived dossier.
// This struct maps to the cybercompass_dossier_scores database table.
type DossierScore struct {
	DossierID  int64   `parquet:"dossier_id,snappy"`
	Category   string  `parquet:"category,snappy,dict"`
	RawScore   float64 `parquet:"raw_score,snappy"`
	RadarScore float64 `parquet:"radar_score,snappy"`

	// Gap is the distance below the professional baseline, zero when at or above it
	Gap float64 `parquet:"gap,snappy"`
}

// WriteDossiersParquet writes dossier summaries to a Parquet file.
func WriteDossiersParquet(data []Dossier, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDossierScoresParquet writes dossier category scores to a Parquet file.
func WriteDossierScoresParquet(data []DossierScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet infers the schema from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertDossierRecords converts archive rows for Parquet export.
func ConvertDossierRecords(records []schema.DossierRecord) []Dossier {
	result := make([]Dossier, len(records))
	for i, record := range records {
		result[i] = Dossier{
			DossierID:      record.DossierID,
			SessionID:      record.SessionID,
			RecordedAt:     record.RecordedAt,
			Path:           record.Path,
			Archetype:      record.Archetype,
			Dominant:       record.Dominant,
			KnowledgeLevel: record.KnowledgeLevel,
			WorkRoleID:     record.WorkRoleID,
			TopRolePct:     record.TopRolePct,
			XP:             record.XP,
			Rank:           record.Rank,
		}
	}
	return result
}

// ConvertDossierScoreRecords converts archive score rows for Parquet export.
func ConvertDossierScoreRecords(records []schema.DossierScoreRecord) []DossierScore {
	result := make([]DossierScore, len(records))
	for i, record := range records {
		result[i] = DossierScore{
			DossierID:  record.DossierID,
			Category:   record.Category,
			RawScore:   record.RawScore,
			RadarScore: record.RadarScore,
			Gap:        record.Gap,
		}
	}
	return result
}
