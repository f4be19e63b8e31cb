package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/internal/parquet"
)

// ErrEmptyArchive is returned when there is nothing to export.
var ErrEmptyArchive = errors.New("no archived dossiers found to export")

// ExportFiles returns the two Parquet paths written for a prefix.
func ExportFiles(prefix string) (dossiers, scores string) {
	return prefix + ".dossiers.parquet", prefix + ".dossier_scores.parquet"
}

// ExecuteArchiveExport writes every archived dossier and score row to Parquet
// files named after prefix, reporting progress to w.
func ExecuteArchiveExport(store contract.ArchiveStore, prefix string, w io.Writer) error {
	if prefix == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("archive is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}
	if status.TotalDossiers == 0 {
		return ErrEmptyArchive
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total dossiers: %d\n", status.TotalDossiers)
	_, _ = fmt.Fprintf(w, "Total score records: %d\n", status.TableSizes[dossierScoresTable])

	dossiers, err := store.GetAllDossiers()
	if err != nil {
		return fmt.Errorf("failed to retrieve dossiers: %w", err)
	}
	scores, err := store.GetAllScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve dossier scores: %w", err)
	}

	dossiersFile, scoresFile := ExportFiles(prefix)
	parquetDossiers := parquet.ConvertDossierRecords(dossiers)
	if err := parquet.WriteDossiersParquet(parquetDossiers, dossiersFile); err != nil {
		return fmt.Errorf("failed to write dossiers: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d dossiers to: %s\n", len(parquetDossiers), dossiersFile)

	parquetScores := parquet.ConvertDossierScoreRecords(scores)
	if err := parquet.WriteDossierScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write dossier scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d score records to: %s\n", len(parquetScores), scoresFile)
	return nil
}
