package outwriter

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/schema"
)

// WriteArchiveStatusResults prints archive status as JSON or plain text.
// Only stdout is used; status is never written to --output-file.
func WriteArchiveStatusResults(status schema.ArchiveStatus, cfg *contract.Config) error {
	stdout := *cfg
	stdout.OutputFile = ""
	if cfg.Output == schema.JSONOut {
		return writeWithFile(&stdout, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(&stdout, func(w io.Writer) error {
		return writeArchiveStatusText(w, status)
	}, "Wrote status")
}

func writeArchiveStatusText(w io.Writer, status schema.ArchiveStatus) error {
	lines := []string{
		fmt.Sprintf("Archive Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines, fmt.Sprintf("Total Dossiers: %d", status.TotalDossiers))
		if status.TotalDossiers > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Dossier ID: %d", status.LastDossierID),
				fmt.Sprintf("Last Record: %s", status.LastRecordTime.Local().Format(contract.DateTimeFormat)),
				fmt.Sprintf("Oldest Record: %s", status.OldestRecord.Local().Format(contract.DateTimeFormat)),
				"Archetypes:",
			)
			for _, name := range slices.Sorted(maps.Keys(status.ArchetypeCounts)) {
				lines = append(lines, fmt.Sprintf("  %s: %d", name, status.ArchetypeCounts[name]))
			}
		}
		lines = append(lines, "Table Sizes:")
		for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
			lines = append(lines, fmt.Sprintf("  %s: %d rows", table, status.TableSizes[table]))
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
