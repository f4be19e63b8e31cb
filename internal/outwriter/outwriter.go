// Package outwriter renders dossiers and archive status for the command line.
package outwriter

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDossier prints a dossier using the configured output format.
func (ow *OutWriter) WriteDossier(d schema.Dossier, cfg *contract.Config) error {
	return WriteDossierResults(d, cfg)
}

// WriteArchiveStatus prints archive status using the configured output format.
func (ow *OutWriter) WriteArchiveStatus(status schema.ArchiveStatus, cfg *contract.Config) error {
	return WriteArchiveStatusResults(status, cfg)
}

// painter returns a Sprint function for c, or plain fmt.Sprint when colors are off.
func painter(cfg *contract.Config, c *color.Color) func(...any) string {
	if !cfg.UseColors {
		return fmt.Sprint
	}
	return c.SprintFunc()
}

// severityLabel returns the gap severity, colored when colors are on.
func severityLabel(cfg *contract.Config, gap float64) string {
	if cfg.UseColors {
		return contract.GetColorLabel(gap)
	}
	return contract.GetPlainLabel(gap)
}

// levelName returns the display name of a knowledge level.
func levelName(level int) string {
	if level == schema.IntermediateLevel {
		return "Intermediate"
	}
	return "Entry"
}
