// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/cybercompass/schema"

// ArchiveStore records completed dossier summaries.
// A store backed by the none backend accepts writes and keeps nothing.
type ArchiveStore interface {
	// Record stores the summary of a dossier and returns its archive id.
	Record(d schema.Dossier) (int64, error)

	// GetStatus returns status information about the archive.
	GetStatus() (schema.ArchiveStatus, error)

	// GetAllDossiers returns every archived dossier summary ordered by id.
	GetAllDossiers() ([]schema.DossierRecord, error)

	// GetAllScores returns every archived category score ordered by dossier id.
	GetAllScores() ([]schema.DossierScoreRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// ArchiveManager hands out the configured archive store.
// This allows the archive layer to be mocked for testing.
type ArchiveManager interface {
	GetArchiveStore() ArchiveStore
}
