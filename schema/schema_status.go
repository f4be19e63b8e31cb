package schema

import "time"

// ArchiveStatus represents the status of the dossier archive.
type ArchiveStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalDossiers   int              `json:"total_dossiers"`
	LastDossierID   int64            `json:"last_dossier_id"`
	LastRecordTime  time.Time        `json:"last_record_time"`
	OldestRecord    time.Time        `json:"oldest_record_time"`
	ArchetypeCounts map[string]int   `json:"archetype_counts"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// DossierRecord represents a row from the cybercompass_dossiers table.
type DossierRecord struct {
	DossierID      int64
	SessionID      string
	RecordedAt     time.Time
	Path           string
	Archetype      string
	Dominant       string
	KnowledgeLevel int32
	WorkRoleID     string
	TopRolePct     float64
	XP             int32
	Rank           string
}

// DossierScoreRecord represents a row from the cybercompass_dossier_scores table.
type DossierScoreRecord struct {
	DossierID  int64
	Category   string
	RawScore   float64
	RadarScore float64
	Gap        float64
}
