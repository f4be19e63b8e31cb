package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/cybercompass/core"
	"github.com/huangsam/cybercompass/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDossier(t *testing.T, weights map[string]float64, recordedAt time.Time) schema.Dossier {
	t.Helper()
	s := core.NewScoreState()
	s.AddContribution(weights)
	s.AddTechnicalResult(true)
	return core.BuildDossier(s, core.DossierOptions{
		SessionID: "session-" + recordedAt.Format("150405"),
		Path:      schema.SpecialistPath,
		XP:        160,
		Now:       recordedAt,
	})
}

func TestArchiveStore_NoneBackend(t *testing.T) {
	store, err := NewArchiveStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.Record(schema.Dossier{})
	assert.NoError(t, err)
	assert.Zero(t, id)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	dossiers, err := store.GetAllDossiers()
	assert.NoError(t, err)
	assert.Nil(t, dossiers)
	scores, err := store.GetAllScores()
	assert.NoError(t, err)
	assert.Nil(t, scores)
	assert.NoError(t, store.Close())
}

func TestArchiveStore_Unsupported(t *testing.T) {
	_, err := NewArchiveStore("oracle", "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestArchiveStore_SQLite(t *testing.T) {
	store, err := NewArchiveStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	first := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	guardian := sampleDossier(t, map[string]float64{"PR": 0.9, "IN": 0.1}, first)
	ghost := sampleDossier(t, map[string]float64{"IN": 1.2}, second)

	id1, err := store.Record(guardian)
	require.NoError(t, err)
	id2, err := store.Record(ghost)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalDossiers)
	assert.Equal(t, id2, status.LastDossierID)
	assert.True(t, second.Equal(status.LastRecordTime))
	assert.True(t, first.Equal(status.OldestRecord))
	assert.Equal(t, map[string]int{"guardian": 1, "ghost": 1}, status.ArchetypeCounts)
	assert.Equal(t, int64(2), status.TableSizes[dossiersTable])
	assert.Equal(t, int64(2*len(schema.AllCategories)), status.TableSizes[dossierScoresTable])

	dossiers, err := store.GetAllDossiers()
	require.NoError(t, err)
	require.Len(t, dossiers, 2)
	assert.Equal(t, id1, dossiers[0].DossierID)
	assert.Equal(t, guardian.SessionID, dossiers[0].SessionID)
	assert.Equal(t, "specialist", dossiers[0].Path)
	assert.Equal(t, "guardian", dossiers[0].Archetype)
	assert.Equal(t, "PR", dossiers[0].Dominant)
	assert.Equal(t, int32(1), dossiers[0].KnowledgeLevel)
	assert.Equal(t, "PR-IR", dossiers[0].WorkRoleID)
	assert.Equal(t, int32(160), dossiers[0].XP)
	assert.Equal(t, "Agent", dossiers[0].Rank)
	assert.InDelta(t, guardian.TopRoleMatch, dossiers[0].TopRolePct, 1e-9)
	assert.True(t, first.Equal(dossiers[0].RecordedAt))
	assert.Equal(t, "ghost", dossiers[1].Archetype)

	scores, err := store.GetAllScores()
	require.NoError(t, err)
	require.Len(t, scores, 2*len(schema.AllCategories))
	var pr schema.DossierScoreRecord
	for _, s := range scores {
		if s.DossierID == id1 && s.Category == "PR" {
			pr = s
		}
	}
	assert.InDelta(t, 1.0, pr.RawScore, 1e-9)
	assert.InDelta(t, 100.0, pr.RadarScore, 1e-9)
	assert.Zero(t, pr.Gap)
}

func TestArchiveStore_SQLiteEmptyStatus(t *testing.T) {
	store, err := NewArchiveStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalDossiers)
	assert.True(t, status.LastRecordTime.IsZero())
	assert.Empty(t, status.ArchetypeCounts)
}

func TestArchiveStore_SQLiteFileReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	store, err := NewArchiveStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.Record(sampleDossier(t, map[string]float64{"OV": 1}, time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewArchiveStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	dossiers, err := reopened.GetAllDossiers()
	require.NoError(t, err)
	require.Len(t, dossiers, 1)
	assert.Equal(t, "analyst", dossiers[0].Archetype)
}

func TestMigrateArchive_NoneBackend(t *testing.T) {
	err := MigrateArchive(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "not supported")
}

func TestMigrateArchive_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	assert.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, -1))
	assert.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, 2))

	store, err := NewArchiveStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.Record(sampleDossier(t, map[string]float64{"SP": 1}, time.Now()))
	assert.NoError(t, err)
}

func TestMigrateArchive_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateArchive(schema.SQLiteBackend, ":memory:", -1))
}

func TestClearArchive(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "clear.db")
		store, err := NewArchiveStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearArchive(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Missing files are fine
		assert.NoError(t, ClearArchive(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("sqlite needs a path", func(t *testing.T) {
		assert.Error(t, ClearArchive(schema.SQLiteBackend, "", ""))
	})

	t.Run("none is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearArchive(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearArchive("oracle", "", ""))
	})

	t.Run("bad mysql dsn", func(t *testing.T) {
		assert.ErrorContains(t, ClearArchive(schema.MySQLBackend, "", "not a dsn"), "invalid MySQL connection string")
	})
}

func TestExecuteArchiveExport(t *testing.T) {
	store, err := NewArchiveStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	prefix := filepath.Join(t.TempDir(), "export")
	var out bytes.Buffer

	assert.ErrorIs(t, ExecuteArchiveExport(store, prefix, &out), ErrEmptyArchive)
	assert.Error(t, ExecuteArchiveExport(store, "", &out))
	assert.Error(t, ExecuteArchiveExport(nil, prefix, &out))

	_, err = store.Record(sampleDossier(t, map[string]float64{"AN": 1}, time.Now()))
	require.NoError(t, err)
	require.NoError(t, ExecuteArchiveExport(store, prefix, &out))

	dossiersFile, scoresFile := ExportFiles(prefix)
	for _, f := range []string{dossiersFile, scoresFile} {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, out.String(), "Exported 1 dossiers")
	assert.Contains(t, out.String(), "Exported 7 score records")
}

func TestManager(t *testing.T) {
	assert.Nil(t, (&StoreManager{}).GetArchiveStore())
}
