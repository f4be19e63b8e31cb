//go:build basic

package integration

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/cybercompass/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuizJSON runs a scripted specialist quiz and checks the JSON dossier.
func TestQuizJSON(t *testing.T) {
	out, err := runCommand(t, nil, append(scriptedArgs(t, schema.SpecialistPath), "--output", "json")...)
	require.NoError(t, err)

	var d schema.Dossier
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, schema.SpecialistPath, d.Path)
	assert.True(t, d.ReflexComplete)
	assert.Len(t, d.Categories, len(schema.AllCategories))
	assert.NotEmpty(t, d.Rank)
	assert.Equal(t, schema.SalaryRange, d.SalaryRange)
}

// TestQuizText checks the plain text report.
func TestQuizText(t *testing.T) {
	out, err := runCommand(t, nil, append(scriptedArgs(t, schema.ExplorerPath), "--color", "no", "--width", "120")...)
	require.NoError(t, err)
	assert.Contains(t, out, "AGENT DOSSIER //")
	assert.Contains(t, out, "Category Scores")
	assert.NotContains(t, out, "Market range")
}

// TestQuizInvalidFlags checks that config validation fails the command.
func TestQuizInvalidFlags(t *testing.T) {
	_, err := runCommand(t, nil, "quiz", "--path", "ninja", "--answers", "a")
	assert.Error(t, err)

	_, err = runCommand(t, nil, "quiz", "--answers", "a", "--archive")
	assert.Error(t, err, "--archive needs a backend")
}

// TestSQLiteArchive records a dossier per path and exports them.
func TestSQLiteArchive(t *testing.T) {
	dir := t.TempDir()
	env := []string{
		"CYBERCOMPASS_ARCHIVE_BACKEND=sqlite",
		"CYBERCOMPASS_ARCHIVE_DB_CONNECT=" + filepath.Join(dir, "archive.db"),
	}

	_, err := runCommand(t, env, "archive", "migrate")
	require.NoError(t, err)

	for _, path := range []schema.QuizPath{schema.ExplorerPath, schema.SpecialistPath, schema.OperatorPath, schema.CalibrationPath} {
		_, err := runCommand(t, env, append(scriptedArgs(t, path), "--archive", "--output", "json")...)
		require.NoError(t, err)
	}

	out, err := runCommand(t, env, "archive", "status", "--output", "json")
	require.NoError(t, err)
	var status schema.ArchiveStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Connected)
	assert.Equal(t, 4, status.TotalDossiers)

	prefix := filepath.Join(dir, "export")
	out, err = runCommand(t, env, "archive", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 4 dossiers")

	out, err = runCommand(t, env, "archive", "clear")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "cleared"))
}

// TestVersion checks the version command.
func TestVersion(t *testing.T) {
	_, err := runCommand(t, nil, "version")
	require.NoError(t, err)
}
