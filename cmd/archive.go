package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/cybercompass/internal/archive"
	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/internal/outwriter"
	"github.com/huangsam/cybercompass/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// archiveBackendConfig reads and validates the archive backend settings.
func archiveBackendConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("archive-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("archive-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = archiveConnString(backend, connStr)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// archiveSetup loads minimal configuration and opens the archive store.
// Archive subcommands skip the quiz and server validation of sharedSetup.
func archiveSetup(_ *cobra.Command, _ []string) error {
	if err := archiveBackendConfig(); err != nil {
		return err
	}
	return archive.InitArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
}

// archiveMigrateSetup does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func archiveMigrateSetup(_ *cobra.Command, _ []string) error {
	return archiveBackendConfig()
}

// archiveCmd focused on dossier archive management.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the archive of finished dossiers",
	Long: `Manage the optional archive of finished dossier summaries.

When a quiz or server runs with --archive, each completed session records one
summary row plus one score row per category. Live session state is never stored.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default)

Subcommands:
  status  - Show archive statistics and connection info
  clear   - Remove all archived dossiers
  export  - Export archived dossiers to Parquet files
  migrate - Run database schema migrations`,
}

// archiveClearCmd clears the archive.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived dossiers",
	Long: `Delete all archived dossiers from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the archive tables

Examples:
  cybercompass archive clear --archive-backend sqlite
  CYBERCOMPASS_ARCHIVE_BACKEND=mysql CYBERCOMPASS_ARCHIVE_DB_CONNECT="..." cybercompass archive clear`,
	PreRunE: archiveMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ClearArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, cfg.ArchiveDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive", err)
		}
		fmt.Println("Archive cleared successfully.")
	},
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show the backend, connection state, dossier counts per archetype,
first and last record times and table sizes.

Examples:
  cybercompass archive status --archive-backend sqlite
  cybercompass archive status --archive-backend sqlite --output json`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := archive.Manager.GetArchiveStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		if err := outwriter.NewOutWriter().WriteArchiveStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write archive status", err)
		}
	},
}

// archiveExportCmd exports the archive to Parquet.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived dossiers to Parquet files",
	Long: `Export the archive tables to two Parquet files named after --output-file:
<prefix>.dossiers.parquet and <prefix>.dossier_scores.parquet.

Examples:
  cybercompass archive export --archive-backend sqlite --output-file ./dossiers`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ExecuteArchiveExport(archive.Manager.GetArchiveStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export archive", err)
		}
	},
}

// archiveMigrateCmd runs schema migrations.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Apply or roll back archive schema migrations with golang-migrate.

Examples:
  # Upgrade to the latest version
  cybercompass archive migrate --archive-backend sqlite

  # Roll back to the initial schema
  cybercompass archive migrate --archive-backend sqlite --target-version 1`,
	PreRunE: archiveMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := archive.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
