// Package cmd defines the command-line interface for cybercompass.
package cmd

import (
	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(archiveCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns (1 or 2)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("bank-file", "", "Path to a YAML question bank (defaults to the embedded bank)")
	rootCmd.PersistentFlags().Float64("tks-baseline", 0, "Competency baseline for TKS areas and work roles (0 = default 65)")
	rootCmd.PersistentFlags().Int("max-deployments", 0, "Cap on recommended training deployments (0 = default 8)")
	rootCmd.PersistentFlags().Int("top-gaps", 0, "Number of priority gaps to report (0 = default 3)")
	rootCmd.PersistentFlags().Bool("archive", false, "Record finished dossiers in the archive backend")
	rootCmd.PersistentFlags().String("archive-backend", string(schema.NoneBackend), "Archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("session-ttl", contract.DefaultSessionTTL.String(), "Lifetime of a quiz session, counted from its start")
	rootCmd.PersistentFlags().Int("max-sessions", contract.DefaultMaxSessions, "Maximum number of live quiz sessions")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Server log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Server log format: console or json")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of quizCmd to Viper
	quizCmd.Flags().String("path", string(schema.ExplorerPath), "Quiz path: explorer or specialist or operator or calibration")
	quizCmd.Flags().Bool("shuffle", true, "Show the choices of every question in a random order (false keeps the order of 'questions')")
	quizCmd.Flags().String("answers", "", "Comma-separated answers for a non-interactive run (e.g., 'a,c,2,b')")
	quizCmd.Flags().String("reflex", "", "Comma-separated reflex drill actions (NEUTRALIZE, DROP, FREEZE)")
	if err := viper.BindPFlags(quizCmd.Flags()); err != nil {
		contract.LogFatal("Error binding quiz flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address of the HTTP API")
	serveCmd.Flags().String("cors-origins", "", "Comma-separated allowed CORS origins ('*' allows all, empty disables CORS)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
