package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/cybercompass/core"
	"github.com/huangsam/cybercompass/core/bank"
	"github.com/huangsam/cybercompass/internal/archive"
	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/internal/logger"
	"github.com/huangsam/cybercompass/internal/metrics"
	"github.com/huangsam/cybercompass/internal/session"
	"github.com/huangsam/cybercompass/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// startProfiling starts CPU and memory profiling if enabled.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Memory profiling will be captured at the end
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "cybercompass",
	Short:              "Map cybersecurity aptitude to NICE work roles.",
	Long:               `CyberCompass runs a career aptitude quiz and turns the answers into an agent dossier: archetype, work role, gaps and a training roadmap.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setConfigSource points viper at --config or the default dotfile locations.
func setConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".cybercompass")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigSource()

	viper.SetEnvPrefix("CYBERCOMPASS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("path", schema.ExplorerPath)
	viper.SetDefault("shuffle", true)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("archive-backend", schema.NoneBackend)
	viper.SetDefault("archive-db-connect", "")
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("session-ttl", contract.DefaultSessionTTL.String())
	viper.SetDefault("max-sessions", contract.DefaultMaxSessions)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-format", contract.DefaultLogFormat)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "no")
}

// loadConfigFile reads the config file if one exists.
func loadConfigFile() error {
	setConfigSource()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and opens the archive when requested.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Open the archive only when dossiers should be recorded.
	if cfg.Archive {
		if err := archive.InitArchive(cfg.ArchiveBackend, archiveConnString(cfg.ArchiveBackend, cfg.ArchiveDBConnect)); err != nil {
			return err
		}
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// archiveConnString fills in the default SQLite file when no connection is given.
func archiveConnString(backend schema.DatabaseBackend, connStr string) string {
	if backend == schema.SQLiteBackend && connStr == "" {
		return contract.GetArchiveDBFilePath()
	}
	return connStr
}

// loadBank returns the configured question bank or the embedded one.
func loadBank() (*bank.Bank, error) {
	if cfg.BankFile != "" {
		return bank.LoadFile(cfg.BankFile)
	}
	return bank.Load()
}

// newRegistry builds a session registry from the validated config.
func newRegistry(log *zap.Logger, m *metrics.Metrics) (*session.Registry, error) {
	b, err := loadBank()
	if err != nil {
		return nil, err
	}
	opts := session.Options{
		MaxSessions: cfg.MaxSessions,
		TTL:         cfg.SessionTTL,
		TopGaps:     cfg.TopGaps,
		Gaps: core.GapOptions{
			TKSBaseline:    cfg.TKSBaseline,
			MaxDeployments: cfg.MaxDeployments,
		},
		Metrics: m,
		Logger:  log,
	}
	if !cfg.Shuffle {
		opts.Perm = session.KeepOrder
	}
	if cfg.Archive {
		opts.Archive = archive.Manager.GetArchiveStore()
	}
	return session.NewRegistry(b, opts), nil
}

// newLogger builds the zap logger for long-running servers.
func newLogger() (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log.With(zap.String("version", version)), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}

// CloseArchive releases the archive connection if one was opened.
func CloseArchive() {
	archive.CloseArchive()
}
