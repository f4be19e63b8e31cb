package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/cybercompass/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultAddr         = ":8080"
	DefaultSessionTTL   = 2 * time.Hour
	DefaultMaxSessions  = 1024
	MaxSessionsLimit    = 100000
	MaxDeploymentsLimit = 50
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	Path       schema.QuizPath
	Answers    []string              // Scripted answers for non-interactive runs
	Reflex     []schema.ReflexAction // Scripted reflex drill actions
	Shuffle    bool                  // Show choices in a random order per session
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	BankFile   string

	TKSBaseline    float64 // 0 means the default competency baseline
	MaxDeployments int     // 0 means the default cap
	TopGaps        int     // 0 means the default count

	Archive          bool // Record finished dossiers
	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	Addr        string
	CORSOrigins []string
	SessionTTL  time.Duration
	MaxSessions int

	LogLevel  string
	LogFormat string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Emoji            string `mapstructure:"emoji"`
	BankFile         string `mapstructure:"bank-file"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFormat        string `mapstructure:"log-format"`

	// --- Fields from quizCmd.Flags() ---
	Path           string  `mapstructure:"path"`
	Answers        string  `mapstructure:"answers"`
	Reflex         string  `mapstructure:"reflex"`
	Shuffle        bool    `mapstructure:"shuffle"`
	TKSBaseline    float64 `mapstructure:"tks-baseline"`
	MaxDeployments int     `mapstructure:"max-deployments"`
	TopGaps        int     `mapstructure:"top-gaps"`
	Archive        bool    `mapstructure:"archive"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string `mapstructure:"addr"`
	CORSOrigins string `mapstructure:"cors-origins"`
	SessionTTL  string `mapstructure:"session-ttl"`
	MaxSessions int    `mapstructure:"max-sessions"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processQuizInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processServerInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend resolves a backend name, treating an empty value as none.
func ParseBackend(s string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(s)))
	if backend == "" {
		return schema.NoneBackend, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateBackendConfigs validates the archive backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.ArchiveBackend)
	if err != nil {
		return err
	}
	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = input.ArchiveDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect); err != nil {
		return err
	}

	cfg.Archive = input.Archive
	if cfg.Archive && cfg.ArchiveBackend == schema.NoneBackend {
		return fmt.Errorf("--archive requires an archive-backend other than none")
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.BankFile = strings.TrimSpace(input.BankFile)

	emojis, err := parseBoolDefault(input.Emoji, false)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := parseBoolDefault(input.Color, true)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(input.LogFormat))
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = DefaultLogFormat
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format '%s'. must be console, json", input.LogFormat)
	}

	return nil
}

// processQuizInputs handles the quiz path, scripted answers and gap tuning.
func processQuizInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Path = schema.QuizPath(strings.ToLower(strings.TrimSpace(input.Path)))
	if cfg.Path == "" {
		cfg.Path = schema.ExplorerPath
	}
	if _, ok := schema.ValidQuizPaths[cfg.Path]; !ok {
		return fmt.Errorf("invalid path '%s'. must be explorer, specialist, operator, calibration", input.Path)
	}

	cfg.Answers = SplitList(input.Answers)
	cfg.Shuffle = input.Shuffle

	cfg.Reflex = nil
	for _, raw := range SplitList(input.Reflex) {
		action := schema.ReflexAction(strings.ToUpper(raw))
		if _, ok := schema.ValidReflexActions[action]; !ok {
			return fmt.Errorf("invalid reflex action '%s'. must be NEUTRALIZE, DROP, FREEZE", raw)
		}
		cfg.Reflex = append(cfg.Reflex, action)
	}

	if input.TKSBaseline < 0 || input.TKSBaseline > 100 {
		return fmt.Errorf("tks-baseline must be between 0 and 100 (received %.2f)", input.TKSBaseline)
	}
	cfg.TKSBaseline = input.TKSBaseline

	if input.MaxDeployments < 0 || input.MaxDeployments > MaxDeploymentsLimit {
		return fmt.Errorf("max-deployments must be between 0 and %d (received %d)", MaxDeploymentsLimit, input.MaxDeployments)
	}
	cfg.MaxDeployments = input.MaxDeployments

	if input.TopGaps < 0 || input.TopGaps > len(schema.AllCategories) {
		return fmt.Errorf("top-gaps must be between 0 and %d (received %d)", len(schema.AllCategories), input.TopGaps)
	}
	cfg.TopGaps = input.TopGaps

	return nil
}

// processServerInputs handles the session registry and HTTP settings.
func processServerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.CORSOrigins = SplitList(input.CORSOrigins)

	cfg.SessionTTL = DefaultSessionTTL
	if input.SessionTTL != "" {
		ttl, err := time.ParseDuration(input.SessionTTL)
		if err != nil {
			return fmt.Errorf("invalid session-ttl '%s': %w", input.SessionTTL, err)
		}
		if ttl <= 0 {
			return fmt.Errorf("session-ttl must be positive (received %s)", input.SessionTTL)
		}
		cfg.SessionTTL = ttl
	}

	switch {
	case input.MaxSessions == 0:
		cfg.MaxSessions = DefaultMaxSessions
	case input.MaxSessions < 0 || input.MaxSessions > MaxSessionsLimit:
		return fmt.Errorf("max-sessions must be between 1 and %d (received %d)", MaxSessionsLimit, input.MaxSessions)
	default:
		cfg.MaxSessions = input.MaxSessions
	}

	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func parseBoolDefault(s string, def bool) (bool, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseBoolString(s)
}
