package schema

// Custom string types for type safety.
type (
	// Category is one of the seven NICE competency axes.
	Category string

	// RoleID identifies a work role in the role weight table.
	RoleID string

	// NiceRoleID identifies a NICE framework work role used for training lookups.
	NiceRoleID string

	// LegacyAptitude is the coarse three-bucket classification used by
	// the work role and certification tables.
	LegacyAptitude string

	// ArchetypeID is the four-bucket narrative label shown at reveal time.
	ArchetypeID string

	// QuizPath names the sequence of phases a session walks through.
	QuizPath string

	// Phase names a block of questions inside a quiz path.
	Phase string

	// ReflexAction is the response a player can give to a reflex threat.
	ReflexAction string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the dossier archive.
	DatabaseBackend string
)

// All categories supported.
const (
	SecurelyProvision  Category = "SP"
	ProtectAndDefend   Category = "PR"
	Analyze            Category = "AN"
	CollectAndOperate  Category = "CO"
	Investigate        Category = "IN"
	OperateAndMaintain Category = "OM"
	OverseeAndGovern   Category = "OV"
)

// AllCategories is the canonical iteration order. Tie-breaks depend on it.
var AllCategories = []Category{
	SecurelyProvision,
	ProtectAndDefend,
	Analyze,
	CollectAndOperate,
	Investigate,
	OperateAndMaintain,
	OverseeAndGovern,
}

// CategoryBaseline is the starting value of every category.
const CategoryBaseline = 0.1

// All legacy aptitudes supported.
const (
	BuilderAptitude      LegacyAptitude = "Builder"
	GuardianAptitude     LegacyAptitude = "Guardian"
	InvestigatorAptitude LegacyAptitude = "Investigator"
)

// All archetypes supported.
const (
	GuardianArchetype  ArchetypeID = "guardian" // default
	GhostArchetype     ArchetypeID = "ghost"
	ArchitectArchetype ArchetypeID = "architect"
	AnalystArchetype   ArchetypeID = "analyst"
)

// All quiz paths supported.
const (
	ExplorerPath    QuizPath = "explorer" // default
	SpecialistPath  QuizPath = "specialist"
	OperatorPath    QuizPath = "operator"
	CalibrationPath QuizPath = "calibration"
)

// All question phases supported.
const (
	InstinctPhase   Phase = "instinct"
	TechnicalPhase  Phase = "technical"
	DeepPhase       Phase = "deep"
	TKSPhase        Phase = "tks"
	MissionPhase    Phase = "mission"
	ValidationPhase Phase = "validation"
)

// All reflex actions supported.
const (
	NeutralizeAction ReflexAction = "NEUTRALIZE"
	DropAction       ReflexAction = "DROP"
	FreezeAction     ReflexAction = "FREEZE"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidOutputModes lists all valid output modes for dossier rendering.
// Parquet files come from archive export only.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidQuizPaths lists all valid quiz paths.
var ValidQuizPaths = map[QuizPath]struct{}{
	ExplorerPath:    {},
	SpecialistPath:  {},
	OperatorPath:    {},
	CalibrationPath: {},
}

// ValidReflexActions lists all valid reflex actions.
var ValidReflexActions = map[ReflexAction]struct{}{
	NeutralizeAction: {},
	DropAction:       {},
	FreezeAction:     {},
}

// ValidDatabaseBackends lists all valid archive backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
