package schema

// categoryLabels are the display labels used on radar charts and reports.
var categoryLabels = map[Category]string{
	SecurelyProvision:  "Securely Provision",
	ProtectAndDefend:   "Protect & Defend",
	Analyze:            "Analyze",
	CollectAndOperate:  "Collect & Operate",
	Investigate:        "Investigate",
	OperateAndMaintain: "Operate & Maintain",
	OverseeAndGovern:   "Oversee & Govern",
}

// categoryAliases maps every accepted weight key to its canonical code.
// Question content may use either codes or display names.
var categoryAliases = map[string]Category{
	"SP":                   SecurelyProvision,
	"PR":                   ProtectAndDefend,
	"AN":                   Analyze,
	"CO":                   CollectAndOperate,
	"IN":                   Investigate,
	"OM":                   OperateAndMaintain,
	"OV":                   OverseeAndGovern,
	"Securely Provision":   SecurelyProvision,
	"Protect and Defend":   ProtectAndDefend,
	"Protect & Defend":     ProtectAndDefend,
	"Analyze":              Analyze,
	"Collect and Operate":  CollectAndOperate,
	"Collect & Operate":    CollectAndOperate,
	"Investigate":          Investigate,
	"Operate and Maintain": OperateAndMaintain,
	"Operate & Maintain":   OperateAndMaintain,
	"Oversee and Govern":   OverseeAndGovern,
	"Oversee & Govern":     OverseeAndGovern,
}

// CategoryLabel returns the display label of a category, or its code if unknown.
func CategoryLabel(c Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// NormalizeCategory resolves a weight key to its canonical category code.
// Matching is exact; callers should not rely on case folding.
func NormalizeCategory(key string) (Category, bool) {
	c, ok := categoryAliases[key]
	return c, ok
}

// AptitudeFor maps a dominant category to its legacy aptitude bucket.
func AptitudeFor(c Category) LegacyAptitude {
	switch c {
	case SecurelyProvision, OperateAndMaintain, OverseeAndGovern:
		return BuilderAptitude
	case ProtectAndDefend, CollectAndOperate:
		return GuardianAptitude
	default:
		return InvestigatorAptitude
	}
}
