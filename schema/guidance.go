package schema

// Baselines on the 0..100 normalized scale.
const (
	EliteBaseline             = 70.0 // fallback for categories missing from a baseline map
	ReadinessThreshold        = 70.0 // below this a category earns a development roadmap
	DefaultCompetencyBaseline = 65.0 // default TKS and work role baseline
	CompetencyThreshold       = 65.0 // average radar below this earns training deployments
)

// ProfessionalBaseline is the default per-category target for gap ranking.
var ProfessionalBaseline = map[Category]float64{
	SecurelyProvision:  70,
	ProtectAndDefend:   70,
	Analyze:            70,
	CollectAndOperate:  70,
	Investigate:        70,
	OperateAndMaintain: 70,
	OverseeAndGovern:   70,
}

// AppRoleBaselines holds the competency baseline of each app work role.
var AppRoleBaselines = map[RoleID]float64{
	"SP-SSE":     65,
	"SP-ARC":     65,
	"PR-CDA":     65,
	"PR-IR":      65,
	"AN-TWA":     65,
	"IN-CLI":     65,
	"OG-WRL-017": 65,
	"NF-COM-008": 65,
}

// NiceRoleBaselines holds the competency baseline of each NICE work role.
var NiceRoleBaselines = map[NiceRoleID]float64{
	"PD-WRL-001": 65,
	"PD-WRL-002": 65,
	"PD-WRL-003": 65,
	"PD-WRL-004": 65,
	"PD-WRL-006": 65,
	"PD-WRL-007": 65,
	"IO-WRL-004": 65,
	"IO-WRL-005": 65,
	"IO-WRL-006": 65,
	"IN-WRL-001": 65,
	"IN-WRL-002": 65,
}

// BaselineForAppRole returns the baseline of an app role, falling back to the default.
func BaselineForAppRole(id RoleID) float64 {
	if b, ok := AppRoleBaselines[id]; ok {
		return b
	}
	return DefaultCompetencyBaseline
}

// BaselineForNiceRole returns the baseline of a NICE role, falling back to the default.
func BaselineForNiceRole(id NiceRoleID) float64 {
	if b, ok := NiceRoleBaselines[id]; ok {
		return b
	}
	return DefaultCompetencyBaseline
}

// GapCredential is a certification that addresses a category gap.
type GapCredential struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

// GapCertRecommendations maps a weak category to the credentials that close it.
var GapCertRecommendations = map[Category][]GapCredential{
	SecurelyProvision:  {{"Certified Secure Software Lifecycle Professional (CSSLP)", "ISC²"}, {"GIAC Secure Software Programmer (GSSP)", "GIAC"}},
	ProtectAndDefend:   {{"GIAC Certified Incident Handler (GCIH)", "GIAC"}, {"Certified Incident Handler (ECIH)", "EC-Council"}},
	Analyze:            {{"GIAC Cyber Threat Intelligence (GCTI)", "GIAC"}, {"CompTIA Cybersecurity Analyst (CySA+)", "CompTIA"}},
	CollectAndOperate:  {{"GIAC Security Essentials (GSEC)", "GIAC"}, {"CompTIA Security+", "CompTIA"}},
	Investigate:        {{"GIAC Certified Forensic Analyst (GCFA)", "GIAC"}, {"Certified Cyber Forensics Professional (CCFP)", "ISC²"}},
	OperateAndMaintain: {{"CompTIA Security+", "CompTIA"}, {"GIAC Cloud Security Automation (GCSA)", "GIAC"}},
	OverseeAndGovern:   {{"CISSP", "ISC²"}, {"CompTIA Security+", "CompTIA"}},
}

// LearningObjectives lists what to study for each category, most important first.
var LearningObjectives = map[Category][]string{
	SecurelyProvision:  {"Secure Software Development Lifecycle", "Zero-Trust Architecture Principles", "Secure Design Patterns"},
	ProtectAndDefend:   {"Mastering Network Triage", "Incident Response Playbooks", "Threat Hunting Fundamentals"},
	Analyze:            {"Threat Intelligence Analysis", "Data Correlation and Pattern Recognition", "Risk Assessment Methods"},
	CollectAndOperate:  {"Collection Operations and Legal Boundaries", "Sensor Deployment and Tuning", "Evidence Handling"},
	Investigate:        {"Digital Forensics and Evidence Preservation", "Investigation Methodologies", "Legal and Compliance Frameworks"},
	OperateAndMaintain: {"Security Operations Center (SOC) Operations", "Vulnerability Management Lifecycle", "Configuration and Patch Management"},
	OverseeAndGovern:   {"Cybersecurity Governance and Risk Management", "Security Program Development", "Third-Party and Supply Chain Risk"},
}

// SalaryRange is the typical salary band shown on the specialist dossier.
const SalaryRange = "$90K – $180K+"
