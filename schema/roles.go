package schema

// Knowledge levels.
const (
	EntryLevel        = 0
	IntermediateLevel = 1
)

// WorkRole is a NICE framework work role recommendation.
type WorkRole struct {
	ID         RoleID `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Definition string `json:"definition"`
	Strengths  string `json:"strengths_summary"`
}

// Certification is a certification recommendation.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Level  string `json:"level"`
	URL    string `json:"url,omitempty"`
}

// RevealArchetype is the narrative identity shown at the end of a quiz.
type RevealArchetype struct {
	ID          ArchetypeID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// AptitudeKey indexes the work role and certification tables.
type AptitudeKey struct {
	Aptitude LegacyAptitude
	Level    int
}

// AllRoleIDs lists every role in the role weight table, in report order.
var AllRoleIDs = []RoleID{
	"SP-SSE", "SP-ARC", "PR-CDA", "PR-IR", "AN-TWA", "IN-CLI",
	"OG-WRL-017", "NF-COM-008",
}

// RoleCategoryWeights holds the relative category weights of each role.
// Weights do not sum to one and are only used for ranking.
var RoleCategoryWeights = map[RoleID]map[Category]float64{
	"SP-SSE":     {SecurelyProvision: 0.55, OperateAndMaintain: 0.30, OverseeAndGovern: 0.15},
	"SP-ARC":     {SecurelyProvision: 0.60, OperateAndMaintain: 0.25, OverseeAndGovern: 0.15},
	"PR-CDA":     {ProtectAndDefend: 0.60, CollectAndOperate: 0.30, Analyze: 0.10},
	"PR-IR":      {ProtectAndDefend: 0.55, CollectAndOperate: 0.25, Investigate: 0.20},
	"AN-TWA":     {Analyze: 0.60, Investigate: 0.25, OverseeAndGovern: 0.15},
	"IN-CLI":     {Investigate: 0.60, Analyze: 0.25, OverseeAndGovern: 0.15},
	"OG-WRL-017": {OverseeAndGovern: 0.50, Analyze: 0.25, ProtectAndDefend: 0.25},
	"NF-COM-008": {SecurelyProvision: 0.50, OperateAndMaintain: 0.35, CollectAndOperate: 0.15},
}

// WorkRoles by (aptitude, knowledge level).
var WorkRoles = map[AptitudeKey]WorkRole{
	{BuilderAptitude, EntryLevel}: {
		ID:         "SP-SSE",
		Title:      "Secure Software Assessor",
		Category:   "Securely Provision (SP)",
		Definition: "Assesses the security of software and systems through testing and analysis.",
		Strengths:  "You excel at structured assessment and building security into the development lifecycle.",
	},
	{BuilderAptitude, IntermediateLevel}: {
		ID:         "SP-ARC",
		Title:      "Security Architect",
		Category:   "Securely Provision (SP)",
		Definition: "Designs and builds secure systems, networks, and architectures.",
		Strengths:  "You combine design thinking with security principles to create resilient systems.",
	},
	{GuardianAptitude, EntryLevel}: {
		ID:         "PR-CDA",
		Title:      "Cyber Defense Analyst",
		Category:   "Protect and Defend (PR)",
		Definition: "Monitors and analyzes events to protect systems and respond to incidents.",
		Strengths:  "You thrive in defending systems and responding to threats in real time.",
	},
	{GuardianAptitude, IntermediateLevel}: {
		ID:         "PR-IR",
		Title:      "Incident Responder",
		Category:   "Protect and Defend (PR)",
		Definition: "Investigates and mitigates security incidents and coordinates response activities.",
		Strengths:  "You lead under pressure and coordinate teams to contain and remediate incidents.",
	},
	{InvestigatorAptitude, EntryLevel}: {
		ID:         "AN-TWA",
		Title:      "Threat/Warning Analyst",
		Category:   "Analyze (AN)",
		Definition: "Analyzes threat data and produces assessments and warnings for decision makers.",
		Strengths:  "You connect dots across data to surface threats and inform strategy.",
	},
	{InvestigatorAptitude, IntermediateLevel}: {
		ID:         "IN-CLI",
		Title:      "Cyber Crime Investigator",
		Category:   "Investigate (IN)",
		Definition: "Investigates cyber crimes and compiles evidence for legal proceedings.",
		Strengths:  "You pursue leads methodically and build cases that stand up to scrutiny.",
	},
}

// CertificationURLs points at the official page of each certification.
var CertificationURLs = map[string]string{
	"CompTIA Security+":                                       "https://www.comptia.org/certifications/security",
	"GIAC Secure Software Programmer (GSSP)":                  "https://www.giac.org/certifications/secure-software-programmer-gssp",
	"Certified Secure Software Lifecycle Professional (CSSLP)": "https://www.isc2.org/certifications/csslp",
	"GIAC Cloud Security Automation (GCSA)":                   "https://www.giac.org/certifications/cloud-security-automation-gcsa",
	"GIAC Security Essentials (GSEC)":                         "https://www.giac.org/certifications/security-essentials-gsec",
	"GIAC Certified Incident Handler (GCIH)":                  "https://www.giac.org/certifications/certified-incident-handler-gcih",
	"Certified Incident Handler (ECIH)":                       "https://www.eccouncil.org/certifications/certified-incident-handler-ecih/",
	"CompTIA Cybersecurity Analyst (CySA+)":                   "https://www.comptia.org/certifications/cybersecurity-analyst",
	"GIAC Cyber Threat Intelligence (GCTI)":                   "https://www.giac.org/certifications/cyber-threat-intelligence-gcti",
	"GIAC Certified Forensic Analyst (GCFA)":                  "https://www.giac.org/certifications/certified-forensic-analyst-gcfa",
	"Certified Cyber Forensics Professional (CCFP)":           "https://www.isc2.org/certifications/ccfp",
	"CISSP":                                                   "https://www.isc2.org/certifications/cissp",
}

func cert(name, issuer, level string) Certification {
	return Certification{Name: name, Issuer: issuer, Level: level, URL: CertificationURLs[name]}
}

// Certifications by (aptitude, knowledge level).
var Certifications = map[AptitudeKey][]Certification{
	{BuilderAptitude, EntryLevel}: {
		cert("CompTIA Security+", "CompTIA", "Entry"),
		cert("GIAC Secure Software Programmer (GSSP)", "GIAC", "Entry"),
	},
	{BuilderAptitude, IntermediateLevel}: {
		cert("Certified Secure Software Lifecycle Professional (CSSLP)", "ISC²", "Intermediate"),
		cert("GIAC Cloud Security Automation (GCSA)", "GIAC", "Intermediate"),
	},
	{GuardianAptitude, EntryLevel}: {
		cert("CompTIA Security+", "CompTIA", "Entry"),
		cert("GIAC Security Essentials (GSEC)", "GIAC", "Entry"),
	},
	{GuardianAptitude, IntermediateLevel}: {
		cert("GIAC Certified Incident Handler (GCIH)", "GIAC", "Intermediate"),
		cert("Certified Incident Handler (ECIH)", "EC-Council", "Intermediate"),
	},
	{InvestigatorAptitude, EntryLevel}: {
		cert("CompTIA Cybersecurity Analyst (CySA+)", "CompTIA", "Entry"),
		cert("GIAC Cyber Threat Intelligence (GCTI)", "GIAC", "Entry"),
	},
	{InvestigatorAptitude, IntermediateLevel}: {
		cert("GIAC Certified Forensic Analyst (GCFA)", "GIAC", "Intermediate"),
		cert("Certified Cyber Forensics Professional (CCFP)", "ISC²", "Intermediate"),
	},
}

// RevealArchetypes holds the reveal text of each archetype.
var RevealArchetypes = map[ArchetypeID]RevealArchetype{
	GuardianArchetype: {
		ID:          GuardianArchetype,
		Title:       "The Guardian",
		Description: "You protect and defend. Your profile aligns with Protect & Defend and Collect & Operate: monitoring, incident response, and securing systems at the edge.",
	},
	GhostArchetype: {
		ID:          GhostArchetype,
		Title:       "The Ghost",
		Description: "You investigate and operate in the shadows. Your profile aligns with Investigate: digital forensics, evidence analysis, and cybercrime investigation.",
	},
	ArchitectArchetype: {
		ID:          ArchitectArchetype,
		Title:       "The Architect",
		Description: "You build and maintain secure systems. Your profile aligns with Securely Provision and Operate & Maintain: designing defenses, hardening infrastructure, and keeping operations secure.",
	},
	AnalystArchetype: {
		ID:          AnalystArchetype,
		Title:       "The Analyst",
		Description: "You analyze and govern. Your profile aligns with Analyze and Oversee & Govern: threat intelligence, risk assessment, and strategic security leadership.",
	},
}

// DefaultArchetypeDescription is used when an archetype has no reveal entry.
const DefaultArchetypeDescription = "Your profile aligns with defensive cybersecurity and operational readiness."
