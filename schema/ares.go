package schema

import "strings"

// Scenario is a Project Ares battle room (BR) or mission (M).
type Scenario struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TrainingValue string `json:"training_value"`
}

// DefaultNiceRole is used when an app role or category has no NICE mapping.
const DefaultNiceRole NiceRoleID = "PD-WRL-001"

// DefaultLearningPathKey is used when a NICE role has no learning path.
const DefaultLearningPathKey = "computer_networking"

// DefaultScenarioIDs is used when a NICE role has no scenario list.
var DefaultScenarioIDs = []string{"BR8", "M10E", "M4E", "BR9"}

// AresScenarios is the scenario catalog keyed by scenario id.
var AresScenarios = map[string]Scenario{
	"BR1":    {"BR1", "System Integrator", "Vulnerability scanning, reconnaissance, and firewall analysis. Aligns with Defensive Cybersecurity and Vulnerability Analysis roles."},
	"BR2":    {"BR2", "Network Analyst", "Configuring Snort, analyzing packet captures with Wireshark/tcpdump. Directly supports Network Operations, Incident Response, and Defensive Cybersecurity."},
	"BR5":    {"BR5", "Intel Analyst", "All-Source and Cyber Intelligence Planning. Supports threat analysis and target network analysis."},
	"BR6":    {"BR6", "Linux Basics", "File management, permissions, process monitoring. Essential for Systems Administration and Technical Support."},
	"BR8":    {"BR8", "Network Traffic Analysis", "Packet analysis for incident response and digital forensics. Critical for Network Operations, Defensive Cybersecurity, and Threat Analysis."},
	"BR9":    {"BR9", "Forensics", "Digital evidence analysis and forensic investigation techniques. Aligns with Digital Forensics and Cybercrime Investigation roles."},
	"BR10":   {"BR10", "Python Scripting Fundamentals", "Automation and analysis scripts for security and system administration. Supports Secure Software Development and Systems Administration."},
	"BR11":   {"BR11", "System Security Analyst", "Systems monitoring, configuration, and security analysis. Aligns with Systems Security Analysis, Incident Response, and Defensive Cybersecurity."},
	"BR21":   {"BR21", "PowerShell Fundamentals", "Command-line scripting and automation for system and network management. Supports Systems Administration and Incident Response."},
	"BR1001": {"BR1001", "Windows Fundamentals 1: File System", "File system management and security controls. Foundation for Systems Administration and Digital Evidence Analysis."},
	"BR1002": {"BR1002", "Windows Fundamentals 2: Services", "Managing processes, services, and scheduled tasks. Essential for Systems Administration and Incident Response."},
	"BR1003": {"BR1003", "Windows Fundamentals 3: Registry", "Registry management and forensic analysis. Supports Systems Security, Digital Forensics, and Incident Response."},
	"BR1004": {"BR1004", "Windows Fundamentals 4: Networking", "Network settings, troubleshooting, and connectivity. Aligns with Network Operations and Systems Administration."},
	"M1E":    {"M1E", "Disable Botnet", "Incident response and cyberspace operations to take down C2 infrastructure. Aligns with Incident Response and Digital Forensics."},
	"M2E":    {"M2E", "Stop Terrorist Financing", "Digital evidence analysis, cybercrime investigation, and threat assessment. Supports multi-role investigative operations."},
	"M3E":    {"M3E", "Intercept Attack Plans", "Vulnerability analysis and penetration testing. Supports Exploitation Analysis and Target Network Analysis."},
	"M4E":    {"M4E", "Stop Malicious Processes", "Incident response, digital forensics, and stopping data exfiltration. Critical for Incident Response and Defensive Cybersecurity."},
	"M5E":    {"M5E", "Protect Financial Institution", "Malware response, digital forensics, and defensive cybersecurity. Aligns with Incident Response and Defensive Cybersecurity."},
	"M8E":    {"M8E", "Defend ICS/SCADA System", "Incident response and defense of critical infrastructure. Essential for ICS/SCADA security and Defensive Cybersecurity."},
	"M9E":    {"M9E", "Manipulate Industrial Control System", "Cyberspace operations and vulnerability analysis for industrial systems. Supports Exploitation Analysis and ICS security."},
	"M10E":   {"M10E", "Ransomware", "Incident response, digital forensics, and defending against ransomware. Critical for Defensive Cybersecurity and Incident Response."},
}

// NiceRoleScenarios lists the scenarios that address each NICE role, in priority order.
var NiceRoleScenarios = map[NiceRoleID][]string{
	"PD-WRL-001": {"BR8", "M4E", "M10E", "M5E", "BR11", "BR2"},
	"PD-WRL-002": {"BR9", "M4E", "M5E", "M10E", "M8E", "BR1001", "BR1003"},
	"PD-WRL-003": {"M10E", "M4E", "M5E", "M8E", "BR8", "BR2", "BR11", "M1E"},
	"PD-WRL-004": {"BR6", "BR21", "BR1004", "M8E", "M10E"},
	"PD-WRL-006": {"BR2", "BR8", "BR5", "M4E", "M5E", "M10E"},
	"PD-WRL-007": {"BR1", "BR8", "M8E", "M5E", "M10E", "M3E"},
	"IO-WRL-004": {"BR1004", "BR2", "BR8", "BR6", "M4E", "M8E"},
	"IO-WRL-005": {"BR1001", "BR1002", "BR1003", "BR1004", "BR6", "BR21", "BR10"},
	"IO-WRL-006": {"BR11", "BR21", "BR1004", "M8E", "M10E"},
	"IN-WRL-001": {"BR9", "BR2", "M4E", "M5E", "M10E", "M2E", "M1E"},
	"IN-WRL-002": {"BR9", "BR1001", "M2E", "M4E", "M5E", "BR1003", "BR1004"},
}

// CategoryNiceRole maps a category to the NICE role used for its training.
var CategoryNiceRole = map[Category]NiceRoleID{
	ProtectAndDefend:   "PD-WRL-001",
	CollectAndOperate:  "IO-WRL-005",
	SecurelyProvision:  "PD-WRL-007",
	Analyze:            "PD-WRL-006",
	Investigate:        "IN-WRL-001",
	OperateAndMaintain: "IO-WRL-004",
	OverseeAndGovern:   "PD-WRL-001",
}

// CategoryScenarios lists the scenarios recommended for a weak category.
var CategoryScenarios = map[Category][]string{
	ProtectAndDefend:   {"BR8", "M4E", "M10E", "M5E", "BR11", "BR2"},
	SecurelyProvision:  {"BR1", "BR8", "M8E", "M5E", "M10E", "M3E"},
	Analyze:            {"BR2", "BR8", "BR5", "M4E", "M5E", "M10E"},
	CollectAndOperate:  {"BR1001", "BR1002", "BR1003", "BR1004", "BR6", "BR21", "BR10"},
	Investigate:        {"BR9", "BR2", "M4E", "M5E", "M10E", "M2E", "M1E"},
	OperateAndMaintain: {"BR1004", "BR2", "BR8", "BR6", "M4E", "M8E"},
	OverseeAndGovern:   {"BR8", "M4E", "M10E", "M5E", "BR11", "BR2"},
}

// AppRoleNiceID maps an app work role to its closest NICE role.
var AppRoleNiceID = map[RoleID]NiceRoleID{
	"PR-CDA":     "PD-WRL-001",
	"PR-IR":      "PD-WRL-003",
	"SP-SSE":     "PD-WRL-007",
	"SP-ARC":     "PD-WRL-007",
	"AN-TWA":     "PD-WRL-006",
	"IN-CLI":     "IN-WRL-001",
	"OG-WRL-017": "PD-WRL-001",
	"NF-COM-008": "IO-WRL-005",
}

// NiceRoleLearningPath maps a NICE role to its learning path key.
var NiceRoleLearningPath = map[NiceRoleID]string{
	"PD-WRL-001": "endpoint_security",
	"PD-WRL-002": "endpoint_security",
	"PD-WRL-003": "advanced_networking",
	"PD-WRL-004": "windows_fundamentals",
	"PD-WRL-006": "advanced_networking",
	"PD-WRL-007": "computer_networking",
	"IO-WRL-004": "computer_networking",
	"IO-WRL-005": "windows_fundamentals",
	"IO-WRL-006": "intermediate_endpoint_security",
	"IN-WRL-001": "advanced_networking",
	"IN-WRL-002": "advanced_networking",
}

// learningPathNames are the display names of learning path keys.
var learningPathNames = map[string]string{
	"computer_networking":                     "Computer Networking",
	"network_systems_operations":              "Network Systems Operations",
	"endpoint_security":                       "Endpoint Security",
	"windows_fundamentals":                    "Windows Fundamentals",
	"intermediate_networking":                 "Intermediate Networking",
	"intermediate_network_systems_operations": "Intermediate Network Systems Operations",
	"intermediate_endpoint_security":          "Intermediate Endpoint Security",
	"advanced_networking":                     "Advanced Networking",
	"advanced_network_systems_operations":     "Advanced Network Systems Operations",
	"advanced_endpoint_security":              "Advanced Endpoint Security",
}

// LearningPathName returns the display name of a learning path key.
// Unknown keys are title-cased with underscores as spaces.
func LearningPathName(key string) string {
	if name, ok := learningPathNames[key]; ok {
		return name
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// ClosestNiceRole returns the NICE role for an app work role.
func ClosestNiceRole(id RoleID) NiceRoleID {
	if nice, ok := AppRoleNiceID[id]; ok {
		return nice
	}
	return DefaultNiceRole
}

// LearningPathKeyFor returns the learning path key for a NICE role.
func LearningPathKeyFor(id NiceRoleID) string {
	if key, ok := NiceRoleLearningPath[id]; ok {
		return key
	}
	return DefaultLearningPathKey
}

// ScenariosFor returns the scenario ids for a NICE role.
func ScenariosFor(id NiceRoleID) []string {
	if ids, ok := NiceRoleScenarios[id]; ok {
		return ids
	}
	return DefaultScenarioIDs
}
