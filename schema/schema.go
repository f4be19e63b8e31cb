// Package schema has the data model, static tables and constants for all parts of cybercompass.
package schema

import "time"

// Gap is the distance between a category score and its baseline.
type Gap struct {
	Category Category `json:"category"`
	Size     float64  `json:"gap"`
	Label    string   `json:"label"`
}

// TKSArea is a category whose normalized score sits below the competency baseline.
type TKSArea struct {
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Baseline float64  `json:"baseline"`
}

// RoleGap is a work role whose match percentage sits below its baseline.
type RoleGap struct {
	Role     RoleID  `json:"role_id"`
	MatchPct float64 `json:"match_pct"`
	Baseline float64 `json:"baseline"`
}

// Deployment is a recommended training scenario.
type Deployment struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	TrainingValue   string `json:"training_value"`
	LearningPath    string `json:"learning_path"`
	LearningPathKey string `json:"learning_path_key"`
	Type            string `json:"type"` // BR or M
}

// AresRecommendation is a scenario picked for one of the weakest categories.
type AresRecommendation struct {
	MissionID string `json:"mission_id"`
	Title     string `json:"title"`
	Relevance string `json:"relevance"`
}

// GapAnalysis is the output of the capability gap engine.
type GapAnalysis struct {
	TKSAreasBelow  []TKSArea    `json:"tks_areas_below"`
	WorkRolesBelow []RoleGap    `json:"work_roles_below"`
	Deployments    []Deployment `json:"recommended_training_deployments"`
}

// NodeMapEntry is one node of the roadmap mission map.
type NodeMapEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Type    string `json:"type"`
}

// RoadmapGap is a top gap paired with its learning objectives.
type RoadmapGap struct {
	Gap
	Objectives []string `json:"objectives"`
}

// Roadmap is the professional development roadmap.
type Roadmap struct {
	NodeMap               []NodeMapEntry  `json:"node_map"`
	Deployments           []Deployment    `json:"deployments"`
	TopCategoryDeployment []Deployment    `json:"top_category_deployments"`
	TopGaps               []RoadmapGap    `json:"top_gaps"`
	Credentials           []GapCredential `json:"credentials"`
}

// CategoryScore is one row of the category table.
type CategoryScore struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Raw      float64  `json:"raw"`
	Radar    float64  `json:"radar"`
	Baseline float64  `json:"baseline"`
	Gap      float64  `json:"gap"`
}

// RoleMatch is one row of the role probability table.
type RoleMatch struct {
	Role     RoleID  `json:"role_id"`
	MatchPct float64 `json:"match_pct"`
}

// Dossier is the full result of a finished session.
type Dossier struct {
	SessionID      string               `json:"session_id"`
	Path           QuizPath             `json:"path"`
	GeneratedAt    time.Time            `json:"generated_at"`
	Archetype      RevealArchetype      `json:"archetype"`
	Dominant       Category             `json:"dominant"`
	Aptitude       LegacyAptitude       `json:"aptitude"`
	KnowledgeLevel int                  `json:"knowledge_level"`
	WorkRole       WorkRole             `json:"work_role"`
	NistRoleID     string               `json:"nist_role_id"`
	Certifications []Certification      `json:"certifications"`
	Categories     []CategoryScore      `json:"categories"`
	Roles          []RoleMatch          `json:"roles"`
	TopRoleMatch   float64              `json:"top_role_match_pct"`
	TopGaps        []Gap                `json:"top_gaps"`
	Gaps           GapAnalysis          `json:"gap_analysis"`
	Ares           []AresRecommendation `json:"ares_recommendations"`
	Roadmap        *Roadmap             `json:"roadmap,omitempty"`
	ReflexComplete bool                 `json:"reflex_complete"`
	XP             int                  `json:"xp"`
	Rank           string               `json:"rank"`
	SalaryRange    string               `json:"salary_range,omitempty"`
}
