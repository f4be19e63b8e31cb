package core

import "github.com/huangsam/cybercompass/schema"

// XP awards.
const (
	XPReflexCorrect      = 5
	XPInstinctChoice     = 8
	XPTechnicalCorrect   = 12
	XPExplorerComplete   = 50
	XPSpecialistComplete = 100
	XPOperatorComplete   = 75
	XPReflexLabComplete  = 40
)

// AgentRank is an XP threshold and the rank it unlocks.
type AgentRank struct {
	MinXP int
	Title string
}

// AgentRanks are ordered by ascending threshold.
var AgentRanks = []AgentRank{
	{0, "Security Initiate"},
	{50, "Apprentice"},
	{150, "Agent"},
	{300, "Specialist"},
	{500, "Operator"},
}

// RankForXP returns the highest rank whose threshold does not exceed xp.
func RankForXP(xp int) string {
	for i := len(AgentRanks) - 1; i >= 0; i-- {
		if xp >= AgentRanks[i].MinXP {
			return AgentRanks[i].Title
		}
	}
	return AgentRanks[0].Title
}

// PathCompletionXP returns the bonus for finishing every question of a path.
// Calibration runs earn no completion bonus.
func PathCompletionXP(path schema.QuizPath) int {
	switch path {
	case schema.SpecialistPath:
		return XPSpecialistComplete
	case schema.OperatorPath:
		return XPOperatorComplete
	case schema.ExplorerPath:
		return XPExplorerComplete
	default:
		return 0
	}
}

// PathFactor scales answer weights, reflex weights and per-answer XP.
// Specialist and operator runs count double; completion bonuses are not scaled.
func PathFactor(path schema.QuizPath) int {
	switch path {
	case schema.SpecialistPath, schema.OperatorPath:
		return 2
	default:
		return 1
	}
}
