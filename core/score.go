package core

import (
	"maps"

	"github.com/huangsam/cybercompass/schema"
)

// ScoreState accumulates weighted category contributions for one session.
// It is not safe for concurrent use; callers keep one instance per session.
type ScoreState struct {
	scores           map[schema.Category]float64
	technicalCorrect int
	technicalTotal   int
}

// NewScoreState returns a state with every category at the baseline.
func NewScoreState() *ScoreState {
	scores := make(map[schema.Category]float64, len(schema.AllCategories))
	for _, c := range schema.AllCategories {
		scores[c] = schema.CategoryBaseline
	}
	return &ScoreState{scores: scores}
}

// AddContribution adds weights keyed by category code or display name.
// Keys that are not a known category are dropped.
func (s *ScoreState) AddContribution(weights map[string]float64) {
	s.AddScaledContribution(weights, 1)
}

// AddScaledContribution adds weights multiplied by factor.
func (s *ScoreState) AddScaledContribution(weights map[string]float64, factor float64) {
	for key, value := range weights {
		c, ok := schema.NormalizeCategory(key)
		if !ok {
			continue
		}
		s.scores[c] += value * factor
	}
}

// AddTechnicalResult records the outcome of one knowledge question.
func (s *ScoreState) AddTechnicalResult(correct bool) {
	s.technicalTotal++
	if correct {
		s.technicalCorrect++
	}
}

// TechnicalResults returns the number of correct answers and total attempts.
func (s *ScoreState) TechnicalResults() (correct, total int) {
	return s.technicalCorrect, s.technicalTotal
}

// CategoryScores returns a copy of the raw accumulated scores.
func (s *ScoreState) CategoryScores() map[schema.Category]float64 {
	return maps.Clone(s.scores)
}

// DominantAptitude returns the category with the highest raw score.
// Ties go to the first category in canonical order.
func (s *ScoreState) DominantAptitude() schema.Category {
	best := schema.AllCategories[0]
	for _, c := range schema.AllCategories[1:] {
		if s.scores[c] > s.scores[best] {
			best = c
		}
	}
	return best
}

// NormalizedRadarScores rescales raw scores so the strongest category is 100.
func (s *ScoreState) NormalizedRadarScores() map[schema.Category]float64 {
	var m float64
	for i, c := range schema.AllCategories {
		if i == 0 || s.scores[c] > m {
			m = s.scores[c]
		}
	}

	radar := make(map[schema.Category]float64, len(schema.AllCategories))
	for _, c := range schema.AllCategories {
		if m <= 0 {
			radar[c] = schema.CategoryBaseline
			continue
		}
		radar[c] = min(100, s.scores[c]/m*100)
	}
	return radar
}

// RoleProbabilities projects the raw scores onto every known role and
// rescales the results so the best matching role is 100.
func (s *ScoreState) RoleProbabilities() map[schema.RoleID]float64 {
	raw := make(map[schema.RoleID]float64, len(schema.AllRoleIDs))
	var m float64
	for _, id := range schema.AllRoleIDs {
		var score float64
		weights := schema.RoleCategoryWeights[id]
		for _, c := range schema.AllCategories {
			score += s.scores[c] * weights[c]
		}
		score = max(0, score)
		raw[id] = score
		m = max(m, score)
	}
	if len(raw) == 0 || m <= 0 {
		m = 1.0
	}

	probs := make(map[schema.RoleID]float64, len(raw))
	for id, score := range raw {
		probs[id] = min(100, score/m*100)
	}
	return probs
}

// TopRoleMatchPct returns the best role probability, or 0 without roles.
func (s *ScoreState) TopRoleMatchPct() float64 {
	var top float64
	for _, p := range s.RoleProbabilities() {
		top = max(top, p)
	}
	return top
}

// KnowledgeLevel is 1 when at least half (rounded up) of the technical
// answers were correct, otherwise 0.
func (s *ScoreState) KnowledgeLevel() int {
	if s.technicalTotal > 0 && s.technicalCorrect >= (s.technicalTotal+1)/2 {
		return schema.IntermediateLevel
	}
	return schema.EntryLevel
}

// Archetype maps the dominant category to one of the four narrative buckets.
func (s *ScoreState) Archetype() schema.ArchetypeID {
	switch s.DominantAptitude() {
	case schema.ProtectAndDefend, schema.CollectAndOperate:
		return schema.GuardianArchetype
	case schema.Investigate:
		return schema.GhostArchetype
	case schema.SecurelyProvision, schema.OperateAndMaintain:
		return schema.ArchitectArchetype
	case schema.Analyze, schema.OverseeAndGovern:
		return schema.AnalystArchetype
	default:
		return schema.GuardianArchetype
	}
}

// RevealArchetype returns the archetype with its display title and description.
func (s *ScoreState) RevealArchetype() schema.RevealArchetype {
	id := s.Archetype()
	if reveal, ok := schema.RevealArchetypes[id]; ok {
		return reveal
	}
	return schema.RevealArchetype{
		ID:          id,
		Title:       "The Guardian",
		Description: schema.DefaultArchetypeDescription,
	}
}

// averageRadar returns the mean normalized score across all categories.
func averageRadar(radar map[schema.Category]float64) float64 {
	var sum float64
	for _, c := range schema.AllCategories {
		sum += radar[c]
	}
	return sum / float64(len(schema.AllCategories))
}
