package core

import (
	"cmp"
	"slices"

	"github.com/huangsam/cybercompass/schema"
)

// Default values for scenario recommendations.
const (
	DefaultMaxPerCategory = 4
	DefaultMaxCards       = 4
)

// AresRecommendations picks scenarios for the two weakest raw categories.
func AresRecommendations(s *ScoreState, maxPerCategory int) []schema.AresRecommendation {
	if maxPerCategory <= 0 {
		maxPerCategory = DefaultMaxPerCategory
	}

	raw := s.CategoryScores()
	ordered := slices.Clone(schema.AllCategories)
	slices.SortStableFunc(ordered, func(a, b schema.Category) int {
		return cmp.Compare(raw[a], raw[b])
	})

	out := []schema.AresRecommendation{}
	seen := make(map[string]struct{})
	for _, c := range ordered[:min(2, len(ordered))] {
		ids := schema.CategoryScenarios[c]
		for _, id := range ids[:min(maxPerCategory, len(ids))] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			sc, ok := schema.AresScenarios[id]
			if !ok {
				continue
			}
			out = append(out, schema.AresRecommendation{
				MissionID: id,
				Title:     sc.Title,
				Relevance: sc.TrainingValue,
			})
		}
	}
	return out
}

// RecommendedDeployments returns training for the closest NICE role of the
// session's work role. It is empty once the average radar score reaches the
// competency threshold.
func RecommendedDeployments(s *ScoreState, maxCards int) []schema.Deployment {
	if averageRadar(s.NormalizedRadarScores()) >= schema.CompetencyThreshold {
		return []schema.Deployment{}
	}
	role := WorkRoleFor(s.DominantAptitude(), s.KnowledgeLevel())
	return deploymentsForNiceRole(schema.ClosestNiceRole(role.ID), maxCards)
}

// TopCategoryDeployments returns training aligned with the strongest radar category.
func TopCategoryDeployments(s *ScoreState, maxCards int) []schema.Deployment {
	radar := s.NormalizedRadarScores()
	top := schema.AllCategories[0]
	for _, c := range schema.AllCategories[1:] {
		if radar[c] > radar[top] {
			top = c
		}
	}
	nice, ok := schema.CategoryNiceRole[top]
	if !ok {
		nice = schema.DefaultNiceRole
	}
	return deploymentsForNiceRole(nice, maxCards)
}

func deploymentsForNiceRole(nice schema.NiceRoleID, maxCards int) []schema.Deployment {
	if maxCards <= 0 {
		maxCards = DefaultMaxCards
	}
	out := []schema.Deployment{}
	for _, id := range schema.ScenariosFor(nice) {
		if len(out) >= maxCards {
			break
		}
		if d, ok := deploymentFor(id, nice); ok {
			out = append(out, d)
		}
	}
	return out
}
