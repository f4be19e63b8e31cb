package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/huangsam/cybercompass/schema"
)

// Default values for the capability gap engine.
const (
	DefaultTopGaps        = 3
	DefaultMaxDeployments = 8
)

// GapOptions tunes CalculateGaps. Zero values pick the defaults.
type GapOptions struct {
	TKSBaseline    float64
	MaxDeployments int
}

// TopGaps returns the n largest gaps between scores and baseline, largest first.
// A nil baseline means the professional baseline; categories missing from the
// baseline use the elite baseline. Categories with no gap are left out.
func TopGaps(scores, baseline map[schema.Category]float64, n int) []schema.Gap {
	if baseline == nil {
		baseline = schema.ProfessionalBaseline
	}

	var gaps []schema.Gap
	for _, c := range schema.AllCategories {
		b, ok := baseline[c]
		if !ok {
			b = schema.EliteBaseline
		}
		gap := max(0, b-scores[c])
		if gap > 0 {
			gaps = append(gaps, schema.Gap{Category: c, Size: gap, Label: schema.CategoryLabel(c)})
		}
	}
	slices.SortStableFunc(gaps, func(a, b schema.Gap) int {
		return cmp.Compare(b.Size, a.Size)
	})
	if n >= 0 && len(gaps) > n {
		gaps = gaps[:n]
	}
	return gaps
}

// CalculateGaps finds the categories and roles below their baselines and
// assembles a deduplicated list of training deployments for them.
func CalculateGaps(s *ScoreState, opts GapOptions) schema.GapAnalysis {
	baseline := opts.TKSBaseline
	if baseline <= 0 {
		baseline = schema.DefaultCompetencyBaseline
	}
	limit := opts.MaxDeployments
	if limit <= 0 {
		limit = DefaultMaxDeployments
	}

	radar := s.NormalizedRadarScores()
	roles := s.RoleProbabilities()

	areas := []schema.TKSArea{}
	for _, c := range schema.AllCategories {
		if radar[c] < baseline {
			areas = append(areas, schema.TKSArea{Category: c, Score: radar[c], Baseline: baseline})
		}
	}
	slices.SortStableFunc(areas, func(a, b schema.TKSArea) int {
		return cmp.Compare(a.Score, b.Score)
	})

	rolesBelow := []schema.RoleGap{}
	for _, id := range schema.AllRoleIDs {
		roleBaseline := schema.BaselineForAppRole(id)
		if roles[id] < roleBaseline {
			rolesBelow = append(rolesBelow, schema.RoleGap{Role: id, MatchPct: roles[id], Baseline: roleBaseline})
		}
	}
	slices.SortStableFunc(rolesBelow, func(a, b schema.RoleGap) int {
		return cmp.Compare(a.MatchPct, b.MatchPct)
	})

	var niceRoles []schema.NiceRoleID
	for _, r := range rolesBelow {
		niceRoles = appendUnique(niceRoles, schema.ClosestNiceRole(r.Role))
	}
	if len(niceRoles) == 0 {
		for _, a := range areas {
			if nice, ok := schema.CategoryNiceRole[a.Category]; ok {
				niceRoles = appendUnique(niceRoles, nice)
			}
		}
	}
	if len(niceRoles) == 0 {
		nice, ok := schema.CategoryNiceRole[s.DominantAptitude()]
		if !ok {
			nice = schema.DefaultNiceRole
		}
		niceRoles = []schema.NiceRoleID{nice}
	}

	deployments := []schema.Deployment{}
	seen := make(map[string]struct{})
	for _, nice := range niceRoles {
		if len(deployments) >= limit {
			break
		}
		for _, id := range schema.ScenariosFor(nice) {
			if len(deployments) >= limit {
				break
			}
			if _, dup := seen[id]; dup {
				continue
			}
			d, ok := deploymentFor(id, nice)
			if !ok {
				continue
			}
			seen[id] = struct{}{}
			deployments = append(deployments, d)
		}
	}

	return schema.GapAnalysis{
		TKSAreasBelow:  areas,
		WorkRolesBelow: rolesBelow,
		Deployments:    deployments,
	}
}

// deploymentFor builds the deployment record of a scenario under a NICE role.
func deploymentFor(id string, nice schema.NiceRoleID) (schema.Deployment, bool) {
	sc, ok := schema.AresScenarios[id]
	if !ok {
		return schema.Deployment{}, false
	}
	key := schema.LearningPathKeyFor(nice)
	kind := "BR"
	if strings.HasPrefix(id, "M") {
		kind = "M"
	}
	return schema.Deployment{
		ID:              id,
		Title:           sc.Title,
		TrainingValue:   sc.TrainingValue,
		LearningPath:    schema.LearningPathName(key),
		LearningPathKey: key,
		Type:            kind,
	}, true
}

func appendUnique[T comparable](list []T, v T) []T {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
