package core

import (
	"time"
	"unicode/utf8"

	"github.com/huangsam/cybercompass/schema"
)

// nodeSummaryLimit caps the scenario summary shown on the roadmap node map.
const nodeSummaryLimit = 60

// DossierOptions carries session context that the score state does not hold.
type DossierOptions struct {
	SessionID      string
	Path           schema.QuizPath
	XP             int
	ReflexComplete bool
	TopGaps        int
	Gaps           GapOptions
	Now            time.Time
}

// BuildRoadmap returns the development roadmap, or nil when the session does
// not qualify for one. A roadmap needs a completed reflex drill, a positive
// average radar score and at least one category below the readiness threshold.
func BuildRoadmap(s *ScoreState, reflexComplete bool) *schema.Roadmap {
	radar := s.NormalizedRadarScores()

	below := false
	for _, c := range schema.AllCategories {
		if radar[c] < schema.ReadinessThreshold {
			below = true
			break
		}
	}
	if !below || !reflexComplete {
		return nil
	}
	avg := averageRadar(radar)
	if avg <= 0 {
		return nil
	}

	roadmap := &schema.Roadmap{
		NodeMap:               []schema.NodeMapEntry{},
		Deployments:           []schema.Deployment{},
		TopCategoryDeployment: TopCategoryDeployments(s, DefaultMaxCards),
		TopGaps:               []schema.RoadmapGap{},
		Credentials:           []schema.GapCredential{},
	}
	for _, r := range AresRecommendations(s, DefaultMaxPerCategory) {
		kind := "BR"
		if len(r.MissionID) > 0 && r.MissionID[0] == 'M' {
			kind = "M"
		}
		roadmap.NodeMap = append(roadmap.NodeMap, schema.NodeMapEntry{
			ID:      r.MissionID,
			Title:   r.Title,
			Summary: truncate(r.Relevance, nodeSummaryLimit),
			Type:    kind,
		})
	}
	if avg < schema.CompetencyThreshold {
		roadmap.Deployments = RecommendedDeployments(s, DefaultMaxCards)
	}

	seen := make(map[string]struct{})
	for _, g := range TopGaps(radar, schema.ProfessionalBaseline, DefaultTopGaps) {
		roadmap.TopGaps = append(roadmap.TopGaps, schema.RoadmapGap{
			Gap:        g,
			Objectives: schema.LearningObjectives[g.Category],
		})
		creds := schema.GapCertRecommendations[g.Category]
		for _, cred := range creds[:min(2, len(creds))] {
			if _, dup := seen[cred.Name]; dup {
				continue
			}
			seen[cred.Name] = struct{}{}
			roadmap.Credentials = append(roadmap.Credentials, cred)
		}
	}
	return roadmap
}

// BuildDossier assembles every derived view of a session into one report.
func BuildDossier(s *ScoreState, opts DossierOptions) schema.Dossier {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.TopGaps <= 0 {
		opts.TopGaps = DefaultTopGaps
	}
	if opts.Path == "" {
		opts.Path = schema.ExplorerPath
	}

	dominant := s.DominantAptitude()
	level := s.KnowledgeLevel()
	role := WorkRoleFor(dominant, level)
	raw := s.CategoryScores()
	radar := s.NormalizedRadarScores()
	probs := s.RoleProbabilities()

	categories := make([]schema.CategoryScore, 0, len(schema.AllCategories))
	for _, c := range schema.AllCategories {
		baseline := schema.ProfessionalBaseline[c]
		categories = append(categories, schema.CategoryScore{
			Category: c,
			Label:    schema.CategoryLabel(c),
			Raw:      raw[c],
			Radar:    radar[c],
			Baseline: baseline,
			Gap:      max(0, baseline-radar[c]),
		})
	}
	roles := make([]schema.RoleMatch, 0, len(schema.AllRoleIDs))
	for _, id := range schema.AllRoleIDs {
		roles = append(roles, schema.RoleMatch{Role: id, MatchPct: probs[id]})
	}

	d := schema.Dossier{
		SessionID:      opts.SessionID,
		Path:           opts.Path,
		GeneratedAt:    opts.Now,
		Archetype:      s.RevealArchetype(),
		Dominant:       dominant,
		Aptitude:       schema.AptitudeFor(dominant),
		KnowledgeLevel: level,
		WorkRole:       role,
		NistRoleID:     NistRoleID(role),
		Certifications: CertificationsFor(dominant, level),
		Categories:     categories,
		Roles:          roles,
		TopRoleMatch:   s.TopRoleMatchPct(),
		TopGaps:        TopGaps(radar, nil, opts.TopGaps),
		Gaps:           CalculateGaps(s, opts.Gaps),
		Ares:           AresRecommendations(s, DefaultMaxPerCategory),
		Roadmap:        BuildRoadmap(s, opts.ReflexComplete),
		ReflexComplete: opts.ReflexComplete,
		XP:             opts.XP,
		Rank:           RankForXP(opts.XP),
	}
	if opts.Path == schema.SpecialistPath {
		d.SalaryRange = schema.SalaryRange
	}
	return d
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}
