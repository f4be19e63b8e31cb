package core

import (
	"testing"

	"github.com/huangsam/cybercompass/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAresRecommendations tests scenario picks for the two weakest categories.
func TestAresRecommendations(t *testing.T) {
	s := NewScoreState()
	// Leave IN and OM as the two weakest categories.
	s.AddContribution(map[string]float64{"SP": 1, "PR": 1, "AN": 1, "CO": 1, "OV": 1, "OM": 0.5})

	recs := AresRecommendations(s, 4)
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.MissionID)
		assert.Equal(t, schema.AresScenarios[r.MissionID].TrainingValue, r.Relevance)
	}
	// IN: BR9 BR2 M4E M5E, OM: BR1004 BR2 BR8 BR6 with BR2 deduped.
	assert.Equal(t, []string{"BR9", "BR2", "M4E", "M5E", "BR1004", "BR8", "BR6"}, ids)
}

// TestAresRecommendationsTies tests that ties keep canonical order.
func TestAresRecommendationsTies(t *testing.T) {
	recs := AresRecommendations(NewScoreState(), 2)
	// SP then PR: BR1 BR8, then BR8 (dup) M4E.
	ids := []string{}
	for _, r := range recs {
		ids = append(ids, r.MissionID)
	}
	assert.Equal(t, []string{"BR1", "BR8", "M4E"}, ids)
}

// TestRecommendedDeployments tests the competency threshold gate.
func TestRecommendedDeployments(t *testing.T) {
	t.Run("above threshold", func(t *testing.T) {
		assert.Empty(t, RecommendedDeployments(NewScoreState(), 4))
	})

	t.Run("below threshold", func(t *testing.T) {
		s := NewScoreState()
		s.AddContribution(map[string]float64{"PR": 0.9})
		deps := RecommendedDeployments(s, 4)
		require.Len(t, deps, 4)
		// PR-CDA maps to PD-WRL-001.
		assert.Equal(t, "BR8", deps[0].ID)
		assert.Equal(t, "M4E", deps[1].ID)
		assert.Equal(t, "M", deps[1].Type)
		assert.Equal(t, "endpoint_security", deps[0].LearningPathKey)
		assert.Equal(t, "Endpoint Security", deps[0].LearningPath)
	})

	t.Run("knowledge level changes the role", func(t *testing.T) {
		s := NewScoreState()
		s.AddContribution(map[string]float64{"PR": 0.9})
		s.AddTechnicalResult(true)
		deps := RecommendedDeployments(s, 2)
		// PR-IR maps to PD-WRL-003.
		require.Len(t, deps, 2)
		assert.Equal(t, "M10E", deps[0].ID)
		assert.Equal(t, "advanced_networking", deps[0].LearningPathKey)
	})
}

// TestTopCategoryDeployments tests strength based recommendations.
func TestTopCategoryDeployments(t *testing.T) {
	s := NewScoreState()
	s.AddContribution(map[string]float64{"CO": 2})
	deps := TopCategoryDeployments(s, 0)
	require.Len(t, deps, DefaultMaxCards)
	assert.Equal(t, []string{"BR1001", "BR1002", "BR1003", "BR1004"},
		[]string{deps[0].ID, deps[1].ID, deps[2].ID, deps[3].ID})
	assert.Equal(t, "Windows Fundamentals", deps[0].LearningPath)
}

// TestLearningPathName tests display names and the title case fallback.
func TestLearningPathName(t *testing.T) {
	assert.Equal(t, "Intermediate Endpoint Security", schema.LearningPathName("intermediate_endpoint_security"))
	assert.Equal(t, "Cloud Hardening Basics", schema.LearningPathName("cloud_hardening_basics"))
}
