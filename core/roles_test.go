package core

import (
	"testing"

	"github.com/huangsam/cybercompass/schema"
	"github.com/stretchr/testify/assert"
)

// TestWorkRoleFor tests the legacy aptitude lookup.
func TestWorkRoleFor(t *testing.T) {
	tests := []struct {
		category schema.Category
		level    int
		expected schema.RoleID
	}{
		{schema.SecurelyProvision, 0, "SP-SSE"},
		{schema.OperateAndMaintain, 1, "SP-ARC"},
		{schema.OverseeAndGovern, 0, "SP-SSE"},
		{schema.ProtectAndDefend, 0, "PR-CDA"},
		{schema.CollectAndOperate, 1, "PR-IR"},
		{schema.Analyze, 0, "AN-TWA"},
		{schema.Investigate, 1, "IN-CLI"},
		{schema.Investigate, 7, "AN-TWA"},
		{"ZZ", 0, "AN-TWA"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, WorkRoleFor(tt.category, tt.level).ID)
		})
	}
}

// TestCertificationsFor tests certification lookup and the two-item cap.
func TestCertificationsFor(t *testing.T) {
	certs := CertificationsFor(schema.ProtectAndDefend, 1)
	assert.Len(t, certs, 2)
	assert.Equal(t, "GIAC Certified Incident Handler (GCIH)", certs[0].Name)
	assert.Equal(t, "Intermediate", certs[0].Level)
	assert.Equal(t, "https://www.giac.org/certifications/certified-incident-handler-gcih", certs[0].URL)

	fallback := CertificationsFor(schema.SecurelyProvision, 5)
	assert.Equal(t, "CompTIA Security+", fallback[0].Name)
	assert.Equal(t, "Entry", fallback[0].Level)

	for _, c := range schema.AllCategories {
		for _, level := range []int{0, 1} {
			assert.LessOrEqual(t, len(CertificationsFor(c, level)), 2)
		}
	}
}

// TestNistRoleID tests the dossier role identifier.
func TestNistRoleID(t *testing.T) {
	assert.Equal(t, "PR-IR-001", NistRoleID(WorkRoleFor(schema.ProtectAndDefend, 1)))
}

// TestRankForXP tests rank thresholds.
func TestRankForXP(t *testing.T) {
	tests := []struct {
		xp       int
		expected string
	}{
		{-5, "Security Initiate"},
		{0, "Security Initiate"},
		{49, "Security Initiate"},
		{50, "Apprentice"},
		{149, "Apprentice"},
		{150, "Agent"},
		{300, "Specialist"},
		{499, "Specialist"},
		{500, "Operator"},
		{10000, "Operator"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RankForXP(tt.xp), "xp=%d", tt.xp)
	}
}

// TestParseChoiceIndex tests answer parsing.
func TestParseChoiceIndex(t *testing.T) {
	tests := []struct {
		raw   string
		n     int
		idx   int
		valid bool
	}{
		{"a", 3, 0, true},
		{"C", 3, 2, true},
		{" b ", 3, 1, true},
		{"d", 3, 0, false},
		{"1", 3, 0, true},
		{"3", 3, 2, true},
		{"4", 3, 0, false},
		{"0", 3, 0, false},
		{"-1", 3, 0, false},
		{"j", 10, 9, true},
		{"10", 10, 9, true},
		{"k", 11, 0, false},
		{"", 3, 0, false},
		{"ab", 3, 0, false},
		{"a", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			idx, ok := ParseChoiceIndex(tt.raw, tt.n)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.idx, idx)
			}
		})
	}
	assert.Equal(t, "c", ChoiceLabel(2))
}

// TestPathCompletionXP tests the per-path completion bonus.
func TestPathCompletionXP(t *testing.T) {
	assert.Equal(t, XPExplorerComplete, PathCompletionXP(schema.ExplorerPath))
	assert.Equal(t, XPSpecialistComplete, PathCompletionXP(schema.SpecialistPath))
	assert.Equal(t, XPOperatorComplete, PathCompletionXP(schema.OperatorPath))
	assert.Equal(t, 0, PathCompletionXP(schema.CalibrationPath))
	assert.Equal(t, 0, PathCompletionXP("ninja"))
}

// TestPathFactor tests which paths count double.
func TestPathFactor(t *testing.T) {
	assert.Equal(t, 1, PathFactor(schema.ExplorerPath))
	assert.Equal(t, 2, PathFactor(schema.SpecialistPath))
	assert.Equal(t, 2, PathFactor(schema.OperatorPath))
	assert.Equal(t, 1, PathFactor(schema.CalibrationPath))
}
