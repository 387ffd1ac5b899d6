package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/addonscout/addonscout/pkg/types"
)

func TestContextScore_NilMetadata(t *testing.T) {
	eng := New(DefaultConfig())
	item := tagged("a", "monorepo", "collaboration")

	score, reasons := eng.contextScore(&item, nil)
	assert.Zero(t, score)
	assert.Empty(t, reasons)
}

func TestContextScore_MonorepoBonus(t *testing.T) {
	eng := New(DefaultConfig())
	item := tagged("nx-helper", "workspace", "build-orchestration")

	score, reasons := eng.contextScore(&item, &types.ProjectMetadata{Kind: types.KindMonorepo})
	assert.Equal(t, DefaultMonorepoBonus, score)
	assert.Equal(t, []string{"aligned with monorepo tooling"}, reasons)

	// Same tags, non-monorepo project: no bonus.
	score, reasons = eng.contextScore(&item, &types.ProjectMetadata{Kind: types.KindApplication})
	assert.Zero(t, score)
	assert.Empty(t, reasons)
}

func TestContextScore_SizeMatch(t *testing.T) {
	eng := New(DefaultConfig())

	tests := []struct {
		name string
		item types.CatalogItem
		size types.ProjectSize
		want float64
	}{
		{"enterprise project, ci tooling", tagged("ci", "ci-cd", "monitoring"), types.SizeEnterprise, DefaultSizeMatchBonus},
		{"large project, testing tooling", tagged("qa", "testing"), types.SizeLarge, DefaultSizeMatchBonus},
		{"small project, lightweight tooling", tagged("starter", "quick-start"), types.SizeSmall, DefaultSizeMatchBonus},
		{"small project, enterprise tooling", tagged("ci", "ci-cd"), types.SizeSmall, 0},
		{"large project, lightweight tooling", tagged("starter", "lightweight"), types.SizeLarge, 0},
		{"medium project gets nothing", tagged("ci", "ci-cd"), types.SizeMedium, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := eng.contextScore(&tt.item, &types.ProjectMetadata{Size: tt.size})
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestContextScore_TeamBonus(t *testing.T) {
	eng := New(DefaultConfig())
	item := tagged("reviewbot", "code-review", "collaboration")

	// Threshold is strict: a team of exactly 5 gets nothing.
	score, _ := eng.contextScore(&item, &types.ProjectMetadata{TeamSize: 5})
	assert.Zero(t, score)

	score, reasons := eng.contextScore(&item, &types.ProjectMetadata{TeamSize: 6})
	assert.Equal(t, DefaultTeamBonus, score)
	assert.Equal(t, []string{"supports team collaboration"}, reasons)
}

func TestContextScore_BonusesSum(t *testing.T) {
	eng := New(DefaultConfig())
	// One item hitting all three categories; each applies exactly once.
	item := tagged("everything", "workspace", "ci-cd", "collaboration", "monorepo", "team")
	meta := &types.ProjectMetadata{
		Kind:     types.KindMonorepo,
		Size:     types.SizeEnterprise,
		TeamSize: 12,
	}

	score, reasons := eng.contextScore(&item, meta)
	assert.Equal(t, DefaultMonorepoBonus+DefaultSizeMatchBonus+DefaultTeamBonus, score)
	assert.Len(t, reasons, 3)
}
