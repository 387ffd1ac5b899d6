package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addonscout/addonscout/pkg/types"
)

func webProfile() *types.ProjectProfile {
	return &types.ProjectProfile{
		Languages:    []string{"typescript", "javascript"},
		Frameworks:   []string{"react"},
		Dependencies: []string{"react", "zod"},
		Files:        []string{"package.json", "src/app.tsx", "src/lib/schema.ts"},
	}
}

func TestMatchScore_NoMatchFloor(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:   "rusty",
		Name: "Rust Analyzer Bridge",
		Type: types.ItemTypeExtension,
		Detection: types.DetectionRules{
			Languages:    []string{"Rust"},
			Dependencies: []string{"serde"},
			Files:        []string{"Cargo.toml"},
		},
	}

	m := eng.MatchScore(&item, webProfile(), "", nil)

	assert.Equal(t, 1.0, m.Score)
	assert.Empty(t, m.Reasons)
	assert.Zero(t, m.Breakdown.Base)
}

func TestMatchScore_Monotonicity(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:   "poly",
		Name: "Polyglot Helper",
		Type: types.ItemTypeExtension,
		Detection: types.DetectionRules{
			Languages: []string{"TypeScript", "JavaScript", "Python"},
		},
	}

	profile := &types.ProjectProfile{Languages: []string{"typescript"}}
	before := eng.MatchScore(&item, profile, "", nil).Score

	profile.Languages = append(profile.Languages, "python")
	after := eng.MatchScore(&item, profile, "", nil).Score

	assert.GreaterOrEqual(t, after, before)
}

func TestMatchScore_SignalWeights(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:   "webkit",
		Name: "Web Kit",
		Type: types.ItemTypeExtension,
		Detection: types.DetectionRules{
			Languages:    []string{"TypeScript"},
			Frameworks:   []string{"React"},
			Dependencies: []string{"zod"},
			Files:        []string{"**/*.tsx"},
		},
	}

	m := eng.MatchScore(&item, webProfile(), "", nil)

	// 5 + 4 + 3 + 2 = 14 raw, normalized 14/50*100 = 28.
	assert.InDelta(t, 28.0, m.Score, 1e-9)
	require.Len(t, m.Reasons, 4)
	assert.Contains(t, m.Reasons[0], "languages")
	assert.Contains(t, m.Reasons[1], "frameworks")
	assert.Contains(t, m.Reasons[2], "dependencies")
	assert.Contains(t, m.Reasons[3], "files")
}

func TestMatchScore_KeywordsOnlyWithQuery(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:   "deployer",
		Name: "Deployer",
		Type: types.ItemTypeWorkflow,
		Tags: []string{"deploy", "kubernetes"},
		Detection: types.DetectionRules{
			Keywords: []string{"deploy", "release"},
		},
	}

	noQuery := eng.MatchScore(&item, &types.ProjectProfile{}, "", nil)
	assert.Equal(t, 1.0, noQuery.Score)
	assert.Empty(t, noQuery.Reasons)

	m := eng.MatchScore(&item, &types.ProjectProfile{}, "help me deploy to kubernetes", nil)
	// "deploy" appears in both keywords and tags but counts once; with
	// "kubernetes" that is 2 keyword points, no name bonus.
	assert.InDelta(t, 2.0, m.Breakdown.Base, 1e-9)
	assert.Equal(t, []string{"keyword match: deploy", "keyword match: kubernetes"}, m.Reasons)
}

func TestMatchScore_NameBonus(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:   "prettier",
		Name: "Prettier",
		Type: types.ItemTypeExtension,
	}

	m := eng.MatchScore(&item, &types.ProjectProfile{}, "set up prettier for me", nil)
	assert.InDelta(t, DefaultNameBonus, m.Breakdown.Base, 1e-9)
	assert.Contains(t, m.Reasons, "name mentioned in query")
}

func TestMatchScore_OfficialMultiplierGating(t *testing.T) {
	eng := New(DefaultConfig())

	official := types.CatalogItem{
		ID:      "off",
		Name:    "Official Thing",
		Type:    types.ItemTypeExtension,
		Metrics: types.ItemMetrics{Official: true},
	}
	community := types.CatalogItem{
		ID:   "comm",
		Name: "Community Thing",
		Type: types.ItemTypeExtension,
	}

	// Zero structural matches: official status must not manufacture a
	// boost or a reason.
	offScore := eng.MatchScore(&official, webProfile(), "", nil)
	commScore := eng.MatchScore(&community, webProfile(), "", nil)

	assert.Equal(t, commScore.Score, offScore.Score)
	assert.Equal(t, 1.0, offScore.Score)
	assert.Empty(t, offScore.Reasons)
}

func TestMatchScore_OfficialBoostOnMatch(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:        "ts-official",
		Name:      "TS Official",
		Type:      types.ItemTypeExtension,
		Detection: types.DetectionRules{Languages: []string{"TypeScript"}},
		Metrics:   types.ItemMetrics{Official: true},
	}

	m := eng.MatchScore(&item, webProfile(), "", nil)

	// raw 5 * 1.5 = 7.5, normalized 15.
	assert.InDelta(t, 15.0, m.Score, 1e-9)
	require.Len(t, m.Reasons, 2)
	assert.Contains(t, m.Reasons[1], "officially maintained")
}

func TestMatchScore_SecurityThresholds(t *testing.T) {
	eng := New(DefaultConfig())

	scoreWith := func(security *int) float64 {
		item := types.CatalogItem{
			ID:        "sec",
			Name:      "Sec",
			Type:      types.ItemTypeExtension,
			Detection: types.DetectionRules{Languages: []string{"TypeScript"}},
			Metrics:   types.ItemMetrics{SecurityScore: security},
		}
		return eng.MatchScore(&item, webProfile(), "", nil).Score
	}

	baseline := scoreWith(intPtr(70))

	assert.Equal(t, baseline, scoreWith(nil), "unscanned items are unmodified")
	assert.Equal(t, baseline, scoreWith(intPtr(50)), "at the low threshold: unmodified")
	assert.Equal(t, baseline, scoreWith(intPtr(79)), "just below the high threshold: unmodified")
	assert.Less(t, scoreWith(intPtr(49)), baseline, "below the low threshold: penalized")
	assert.Greater(t, scoreWith(intPtr(80)), baseline, "at the high threshold: boosted")
}

func TestMatchScore_EndToEndScenario(t *testing.T) {
	eng := New(DefaultConfig())
	item := types.CatalogItem{
		ID:   "react-devkit",
		Name: "React DevKit",
		Type: types.ItemTypeExtension,
		Detection: types.DetectionRules{
			Languages:    []string{"TypeScript", "JavaScript"},
			Frameworks:   []string{"React"},
			Dependencies: []string{"react"},
		},
		Metrics: types.ItemMetrics{Official: true},
	}

	m := eng.MatchScore(&item, webProfile(), "", nil)

	// raw = 5*2 + 4 + 3 = 17, official boost 1.5 -> 25.5, normalized 51.
	assert.InDelta(t, 51.0, m.Score, 1e-9)
	require.Len(t, m.Reasons, 4)
	assert.Contains(t, m.Reasons[0], "languages")
	assert.Contains(t, m.Reasons[1], "frameworks")
	assert.Contains(t, m.Reasons[2], "dependencies")
	assert.Contains(t, m.Reasons[3], "officially maintained")
}

func TestMatchScore_ContextAndSimilarityEscapeMultiplier(t *testing.T) {
	// Context/similarity bonuses are added after the official multiplier,
	// not scaled by it.
	cfg := DefaultConfig()
	cfg.OfficialBoost = 10.0
	eng := New(cfg)

	item := types.CatalogItem{
		ID:      "mono",
		Name:    "Mono Helper",
		Type:    types.ItemTypeExtension,
		Tags:    []string{"workspace"},
		Metrics: types.ItemMetrics{Official: true},
	}
	profile := &types.ProjectProfile{
		Metadata: &types.ProjectMetadata{Kind: types.KindMonorepo},
	}

	m := eng.MatchScore(&item, profile, "", nil)

	// Raw structural score is zero so the x10 boost never applies; only
	// the monorepo bonus remains.
	assert.InDelta(t, cfg.MonorepoBonus, m.Breakdown.Context, 1e-9)
	assert.Zero(t, m.Breakdown.Base)
	assert.InDelta(t, eng.normalize(cfg.MonorepoBonus), m.Score, 1e-9)
}

func TestNormalize(t *testing.T) {
	eng := New(DefaultConfig())

	assert.Equal(t, 1.0, eng.normalize(0))
	assert.Equal(t, 1.0, eng.normalize(-12))
	assert.Equal(t, 1.0, eng.normalize(0.4)) // 0.8 clamps up to 1
	assert.InDelta(t, 50.0, eng.normalize(25), 1e-9)
	assert.Equal(t, 100.0, eng.normalize(50))
	assert.Equal(t, 100.0, eng.normalize(500))
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(webProfile())
	assert.Equal(t, []string{"typescript", "javascript", "react", "zod"}, tags)

	assert.Nil(t, profileTags(nil))
}
