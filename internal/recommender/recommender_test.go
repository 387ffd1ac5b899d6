package recommender

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addonscout/addonscout/internal/catalog"
	"github.com/addonscout/addonscout/internal/engine"
	"github.com/addonscout/addonscout/pkg/types"
)

func newTestService(t *testing.T, items []types.CatalogItem) (*Service, catalog.Store) {
	t.Helper()

	store, err := catalog.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	if len(items) > 0 {
		require.NoError(t, store.ReplaceAll(context.Background(), items))
	}

	svc := New(store, engine.New(engine.DefaultConfig()))
	_, err = svc.Reload(context.Background())
	require.NoError(t, err)
	return svc, store
}

func testItems() []types.CatalogItem {
	return []types.CatalogItem{
		{
			ID:          "go-linter",
			Name:        "Go Linter",
			Type:        types.ItemTypeExtension,
			Description: "Lints Go source files",
			Category:    "linting",
			Tags:        []string{"go", "lint"},
			Detection: types.DetectionRules{
				Languages: []string{"go"},
				Keywords:  []string{"lint"},
			},
			Metrics: types.ItemMetrics{Source: types.SourceOfficial, Official: true},
		},
		{
			ID:          "py-formatter",
			Name:        "Python Formatter",
			Type:        types.ItemTypeExtension,
			Description: "Formats Python code",
			Category:    "formatting",
			Tags:        []string{"python", "format"},
			Detection: types.DetectionRules{
				Languages: []string{"python"},
			},
			Metrics: types.ItemMetrics{Source: types.SourceCommunity},
		},
		{
			ID:          "k8s-deploy",
			Name:        "Kubernetes Deployer",
			Type:        types.ItemTypeWorkflow,
			Description: "Deploys services to kubernetes clusters",
			Category:    "deployment",
			Tags:        []string{"kubernetes", "deploy"},
			Detection: types.DetectionRules{
				Files:    []string{"**/Dockerfile"},
				Keywords:     []string{"deploy", "kubernetes"},
			},
			Metrics: types.ItemMetrics{Source: types.SourceCurated},
		},
	}
}

func goProfile() *types.ProjectProfile {
	return &types.ProjectProfile{
		Languages: []string{"go"},
		Files:     []string{"main.go", "deploy/Dockerfile"},
	}
}

func TestRecommend_RanksMatchingItemsFirst(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		Profile: goProfile(),
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "go-linter", resp.Results[0].Item.ID)
	assert.Equal(t, 3, resp.TotalCandidates)
	assert.False(t, resp.CacheHit)
}

func TestRecommend_TypeFilter(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		Profile: goProfile(),
		Query:   "deploy to kubernetes",
		Types:   []types.ItemType{types.ItemTypeWorkflow},
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "k8s-deploy", resp.Results[0].Item.ID)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Recommend(context.Background(), RecommendRequest{Profile: goProfile()})
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)

	_, err = svc.Search(context.Background(), "lint", 10, nil)
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestRecommend_CacheHit(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	req := RecommendRequest{Profile: goProfile(), UseCache: true}

	first, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, len(first.Results), len(second.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Item.ID, second.Results[i].Item.ID)
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
	}
}

func TestRecommend_CacheMissOnDifferentRequest(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	_, err := svc.Recommend(context.Background(), RecommendRequest{
		Profile: goProfile(), UseCache: true,
	})
	require.NoError(t, err)

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		Profile: goProfile(), Query: "lint", UseCache: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestRecommend_CacheExpiry(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	req := RecommendRequest{Profile: goProfile(), UseCache: true, CacheTTL: 1 * time.Nanosecond}

	_, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestReload_PurgesCacheAndSwapsSnapshot(t *testing.T) {
	svc, store := newTestService(t, testItems())

	req := RecommendRequest{Profile: goProfile(), UseCache: true}
	_, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	// Shrink the catalog to a single item and reload.
	require.NoError(t, store.ReplaceAll(context.Background(), testItems()[:1]))
	n, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
	assert.Equal(t, 1, resp.TotalCandidates)
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	results, err := svc.Search(context.Background(), "kubernetes", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "k8s-deploy", results[0].Item.ID)

	none, err := svc.Search(context.Background(), "kubernetes", 10, []types.ItemType{types.ItemTypeHook})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.Search(context.Background(), "   ", 10, nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestDetails(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	item, quality, err := svc.Details(context.Background(), "Go Linter")
	require.NoError(t, err)
	assert.Equal(t, "go-linter", item.ID)
	require.NotNil(t, quality)
	assert.Greater(t, quality.Total, 0.0)

	_, _, err = svc.Details(context.Background(), "no-such-item")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestStats(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Official)
	assert.Equal(t, 2, stats.ByType[types.ItemTypeExtension])
	assert.Equal(t, 1, stats.BySource[types.SourceCurated])
}

func TestValidateRequest_Bounds(t *testing.T) {
	svc, _ := newTestService(t, testItems())

	req := RecommendRequest{}
	svc.validateRequest(&req)
	assert.Equal(t, engine.DefaultMaxResults, req.MaxResults)
	assert.Equal(t, engine.DefaultMinScore, req.MinScore)
	assert.Equal(t, defaultCacheTTL, req.CacheTTL)

	req = RecommendRequest{MaxResults: 5000}
	svc.validateRequest(&req)
	assert.Equal(t, maxLimit, req.MaxResults)
}
