package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addonscout/addonscout/pkg/types"
)

func tagged(id string, tags ...string) types.CatalogItem {
	return types.CatalogItem{
		ID:   id,
		Name: id,
		Type: types.ItemTypeExtension,
		Tags: tags,
	}
}

func TestBuildSimilarityMatrix_Counts(t *testing.T) {
	catalog := []types.CatalogItem{
		tagged("a", "react", "frontend"),
		tagged("b", "react", "frontend", "testing"),
		tagged("c", "react"),
	}

	m := BuildSimilarityMatrix(catalog)

	assert.Equal(t, 3, m.TagCount("react"))
	assert.Equal(t, 2, m.TagCount("frontend"))
	assert.Equal(t, 1, m.TagCount("testing"))
	assert.Equal(t, 0, m.TagCount("unknown"))

	assert.Equal(t, 2, m.Cooccurrence("react", "frontend"))
	assert.Equal(t, 2, m.Cooccurrence("frontend", "react"))
	assert.Equal(t, 1, m.Cooccurrence("react", "testing"))
	assert.Equal(t, 0, m.Cooccurrence("react", "unknown"))
}

func TestBuildSimilarityMatrix_NormalizesTags(t *testing.T) {
	catalog := []types.CatalogItem{
		tagged("a", "React", "REACT", "frontend"),
	}

	m := BuildSimilarityMatrix(catalog)

	// Duplicate spellings collapse to one tag per item.
	assert.Equal(t, 1, m.TagCount("react"))
	assert.Equal(t, 1, m.Cooccurrence("react", "frontend"))
}

func TestTagSimilarity_SelfSimilarity(t *testing.T) {
	eng := New(DefaultConfig())

	// Self-similarity is 1.0 independent of matrix contents.
	assert.Equal(t, 1.0, eng.TagSimilarity("react", "react", nil))
	assert.Equal(t, 1.0, eng.TagSimilarity("never-seen", "never-seen", BuildSimilarityMatrix(nil)))
}

func TestTagSimilarity_Symmetry(t *testing.T) {
	eng := New(DefaultConfig())
	catalog := []types.CatalogItem{
		tagged("a", "react", "frontend", "testing"),
		tagged("b", "react", "frontend"),
		tagged("c", "frontend", "testing"),
		tagged("d", "react", "testing"),
	}
	m := BuildSimilarityMatrix(catalog)

	allTags := []string{"react", "frontend", "testing"}
	for _, a := range allTags {
		for _, b := range allTags {
			assert.Equal(t, eng.TagSimilarity(a, b, m), eng.TagSimilarity(b, a, m),
				"similarity(%s,%s) must equal similarity(%s,%s)", a, b, b, a)
		}
	}
}

func TestTagSimilarity_MinCooccurrenceGate(t *testing.T) {
	catalog := []types.CatalogItem{
		tagged("a", "react", "graphql"), // one co-occurrence only
		tagged("b", "react"),
	}
	m := BuildSimilarityMatrix(catalog)

	// Default config requires at least 2 co-occurrences.
	eng := New(DefaultConfig())
	assert.Equal(t, 0.0, eng.TagSimilarity("react", "graphql", m))

	// With the gate lowered, the Jaccard value comes through:
	// cooccurrence 1, counts react=2 graphql=1, union 2+1-1=2.
	cfg := DefaultConfig()
	cfg.MinCooccurrence = 1
	relaxed := New(cfg)
	assert.InDelta(t, 0.5, relaxed.TagSimilarity("react", "graphql", m), 1e-9)
}

func TestSimilarityScore_CapsTotal(t *testing.T) {
	// Every project tag matches an item tag exactly (similarity 1.0 each),
	// so without the cap the total would be 8.
	projectTags := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}
	item := tagged("a", projectTags...)

	eng := New(DefaultConfig())
	score, reasons := eng.similarityScore(&item, projectTags, BuildSimilarityMatrix(nil))

	assert.Equal(t, DefaultMaxSimilarityBonus, score)
	assert.Len(t, reasons, 8)
}

func TestSimilarityScore_Reasons(t *testing.T) {
	catalog := []types.CatalogItem{
		tagged("a", "react", "frontend"),
		tagged("b", "react", "frontend"),
		tagged("c", "react", "frontend"),
	}
	m := BuildSimilarityMatrix(catalog)
	item := catalog[0]

	eng := New(DefaultConfig())
	score, reasons := eng.similarityScore(&item, []string{"react"}, m)

	require.NotEmpty(t, reasons)
	assert.Greater(t, score, 1.0) // exact match plus co-occurring frontend
	assert.Contains(t, reasons[0], "react")
}

func TestSimilarityScore_NoTags(t *testing.T) {
	item := types.CatalogItem{ID: "bare", Name: "bare", Type: types.ItemTypeCommand}
	eng := New(DefaultConfig())

	score, reasons := eng.similarityScore(&item, []string{"react"}, BuildSimilarityMatrix(nil))
	assert.Zero(t, score)
	assert.Empty(t, reasons)
}
