package engine

import (
	"fmt"

	"github.com/addonscout/addonscout/pkg/types"
)

// SimilarityMatrix holds tag co-occurrence statistics for one catalog
// snapshot. It is built once per snapshot and immutable afterward; rebuild it
// whenever the catalog changes.
type SimilarityMatrix struct {
	// cooccurrence[a][b] counts catalog items tagged with both a and b.
	// Symmetric by construction.
	cooccurrence map[string]map[string]int

	// tagCounts[tag] counts catalog items carrying the tag.
	tagCounts map[string]int
}

// BuildSimilarityMatrix computes tag co-occurrence counts in a single catalog
// pass. Tags are normalized to lowercase deduplicated sets per item.
func BuildSimilarityMatrix(catalog []types.CatalogItem) *SimilarityMatrix {
	m := &SimilarityMatrix{
		cooccurrence: make(map[string]map[string]int),
		tagCounts:    make(map[string]int),
	}

	for i := range catalog {
		tags := catalog[i].NormalizedTags()
		for _, tag := range tags {
			m.tagCounts[tag]++
		}
		// Every unordered pair of distinct tags within the item counts
		// once, recorded in both directions.
		for j := 0; j < len(tags); j++ {
			for k := j + 1; k < len(tags); k++ {
				m.increment(tags[j], tags[k])
				m.increment(tags[k], tags[j])
			}
		}
	}

	return m
}

func (m *SimilarityMatrix) increment(a, b string) {
	row := m.cooccurrence[a]
	if row == nil {
		row = make(map[string]int)
		m.cooccurrence[a] = row
	}
	row[b]++
}

// Cooccurrence returns the number of catalog items tagged with both a and b.
func (m *SimilarityMatrix) Cooccurrence(a, b string) int {
	return m.cooccurrence[a][b]
}

// TagCount returns the number of catalog items carrying the tag.
func (m *SimilarityMatrix) TagCount(tag string) int {
	return m.tagCounts[tag]
}

// TagSimilarity computes the Jaccard similarity between two tags: the number
// of items carrying both divided by the number carrying either. Identical
// tags are always 1.0. Pairs below the configured minimum co-occurrence have
// insufficient statistical support and score 0.
func (e *Engine) TagSimilarity(a, b string, m *SimilarityMatrix) float64 {
	if a == b {
		return 1.0
	}
	if m == nil {
		return 0
	}
	co := m.Cooccurrence(a, b)
	if co < e.cfg.MinCooccurrence {
		return 0
	}
	union := m.TagCount(a) + m.TagCount(b) - co
	if union <= 0 {
		// Cannot occur for tags present in the matrix; treated as no
		// similarity rather than a division error.
		return 0
	}
	return float64(co) / float64(union)
}

// similarityScore sums the Jaccard similarity of every (project tag, item
// tag) pair meeting the minimum similarity, capped at the configured maximum
// bonus so one very similar item cannot dominate the ranking.
func (e *Engine) similarityScore(item *types.CatalogItem, projectTags []string, m *SimilarityMatrix) (float64, []string) {
	itemTags := item.NormalizedTags()
	if len(itemTags) == 0 || len(projectTags) == 0 {
		return 0, nil
	}

	var total float64
	var reasons []string
	for _, pt := range projectTags {
		for _, it := range itemTags {
			sim := e.TagSimilarity(pt, it, m)
			if sim < e.cfg.MinSimilarity {
				continue
			}
			total += sim
			reasons = append(reasons, fmt.Sprintf("related tags: %s ~ %s", pt, it))
		}
	}

	if total > e.cfg.MaxSimilarityBonus {
		total = e.cfg.MaxSimilarityBonus
	}
	return total, reasons
}
