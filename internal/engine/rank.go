package engine

import (
	"sort"
	"strings"

	"github.com/addonscout/addonscout/pkg/types"
)

// Options control filtering and truncation of a ranking pass. The engine
// honors the literal values it is given: MaxResults of zero returns nothing.
// Callers wanting defaults should start from DefaultOptions.
type Options struct {
	MaxResults int
	MinScore   float64

	// Types restricts results to the listed discriminants. Empty means
	// all types are allowed.
	Types []types.ItemType

	// IncludeBreakdown attaches the component sub-scores to each result.
	IncludeBreakdown bool
}

// DefaultOptions returns the standard ranking options.
func DefaultOptions() Options {
	return Options{
		MaxResults: DefaultMaxResults,
		MinScore:   DefaultMinScore,
	}
}

// Recommend ranks the catalog against a project profile. For every item
// passing the type filter it computes the match score, blends in the quality
// score as a smaller-weighted bonus, drops items below the minimum score,
// sorts by final score descending (stable, so catalog order breaks ties),
// and truncates to MaxResults. The catalog is never mutated.
func (e *Engine) Recommend(catalog []types.CatalogItem, project *types.ProjectProfile, query string, matrix *SimilarityMatrix, opts Options) []types.ScoredResult {
	results := []types.ScoredResult{}
	if opts.MaxResults <= 0 {
		return results
	}

	allowed := typeSet(opts.Types)
	for i := range catalog {
		item := &catalog[i]
		if allowed != nil && !allowed[item.Type] {
			continue
		}

		match := e.MatchScore(item, project, query, matrix)
		quality := e.Quality(item)
		final := match.Score + quality.Total*e.cfg.QualityWeight
		if final < opts.MinScore {
			continue
		}

		result := types.ScoredResult{
			Item:    *item,
			Score:   final,
			Reasons: match.Reasons,
		}
		if opts.IncludeBreakdown {
			breakdown := match.Breakdown
			breakdown.Quality = quality.Total
			breakdown.Final = final
			result.Breakdown = &breakdown
		}
		results = append(results, result)
	}

	sortResults(results)
	return truncate(results, opts.MaxResults)
}

// Search ranks the catalog by free-text relevance alone, with no project
// profile: substring hits against name weigh most, then description,
// category, and tags, with the official multiplier applied to nonzero
// scores. Filter, sort, and truncation behave exactly as in Recommend.
func (e *Engine) Search(catalog []types.CatalogItem, query string, opts Options) []types.ScoredResult {
	results := []types.ScoredResult{}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || opts.MaxResults <= 0 {
		return results
	}

	allowed := typeSet(opts.Types)
	for i := range catalog {
		item := &catalog[i]
		if allowed != nil && !allowed[item.Type] {
			continue
		}

		score, reasons := e.searchScore(item, query)
		if score < opts.MinScore {
			continue
		}
		results = append(results, types.ScoredResult{
			Item:    *item,
			Score:   score,
			Reasons: reasons,
		})
	}

	sortResults(results)
	return truncate(results, opts.MaxResults)
}

// searchScore computes the free-text relevance of one item.
func (e *Engine) searchScore(item *types.CatalogItem, query string) (float64, []string) {
	var score float64
	var reasons []string

	if strings.Contains(strings.ToLower(item.Name), query) {
		score += e.cfg.SearchNameWeight
		reasons = append(reasons, "name matches query")
	}
	if strings.Contains(strings.ToLower(item.Description), query) {
		score += e.cfg.SearchDescriptionWeight
		reasons = append(reasons, "description mentions query")
	}
	if item.Category != "" && strings.Contains(strings.ToLower(item.Category), query) {
		score += e.cfg.SearchCategoryWeight
		reasons = append(reasons, "category matches query")
	}
	for _, tag := range item.NormalizedTags() {
		if strings.Contains(tag, query) {
			score += e.cfg.SearchTagWeight
			reasons = append(reasons, "tag match: "+tag)
		}
	}

	if score > 0 && item.Metrics.Official {
		score *= e.cfg.OfficialBoost
		reasons = append(reasons, "officially maintained")
	}

	return score, reasons
}

// sortResults orders by score descending. The sort is stable so catalog
// order breaks ties deterministically.
func sortResults(results []types.ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// truncate caps the result set at limit.
func truncate(results []types.ScoredResult, limit int) []types.ScoredResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// typeSet builds an allow-set from a type list. Nil means "allow all".
func typeSet(allowed []types.ItemType) map[types.ItemType]bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[types.ItemType]bool, len(allowed))
	for _, t := range allowed {
		set[t] = true
	}
	return set
}
