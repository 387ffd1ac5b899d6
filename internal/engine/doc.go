// Package engine implements the recommendation scoring core: the pure,
// deterministic functions that turn (catalog item, project profile, optional
// free-text query) into a score, a list of human-readable match reasons, and
// a ranked, filtered result set.
//
// The engine never fetches, persists, or logs anything. All state it reads
// (the catalog slice, the similarity matrix) is immutable during a scoring
// pass, so it is safe to call from multiple goroutines against the same
// catalog snapshot.
//
// # Scoring Pipeline
//
// Recommend mode evaluates each item in a fixed order: weighted structural
// matches (languages, frameworks, dependencies, file globs, query keywords),
// provenance and security multipliers, then additive context and tag
// similarity bonuses, and finally normalization onto a 1-100 scale:
//
//	eng := engine.New(engine.DefaultConfig())
//	matrix := engine.BuildSimilarityMatrix(catalog)
//	results := eng.Recommend(catalog, profile, query, matrix, engine.DefaultOptions())
//
// A raw score of zero still normalizes to 1, never 0, so callers can
// distinguish "no match" from "filtered out" with minScore=1.
//
// Search mode ranks items by substring relevance of a free-text query against
// name, description, category, and tags, with no project profile required:
//
//	results := eng.Search(catalog, "deploy kubernetes", engine.DefaultOptions())
//
// # Configuration
//
// Every weight, multiplier, and threshold lives in an immutable Config value
// passed to New. DefaultConfig returns the production values; tests can run
// the engine with alternate weight sets without touching global state.
//
// # Similarity Matrix
//
// BuildSimilarityMatrix precomputes tag co-occurrence statistics in one
// catalog pass. Building it is the only cost worth amortizing: it should be
// built once per catalog snapshot and reused across all ranking calls until
// the catalog changes.
package engine
