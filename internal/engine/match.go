package engine

import (
	"fmt"
	"strings"

	"github.com/addonscout/addonscout/pkg/types"
)

// Match is one item's match score before the ranking engine blends in the
// quality term.
type Match struct {
	Score     float64 // normalized, 1-100
	Reasons   []string
	Breakdown types.ScoreBreakdown
}

// MatchScore computes the primary multi-signal match score between one item
// and the project profile. Signals are evaluated in a fixed order; each
// contributes additively to a running raw score and may append a reason.
// Absent detection rules and metrics fields contribute zero, never error.
func (e *Engine) MatchScore(item *types.CatalogItem, project *types.ProjectProfile, query string, matrix *SimilarityMatrix) Match {
	if project == nil {
		project = &types.ProjectProfile{}
	}

	var raw float64
	var reasons []string

	languages := toLowerSet(project.Languages)
	frameworks := toLowerSet(project.Frameworks)
	dependencies := toLowerSet(project.Dependencies)

	// 1. Language match.
	if matched := membersOf(item.Detection.Languages, languages); len(matched) > 0 {
		raw += e.cfg.LanguageWeight * float64(len(matched))
		reasons = append(reasons, "matches project languages: "+strings.Join(matched, ", "))
	}

	// 2. Framework match.
	if matched := membersOf(item.Detection.Frameworks, frameworks); len(matched) > 0 {
		raw += e.cfg.FrameworkWeight * float64(len(matched))
		reasons = append(reasons, "matches project frameworks: "+strings.Join(matched, ", "))
	}

	// 3. Dependency match.
	if matched := membersOf(item.Detection.Dependencies, dependencies); len(matched) > 0 {
		raw += e.cfg.DependencyWeight * float64(len(matched))
		reasons = append(reasons, "matches project dependencies: "+strings.Join(matched, ", "))
	}

	// 4. File-pattern match.
	if matched := matchingPatterns(item.Detection.Files, project.Files); len(matched) > 0 {
		raw += e.cfg.FileWeight * float64(len(matched))
		reasons = append(reasons, "matches project files: "+strings.Join(matched, ", "))
	}

	// 5. Keyword match, only when a free-text query is supplied.
	if query != "" {
		kwScore, kwReasons := e.keywordScore(item, query)
		raw += kwScore
		reasons = append(reasons, kwReasons...)
	}

	// 6. Provenance and security multipliers apply only to a nonzero raw
	// score; an official item with zero structural matches gets no
	// artificial boost and no provenance reason.
	if raw > 0 {
		if item.Metrics.Official {
			raw *= e.cfg.OfficialBoost
			if len(reasons) > 0 {
				reasons = append(reasons, "officially maintained")
			}
		}
		if ss := item.Metrics.SecurityScore; ss != nil {
			switch {
			case *ss >= e.cfg.SecurityHighThreshold:
				raw *= e.cfg.SecurityBoost
				reasons = append(reasons, fmt.Sprintf("strong security score (%d)", *ss))
			case *ss < e.cfg.SecurityLowThreshold:
				raw *= e.cfg.SecurityPenalty
				reasons = append(reasons, fmt.Sprintf("weak security score (%d)", *ss))
			}
		}
	}

	// 7. Context and similarity are independent alignment signals, added
	// after the multiplier pass.
	ctxScore, ctxReasons := e.contextScore(item, project.Metadata)
	reasons = append(reasons, ctxReasons...)

	simScore, simReasons := e.similarityScore(item, profileTags(project), matrix)
	reasons = append(reasons, simReasons...)

	// 8. Normalize the combined raw score onto the bounded 1-100 scale.
	combined := raw + ctxScore + simScore
	score := e.normalize(combined)

	return Match{
		Score:   score,
		Reasons: reasons,
		Breakdown: types.ScoreBreakdown{
			Base:       raw,
			Context:    ctxScore,
			Similarity: simScore,
			Final:      score,
		},
	}
}

// keywordScore scores literal substring hits of detection keywords and item
// tags inside the lowercased query, plus a bonus when the query mentions the
// item by name. Duplicate keyword reasons are deduplicated.
func (e *Engine) keywordScore(item *types.CatalogItem, query string) (float64, []string) {
	q := strings.ToLower(query)

	var score float64
	var reasons []string
	seen := make(map[string]bool)

	candidates := make([]string, 0, len(item.Detection.Keywords)+len(item.Tags))
	candidates = append(candidates, item.Detection.Keywords...)
	candidates = append(candidates, item.Tags...)

	for _, kw := range candidates {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		if strings.Contains(q, kw) {
			seen[kw] = true
			score += e.cfg.KeywordWeight
			reasons = append(reasons, "keyword match: "+kw)
		}
	}

	if name := strings.ToLower(item.Name); name != "" && strings.Contains(q, name) {
		score += e.cfg.NameBonus
		reasons = append(reasons, "name mentioned in query")
	}

	return score, reasons
}

// normalize maps a raw score onto the 1-100 scale. Zero or negative raw
// scores still yield 1, never 0, so "no match" stays distinguishable from
// "filtered out".
func (e *Engine) normalize(raw float64) float64 {
	score := raw / e.cfg.MaxRawScore * 100
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}

// membersOf returns the wanted entries present in the set, compared
// case-insensitively, in their original spelling.
func membersOf(wanted []string, set map[string]bool) []string {
	var matched []string
	for _, w := range wanted {
		if set[strings.ToLower(w)] {
			matched = append(matched, w)
		}
	}
	return matched
}

// matchingPatterns returns the glob patterns that match at least one file.
func matchingPatterns(patterns, files []string) []string {
	var matched []string
	for _, p := range patterns {
		if matchesAnyFile(p, files) {
			matched = append(matched, p)
		}
	}
	return matched
}

// profileTags infers a project's tag vocabulary for similarity scoring: the
// lowercased union of its languages, frameworks, and dependency names.
func profileTags(project *types.ProjectProfile) []string {
	if project == nil {
		return nil
	}
	seen := make(map[string]bool)
	var tags []string
	for _, group := range [][]string{project.Languages, project.Frameworks, project.Dependencies} {
		for _, v := range group {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			tags = append(tags, v)
		}
	}
	return tags
}

// toLowerSet builds a lowercase membership set from a string slice.
func toLowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}
