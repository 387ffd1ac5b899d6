package engine

import (
	"github.com/addonscout/addonscout/pkg/types"
)

// contextScore computes the project-metadata alignment bonus: monorepo
// tooling, size-tier fit, and team-scale collaboration. Each bonus applies at
// most once per call. Missing metadata contributes zero.
func (e *Engine) contextScore(item *types.CatalogItem, meta *types.ProjectMetadata) (float64, []string) {
	if meta == nil {
		return 0, nil
	}

	tags := toLowerSet(item.Tags)
	var score float64
	var reasons []string

	if meta.Kind == types.KindMonorepo && intersects(tags, e.monorepoTags) {
		score += e.cfg.MonorepoBonus
		reasons = append(reasons, "aligned with monorepo tooling")
	}

	switch meta.Size {
	case types.SizeLarge, types.SizeEnterprise:
		if intersects(tags, e.enterpriseTags) {
			score += e.cfg.SizeMatchBonus
			reasons = append(reasons, "suited to large-scale projects")
		}
	case types.SizeSmall:
		if intersects(tags, e.lightweightTags) {
			score += e.cfg.SizeMatchBonus
			reasons = append(reasons, "suited to small projects")
		}
	}

	if meta.TeamSize > e.cfg.TeamSizeThreshold && intersects(tags, e.collaborationTags) {
		score += e.cfg.TeamBonus
		reasons = append(reasons, "supports team collaboration")
	}

	return score, reasons
}

// intersects reports whether the two sets share at least one element.
func intersects(a, b map[string]bool) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}
