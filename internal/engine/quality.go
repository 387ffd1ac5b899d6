package engine

import (
	"math"
	"time"

	"github.com/addonscout/addonscout/pkg/types"
)

// Quality score component ceilings. The four components sum to at most 100.
const (
	officialPoints    = 40.0
	popularityCeiling = 30.0

	freshnessMonth    = 20.0 // updated within 30 days
	freshnessQuarter  = 15.0 // within 90 days
	freshnessHalfYear = 10.0 // within 180 days
	freshnessYear     = 5.0  // within 365 days
	freshnessUnknown  = 10.0 // no timestamp reported: neutral, not stale

	provenanceOfficial  = 10.0
	provenanceCurated   = 7.0
	provenanceCommunity = 5.0
)

// QualityBreakdown itemizes the intrinsic quality components.
type QualityBreakdown struct {
	Official   float64 `json:"official"`   // 0 or 40
	Popularity float64 `json:"popularity"` // 0-30, log-scaled
	Freshness  float64 `json:"freshness"`  // 0-20 by update recency
	Provenance float64 `json:"provenance"` // 5-10 by source
}

// QualityScore is an item's intrinsic 0-100 quality, derived from provenance
// metadata alone with no project context.
type QualityScore struct {
	Total     float64          `json:"total"`
	Breakdown QualityBreakdown `json:"breakdown"`
}

// Quality computes the intrinsic quality score for a catalog item.
func (e *Engine) Quality(item *types.CatalogItem) QualityScore {
	return e.QualityAt(item, time.Now())
}

// QualityAt computes the quality score with an explicit reference time for
// the freshness component.
func (e *Engine) QualityAt(item *types.CatalogItem, now time.Time) QualityScore {
	var b QualityBreakdown

	if item.Metrics.Official {
		b.Official = officialPoints
	}
	b.Popularity = popularityScore(item.Metrics.Popularity)
	b.Freshness = freshnessScore(item.Metrics.LastUpdated, now)
	b.Provenance = provenanceScore(item.Metrics.Source)

	return QualityScore{
		Total:     b.Official + b.Popularity + b.Freshness + b.Provenance,
		Breakdown: b,
	}
}

// popularityScore gives diminishing returns on raw install counts: roughly
// 10 points at 10, 20 at 100, capped at 30 from 1000 up. Absent or zero
// popularity scores zero, never errors.
func popularityScore(popularity int) float64 {
	if popularity <= 0 {
		return 0
	}
	return math.Min(popularityCeiling, math.Log10(float64(popularity)+1)*10)
}

// freshnessScore tiers the days since last update. An unknown timestamp is
// neutral rather than stale.
func freshnessScore(lastUpdated *time.Time, now time.Time) float64 {
	if lastUpdated == nil {
		return freshnessUnknown
	}
	days := int(now.Sub(*lastUpdated).Hours() / 24)
	switch {
	case days < 30:
		return freshnessMonth
	case days < 90:
		return freshnessQuarter
	case days < 180:
		return freshnessHalfYear
	case days < 365:
		return freshnessYear
	default:
		return 0
	}
}

// provenanceScore maps the source tag to trust points. Anything that is not
// official or curated counts as community.
func provenanceScore(source types.Source) float64 {
	switch source {
	case types.SourceOfficial:
		return provenanceOfficial
	case types.SourceCurated:
		return provenanceCurated
	default:
		return provenanceCommunity
	}
}
