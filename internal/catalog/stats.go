package catalog

import (
	"github.com/addonscout/addonscout/pkg/types"
)

// Stats aggregates catalog counts by type, source, and official flag.
type Stats struct {
	Total    int                    `json:"total"`
	ByType   map[types.ItemType]int `json:"by_type"`
	BySource map[types.Source]int   `json:"by_source"`
	Official int                    `json:"official"`
}

// Aggregate computes catalog statistics over a snapshot.
func Aggregate(items []types.CatalogItem) Stats {
	stats := Stats{
		Total:    len(items),
		ByType:   make(map[types.ItemType]int),
		BySource: make(map[types.Source]int),
	}
	for i := range items {
		stats.ByType[items[i].Type]++
		stats.BySource[sourceOrDefault(items[i].Metrics.Source)]++
		if items[i].Metrics.Official {
			stats.Official++
		}
	}
	return stats
}
