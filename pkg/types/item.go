package types

import (
	"strings"
	"time"
)

// ItemType discriminates the kind of a catalog item
type ItemType string

const (
	ItemTypeExtension ItemType = "extension"
	ItemTypeConnector ItemType = "connector"
	ItemTypeSkill     ItemType = "skill"
	ItemTypeWorkflow  ItemType = "workflow"
	ItemTypeHook      ItemType = "hook"
	ItemTypeCommand   ItemType = "command"
	ItemTypeAgent     ItemType = "agent"
)

// ValidItemTypes is the closed set of accepted type discriminants
var ValidItemTypes = map[ItemType]bool{
	ItemTypeExtension: true,
	ItemTypeConnector: true,
	ItemTypeSkill:     true,
	ItemTypeWorkflow:  true,
	ItemTypeHook:      true,
	ItemTypeCommand:   true,
	ItemTypeAgent:     true,
}

// Source classifies the provenance of a catalog item
type Source string

const (
	SourceOfficial  Source = "official"
	SourceCurated   Source = "curated"
	SourceCommunity Source = "community"
)

// CatalogItem represents one recommendable extension. Items are immutable
// once loaded into a catalog snapshot.
type CatalogItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        ItemType       `json:"type"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Detection   DetectionRules `json:"detection,omitempty"`
	Metrics     ItemMetrics    `json:"metrics"`
}

// DetectionRules are the declarative conditions under which an item is
// considered relevant to a project. All fields are optional; an absent field
// contributes zero to every score component.
type DetectionRules struct {
	Languages    []string `json:"languages,omitempty"`
	Frameworks   []string `json:"frameworks,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Files        []string `json:"files,omitempty"` // file-glob patterns
	Keywords     []string `json:"keywords,omitempty"`
}

// ItemMetrics carries the provenance and popularity metadata a catalog item
// was published with.
type ItemMetrics struct {
	Source   Source `json:"source"`
	Official bool   `json:"official"`

	// Popularity is an install/star count. Zero means unknown or none;
	// both contribute zero to the popularity score.
	Popularity int `json:"popularity,omitempty"`

	// LastUpdated is nil when the registry did not report a timestamp.
	// Unknown freshness is scored as neutral, not stale.
	LastUpdated *time.Time `json:"last_updated,omitempty"`

	// SecurityScore (0-100) is set by the external vulnerability scanner.
	// Nil means the item has not been scanned yet.
	SecurityScore *int `json:"security_score,omitempty"`
}

// Validate checks the required fields of a catalog item. The catalog loader
// runs this before an item ever reaches the scoring engine.
func (ci *CatalogItem) Validate() error {
	if strings.TrimSpace(ci.ID) == "" {
		return ErrEmptyItemID
	}
	if strings.TrimSpace(ci.Name) == "" {
		return ErrEmptyItemName
	}
	if !ValidItemTypes[ci.Type] {
		return ErrInvalidItemType
	}
	switch ci.Metrics.Source {
	case SourceOfficial, SourceCurated, SourceCommunity, "":
	default:
		return ErrInvalidSource
	}
	if ci.Metrics.SecurityScore != nil {
		if s := *ci.Metrics.SecurityScore; s < 0 || s > 100 {
			return ErrInvalidSecurityScore
		}
	}
	return nil
}

// NormalizedTags returns the item's tags lowercased and deduplicated,
// preserving first-seen order.
func (ci *CatalogItem) NormalizedTags() []string {
	if len(ci.Tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ci.Tags))
	out := make([]string, 0, len(ci.Tags))
	for _, tag := range ci.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
