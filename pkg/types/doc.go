// Package types provides shared type definitions for the Addonscout MCP server.
//
// This package defines domain types used across multiple components of
// Addonscout, including catalog items, project profiles, and scored
// recommendation results.
//
// # Core Types
//
// CatalogItem represents one recommendable extension in the catalog, together
// with the declarative conditions under which it is relevant to a project:
//
//	item := types.CatalogItem{
//	    ID:   "react-devkit",
//	    Name: "React DevKit",
//	    Type: types.ItemTypeExtension,
//	    Detection: types.DetectionRules{
//	        Languages:  []string{"TypeScript", "JavaScript"},
//	        Frameworks: []string{"React"},
//	    },
//	}
//
// ProjectProfile is the analyzer's view of one project: detected languages,
// frameworks, dependency names, file paths, and optional size/kind/team
// metadata. The scoring engine consumes it as a read-only input.
//
// # Validation
//
// CatalogItem implements a Validate method used by the catalog loader; the
// scoring engine assumes it only ever sees validated items:
//
//	if err := item.Validate(); err != nil {
//	    return fmt.Errorf("bad catalog entry: %w", err)
//	}
//
// # Scored Results
//
// ScoredResult pairs a catalog item with its final score, the ordered
// human-readable reasons for the match, and an optional component breakdown:
//
//	result := types.ScoredResult{
//	    Item:    item,
//	    Score:   87.5,
//	    Reasons: []string{"matches project languages: typescript"},
//	}
//
// Final scores are normalized to the [1, 100] scale (the quality blend in
// recommend mode may push a result slightly above 100), with higher values
// indicating better matches.
package types
