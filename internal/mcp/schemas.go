package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// itemTypeEnum lists the accepted values for type filter parameters.
var itemTypeEnum = []string{"extension", "connector", "skill", "workflow", "hook", "command", "agent"}

// recommendExtensionsTool returns the tool definition for recommend_extensions
func recommendExtensionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "recommend_extensions",
		Description: "Analyze a project and recommend catalog extensions ranked by fit",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root to analyze",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text intent (e.g. 'deploy to kubernetes')",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
				"min_score": map[string]interface{}{
					"type":        "number",
					"description": "Minimum final score to include a result",
					"default":     1,
				},
				"types": map[string]interface{}{
					"type":        "array",
					"description": "Restrict results to these item types",
					"items": map[string]interface{}{
						"type": "string",
						"enum": itemTypeEnum,
					},
				},
				"include_breakdown": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include per-signal score components for each result",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchExtensionsTool returns the tool definition for search_extensions
func searchExtensionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_extensions",
		Description: "Search the extension catalog by free-text query, without a project profile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query matched against name, description, category, and tags",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
				"types": map[string]interface{}{
					"type":        "array",
					"description": "Restrict results to these item types",
					"items": map[string]interface{}{
						"type": "string",
						"enum": itemTypeEnum,
					},
				},
			},
			Required: []string{"query"},
		},
	}
}

// getExtensionDetailsTool returns the tool definition for get_extension_details
func getExtensionDetailsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_extension_details",
		Description: "Fetch one catalog item by id or name, including its quality score breakdown",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Item id or display name (exact match first, then case-insensitive)",
				},
			},
			Required: []string{"name"},
		},
	}
}

// getCatalogStatsTool returns the tool definition for get_catalog_stats
func getCatalogStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_catalog_stats",
		Description: "Report catalog size and counts by type, source, and official status",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
