package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/addonscout/addonscout/internal/catalog"
	"github.com/addonscout/addonscout/internal/engine"
	"github.com/addonscout/addonscout/internal/recommender"
	"github.com/addonscout/addonscout/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeEmptyCatalog  = -32001 // Catalog has no items loaded
	ErrorCodeItemNotFound  = -32002 // No catalog item matches the name
	ErrorCodeEmptyQuery    = -32004 // Query parameter is empty
)

// handleRecommendExtensions handles the recommend_extensions tool invocation
func (s *Server) handleRecommendExtensions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	query := getStringDefault(args, "query", "")
	includeBreakdown := getBoolDefault(args, "include_breakdown", false)
	minScore := getFloatDefault(args, "min_score", engine.DefaultMinScore)

	maxResults := getIntDefault(args, "max_results", engine.DefaultMaxResults)
	if maxResults < 1 || maxResults > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_results must be between 1 and 100", map[string]interface{}{
			"param": "max_results",
			"value": maxResults,
		})
	}

	itemTypes, err := parseItemTypes(args)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid types filter", map[string]interface{}{
			"param":   "types",
			"reason":  err.Error(),
			"allowed": itemTypeEnum,
		})
	}

	projectProfile, err := s.analyzer.Analyze(ctx, path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "project analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	resp, err := s.recommender.Recommend(ctx, recommender.RecommendRequest{
		Profile:          projectProfile,
		Query:            query,
		Types:            itemTypes,
		MaxResults:       maxResults,
		MinScore:         minScore,
		IncludeBreakdown: includeBreakdown,
		UseCache:         true,
	})
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		return nil, newMCPError(ErrorCodeEmptyCatalog, "catalog is empty", map[string]interface{}{
			"reason": "no catalog items loaded; import a catalog file first",
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "recommendation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"summary": fmt.Sprintf("%d of %d catalog items recommended for %s",
			len(resp.Results), resp.TotalCandidates, filepath.Base(path)),
		"profile": map[string]interface{}{
			"languages":    projectProfile.Languages,
			"frameworks":   projectProfile.Frameworks,
			"dependencies": len(projectProfile.Dependencies),
			"files":        len(projectProfile.Files),
		},
		"results":     formatResults(resp.Results, includeBreakdown),
		"cache_hit":   resp.CacheHit,
		"duration_ms": resp.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchExtensions handles the search_extensions tool invocation
func (s *Server) handleSearchExtensions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	maxResults := getIntDefault(args, "max_results", engine.DefaultMaxResults)
	if maxResults < 1 || maxResults > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_results must be between 1 and 100", map[string]interface{}{
			"param": "max_results",
			"value": maxResults,
		})
	}

	itemTypes, err := parseItemTypes(args)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid types filter", map[string]interface{}{
			"param":   "types",
			"reason":  err.Error(),
			"allowed": itemTypeEnum,
		})
	}

	results, err := s.recommender.Search(ctx, query, maxResults, itemTypes)
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		return nil, newMCPError(ErrorCodeEmptyCatalog, "catalog is empty", map[string]interface{}{
			"reason": "no catalog items loaded; import a catalog file first",
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"summary": fmt.Sprintf("%d catalog items match %q", len(results), query),
		"results": formatResults(results, false),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetExtensionDetails handles the get_extension_details tool invocation
func (s *Server) handleGetExtensionDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "name parameter is required", map[string]interface{}{
			"param":  "name",
			"reason": "missing or empty",
		})
	}

	item, quality, err := s.recommender.Details(ctx, name)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, newMCPError(ErrorCodeItemNotFound, "no catalog item matches", map[string]interface{}{
			"name": name,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to fetch item", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"item": item,
		"quality": map[string]interface{}{
			"total":      quality.Total,
			"official":   quality.Breakdown.Official,
			"popularity": quality.Breakdown.Popularity,
			"freshness":  quality.Breakdown.Freshness,
			"provenance": quality.Breakdown.Provenance,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetCatalogStats handles the get_catalog_stats tool invocation
func (s *Server) handleGetCatalogStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.recommender.Stats(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to aggregate stats", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"total":     stats.Total,
		"official":  stats.Official,
		"by_type":   stats.ByType,
		"by_source": stats.BySource,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// formatResults flattens scored results into the wire shape shared by the
// recommend and search tools.
func formatResults(results []types.ScoredResult, includeBreakdown bool) []map[string]interface{} {
	formatted := make([]map[string]interface{}, 0, len(results))
	for i := range results {
		r := &results[i]
		entry := map[string]interface{}{
			"id":          r.Item.ID,
			"name":        r.Item.Name,
			"type":        r.Item.Type,
			"description": r.Item.Description,
			"category":    r.Item.Category,
			"score":       r.Score,
			"reasons":     r.Reasons,
			"source":      r.Item.Metrics.Source,
			"official":    r.Item.Metrics.Official,
		}
		if includeBreakdown && r.Breakdown != nil {
			entry["breakdown"] = r.Breakdown
		}
		formatted = append(formatted, entry)
	}
	return formatted
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path is an absolute, readable directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// parseItemTypes reads the optional "types" array argument.
func parseItemTypes(args map[string]interface{}) ([]types.ItemType, error) {
	raw, ok := args["types"].([]interface{})
	if !ok {
		return nil, nil
	}

	itemTypes := make([]types.ItemType, 0, len(raw))
	for _, entry := range raw {
		str, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("type entries must be strings")
		}
		t := types.ItemType(strings.ToLower(str))
		if !types.ValidItemTypes[t] {
			return nil, fmt.Errorf("unknown item type %q", str)
		}
		itemTypes = append(itemTypes, t)
	}
	return itemTypes, nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a number parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	if val, ok := args[key].(int); ok {
		return float64(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
