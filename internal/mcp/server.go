package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/addonscout/addonscout/internal/catalog"
	"github.com/addonscout/addonscout/internal/engine"
	"github.com/addonscout/addonscout/internal/profile"
	"github.com/addonscout/addonscout/internal/recommender"
)

const (
	// ServerName is the MCP server name
	ServerName = "addonscout"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.addonscout"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp         *server.MCPServer
	store       catalog.Store
	loader      *catalog.Loader
	analyzer    *profile.Analyzer
	recommender *recommender.Service
}

// NewServer creates a new MCP server instance backed by a SQLite catalog at
// dbPath.
func NewServer(dbPath string) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".addonscout")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := catalog.NewSQLiteStore(filepath.Join(dbPath, "catalog.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog store: %w", err)
	}

	svc := recommender.New(store, engine.New(engine.DefaultConfig()))

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:         mcpServer,
		store:       store,
		loader:      catalog.NewLoader(store),
		analyzer:    profile.New(),
		recommender: svc,
	}

	s.registerTools()

	return s, nil
}

// LoadCatalog imports a catalog file into the store and refreshes the
// recommendation snapshot.
func (s *Server) LoadCatalog(ctx context.Context, path string) (int, error) {
	count, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return 0, err
	}
	if _, err := s.recommender.Reload(ctx); err != nil {
		return 0, err
	}
	return count, nil
}

// Reload refreshes the in-memory snapshot from whatever the store holds.
func (s *Server) Reload(ctx context.Context) (int, error) {
	return s.recommender.Reload(ctx)
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(recommendExtensionsTool(), s.handleRecommendExtensions)
	s.mcp.AddTool(searchExtensionsTool(), s.handleSearchExtensions)
	s.mcp.AddTool(getExtensionDetailsTool(), s.handleGetExtensionDetails)
	s.mcp.AddTool(getCatalogStatsTool(), s.handleGetCatalogStats)
}
