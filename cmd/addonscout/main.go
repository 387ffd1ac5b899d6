package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/addonscout/addonscout/internal/catalog"
	"github.com/addonscout/addonscout/internal/mcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("AddonScout MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", catalog.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", catalog.DriverName)
		os.Exit(0)
	}

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("AddonScout MCP Server v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", catalog.BuildMode, catalog.DriverName)

	// Get database path from environment or use default
	dbPath := os.Getenv("ADDONSCOUT_DB_PATH")
	if dbPath == "" {
		dbPath = mcp.DefaultDBPath
	}

	// Create MCP server
	server, err := mcp.NewServer(dbPath)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Import a catalog file when one is configured or present, then build
	// the in-memory snapshot from whatever the store holds.
	if catalogPath := resolveCatalogPath(dbPath); catalogPath != "" {
		count, err := server.LoadCatalog(ctx, catalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog %s: %v", catalogPath, err)
		}
		log.Printf("Loaded %d catalog items from %s", count, catalogPath)
	} else {
		count, err := server.Reload(ctx)
		if err != nil {
			log.Fatalf("Failed to load catalog snapshot: %v", err)
		}
		log.Printf("Catalog snapshot ready with %d items", count)
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}

// resolveCatalogPath picks the catalog file to import at startup:
// ADDONSCOUT_CATALOG wins, otherwise a catalog.json sitting next to the
// database is picked up automatically.
func resolveCatalogPath(dbPath string) string {
	if path := os.Getenv("ADDONSCOUT_CATALOG"); path != "" {
		return path
	}

	if dbPath == "" || dbPath == mcp.DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dbPath = filepath.Join(home, ".addonscout")
	}

	candidate := filepath.Join(dbPath, "catalog.json")
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}
