// Package mcp implements the Model Context Protocol server surface for the
// extension recommender.
//
// The server speaks MCP over stdio and exposes four tools:
//
//   - recommend_extensions: analyze a project directory and rank catalog
//     items by fit. Accepts an optional free-text query, a type allow-list,
//     result bounds, and an include_breakdown switch for per-signal scores.
//   - search_extensions: rank the catalog by free-text relevance alone,
//     matching name, description, category, and tags. No project profile.
//   - get_extension_details: look one item up by id or name (exact match
//     first, then case-insensitive) and report its quality score components.
//   - get_catalog_stats: catalog size and counts by type, source, and
//     official status.
//
// Tool responses are indented JSON in a single text content block. Failures
// are returned as *MCPError values with JSON-RPC style codes:
//
//	-32602  invalid parameters (missing path, bad limit, unknown type)
//	-32603  internal error (analysis or storage failure)
//	-32001  catalog is empty, nothing loaded yet
//	-32004  query parameter missing or blank
//	-32002  no catalog item matches the requested name
//
// A Server owns the SQLite-backed catalog store, the catalog loader, the
// project analyzer, and the recommender service. Catalog imports go through
// LoadCatalog, which validates the file, swaps the stored catalog, and
// refreshes the in-memory snapshot the tools score against:
//
//	srv, err := mcp.NewServer(dbPath)
//	if err != nil {
//	    return err
//	}
//	if _, err := srv.LoadCatalog(ctx, catalogPath); err != nil {
//	    return err
//	}
//	return srv.Serve(ctx)
//
// Anything written to stdout would corrupt the protocol stream, so all
// logging in this process goes to stderr.
package mcp
