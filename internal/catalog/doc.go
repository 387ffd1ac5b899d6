// Package catalog persists and serves the set of recommendable extensions.
//
// The catalog is populated out-of-band (registry fetchers are not part of
// this server); this package owns the local SQLite copy, the JSON loader
// that validates incoming items, and simple aggregate statistics.
//
// # Storage
//
// SQLiteStore implements the Store interface on a single-file SQLite
// database. Two drivers are supported through build tags: the pure Go
// modernc.org/sqlite driver by default, and mattn/go-sqlite3 when built with
// CGO (see build_cgo.go / build_purego.go).
//
//	store, err := catalog.NewSQLiteStore("/path/to/catalog.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Loading
//
// Loader reads a JSON catalog file (an array of CatalogItem records),
// validates every item against the closed type set, normalizes tags, and
// atomically replaces the store contents:
//
//	loader := catalog.NewLoader(store)
//	count, err := loader.LoadFile(ctx, "catalog.json")
//
// Validation happens here, at the boundary: the scoring engine downstream
// assumes every item it sees has already passed it.
package catalog
