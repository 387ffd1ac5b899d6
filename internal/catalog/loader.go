package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/addonscout/addonscout/pkg/types"
)

// MaxCatalogItems bounds the catalog size accepted by the loader. Catalogs
// are expected in the low thousands; anything past this is a fetcher bug.
const MaxCatalogItems = 10000

// Loader validates and installs catalog files into a store.
type Loader struct {
	store Store
}

// NewLoader creates a Loader backed by the given store.
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// LoadFile reads a JSON catalog file (an array of items), validates it, and
// atomically replaces the store contents. Returns the number of items
// installed.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return l.LoadBytes(ctx, data)
}

// LoadBytes validates and installs a JSON-encoded catalog.
func (l *Loader) LoadBytes(ctx context.Context, data []byte) (int, error) {
	var items []types.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	normalized, err := ValidateCatalog(items)
	if err != nil {
		return 0, err
	}

	if err := l.store.ReplaceAll(ctx, normalized); err != nil {
		return 0, fmt.Errorf("failed to install catalog: %w", err)
	}
	return len(normalized), nil
}

// ValidateCatalog checks every item against the schema (required fields
// present, type within the closed set, security score in range), enforces
// the size bound, rejects duplicate IDs, and normalizes tags to lowercase
// deduplicated sets. The returned slice preserves input order.
func ValidateCatalog(items []types.CatalogItem) ([]types.CatalogItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(items) > MaxCatalogItems {
		return nil, fmt.Errorf("%w: %d items", ErrCatalogTooLarge, len(items))
	}

	seen := make(map[string]bool, len(items))
	out := make([]types.CatalogItem, 0, len(items))
	for i := range items {
		item := items[i]
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("catalog item %d (%q): %w", i, item.ID, err)
		}

		id := strings.ToLower(item.ID)
		if seen[id] {
			return nil, fmt.Errorf("catalog item %d: duplicate id %q", i, item.ID)
		}
		seen[id] = true

		item.Tags = item.NormalizedTags()
		item.Metrics.Source = sourceOrDefault(item.Metrics.Source)
		out = append(out, item)
	}

	return out, nil
}
