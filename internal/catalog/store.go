package catalog

import (
	"context"
	"errors"

	"github.com/addonscout/addonscout/pkg/types"
)

var (
	// ErrNotFound is returned when a requested item doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrEmptyCatalog is returned when loading a catalog with no items
	ErrEmptyCatalog = errors.New("catalog contains no items")
	// ErrCatalogTooLarge is returned when a catalog exceeds the size bound
	ErrCatalogTooLarge = errors.New("catalog exceeds maximum item count")
)

// Store defines the interface for persisting and querying catalog items
type Store interface {
	// Item operations
	UpsertItem(ctx context.Context, item *types.CatalogItem) error
	GetItem(ctx context.Context, id string) (*types.CatalogItem, error)

	// FindByName looks an item up by exact id or name first, then by
	// case-insensitive id or name.
	FindByName(ctx context.Context, name string) (*types.CatalogItem, error)

	// ListItems returns the full catalog in insertion order.
	ListItems(ctx context.Context) ([]types.CatalogItem, error)

	// ReplaceAll swaps the entire catalog in one transaction.
	ReplaceAll(ctx context.Context, items []types.CatalogItem) error

	CountItems(ctx context.Context) (int, error)

	// Database operations
	Close() error
}
