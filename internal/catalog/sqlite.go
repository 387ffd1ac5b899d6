package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/addonscout/addonscout/pkg/types"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStore creates a new SQLite catalog store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const itemColumns = `id, name, item_type, description, category, tags,
	languages, frameworks, dependencies, file_patterns, keywords,
	source, official, popularity, last_updated, security_score`

// UpsertItem inserts or updates a catalog item keyed by its ID
func (s *SQLiteStore) UpsertItem(ctx context.Context, item *types.CatalogItem) error {
	return upsertItem(ctx, s.db, item)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func upsertItem(ctx context.Context, q execer, item *types.CatalogItem) error {
	query := `
		INSERT INTO items (` + itemColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			item_type = excluded.item_type,
			description = excluded.description,
			category = excluded.category,
			tags = excluded.tags,
			languages = excluded.languages,
			frameworks = excluded.frameworks,
			dependencies = excluded.dependencies,
			file_patterns = excluded.file_patterns,
			keywords = excluded.keywords,
			source = excluded.source,
			official = excluded.official,
			popularity = excluded.popularity,
			last_updated = excluded.last_updated,
			security_score = excluded.security_score,
			updated_at = excluded.updated_at
	`

	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		item.ID,
		item.Name,
		string(item.Type),
		item.Description,
		item.Category,
		marshalStrings(item.Tags),
		marshalStrings(item.Detection.Languages),
		marshalStrings(item.Detection.Frameworks),
		marshalStrings(item.Detection.Dependencies),
		marshalStrings(item.Detection.Files),
		marshalStrings(item.Detection.Keywords),
		string(sourceOrDefault(item.Metrics.Source)),
		item.Metrics.Official,
		item.Metrics.Popularity,
		nullableTime(item.Metrics.LastUpdated),
		nullableInt(item.Metrics.SecurityScore),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem returns the item with the given ID
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*types.CatalogItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	return scanItem(row)
}

// FindByName looks an item up by exact id or name, falling back to a
// case-insensitive comparison.
func (s *SQLiteStore) FindByName(ctx context.Context, name string) (*types.CatalogItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? OR name = ?`, name, name)
	item, err := scanItem(row)
	if err == nil {
		return item, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	lowered := strings.ToLower(name)
	row = s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE lower(id) = ? OR lower(name) = ?`, lowered, lowered)
	return scanItem(row)
}

// ListItems returns the full catalog in insertion order
func (s *SQLiteStore) ListItems(ctx context.Context) ([]types.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY rowid_ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []types.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ReplaceAll swaps the entire catalog in one transaction
func (s *SQLiteStore) ReplaceAll(ctx context.Context, items []types.CatalogItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	for i := range items {
		if err := upsertItem(ctx, tx, &items[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountItems returns the number of items in the catalog
func (s *SQLiteStore) CountItems(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanItem reads one item row back into its domain type
func scanItem(row rowScanner) (*types.CatalogItem, error) {
	var (
		item          types.CatalogItem
		itemType      string
		description   sql.NullString
		category      sql.NullString
		tags          sql.NullString
		languages     sql.NullString
		frameworks    sql.NullString
		dependencies  sql.NullString
		filePatterns  sql.NullString
		keywords      sql.NullString
		source        string
		lastUpdated   sql.NullTime
		securityScore sql.NullInt64
	)

	err := row.Scan(
		&item.ID,
		&item.Name,
		&itemType,
		&description,
		&category,
		&tags,
		&languages,
		&frameworks,
		&dependencies,
		&filePatterns,
		&keywords,
		&source,
		&item.Metrics.Official,
		&item.Metrics.Popularity,
		&lastUpdated,
		&securityScore,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	item.Type = types.ItemType(itemType)
	item.Description = description.String
	item.Category = category.String
	item.Tags = unmarshalStrings(tags)
	item.Detection = types.DetectionRules{
		Languages:    unmarshalStrings(languages),
		Frameworks:   unmarshalStrings(frameworks),
		Dependencies: unmarshalStrings(dependencies),
		Files:        unmarshalStrings(filePatterns),
		Keywords:     unmarshalStrings(keywords),
	}
	item.Metrics.Source = types.Source(source)
	if lastUpdated.Valid {
		t := lastUpdated.Time
		item.Metrics.LastUpdated = &t
	}
	if securityScore.Valid {
		v := int(securityScore.Int64)
		item.Metrics.SecurityScore = &v
	}

	return &item, nil
}

// marshalStrings encodes a string slice as a JSON column value. Empty
// slices are stored as NULL to keep rows compact.
func marshalStrings(values []string) interface{} {
	if len(values) == 0 {
		return nil
	}
	// Marshaling a []string cannot fail.
	data, _ := json.Marshal(values)
	return string(data)
}

// unmarshalStrings decodes a JSON column value back into a string slice.
// NULL and malformed values degrade to nil.
func unmarshalStrings(col sql.NullString) []string {
	if !col.Valid || col.String == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(col.String), &values); err != nil {
		return nil
	}
	return values
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func nullableInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func sourceOrDefault(s types.Source) types.Source {
	if s == "" {
		return types.SourceCommunity
	}
	return s
}
