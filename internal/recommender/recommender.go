package recommender

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/addonscout/addonscout/internal/catalog"
	"github.com/addonscout/addonscout/internal/engine"
	"github.com/addonscout/addonscout/pkg/types"
)

const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 1 * time.Hour
	maxLimit         = 100
)

// RecommendRequest contains parameters for a recommendation run.
type RecommendRequest struct {
	Profile          *types.ProjectProfile
	Query            string
	Types            []types.ItemType
	MaxResults       int
	MinScore         float64
	IncludeBreakdown bool
	UseCache         bool
	CacheTTL         time.Duration
}

// RecommendResponse contains ranked results and run metadata.
type RecommendResponse struct {
	Results         []types.ScoredResult
	TotalCandidates int
	Duration        time.Duration
	CacheHit        bool
}

// cacheEntry is a cached response with an expiration time.
type cacheEntry struct {
	response  *RecommendResponse
	expiresAt time.Time
}

// Service coordinates scoring runs against an in-memory catalog snapshot.
// The snapshot and its tag similarity matrix are rebuilt by Reload and read
// by every scorer, so catalog writes never block recommendations.
type Service struct {
	store  catalog.Store
	engine *engine.Engine

	mu       sync.RWMutex
	snapshot []types.CatalogItem
	matrix   *engine.SimilarityMatrix

	cache   *lru.Cache[[32]byte, *cacheEntry]
	cacheMu sync.RWMutex
}

// New creates a Service. Call Reload before serving requests.
func New(store catalog.Store, eng *engine.Engine) *Service {
	cache, err := lru.New[[32]byte, *cacheEntry](defaultCacheSize)
	if err != nil {
		// This should never happen with valid size parameter
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}

	return &Service{
		store:  store,
		engine: eng,
		cache:  cache,
	}
}

// Reload replaces the catalog snapshot from the store, rebuilds the tag
// similarity matrix, and purges cached responses.
func (s *Service) Reload(ctx context.Context) (int, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	matrix := engine.BuildSimilarityMatrix(items)

	s.mu.Lock()
	s.snapshot = items
	s.matrix = matrix
	s.mu.Unlock()

	s.cacheMu.Lock()
	s.cache.Purge()
	s.cacheMu.Unlock()

	return len(items), nil
}

// Recommend scores the catalog against the request's profile and query.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.validateRequest(&req)

	if req.UseCache {
		if cached := s.checkCache(req); cached != nil {
			cached.CacheHit = true
			cached.Duration = time.Since(startTime)
			return cached, nil
		}
	}

	snapshot, matrix := s.current()
	if len(snapshot) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	opts := engine.Options{
		MaxResults:       req.MaxResults,
		MinScore:         req.MinScore,
		Types:            req.Types,
		IncludeBreakdown: req.IncludeBreakdown,
	}
	results := s.engine.Recommend(snapshot, req.Profile, req.Query, matrix, opts)

	response := &RecommendResponse{
		Results:         results,
		TotalCandidates: len(snapshot),
		Duration:        time.Since(startTime),
	}

	if req.UseCache && len(results) > 0 {
		s.storeInCache(req, response)
	}

	return response, nil
}

// ErrEmptyQuery is returned by Search when the query is blank.
var ErrEmptyQuery = fmt.Errorf("query cannot be empty")

// Search matches catalog items against a free-text query without a profile.
func (s *Service) Search(ctx context.Context, query string, limit int, itemTypes []types.ItemType) ([]types.ScoredResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	limit = clampLimit(limit)

	snapshot, _ := s.current()
	if len(snapshot) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	opts := engine.Options{MaxResults: limit, MinScore: engine.DefaultMinScore, Types: itemTypes}
	return s.engine.Search(snapshot, query, opts), nil
}

// Details returns one catalog item by id or name, with its quality score.
func (s *Service) Details(ctx context.Context, idOrName string) (*types.CatalogItem, *engine.QualityScore, error) {
	item, err := s.store.FindByName(ctx, idOrName)
	if err != nil {
		return nil, nil, err
	}

	quality := s.engine.Quality(item)
	return item, &quality, nil
}

// Stats aggregates counts over the current snapshot.
func (s *Service) Stats(ctx context.Context) (catalog.Stats, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Stats{}, err
	}
	snapshot, _ := s.current()
	return catalog.Aggregate(snapshot), nil
}

// current returns the snapshot and matrix under the read lock.
func (s *Service) current() ([]types.CatalogItem, *engine.SimilarityMatrix) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.matrix
}

// validateRequest applies defaults and bounds before scoring.
func (s *Service) validateRequest(req *RecommendRequest) {
	if req.MaxResults == 0 {
		req.MaxResults = engine.DefaultOptions().MaxResults
	}
	if req.MaxResults > maxLimit {
		req.MaxResults = maxLimit
	}
	if req.MinScore <= 0 {
		req.MinScore = engine.DefaultOptions().MinScore
	}
	if req.CacheTTL == 0 {
		req.CacheTTL = defaultCacheTTL
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return engine.DefaultOptions().MaxResults
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// checkCache returns a copied cached response, or nil on miss.
func (s *Service) checkCache(req RecommendRequest) *RecommendResponse {
	hash := computeRequestHash(req)
	now := time.Now()

	s.cacheMu.RLock()
	entry, found := s.cache.Get(hash)
	if !found {
		s.cacheMu.RUnlock()
		return nil
	}

	if now.After(entry.expiresAt) {
		s.cacheMu.RUnlock()
		s.cacheMu.Lock()
		s.cache.Remove(hash)
		s.cacheMu.Unlock()
		return nil
	}

	response := copyResponse(entry.response)
	s.cacheMu.RUnlock()
	return response
}

// storeInCache saves a deep copy so callers can't mutate cached results.
func (s *Service) storeInCache(req RecommendRequest, response *RecommendResponse) {
	entry := &cacheEntry{
		response:  copyResponse(response),
		expiresAt: time.Now().Add(req.CacheTTL),
	}

	s.cacheMu.Lock()
	s.cache.Add(computeRequestHash(req), entry)
	s.cacheMu.Unlock()
}

// copyResponse creates a deep copy of a RecommendResponse.
func copyResponse(src *RecommendResponse) *RecommendResponse {
	if src == nil {
		return nil
	}

	dst := &RecommendResponse{
		TotalCandidates: src.TotalCandidates,
		Duration:        src.Duration,
		CacheHit:        src.CacheHit,
		Results:         make([]types.ScoredResult, len(src.Results)),
	}

	for i, result := range src.Results {
		dst.Results[i] = types.ScoredResult{
			Item:    result.Item,
			Score:   result.Score,
			Reasons: append([]string(nil), result.Reasons...),
		}
		if result.Breakdown != nil {
			breakdown := *result.Breakdown
			dst.Results[i].Breakdown = &breakdown
		}
	}

	return dst
}

// computeRequestHash builds a deterministic key over every field that
// affects scoring output.
func computeRequestHash(req RecommendRequest) [32]byte {
	var data strings.Builder
	data.WriteString(req.Query)
	data.WriteString("|")
	fmt.Fprintf(&data, "%d|%.2f|%t", req.MaxResults, req.MinScore, req.IncludeBreakdown)

	data.WriteString("|types:")
	for _, t := range req.Types {
		data.WriteString(string(t))
		data.WriteString(",")
	}

	if req.Profile != nil {
		data.WriteString("|langs:")
		data.WriteString(strings.Join(req.Profile.Languages, ","))
		data.WriteString("|fws:")
		data.WriteString(strings.Join(req.Profile.Frameworks, ","))
		data.WriteString("|deps:")
		data.WriteString(strings.Join(req.Profile.Dependencies, ","))
		data.WriteString("|files:")
		data.WriteString(strings.Join(req.Profile.Files, ","))
		if meta := req.Profile.Metadata; meta != nil {
			fmt.Fprintf(&data, "|meta:%s|%s|%d|%d", meta.Size, meta.Kind, meta.TeamSize, meta.WorkspaceCount)
		}
	}

	return sha256.Sum256([]byte(data.String()))
}
