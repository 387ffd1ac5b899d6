// Package recommender coordinates recommendation and search runs over an
// in-memory snapshot of the catalog.
//
// The Service loads the catalog once from the store and keeps it in memory
// together with the tag co-occurrence matrix derived from it. Reload swaps
// both atomically and purges the response cache, so scoring always sees a
// consistent catalog and matrix pair:
//
//	svc := recommender.New(store, engine.New(engine.DefaultConfig()))
//	if _, err := svc.Reload(ctx); err != nil {
//	    return err
//	}
//	resp, err := svc.Recommend(ctx, recommender.RecommendRequest{
//	    Profile:  profile,
//	    Query:    "deploy to kubernetes",
//	    UseCache: true,
//	})
//
// Responses are cached in an LRU keyed by a SHA-256 hash of every request
// field that affects output. Entries expire after the request TTL (1 hour
// by default) and the whole cache is dropped on Reload.
package recommender
