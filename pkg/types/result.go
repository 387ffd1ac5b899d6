package types

// ScoredResult represents a single ranked recommendation
type ScoredResult struct {
	Item CatalogItem `json:"item"`

	// Score is the final score on the normalized 1-100 scale (recommend
	// mode may exceed 100 slightly once the quality blend is added).
	Score float64 `json:"score"`

	// Reasons are human-readable match explanations in evaluation order.
	Reasons []string `json:"reasons"`

	// Breakdown exposes the component sub-scores for diagnostics.
	// Nullable - only populated when the caller asks for it.
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
}

// ScoreBreakdown decomposes a final score into its component terms
type ScoreBreakdown struct {
	Base       float64 `json:"base"`       // weighted structural match, after multipliers
	Context    float64 `json:"context"`    // project-metadata alignment bonus
	Similarity float64 `json:"similarity"` // tag co-occurrence bonus
	Quality    float64 `json:"quality"`    // intrinsic quality (0-100), filled by the ranking engine
	Final      float64 `json:"final"`      // normalized score after blending
}

// Validate checks if the scored result is valid
func (sr *ScoredResult) Validate() error {
	if sr.Item.ID == "" {
		return ErrEmptyItemID
	}
	if sr.Score < 1 {
		return ErrInvalidScore
	}
	return nil
}
