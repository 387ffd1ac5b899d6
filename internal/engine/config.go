package engine

// Default structural match weights. Languages are the strongest signal
// because they are the hardest to detect falsely; free keywords are the
// weakest.
const (
	DefaultLanguageWeight   = 5.0
	DefaultFrameworkWeight  = 4.0
	DefaultDependencyWeight = 3.0
	DefaultFileWeight       = 2.0
	DefaultKeywordWeight    = 1.0
	DefaultNameBonus        = 2.0
)

// Default provenance and security multipliers.
const (
	DefaultOfficialBoost         = 1.5
	DefaultSecurityHighThreshold = 80
	DefaultSecurityLowThreshold  = 50
	DefaultSecurityBoost         = 1.15
	DefaultSecurityPenalty       = 0.7
)

// Default similarity and context parameters.
const (
	DefaultMinCooccurrence    = 2
	DefaultMinSimilarity      = 0.1
	DefaultMaxSimilarityBonus = 5.0

	DefaultMonorepoBonus  = 3.0
	DefaultSizeMatchBonus = 2.0
	DefaultTeamBonus      = 2.0

	// TeamSizeThreshold is the estimated team size above which
	// collaboration tooling gets a bonus.
	DefaultTeamSizeThreshold = 5
)

// Default ranking parameters.
const (
	// DefaultMaxRawScore is the raw score that maps to 100 after
	// normalization. Raw scores above it clamp to 100.
	DefaultMaxRawScore = 50.0

	// DefaultQualityWeight blends the 0-100 intrinsic quality score into
	// the final recommend-mode score.
	DefaultQualityWeight = 0.2

	DefaultMaxResults = 20
	DefaultMinScore   = 1.0
)

// Default search-mode field weights. Name matches carry the most weight,
// tag matches the least.
const (
	DefaultSearchNameWeight        = 10.0
	DefaultSearchDescriptionWeight = 5.0
	DefaultSearchCategoryWeight    = 3.0
	DefaultSearchTagWeight         = 2.0
)

// Config carries every weight, multiplier, and threshold the engine uses.
// It is immutable once passed to New; there are no process-wide mutable
// weight tables.
type Config struct {
	// Structural match weights (recommend mode, step order fixed).
	LanguageWeight   float64
	FrameworkWeight  float64
	DependencyWeight float64
	FileWeight       float64
	KeywordWeight    float64
	NameBonus        float64

	// OfficialBoost multiplies a nonzero raw score for official items.
	OfficialBoost float64

	// Security multipliers. Scores at or above the high threshold are
	// boosted, scores strictly below the low threshold are penalized,
	// anything between is left unmodified.
	SecurityHighThreshold int
	SecurityLowThreshold  int
	SecurityBoost         float64
	SecurityPenalty       float64

	// Similarity scoring.
	MinCooccurrence    int
	MinSimilarity      float64
	MaxSimilarityBonus float64

	// Context bonuses.
	MonorepoBonus     float64
	SizeMatchBonus    float64
	TeamBonus         float64
	TeamSizeThreshold int

	// Context keyword vocabularies, matched against item tags.
	MonorepoTags      []string
	EnterpriseTags    []string
	LightweightTags   []string
	CollaborationTags []string

	// Ranking.
	MaxRawScore   float64
	QualityWeight float64

	// Search-mode field weights.
	SearchNameWeight        float64
	SearchDescriptionWeight float64
	SearchCategoryWeight    float64
	SearchTagWeight         float64
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		LanguageWeight:   DefaultLanguageWeight,
		FrameworkWeight:  DefaultFrameworkWeight,
		DependencyWeight: DefaultDependencyWeight,
		FileWeight:       DefaultFileWeight,
		KeywordWeight:    DefaultKeywordWeight,
		NameBonus:        DefaultNameBonus,

		OfficialBoost:         DefaultOfficialBoost,
		SecurityHighThreshold: DefaultSecurityHighThreshold,
		SecurityLowThreshold:  DefaultSecurityLowThreshold,
		SecurityBoost:         DefaultSecurityBoost,
		SecurityPenalty:       DefaultSecurityPenalty,

		MinCooccurrence:    DefaultMinCooccurrence,
		MinSimilarity:      DefaultMinSimilarity,
		MaxSimilarityBonus: DefaultMaxSimilarityBonus,

		MonorepoBonus:     DefaultMonorepoBonus,
		SizeMatchBonus:    DefaultSizeMatchBonus,
		TeamBonus:         DefaultTeamBonus,
		TeamSizeThreshold: DefaultTeamSizeThreshold,

		MonorepoTags: []string{
			"monorepo", "workspace", "workspaces", "build-orchestration",
			"lerna", "turborepo", "nx", "bazel",
		},
		EnterpriseTags: []string{
			"ci", "cd", "ci-cd", "monitoring", "testing",
			"documentation", "security", "compliance",
		},
		LightweightTags: []string{
			"quick-start", "beginner", "simple", "lightweight", "starter",
		},
		CollaborationTags: []string{
			"collaboration", "team", "review", "code-review", "workflow",
		},

		MaxRawScore:   DefaultMaxRawScore,
		QualityWeight: DefaultQualityWeight,

		SearchNameWeight:        DefaultSearchNameWeight,
		SearchDescriptionWeight: DefaultSearchDescriptionWeight,
		SearchCategoryWeight:    DefaultSearchCategoryWeight,
		SearchTagWeight:         DefaultSearchTagWeight,
	}
}

// Engine scores catalog items against project profiles. It holds only the
// immutable configuration; all per-call state lives on the stack.
type Engine struct {
	cfg Config

	// Precomputed lookup sets for the context vocabularies.
	monorepoTags      map[string]bool
	enterpriseTags    map[string]bool
	lightweightTags   map[string]bool
	collaborationTags map[string]bool
}

// New creates an Engine from a configuration value.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:               cfg,
		monorepoTags:      toLowerSet(cfg.MonorepoTags),
		enterpriseTags:    toLowerSet(cfg.EnterpriseTags),
		lightweightTags:   toLowerSet(cfg.LightweightTags),
		collaborationTags: toLowerSet(cfg.CollaborationTags),
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
