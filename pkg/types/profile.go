package types

// ProjectSize classifies a project by scale
type ProjectSize string

const (
	SizeSmall      ProjectSize = "small"
	SizeMedium     ProjectSize = "medium"
	SizeLarge      ProjectSize = "large"
	SizeEnterprise ProjectSize = "enterprise"
)

// ProjectKind classifies the structural shape of a project
type ProjectKind string

const (
	KindMonorepo    ProjectKind = "monorepo"
	KindLibrary     ProjectKind = "library"
	KindApplication ProjectKind = "application"
	KindUnknown     ProjectKind = "unknown"
)

// ProjectProfile is the analyzer's structured view of one project. It is a
// read-only input to the scoring engine; element order is irrelevant.
type ProjectProfile struct {
	Languages    []string `json:"languages"`
	Frameworks   []string `json:"frameworks"`
	Dependencies []string `json:"dependencies"`

	// Files are paths relative to the project root, forward-slash separated.
	Files []string `json:"files"`

	Metadata *ProjectMetadata `json:"metadata,omitempty"`
}

// ProjectMetadata carries optional project-level context used by the
// context scorer.
type ProjectMetadata struct {
	Size           ProjectSize `json:"size,omitempty"`
	Kind           ProjectKind `json:"kind,omitempty"`
	TeamSize       int         `json:"team_size,omitempty"`
	WorkspaceCount int         `json:"workspace_count,omitempty"`
}
