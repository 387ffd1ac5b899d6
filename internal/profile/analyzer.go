package profile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/addonscout/addonscout/pkg/types"
)

// MaxFiles caps the number of file paths collected into a profile. Glob
// matching is linear in this list, so the cap bounds scoring cost on huge
// trees.
const MaxFiles = 2000

// Size class thresholds by collected file count.
const (
	smallFileLimit  = 50
	mediumFileLimit = 500
	largeFileLimit  = 2000
)

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".next":        true,
	"__pycache__":  true,
	".venv":        true,
}

// languageByExtension maps file extensions to detected languages.
var languageByExtension = map[string]string{
	".go":    "go",
	".ts":    "typescript",
	".tsx":   "typescript",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".py":    "python",
	".rs":    "rust",
	".rb":    "ruby",
	".java":  "java",
	".kt":    "kotlin",
	".cs":    "csharp",
	".php":   "php",
	".swift": "swift",
	".c":     "c",
	".cpp":   "cpp",
	".h":     "c",
}

// workspaceManifests mark a directory tree as a monorepo when found at the
// root.
var workspaceManifests = map[string]bool{
	"lerna.json":          true,
	"pnpm-workspace.yaml": true,
	"turbo.json":          true,
	"nx.json":             true,
	"go.work":             true,
}

// Analyzer inspects project directories and emits ProjectProfile records.
type Analyzer struct {
	maxFiles int
}

// New creates an Analyzer with default limits.
func New() *Analyzer {
	return &Analyzer{maxFiles: MaxFiles}
}

// walkResult accumulates everything a single directory walk can tell us.
type walkResult struct {
	files         []string
	languages     map[string]bool
	manifests     []string // paths of dependency manifests, relative
	workspaceHits int      // workspace manifests plus nested package roots
	hasMainEntry  bool
	codeownersRel string
}

// Analyze walks the project and builds its profile. Individual manifest
// parse failures degrade to empty sets; only an unreadable root errors.
func (a *Analyzer) Analyze(ctx context.Context, rootPath string) (*types.ProjectProfile, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", rootPath)
	}

	walked, err := a.walk(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	deps, frameworks := a.parseManifests(ctx, rootPath, walked.manifests)

	profile := &types.ProjectProfile{
		Languages:    sortedKeys(walked.languages),
		Frameworks:   frameworks,
		Dependencies: deps,
		Files:        walked.files,
		Metadata:     a.buildMetadata(rootPath, walked),
	}
	return profile, nil
}

// walk collects file paths, language extensions, and manifest locations in
// one pass.
func (a *Analyzer) walk(ctx context.Context, rootPath string) (*walkResult, error) {
	res := &walkResult{languages: make(map[string]bool)}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path != rootPath && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if len(res.files) < a.maxFiles {
			res.files = append(res.files, rel)
		}

		if lang, ok := languageByExtension[strings.ToLower(filepath.Ext(name))]; ok {
			res.languages[lang] = true
		}

		depth := strings.Count(rel, "/")
		switch name {
		case "package.json", "go.mod", "requirements.txt", "Cargo.toml", "Gemfile":
			res.manifests = append(res.manifests, rel)
			if depth > 0 && (name == "package.json" || name == "go.mod") {
				res.workspaceHits++
			}
		case "CODEOWNERS":
			if res.codeownersRel == "" {
				res.codeownersRel = rel
			}
		case "main.go", "index.ts", "index.js", "app.py", "main.py":
			res.hasMainEntry = true
		default:
			if depth == 0 && workspaceManifests[name] {
				res.workspaceHits++
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project: %w", err)
	}

	return res, nil
}

// parseManifests extracts dependency and framework names from every
// discovered manifest, in parallel. Parse errors are ignored per manifest.
func (a *Analyzer) parseManifests(ctx context.Context, rootPath string, manifests []string) (deps, frameworks []string) {
	var mu sync.Mutex
	depSet := make(map[string]bool)

	g, ctx := errgroup.WithContext(ctx)
	for _, rel := range manifests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			names := parseManifest(filepath.Join(rootPath, filepath.FromSlash(rel)))
			mu.Lock()
			for _, n := range names {
				depSet[n] = true
			}
			mu.Unlock()
			return nil
		})
	}
	// The only possible error is context cancellation; a partial profile
	// is still usable.
	_ = g.Wait()

	deps = sortedKeys(depSet)
	frameworks = detectFrameworks(depSet)
	return deps, frameworks
}

// buildMetadata derives the heuristic project metadata.
func (a *Analyzer) buildMetadata(rootPath string, walked *walkResult) *types.ProjectMetadata {
	meta := &types.ProjectMetadata{
		Size: sizeClass(len(walked.files)),
		Kind: types.KindApplication,
	}

	if hasWorkspacesField(filepath.Join(rootPath, "package.json")) {
		walked.workspaceHits++
	}
	if walked.workspaceHits > 0 {
		meta.Kind = types.KindMonorepo
		meta.WorkspaceCount = walked.workspaceHits
	} else if !walked.hasMainEntry {
		meta.Kind = types.KindLibrary
	}

	if walked.codeownersRel != "" {
		meta.TeamSize = countCodeowners(filepath.Join(rootPath, filepath.FromSlash(walked.codeownersRel)))
	}

	return meta
}

// sizeClass buckets the collected file count.
func sizeClass(fileCount int) types.ProjectSize {
	switch {
	case fileCount < smallFileLimit:
		return types.SizeSmall
	case fileCount < mediumFileLimit:
		return types.SizeMedium
	case fileCount < largeFileLimit:
		return types.SizeLarge
	default:
		return types.SizeEnterprise
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
