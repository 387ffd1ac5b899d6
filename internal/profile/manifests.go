package profile

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

// frameworkByDependency maps well-known dependency names to the framework
// they imply. Keys are compared case-insensitively against parsed
// dependencies.
var frameworkByDependency = map[string]string{
	"react":                       "react",
	"react-dom":                   "react",
	"next":                        "nextjs",
	"vue":                         "vue",
	"nuxt":                        "nuxt",
	"@angular/core":               "angular",
	"svelte":                      "svelte",
	"express":                     "express",
	"fastify":                     "fastify",
	"@nestjs/core":                "nestjs",
	"django":                      "django",
	"flask":                       "flask",
	"fastapi":                     "fastapi",
	"rails":                       "rails",
	"sinatra":                     "sinatra",
	"actix-web":                   "actix",
	"axum":                        "axum",
	"rocket":                      "rocket",
	"github.com/gin-gonic/gin":    "gin",
	"github.com/labstack/echo/v4": "echo",
	"github.com/gofiber/fiber/v2": "fiber",
	"github.com/go-chi/chi/v5":    "chi",
}

// parseManifest dispatches on the manifest file name and returns the
// dependency names it declares. Unreadable or malformed manifests yield nil.
func parseManifest(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	switch filepath.Base(path) {
	case "package.json":
		return parsePackageJSON(data)
	case "go.mod":
		return parseGoMod(path, data)
	case "requirements.txt":
		return parseRequirements(data)
	case "Cargo.toml":
		return parseCargoToml(data)
	case "Gemfile":
		return parseGemfile(data)
	}
	return nil
}

// parsePackageJSON collects dependencies and devDependencies.
func parsePackageJSON(data []byte) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	names := make([]string, 0, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name := range manifest.Dependencies {
		names = append(names, strings.ToLower(name))
	}
	for name := range manifest.DevDependencies {
		names = append(names, strings.ToLower(name))
	}
	return names
}

// parseGoMod collects direct require paths.
func parseGoMod(path string, data []byte) []string {
	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil
	}

	var names []string
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		names = append(names, strings.ToLower(req.Mod.Path))
	}
	return names
}

// parseRequirements handles the plain pinned-requirement format: one package
// per line, optionally with a version specifier and trailing comment.
func parseRequirements(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Cut at the first version or environment specifier.
		if i := strings.IndexAny(line, "=<>!~;[ "); i >= 0 {
			line = line[:i]
		}
		if line != "" {
			names = append(names, strings.ToLower(line))
		}
	}
	return names
}

// parseCargoToml scans the [dependencies] and [dev-dependencies] tables for
// key names. It reads TOML line-by-line rather than with a full parser since
// only the keys matter.
func parseCargoToml(data []byte) []string {
	var names []string
	inDeps := false
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			section := strings.Trim(line, "[]")
			if name, ok := strings.CutPrefix(section, "dependencies."); ok {
				names = append(names, strings.ToLower(name))
				inDeps = false
				continue
			}
			inDeps = section == "dependencies" || section == "dev-dependencies"
			continue
		}
		if !inDeps || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), `"`)
		if key != "" {
			names = append(names, strings.ToLower(key))
		}
	}
	return names
}

// parseGemfile picks up gem declarations: gem "name", ...
func parseGemfile(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, "gem ")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if len(rest) < 2 {
			continue
		}
		quote := rest[0]
		if quote != '\'' && quote != '"' {
			continue
		}
		if end := strings.IndexByte(rest[1:], quote); end >= 0 {
			names = append(names, strings.ToLower(rest[1:1+end]))
		}
	}
	return names
}

// detectFrameworks maps the dependency set to framework names.
func detectFrameworks(deps map[string]bool) []string {
	set := make(map[string]bool)
	for dep := range deps {
		if fw, ok := frameworkByDependency[dep]; ok {
			set[fw] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	frameworks := make([]string, 0, len(set))
	for fw := range set {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)
	return frameworks
}

// hasWorkspacesField reports whether a root package.json declares npm or
// yarn workspaces.
func hasWorkspacesField(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var manifest struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false
	}
	return len(manifest.Workspaces) > 0
}

// countCodeowners counts distinct @owner handles in a CODEOWNERS file.
func countCodeowners(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	owners := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			if strings.HasPrefix(field, "@") {
				owners[strings.ToLower(field)] = true
			}
		}
	}
	return len(owners)
}
