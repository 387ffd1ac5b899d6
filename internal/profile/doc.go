// Package profile analyzes a project directory into the structured profile
// the scoring engine consumes: detected languages, frameworks, dependency
// names, relative file paths, and size/kind/team metadata.
//
// Analysis is best-effort by design. A manifest that fails to parse
// contributes nothing instead of failing the request; only an unreadable
// project root is an error.
//
//	analyzer := profile.New()
//	p, err := analyzer.Analyze(ctx, "/path/to/project")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.Languages, p.Frameworks)
//
// Language detection is extension based; dependencies and frameworks come
// from the manifests the walker finds (package.json, go.mod,
// requirements.txt, Cargo.toml, Gemfile), parsed concurrently. Metadata is
// heuristic: size class from file count, monorepo detection from workspace
// manifests, team size from CODEOWNERS.
package profile
