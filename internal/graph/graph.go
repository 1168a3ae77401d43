package graph

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Graph maps each source file to its resolved direct dependencies.
// Paths are absolute. Recomputed fresh every build cycle.
type Graph map[string][]string

// ResolveImport maps an import string to an absolute file path. Resolution
// tries the importing file's own directory first, then the project root;
// the first existing match wins. Returns "" when neither resolves.
func ResolveImport(imp, sourceFile, projectRoot string) string {
	relative := filepath.Join(filepath.Dir(sourceFile), imp)
	if _, err := os.Stat(relative); err == nil {
		if abs, err := filepath.Abs(relative); err == nil {
			return abs
		}
	}

	fromRoot := filepath.Join(projectRoot, imp)
	if _, err := os.Stat(fromRoot); err == nil {
		if abs, err := filepath.Abs(fromRoot); err == nil {
			return abs
		}
	}

	return ""
}

// Build computes a fresh dependency graph for the given source files.
// Unresolvable imports produce a warning and no edge; unreadable files
// produce a warning and an empty import list.
func Build(files []string, projectRoot string, logger *slog.Logger) Graph {
	g := make(Graph, len(files))

	for _, file := range files {
		imports, err := ExtractImports(file)
		if err != nil {
			logger.Warn("failed to parse imports", "file", file, "error", err)
		}

		deps := make([]string, 0, len(imports))
		for _, imp := range imports {
			resolved := ResolveImport(imp, file, projectRoot)
			if resolved == "" {
				logger.Warn("unresolved import", "file", file, "import", imp)
				continue
			}

			deps = append(deps, resolved)
		}

		g[file] = deps
	}

	return g
}

// Expand computes the rebuild set for a set of changed files: the changed
// files themselves plus, transitively, every file that depends on a member
// of the set. Fixed-point expansion over reverse edges, so a change to C in
// a chain A -> B -> C rebuilds all three.
func Expand(changed map[string]struct{}, g Graph) map[string]struct{} {
	dependents := make(map[string][]string)
	for file, deps := range g {
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], file)
		}
	}

	toRebuild := make(map[string]struct{}, len(changed))
	queue := make([]string, 0, len(changed))
	for file := range changed {
		toRebuild[file] = struct{}{}
		queue = append(queue, file)
	}

	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]

		for _, dependent := range dependents[file] {
			if _, ok := toRebuild[dependent]; ok {
				continue
			}

			toRebuild[dependent] = struct{}{}
			queue = append(queue, dependent)
		}
	}

	return toRebuild
}
