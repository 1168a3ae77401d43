// Package builder orchestrates the incremental build cycle:
// load cache -> discover sources -> diff digests -> rebuild graph ->
// expand rebuild set -> compile sequentially -> persist cache.
package builder

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pohlang/plhub/internal/cache"
	"github.com/pohlang/plhub/internal/graph"
	"github.com/pohlang/plhub/internal/runtime"
)

// skipDirs are directory names never scanned for sources
var skipDirs = map[string]bool{
	".git":         true,
	".plhub":       true,
	"node_modules": true,
}

// Compiler compiles a single source file and reports pass/fail with a
// human-readable message
type Compiler interface {
	Compile(path string) (bool, string)
}

// Result summarizes one build cycle
type Result struct {
	Succeeded int
	Failed    int
	Restored  int
	Messages  []string
}

// Builder runs build cycles for one project. The cache is loaded at the
// start of each cycle and saved at the end; no state is shared between
// cycles beyond what the cache file records.
type Builder struct {
	// Root is the project root (the directory containing plhub.json)
	Root string

	// CacheFile is the build cache location
	CacheFile string

	// Compiler invokes the external runtime
	Compiler Compiler

	// Artifacts is the optional compiled-artifact store
	Artifacts *cache.Store

	// Ignore patterns excluded from discovery, relative to Root
	Ignore []string

	// Force compiles every discovered file regardless of the cache
	Force bool

	// NoCache starts from an empty cache and skips persisting it
	NoCache bool

	Logger *slog.Logger
}

// New creates a builder for a project root
func New(root string, compiler Compiler, logger *slog.Logger) *Builder {
	return &Builder{
		Root:      root,
		CacheFile: cache.File(root),
		Compiler:  compiler,
		Logger:    logger,
	}
}

// Build runs one build cycle and returns the aggregate result. A single
// file's compile failure never aborts the cycle; it is counted and the
// remaining files are still compiled.
func (b *Builder) Build() (*Result, error) {
	c, err := cache.Load(b.CacheFile)
	if err != nil {
		b.Logger.Warn("discarding corrupt build cache", "file", b.CacheFile, "error", err)
	}

	if b.NoCache {
		c = cache.NewBuildCache()
	}

	files, err := b.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files: %w", err)
	}

	g := graph.Build(files, b.Root, b.Logger)
	c.Dependencies = g

	changed := make(map[string]struct{})
	for _, f := range files {
		if c.Changed(f) {
			changed[f] = struct{}{}
		}
	}

	var toBuild map[string]struct{}
	if b.Force {
		toBuild = make(map[string]struct{}, len(files))
		for _, f := range files {
			toBuild[f] = struct{}{}
		}
		b.Logger.Debug("force build: compiling all files", "count", len(files))
	} else {
		toBuild = graph.Expand(changed, g)
		b.Logger.Debug("incremental build", "changed", len(changed), "rebuild", len(toBuild))
	}

	result := &Result{}

	b.restoreMissing(files, toBuild, result)

	if len(toBuild) == 0 {
		result.Messages = append(result.Messages, "No files to build")
		return result, nil
	}

	sorted := make([]string, 0, len(toBuild))
	for f := range toBuild {
		sorted = append(sorted, f)
	}
	sort.Strings(sorted)

	for _, f := range sorted {
		rel, err := filepath.Rel(b.Root, f)
		if err != nil {
			rel = f
		}
		b.Logger.Debug("building", "file", rel)

		ok, msg := b.Compiler.Compile(f)
		if ok {
			result.Succeeded++
			digest := cache.Digest(f)
			c.FileHashes[f] = digest
			b.storeArtifact(f, digest)
		} else {
			// Keep the stale digest so the file is retried next build
			result.Failed++
		}

		result.Messages = append(result.Messages, msg)
	}

	c.Stamp(time.Now())

	if !b.NoCache {
		if err := c.Save(b.CacheFile); err != nil {
			b.Logger.Warn("failed to save build cache", "file", b.CacheFile, "error", err)
		}
	}

	return result, nil
}

// Discover finds all .poh source files under the project root, skipping the
// cache directory, VCS metadata and any configured ignore patterns.
func (b *Builder) Discover() ([]string, error) {
	var files []string

	err := filepath.WalkDir(b.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(d.Name(), ".poh") {
			return nil
		}

		rel, err := filepath.Rel(b.Root, path)
		if err != nil {
			return nil
		}

		if b.ignored(filepath.ToSlash(rel)) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return nil
		}

		files = append(files, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ignored reports whether a slash-separated relative path matches any
// configured ignore pattern
func (b *Builder) ignored(rel string) bool {
	for _, pattern := range b.Ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	return false
}

// restoreMissing restores cached artifacts for unchanged files whose output
// is missing, so a deleted .pbc does not force a recompile
func (b *Builder) restoreMissing(files []string, toBuild map[string]struct{}, result *Result) {
	if b.Artifacts == nil {
		return
	}

	for _, f := range files {
		if _, building := toBuild[f]; building {
			continue
		}

		output := runtime.OutputPath(f)
		if _, err := os.Stat(output); err == nil {
			continue
		}

		digest := cache.Digest(f)
		if digest == "" {
			continue
		}

		entry, err := b.Artifacts.Get(digest)
		if err != nil || entry == nil || !entry.Success {
			continue
		}

		if err := b.Artifacts.Restore(entry); err != nil {
			b.Logger.Warn("failed to restore artifact", "file", f, "error", err)
			continue
		}

		result.Restored++
		result.Messages = append(result.Messages,
			fmt.Sprintf("Restored %s from cache", filepath.Base(output)))
	}
}

// storeArtifact records a successful compile's output in the artifact store
func (b *Builder) storeArtifact(source, digest string) {
	if b.Artifacts == nil || digest == "" {
		return
	}

	entry := &cache.Entry{
		Digest:     digest,
		SourceFile: source,
		Output:     runtime.OutputPath(source),
		Timestamp:  time.Now(),
		Success:    true,
	}

	if err := b.Artifacts.Put(entry); err != nil {
		b.Logger.Warn("failed to cache artifact", "file", source, "error", err)
	}
}
