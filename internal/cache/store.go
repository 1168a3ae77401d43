// Package cache tracks build state for incremental compilation.
//
// Two stores live under <project>/.plhub/cache:
//
//  1. build_cache.json — content digests, dependency edges and a build
//     counter, diffed against fresh digests to pick the rebuild set
//  2. artifacts.db + artifacts/ — compiled outputs keyed by source digest,
//     metadata in BoltDB, bytes on the filesystem
//
// The build cache is an explicit value loaded at the start of a build cycle
// and saved at the end, never package-level state.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DirName is the cache directory, relative to the project root
	DirName = ".plhub/cache"

	// FileName is the build cache file inside DirName
	FileName = "build_cache.json"
)

// ErrCorrupt is reported when the cache file exists but cannot be parsed.
// Load still returns a usable empty cache alongside it.
var ErrCorrupt = errors.New("build cache is corrupt")

// BuildCache tracks file digests and dependency edges across builds
type BuildCache struct {
	// FileHashes maps absolute source paths to their last-known-good digest.
	// Entries are only updated after a successful compile, so a failed file
	// keeps its stale digest and is retried on the next build.
	FileHashes map[string]string `json:"file_hashes"`

	// LastBuild is the RFC3339 timestamp of the last build
	LastBuild string `json:"last_build"`

	// Dependencies maps absolute source paths to their resolved imports.
	// Rebuilt fresh every cycle, persisted for inspection.
	Dependencies map[string][]string `json:"dependencies"`

	// BuildCount counts completed build cycles
	BuildCount int `json:"build_count"`
}

// NewBuildCache returns an empty cache
func NewBuildCache() *BuildCache {
	return &BuildCache{
		FileHashes:   make(map[string]string),
		Dependencies: make(map[string][]string),
	}
}

// File returns the build cache path for a project root
func File(projectRoot string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(DirName), FileName)
}

// Load reads a build cache from disk. A missing file yields an empty cache
// and no error. Unreadable or malformed content yields an empty cache and an
// error wrapping ErrCorrupt so the caller can log it and proceed with a full
// rebuild.
func Load(path string) (*BuildCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewBuildCache(), nil
		}

		return NewBuildCache(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var c BuildCache
	if err := json.Unmarshal(data, &c); err != nil {
		return NewBuildCache(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	// Tolerate missing keys in old cache files
	if c.FileHashes == nil {
		c.FileHashes = make(map[string]string)
	}
	if c.Dependencies == nil {
		c.Dependencies = make(map[string][]string)
	}

	return &c, nil
}

// Save writes the cache to disk, creating parent directories as needed.
// The write goes to a temp file first and is renamed into place so a crash
// mid-write cannot corrupt the previous snapshot.
func (c *BuildCache) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "build_cache-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}

// Changed reports whether path's content differs from the cached digest.
// A file with no cached digest, or one whose digest cannot be computed,
// counts as changed.
func (c *BuildCache) Changed(path string) bool {
	current := Digest(path)
	if current == "" {
		return true
	}

	old, ok := c.FileHashes[path]
	return !ok || current != old
}

// Stamp records the completion of a build cycle
func (c *BuildCache) Stamp(now time.Time) {
	c.LastBuild = now.Format(time.RFC3339)
	c.BuildCount++
}
