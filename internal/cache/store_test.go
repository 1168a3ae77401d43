package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "build_cache.json"))
	require.NoError(t, err)
	assert.NotNil(t, c.FileHashes)
	assert.NotNil(t, c.Dependencies)
	assert.Equal(t, 0, c.BuildCount)
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build_cache.json")
	err := os.WriteFile(path, []byte("{not json"), 0o644)
	require.NoError(t, err)

	c, err := Load(path)
	assert.ErrorIs(t, err, ErrCorrupt)
	require.NotNil(t, c, "Corrupt cache should still yield a usable empty cache")
	assert.Empty(t, c.FileHashes)
	assert.Equal(t, 0, c.BuildCount)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "build_cache.json")

	c := NewBuildCache()
	c.FileHashes["/project/src/main.poh"] = "abc123"
	c.FileHashes["/project/src/util.poh"] = "def456"
	c.Dependencies["/project/src/main.poh"] = []string{"/project/src/util.poh"}
	c.BuildCount = 7
	c.LastBuild = time.Now().Format(time.RFC3339)

	err := c.Save(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c.FileHashes, loaded.FileHashes)
	assert.Equal(t, c.Dependencies, loaded.Dependencies)
	assert.Equal(t, c.BuildCount, loaded.BuildCount)
	assert.Equal(t, c.LastBuild, loaded.LastBuild)
}

func TestSave_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build_cache.json")

	c := NewBuildCache()
	c.BuildCount = 1
	require.NoError(t, c.Save(path))

	c.BuildCount = 2
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.BuildCount)

	// No stray temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestChanged(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "main.poh")
	err := os.WriteFile(file, []byte("Write \"hi\""), 0o644)
	require.NoError(t, err)

	c := NewBuildCache()
	assert.True(t, c.Changed(file), "File with no stored digest should be changed")

	c.FileHashes[file] = Digest(file)
	assert.False(t, c.Changed(file), "Unchanged content should not be flagged")

	err = os.WriteFile(file, []byte("Write \"bye\""), 0o644)
	require.NoError(t, err)
	assert.True(t, c.Changed(file), "Edited content should be flagged")

	assert.True(t, c.Changed(filepath.Join(tempDir, "gone.poh")), "Unreadable file should be flagged")
}

func TestStamp(t *testing.T) {
	c := NewBuildCache()
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	c.Stamp(now)
	assert.Equal(t, 1, c.BuildCount)
	assert.Equal(t, "2026-08-27T12:00:00Z", c.LastBuild)

	c.Stamp(now.Add(time.Hour))
	assert.Equal(t, 2, c.BuildCount)
}
