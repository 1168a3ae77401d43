package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile(t *testing.T) {
	tempDir := t.TempDir()
	sourceFile := filepath.Join(tempDir, "test.poh")
	err := os.WriteFile(sourceFile, []byte("Write \"hello\""), 0o644)
	require.NoError(t, err)

	hash1, err := HashFile(sourceFile)
	require.NoError(t, err)
	assert.Len(t, hash1, 64, "SHA256 hex digest should be 64 chars")

	hash2, err := HashFile(sourceFile)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "Hash should be consistent")

	err = os.WriteFile(sourceFile, []byte("Write \"changed\""), 0o644)
	require.NoError(t, err)

	hash3, err := HashFile(sourceFile)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3, "Different content should produce different hash")
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.poh"))
	assert.Error(t, err)
}

func TestDigest_MissingFileIsEmpty(t *testing.T) {
	digest := Digest(filepath.Join(t.TempDir(), "nope.poh"))
	assert.Equal(t, "", digest, "Missing file digest should be the empty sentinel")
}
