package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindLocalConfig(t *testing.T) {
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "subdir")
	err := os.Mkdir(subDir, 0o755)
	assert.NoError(t, err)

	configYML := filepath.Join(subDir, ".plhub.yml")
	err = os.WriteFile(configYML, []byte("verbose: true"), 0o644)
	assert.NoError(t, err)

	// Test finding in subdir
	result := FindLocalConfig(subDir)
	assert.Equal(t, configYML, result)

	// Test finding in parent
	result = FindLocalConfig(filepath.Join(subDir, "deep"))
	assert.Equal(t, configYML, result)

	// Test not found
	result = FindLocalConfig(tempDir)
	assert.Equal(t, "", result)
}

func TestFindLocalConfig_ExtensionOrder(t *testing.T) {
	tempDir := t.TempDir()

	configTOML := filepath.Join(tempDir, ".plhub.toml")
	err := os.WriteFile(configTOML, []byte(""), 0o644)
	assert.NoError(t, err)

	configYML := filepath.Join(tempDir, ".plhub.yml")
	err = os.WriteFile(configYML, []byte(""), 0o644)
	assert.NoError(t, err)

	// yml is checked before toml
	result := FindLocalConfig(tempDir)
	assert.Equal(t, configYML, result)
}
