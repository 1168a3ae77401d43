// Package project handles the plhub.json manifest and project scaffolding.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the project manifest file name
const ManifestName = "plhub.json"

// DefaultMain is the manifest's default entry file
const DefaultMain = "src/main.poh"

// ErrNoManifest is reported when no plhub.json can be found
var ErrNoManifest = errors.New("not inside a PohLang project (plhub.json not found)")

// Manifest is the plhub.json project configuration
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Main            string            `json:"main"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"dev_dependencies"`
}

// LoadManifest reads and parses a plhub.json file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}

		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if m.Main == "" {
		m.Main = DefaultMain
	}
	if m.Dependencies == nil {
		m.Dependencies = make(map[string]string)
	}
	if m.DevDependencies == nil {
		m.DevDependencies = make(map[string]string)
	}

	return &m, nil
}

// Save writes the manifest back to disk
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Install records a dependency in the manifest. There is no package registry
// yet; the version range is a placeholder.
func (m *Manifest) Install(pkg string) {
	m.Dependencies[pkg] = "^1.0.0"
}

// FindRoot walks up from dir looking for a directory containing plhub.json
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(abs, ManifestName)); err == nil {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}

		abs = parent
	}

	return "", ErrNoManifest
}
