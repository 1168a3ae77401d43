// Package runtime locates and invokes the external PohLang runtime binary.
// The runtime is a separately-distributed executable; plhub never produces
// compiled output itself, it only shells out.
package runtime

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
)

// ErrNotFound is reported when no runtime binary can be located
var ErrNotFound = errors.New("pohlang runtime not found")

// BinaryName returns the platform-specific runtime executable name
func BinaryName() string {
	if goruntime.GOOS == "windows" {
		return "pohlang.exe"
	}

	return "pohlang"
}

// FindBinary locates the PohLang runtime binary. It checks the fixed install
// locations under plhubRoot first, then the executable search path.
func FindBinary(plhubRoot string) (string, error) {
	exe := BinaryName()

	candidates := []string{
		filepath.Join(plhubRoot, "Runtime", "bin", exe),
		filepath.Join(plhubRoot, "bin", exe),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(exe); err == nil {
		return path, nil
	}

	return "", ErrNotFound
}

// DefaultRoot returns the plhub install root, derived from the location of
// the running executable. Falls back to the working directory.
func DefaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		cwd, _ := os.Getwd()
		return cwd
	}

	return filepath.Dir(exe)
}

// OutputPath derives the compiled output path for a source file
// (main.poh -> main.pbc)
func OutputPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".pbc"
}
