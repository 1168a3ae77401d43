package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// HashFile creates a SHA256 hash of a file's content
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Digest returns the content digest for path, or the empty string when the
// file cannot be read. Callers must treat the empty string as unknown/changed.
func Digest(path string) string {
	hash, err := HashFile(path)
	if err != nil {
		return ""
	}

	return hash
}
