package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// dbName is the artifact metadata database inside the cache directory
	dbName = "artifacts.db"

	// bucketName is the BoltDB bucket for artifact entries
	bucketName = "builds"
)

// Entry records one cached compile output, keyed by source digest
type Entry struct {
	// Digest is the SHA256 digest of the source file content
	Digest string `json:"digest"`

	// SourceFile is the absolute path to the source .poh file
	SourceFile string `json:"source_file"`

	// Output is the absolute path the artifact is restored to
	Output string `json:"output"`

	// Timestamp when this entry was created
	Timestamp time.Time `json:"timestamp"`

	// Success indicates if the compile was successful
	Success bool `json:"success"`
}

// Store caches compiled artifacts so unchanged sources with a missing output
// can be restored without invoking the runtime. Metadata lives in BoltDB,
// artifact bytes under <cacheDir>/artifacts/<digest>/.
type Store struct {
	db   *bbolt.DB
	root string
}

// OpenStore opens (or creates) the artifact store in cacheDir
func OpenStore(cacheDir string) (*Store, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(cacheDir, dbName), 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create artifact bucket: %w", err)
	}

	return &Store{
		db:   db,
		root: cacheDir,
	}, nil
}

// Close closes the artifact database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Get retrieves an entry by source digest
// Returns nil if cache miss
func (s *Store) Get(digest string) (*Entry, error) {
	var entry Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data := b.Get([]byte(digest))
		if data == nil {
			return nil // Cache miss
		}

		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}

	if entry.Digest == "" {
		return nil, nil // Cache miss
	}

	return &entry, nil
}

// Put stores an entry and copies its output file into the artifact tree
func (s *Store) Put(entry *Entry) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return b.Put([]byte(entry.Digest), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store artifact entry: %w", err)
	}

	if entry.Success && entry.Output != "" {
		dst := s.artifactPath(entry)
		if err := copyFile(entry.Output, dst); err != nil {
			return fmt.Errorf("failed to copy artifact: %w", err)
		}
	}

	return nil
}

// Restore copies a cached artifact back to its output path
func (s *Store) Restore(entry *Entry) error {
	if !entry.Success || entry.Output == "" {
		return fmt.Errorf("cannot restore failed build or build with no output")
	}

	return copyFile(s.artifactPath(entry), entry.Output)
}

// Clear removes all entries and artifacts
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.root, "artifacts")); err != nil {
		return fmt.Errorf("failed to remove artifacts: %w", err)
	}

	return nil
}

// Stats returns the entry count and total artifact size in bytes
func (s *Store) Stats() (int, int64, error) {
	var count int
	var totalSize int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		count = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	artifactsDir := filepath.Join(s.root, "artifacts")
	err = filepath.Walk(artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if !info.IsDir() {
			totalSize += info.Size()
		}

		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return count, totalSize, err
	}

	return count, totalSize, nil
}

// artifactPath returns the cached location for an entry's output
func (s *Store) artifactPath(entry *Entry) string {
	return filepath.Join(s.root, "artifacts", entry.Digest, filepath.Base(entry.Output))
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.Chmod(dst, srcInfo.Mode())
}
