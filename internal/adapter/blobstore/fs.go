// Package blobstore stores media blobs on the local filesystem.
//
// Blobs are addressed by the relative path recorded in the media_assets
// table, so the database stays the source of truth and the store only
// moves bytes. Deletion is best-effort: a missing blob is not an error,
// because asset records may outlive a manually cleaned data directory.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS is a filesystem-backed blob store rooted at a single directory.
type FS struct {
	root string
}

// NewFS creates a blob store rooted at dir, creating it if needed.
func NewFS(dir string) (*FS, error) {
	if dir == "" {
		return nil, fmt.Errorf("blobstore: root directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore: create root: %w", err)
	}
	return &FS{root: dir}, nil
}

// Save writes the blob under the given relative path and returns the number
// of bytes written. Parent directories are created as needed.
func (s *FS) Save(ctx context.Context, relPath string, r io.Reader) (int64, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("blobstore: create dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("blobstore: create blob: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(full)
		return 0, fmt.Errorf("blobstore: write blob: %w", err)
	}

	return n, nil
}

// Open returns a reader for the blob at the given relative path.
// The caller must close it.
func (s *FS) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open blob: %w", err)
	}

	return f, nil
}

// Delete removes the blob at the given relative path.
// A blob that is already gone is not an error.
func (s *FS) Delete(ctx context.Context, relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blobstore: delete blob: %w", err)
	}

	return nil
}

// resolve joins relPath onto the root and rejects paths that escape it.
func (s *FS) resolve(relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("blobstore: empty path")
	}

	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("blobstore: path %q escapes store root", relPath)
	}

	return full, nil
}
