// Package storage persists generated resume artifacts on the local
// filesystem under a configured root directory.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store writes and reads artifact files. Paths handed out are always
// relative to the root, so records stay valid if the root moves.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Save writes data under the given relative name and returns the
// relative path. Subdirectories in the name are created.
func (s *Store) Save(name string, data []byte) (string, error) {
	rel, err := s.safeRel(name)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", rel, err)
	}
	return rel, nil
}

// Open returns a reader for a previously saved artifact.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	rel, err := s.safeRel(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact %s: %w", rel, err)
	}
	return f, nil
}

// Path returns the absolute path for a stored artifact name. The
// renderer uses this for writers that need a filename.
func (s *Store) Path(name string) (string, error) {
	rel, err := s.safeRel(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return full, nil
}

// Exists reports whether an artifact is present.
func (s *Store) Exists(name string) bool {
	rel, err := s.safeRel(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(s.root, rel))
	return err == nil
}

// safeRel normalizes a name and rejects escapes from the root.
func (s *Store) safeRel(name string) (string, error) {
	rel := filepath.Clean(strings.TrimPrefix(name, "/"))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	return rel, nil
}
