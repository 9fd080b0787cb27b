// Package media resolves catalog songs to public asset URLs and serves
// assets from a sandboxed directory.
package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Asset directories under the store root.
const (
	ImageDir = "image"
	AudioDir = "audio"
)

// Common errors.
var (
	ErrAssetMissing = errors.New("asset not found")
	ErrOutsideRoot  = errors.New("path escapes asset root")
)

// Store is a read-only view of the asset directory. Every lookup is
// confined to the root.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory does not need to
// exist yet; lookups simply miss until it does.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("asset root is required")
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving asset root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	return &Store{root: root}, nil
}

// Sub returns a Store rooted at dir inside s. dir must not escape s.
func (s *Store) Sub(dir string) (*Store, error) {
	path, err := s.Path(dir)
	if err != nil {
		return nil, err
	}
	return &Store{root: path}, nil
}

// Root returns the absolute asset root.
func (s *Store) Root() string {
	return s.root
}

// Path maps a slash-separated relative name to a filesystem path inside
// the root. The path is cleaned and symlinks are resolved before the
// prefix check.
func (s *Store) Path(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}

	full := filepath.Join(s.root, filepath.FromSlash(name))
	if resolved, err := filepath.EvalSymlinks(full); err == nil {
		full = resolved
	}

	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}

	return full, nil
}

// Exists reports whether name is a regular file inside the root.
func (s *Store) Exists(name string) bool {
	info, err := s.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// Stat returns file info for name. Missing files and directories report
// ErrAssetMissing.
func (s *Store) Stat(name string) (fs.FileInfo, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetMissing, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrAssetMissing, name)
	}
	return info, nil
}

// Open opens name for reading. The caller must close the file.
func (s *Store) Open(name string) (*os.File, fs.FileInfo, error) {
	info, err := s.Stat(name)
	if err != nil {
		return nil, nil, err
	}

	path, err := s.Path(name)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrAssetMissing, name)
		}
		return nil, nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return f, info, nil
}
