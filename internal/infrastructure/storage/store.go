// Package storage keeps generated invoice artifacts on local disk, served
// statically under /invoices.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/pdf"
)

// Ensure Store satisfies the renderer's sink port.
var _ pdf.ArtifactStore = (*Store)(nil)

// Store is a local-disk artifact sink rooted at one directory.
type Store struct {
	dir string
}

// NewStore creates the root directory when missing.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Create opens name exclusively: a second create of the same name fails with
// fs.ErrExist instead of overwriting.
func (s *Store) Create(name string) (io.WriteCloser, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("storage: invalid artifact name %q", name)
	}
	return os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
}

// Remove deletes one artifact.
func (s *Store) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, name))
}

// PublicPath is the URL path clients fetch the artifact from.
func (s *Store) PublicPath(name string) string {
	return "/invoices/" + name
}

// FilePath is where the artifact lives on disk.
func (s *Store) FilePath(name string) string {
	return filepath.Join(s.dir, name)
}

// Dir is the root directory, for the static file mount.
func (s *Store) Dir() string {
	return s.dir
}
