package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts the filesystem reads the loader performs.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the standard library.
type OSFS struct{}

// Stat returns file info for the given path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is discovered from the working directory
	return os.ReadFile(path)
}

// MapFSAdapter adapts an fs.FS, such as fstest.MapFS, mounted at Root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates a new MapFSAdapter with the given root path and filesystem.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{FS: fsys, Root: root}
}

// Stat returns file info for the given path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// toRelPath converts an absolute path to a path within the filesystem.
// Paths outside Root are returned unchanged so lookups fail with fs.ErrNotExist.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	if absPath == m.Root {
		return "."
	}
	if m.Root != "/" && !strings.HasPrefix(absPath, m.Root+string(filepath.Separator)) {
		return absPath
	}

	rel := strings.TrimPrefix(absPath, m.Root)
	return strings.TrimPrefix(rel, string(filepath.Separator))
}
