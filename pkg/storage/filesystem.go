package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem stores objects under baseDir and publishes them below
// publicBase (for example "http://localhost:3000/uploads").
type FileSystem struct {
	fs         afero.Fs
	baseDir    string
	publicBase string
}

func NewFileSystem(baseDir, publicBase string) (*FileSystem, error) {
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileSystem{fs: fs, baseDir: baseDir, publicBase: publicBase}, nil
}

// NewMemoryFileSystem creates a FileSystem backed by memory (useful for testing)
func NewMemoryFileSystem(publicBase string) *FileSystem {
	return &FileSystem{
		fs:         afero.NewMemMapFs(),
		baseDir:    "uploads",
		publicBase: publicBase,
	}
}

func (f *FileSystem) Put(ctx context.Context, subdir, filename, contentType string, data []byte) (string, error) {
	key := objectKey(subdir, filename)
	full := filepath.Join(f.baseDir, filepath.FromSlash(key))
	if err := f.fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(f.fs, full, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return f.publicBase + "/" + key, nil
}

func (f *FileSystem) Delete(ctx context.Context, url string) error {
	key, ok := keyFromURL(f.publicBase, url)
	if !ok {
		return fmt.Errorf("url %q is not in local storage", url)
	}
	err := f.fs.Remove(filepath.Join(f.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileSystem) Owns(url string) bool {
	_, ok := keyFromURL(f.publicBase, url)
	return ok
}

// Exists is used by tests and the static handler check.
func (f *FileSystem) Exists(url string) bool {
	key, ok := keyFromURL(f.publicBase, url)
	if !ok {
		return false
	}
	exists, _ := afero.Exists(f.fs, filepath.Join(f.baseDir, filepath.FromSlash(key)))
	return exists
}
