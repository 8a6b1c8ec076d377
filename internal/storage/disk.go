package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage stores photo blobs as files under a single directory, the
// way the images directory of a single-node deployment works.
type DiskStorage struct {
	dir string
}

// NewDiskStorage creates the directory if needed and returns the store.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStorage{dir: dir}, nil
}

// path flattens the key so it cannot escape the storage directory.
func (d *DiskStorage) path(key string) string {
	return filepath.Join(d.dir, filepath.Base(strings.TrimSpace(key)))
}

// Put writes the blob to disk under the given key.
func (d *DiskStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f, err := os.Create(d.path(key))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Get opens the blob stored under the given key.
func (d *DiskStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(d.path(key))
}

// Delete removes the blob stored under the given key.
func (d *DiskStorage) Delete(ctx context.Context, key string) error {
	return os.Remove(d.path(key))
}
