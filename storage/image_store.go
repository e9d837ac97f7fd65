package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded binary content on durable storage and removes
// it by the path handed back from Save.
type ImageStore interface {
	// Save writes the blob under a generated unique name that keeps the
	// extension of the original filename and returns the relative path.
	Save(filename string, r io.Reader) (string, error)
	// Delete removes the blob at path. A missing file is not an error.
	Delete(path string) error
}

// DiskStore stores blobs as flat files in a single upload directory.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures the upload directory exists and returns a store rooted at it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.New().String()
	name = strings.ReplaceAll(name, "-", "") + strings.ToLower(filepath.Ext(filepath.Base(filename)))
	dstPath := filepath.Join(s.dir, name)

	// O_EXCL so a name collision fails instead of overwriting
	out, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to flush blob: %w", err)
	}

	return dstPath, nil
}

func (s *DiskStore) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
