package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"hrmaturity-backend/internal/shared/filelock"
	"hrmaturity-backend/internal/shared/storage/object"
	"hrmaturity-backend/internal/shared/util"
)

// Store implements DocumentStore on the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local document store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Get reads a document and its content hash.
func (s *Store) Get(ctx context.Context, key string) (object.Document, error) {
	if err := ctx.Err(); err != nil {
		return object.Document{}, err
	}
	fullPath, err := s.path(key)
	if err != nil {
		return object.Document{}, err
	}
	data, err := os.ReadFile(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return object.Document{}, object.ErrNotFound
	}
	if err != nil {
		return object.Document{}, fmt.Errorf("read %s: %w", key, err)
	}
	return object.Document{Data: data, Version: util.ContentHash(data)}, nil
}

// Put compares the current content hash with ifVersion under the file lock and
// replaces the file atomically when they match.
func (s *Store) Put(ctx context.Context, key string, data []byte, ifVersion string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fullPath, err := s.path(key)
	if err != nil {
		return "", err
	}

	lock := filelock.For(fullPath)
	if err := lock.Lock(ctx); err != nil {
		return "", err
	}
	defer lock.Unlock()

	current, err := os.ReadFile(fullPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if ifVersion != "" {
			return "", object.ErrVersionConflict
		}
	case err != nil:
		return "", fmt.Errorf("read %s: %w", key, err)
	default:
		if ifVersion == "" || util.ContentHash(current) != ifVersion {
			return "", object.ErrVersionConflict
		}
	}

	if err := filelock.AtomicWrite(fullPath, data); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return util.ContentHash(data), nil
}

func (s *Store) path(key string) (string, error) {
	clean, err := util.CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), nil
}

var _ object.DocumentStore = (*Store)(nil)
