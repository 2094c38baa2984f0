package memory

import (
	"context"
	"strconv"
	"sync"

	"hrmaturity-backend/internal/shared/storage/object"
)

// Store is an in-memory DocumentStore with monotonically increasing versions.
type Store struct {
	mu   sync.RWMutex
	docs map[string]object.Document
	seq  int
}

// New constructs an empty Store.
func New() *Store {
	return &Store{docs: make(map[string]object.Document)}
}

// Get returns a copy of the stored document.
func (s *Store) Get(ctx context.Context, key string) (object.Document, error) {
	if err := ctx.Err(); err != nil {
		return object.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return object.Document{}, object.ErrNotFound
	}
	return object.Document{Data: append([]byte(nil), doc.Data...), Version: doc.Version}, nil
}

// Put stores data when the current version matches ifVersion.
func (s *Store) Put(ctx context.Context, key string, data []byte, ifVersion string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[key]
	if (ok && current.Version != ifVersion) || (!ok && ifVersion != "") {
		return "", object.ErrVersionConflict
	}
	s.seq++
	version := strconv.Itoa(s.seq)
	s.docs[key] = object.Document{Data: append([]byte(nil), data...), Version: version}
	return version, nil
}

var _ object.DocumentStore = (*Store)(nil)
