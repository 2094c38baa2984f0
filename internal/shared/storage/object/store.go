package object

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document exists under a key.
	ErrNotFound = errors.New("document not found")
	// ErrVersionConflict is returned when a conditional write loses to another writer.
	ErrVersionConflict = errors.New("document version conflict")
)

// Document is a stored blob plus an opaque version token for conditional writes.
type Document struct {
	Data    []byte
	Version string
}

// DocumentStore persists whole JSON documents by key.
//
// Put writes data only if the stored version still equals ifVersion. An empty ifVersion
// means the document must not exist yet. It returns the new version.
type DocumentStore interface {
	Get(ctx context.Context, key string) (Document, error)
	Put(ctx context.Context, key string, data []byte, ifVersion string) (string, error)
}
