package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hrmaturity-backend/internal/shared/storage/object"
	"hrmaturity-backend/internal/shared/telemetry"
)

// DocumentKey is the document store key holding the catalog.
const DocumentKey = "questions.json"

// Repo loads the current catalog.
type Repo interface {
	Load(ctx context.Context) (Catalog, error)
}

// DocumentRepo reads the catalog from a DocumentStore on every call so operator
// edits to the stored document take effect without a restart.
type DocumentRepo struct {
	Store object.DocumentStore
	Key   string
	Now   func() time.Time
}

// NewDocumentRepo constructs a DocumentRepo using DocumentKey.
func NewDocumentRepo(store object.DocumentStore) *DocumentRepo {
	return &DocumentRepo{Store: store, Key: DocumentKey, Now: time.Now}
}

// Load decodes the stored catalog.
func (r *DocumentRepo) Load(ctx context.Context) (Catalog, error) {
	doc, err := r.Store.Get(ctx, r.Key)
	if errors.Is(err, object.ErrNotFound) {
		return Catalog{}, ErrNotSeeded
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(doc.Data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

// EnsureSeeded writes the built-in catalog when no catalog document exists yet.
// It reports whether a seed was written.
func (r *DocumentRepo) EnsureSeeded(ctx context.Context) (bool, error) {
	_, err := r.Store.Get(ctx, r.Key)
	if err == nil {
		telemetry.Info("catalog.present", map[string]any{"key": r.Key})
		return false, nil
	}
	if !errors.Is(err, object.ErrNotFound) {
		return false, fmt.Errorf("check catalog: %w", err)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	seed, err := Seed(now())
	if err != nil {
		return false, err
	}
	if err := Validate(seed); err != nil {
		return false, err
	}
	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode seed catalog: %w", err)
	}
	if _, err := r.Store.Put(ctx, r.Key, data, ""); err != nil {
		// Another process seeded first.
		if errors.Is(err, object.ErrVersionConflict) {
			return false, nil
		}
		return false, fmt.Errorf("write seed catalog: %w", err)
	}
	telemetry.Info("catalog.seeded", map[string]any{
		"key":        r.Key,
		"categories": len(seed.Categories),
		"questions":  seed.QuestionCount(),
	})
	return true, nil
}

// StaticRepo serves a fixed catalog.
type StaticRepo struct {
	Catalog Catalog
}

func (r StaticRepo) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return Catalog{}, err
	}
	return r.Catalog, nil
}
