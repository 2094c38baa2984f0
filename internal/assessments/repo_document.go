package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"hrmaturity-backend/internal/shared/storage/object"
	"hrmaturity-backend/internal/shared/telemetry"
)

// DocumentKey is the document store key holding the results array.
const DocumentKey = "results.json"

const defaultCommitAttempts = 5

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("result store closed")

// DocumentRepo stores all results as one JSON array document. Appends from this
// process are serialized through a single writer goroutine; writers in other processes
// are detected through conditional puts and retried.
type DocumentRepo struct {
	Store       object.DocumentStore
	Key         string
	MaxAttempts int

	requests  chan appendRequest
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type appendRequest struct {
	ctx    context.Context
	result Result
	reply  chan error
}

// NewDocumentRepo constructs a DocumentRepo and starts its writer. Call Close to stop it.
func NewDocumentRepo(store object.DocumentStore) *DocumentRepo {
	r := &DocumentRepo{
		Store:       store,
		Key:         DocumentKey,
		MaxAttempts: defaultCommitAttempts,
		requests:    make(chan appendRequest),
		done:        make(chan struct{}),
	}
	r.wg.Add(1)
	go r.writer()
	return r
}

// Init creates an empty results document when none exists.
func (r *DocumentRepo) Init(ctx context.Context) error {
	_, err := r.Store.Get(ctx, r.Key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, object.ErrNotFound) {
		return fmt.Errorf("check results document: %w", err)
	}
	if _, err := r.Store.Put(ctx, r.Key, []byte("[]"), ""); err != nil && !errors.Is(err, object.ErrVersionConflict) {
		return fmt.Errorf("create results document: %w", err)
	}
	return nil
}

// Close stops the writer after any in-flight append finishes.
func (r *DocumentRepo) Close() {
	r.closeOnce.Do(func() { close(r.done) })
	r.wg.Wait()
}

// Append queues result for the writer and waits for the commit outcome.
func (r *DocumentRepo) Append(ctx context.Context, result Result) error {
	req := appendRequest{ctx: ctx, result: result, reply: make(chan error, 1)}
	select {
	case r.requests <- req:
	case <-r.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-req.reply
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (Result, error) {
	results, err := r.List(ctx)
	if err != nil {
		return Result{}, err
	}
	for _, res := range results {
		if res.ID == id {
			return res, nil
		}
	}
	return Result{}, ErrNotFound
}

// List decodes the results document. A missing document lists as empty.
func (r *DocumentRepo) List(ctx context.Context) ([]Result, error) {
	doc, err := r.Store.Get(ctx, r.Key)
	if errors.Is(err, object.ErrNotFound) {
		return []Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	var results []Result
	if err := json.Unmarshal(doc.Data, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

func (r *DocumentRepo) writer() {
	defer r.wg.Done()
	for {
		select {
		case req := <-r.requests:
			req.reply <- r.commit(req.ctx, req.result)
		case <-r.done:
			return
		}
	}
}

// commit appends one entry with read-modify-write, retrying when another writer
// replaced the document in between.
func (r *DocumentRepo) commit(ctx context.Context, result Result) error {
	entry, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = defaultCommitAttempts
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, version, err := r.load(ctx)
		if err != nil {
			return err
		}
		if err := checkUniqueID(entries, result.ID); err != nil {
			return err
		}
		data, err := json.MarshalIndent(append(entries, entry), "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		_, err = r.Store.Put(ctx, r.Key, data, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, object.ErrVersionConflict) || attempt >= attempts {
			return fmt.Errorf("write results: %w", err)
		}
		telemetry.Warn("results.commit_conflict", map[string]any{
			"result_id": result.ID,
			"attempt":   attempt,
		})
	}
}

// load returns the stored entries undecoded so existing records are rewritten verbatim.
func (r *DocumentRepo) load(ctx context.Context) ([]json.RawMessage, string, error) {
	doc, err := r.Store.Get(ctx, r.Key)
	if errors.Is(err, object.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load results: %w", err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(doc.Data, &entries); err != nil {
		return nil, "", fmt.Errorf("decode results: %w", err)
	}
	return entries, doc.Version, nil
}

func checkUniqueID(entries []json.RawMessage, id string) error {
	for _, raw := range entries {
		var head struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("decode result entry: %w", err)
		}
		if head.ID == id {
			return ErrDuplicateID
		}
	}
	return nil
}

var _ Repo = (*DocumentRepo)(nil)
