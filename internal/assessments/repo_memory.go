package assessments

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	results []Result
	byID    map[string]int
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]int)}
}

func (r *MemoryRepo) Append(ctx context.Context, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[result.ID]; ok {
		return ErrDuplicateID
	}
	r.byID[result.ID] = len(r.results)
	r.results = append(r.results, cloneResult(result))
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return Result{}, ErrNotFound
	}
	return cloneResult(r.results[idx]), nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Result, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, cloneResult(res))
	}
	return out, nil
}

func cloneResult(r Result) Result {
	out := r
	if r.Answers != nil {
		out.Answers = make(map[string]int, len(r.Answers))
		for k, v := range r.Answers {
			out.Answers[k] = v
		}
	}
	if r.Comments != nil {
		out.Comments = make(map[string]string, len(r.Comments))
		for k, v := range r.Comments {
			out.Comments[k] = v
		}
	}
	out.Analysis = append([]byte(nil), r.Analysis...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
