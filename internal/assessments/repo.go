package assessments

import "context"

// Repo defines persistence operations for assessment results. List returns results in
// append order.
type Repo interface {
	Append(ctx context.Context, result Result) error
	GetByID(ctx context.Context, id string) (Result, error)
	List(ctx context.Context) ([]Result, error)
}
