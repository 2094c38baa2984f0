package assessments

import "errors"

var (
	ErrNotFound      = errors.New("result not found")
	ErrDuplicateID   = errors.New("duplicate result id")
	ErrMissingFields = errors.New("missing required fields")
)
