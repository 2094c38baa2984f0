package catalog

import "errors"

var (
	ErrNotSeeded        = errors.New("question catalog not initialized")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCatalog   = errors.New("invalid question catalog")
)
