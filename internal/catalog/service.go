package catalog

import "context"

// Service exposes catalog reads.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Catalog returns the full catalog document.
func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	return s.Repo.Load(ctx)
}

// Category returns a single category by id.
func (s *Service) Category(ctx context.Context, id string) (Category, error) {
	c, err := s.Repo.Load(ctx)
	if err != nil {
		return Category{}, err
	}
	cat, ok := c.FindCategory(id)
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return cat, nil
}
