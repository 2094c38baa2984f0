package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks catalog structure: unique ids, question categories matching their
// enclosing category, and option values within 1..5.
func Validate(c Catalog) error {
	var errs []error
	if strings.TrimSpace(c.ID) == "" {
		errs = append(errs, errors.New("catalog id is empty"))
	}
	if len(c.Categories) == 0 {
		errs = append(errs, errors.New("catalog has no categories"))
	}

	seenCategories := map[string]bool{}
	seenQuestions := map[string]bool{}
	for _, cat := range c.Categories {
		if cat.ID == "" {
			errs = append(errs, errors.New("category with empty id"))
			continue
		}
		if seenCategories[cat.ID] {
			errs = append(errs, fmt.Errorf("duplicate category %q", cat.ID))
		}
		seenCategories[cat.ID] = true

		for _, q := range cat.Questions {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("category %q: question with empty id", cat.ID))
				continue
			}
			if seenQuestions[q.ID] {
				errs = append(errs, fmt.Errorf("duplicate question %q", q.ID))
			}
			seenQuestions[q.ID] = true
			if q.Category != cat.ID {
				errs = append(errs, fmt.Errorf("question %q: category %q does not match %q", q.ID, q.Category, cat.ID))
			}
			if len(q.Options) == 0 {
				errs = append(errs, fmt.Errorf("question %q: no options", q.ID))
			}
			for _, o := range q.Options {
				if o.Value < 1 || o.Value > 5 {
					errs = append(errs, fmt.Errorf("question %q: option value %d outside 1..5", q.ID, o.Value))
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}
