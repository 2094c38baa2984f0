package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"hrmaturity-backend/internal/shared/util"
)

//go:embed seed_questions.json
var seedQuestions []byte

// Seed returns the built-in catalog stamped with createdAt.
func Seed(now time.Time) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(seedQuestions, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode seed catalog: %w", err)
	}
	c.CreatedAt = util.ISOTimestamp(now)
	return c, nil
}
