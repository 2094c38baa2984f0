package catalog

import "math"

// Baseline is a deterministic weighted mean of the submitted answers. It is context for
// prompts and reports only; the analysis scores always come from the model or fallback.
type Baseline struct {
	Overall    float64            `json:"overall"`
	Categories map[string]float64 `json:"categories"`
	Answered   int                `json:"answered"`
}

// BaselineScores computes per-category and overall weighted means. Unanswered questions and
// values outside 1..5 are skipped; a non-positive weight counts as 1.
func BaselineScores(c Catalog, answers Answers) Baseline {
	out := Baseline{Categories: map[string]float64{}}
	var totalSum, totalWeight float64

	for _, cat := range c.Categories {
		var sum, weight float64
		for _, q := range cat.Questions {
			v, ok := answers[q.ID]
			if !ok || v < 1 || v > 5 {
				continue
			}
			w := q.Weight
			if w <= 0 {
				w = 1
			}
			sum += float64(v) * w
			weight += w
			out.Answered++
		}
		if weight == 0 {
			continue
		}
		out.Categories[cat.ID] = round1(sum / weight)
		totalSum += sum
		totalWeight += weight
	}
	if totalWeight > 0 {
		out.Overall = round1(totalSum / totalWeight)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
