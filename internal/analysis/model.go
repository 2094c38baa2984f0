package analysis

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Source records where an analysis or recommendation set came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceDirect   Source = "direct"
	SourceFallback Source = "fallback"
)

// Analysis is the typed view of an analysis document. Stored analyses are kept as the raw
// JSON the model returned; this view is used for fallback data and rendering.
type Analysis struct {
	OverallScore        float64            `json:"overallScore" yaml:"overallScore"`
	CategoryScores      map[string]float64 `json:"categoryScores" yaml:"categoryScores"`
	Strengths           []string           `json:"strengths" yaml:"strengths"`
	AreasForImprovement []string           `json:"areasForImprovement" yaml:"areasForImprovement"`
	Recommendations     []Recommendation   `json:"recommendations" yaml:"recommendations"`
	MaturityLevel       string             `json:"maturityLevel" yaml:"maturityLevel"`
	NextSteps           []string           `json:"nextSteps" yaml:"nextSteps"`
}

// Recommendation is a single improvement suggestion. Analysis recommendations carry a
// priority; generated ones carry an impact and steps.
type Recommendation struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Impact      string   `json:"impact,omitempty" yaml:"impact,omitempty"`
	Priority    string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Timeframe   string   `json:"timeframe" yaml:"timeframe"`
	Category    string   `json:"category" yaml:"category"`
	Steps       []string `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// OrganizationContext tailors generated recommendations.
type OrganizationContext struct {
	MaturityLevel string   `json:"maturityLevel"`
	FocusAreas    []string `json:"focusAreas"`
	Industry      string   `json:"industry"`
}

// UnknownMaturity is reported when an analysis carries no maturity level.
const UnknownMaturity = "Unknown"

// SummaryFields projects the list-view fields out of a raw analysis document. A missing,
// zero or non-numeric score reads as 0; a missing or empty maturity level reads as Unknown.
func SummaryFields(raw json.RawMessage) (float64, string) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, UnknownMaturity
	}
	return number(doc["overallScore"]), stringOr(doc["maturityLevel"], UnknownMaturity)
}

// View decodes a raw analysis document leniently for rendering. Fields with unexpected
// types are left empty rather than failing the whole document.
func View(raw json.RawMessage) Analysis {
	var strict Analysis
	if err := json.Unmarshal(raw, &strict); err == nil {
		return strict
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Analysis{MaturityLevel: UnknownMaturity}
	}
	out := Analysis{
		OverallScore:        number(doc["overallScore"]),
		MaturityLevel:       stringOr(doc["maturityLevel"], UnknownMaturity),
		Strengths:           stringSlice(doc["strengths"]),
		AreasForImprovement: stringSlice(doc["areasForImprovement"]),
		NextSteps:           stringSlice(doc["nextSteps"]),
		CategoryScores:      map[string]float64{},
	}
	if scores, ok := doc["categoryScores"].(map[string]any); ok {
		for k, v := range scores {
			out.CategoryScores[k] = number(v)
		}
	}
	if recs, ok := doc["recommendations"].([]any); ok {
		for _, r := range recs {
			m, ok := r.(map[string]any)
			if !ok {
				continue
			}
			out.Recommendations = append(out.Recommendations, Recommendation{
				Title:       stringOr(m["title"], ""),
				Description: stringOr(m["description"], ""),
				Impact:      stringOr(m["impact"], ""),
				Priority:    stringOr(m["priority"], ""),
				Timeframe:   stringOr(m["timeframe"], ""),
				Category:    stringOr(m["category"], ""),
				Steps:       stringSlice(m["steps"]),
			})
		}
	}
	return out
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return 0
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
