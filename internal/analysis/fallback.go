package analysis

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var defaultFallbackYAML []byte

// Fallbacks is the canned content served when the completion service cannot be used.
type Fallbacks struct {
	Analysis        Analysis         `yaml:"analysis"`
	Recommendations []Recommendation `yaml:"recommendations"`
}

// DefaultFallbacks returns the built-in fallback content.
func DefaultFallbacks() Fallbacks {
	var f Fallbacks
	if err := yaml.Unmarshal(defaultFallbackYAML, &f); err != nil {
		panic(fmt.Sprintf("analysis: embedded fallback.yaml: %v", err))
	}
	return f
}

// LoadFallbacks returns the defaults overlaid with the sections present in the YAML file
// at path. An empty path returns the defaults.
func LoadFallbacks(path string) (Fallbacks, error) {
	f := DefaultFallbacks()
	if strings.TrimSpace(path) == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fallbacks{}, fmt.Errorf("read fallback file: %w", err)
	}
	var override struct {
		Analysis        *Analysis        `yaml:"analysis"`
		Recommendations []Recommendation `yaml:"recommendations"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Fallbacks{}, fmt.Errorf("parse fallback file: %w", err)
	}
	if override.Analysis != nil {
		f.Analysis = *override.Analysis
	}
	if len(override.Recommendations) > 0 {
		f.Recommendations = override.Recommendations
	}
	return f, nil
}

// AnalysisDocument encodes the fallback analysis as a raw document.
func (f Fallbacks) AnalysisDocument() json.RawMessage {
	raw, err := json.Marshal(f.Analysis)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

// FilterRecommendations drops pool items whose title's first word (lower-cased) appears in
// any existing title, then keeps at most three.
func FilterRecommendations(pool []Recommendation, current []string) []Recommendation {
	lowered := make([]string, len(current))
	for i, c := range current {
		lowered[i] = strings.ToLower(c)
	}

	out := make([]Recommendation, 0, len(pool))
	for _, rec := range pool {
		firstWord := strings.Split(strings.ToLower(rec.Title), " ")[0]
		similar := false
		for _, existing := range lowered {
			if strings.Contains(existing, firstWord) {
				similar = true
				break
			}
		}
		if !similar {
			out = append(out, rec)
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
