package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hrmaturity-backend/internal/completion"
	"hrmaturity-backend/internal/shared/metrics"
	"hrmaturity-backend/internal/shared/telemetry"
)

const (
	recommendationsMaxTokens   = 2000
	recommendationsTemperature = 0.8
)

// RecommendationsOutcome holds generated recommendations. Remote items are passed through
// unmodified.
type RecommendationsOutcome struct {
	Items  []json.RawMessage
	Source Source
	Reason string
}

// Recommender generates additional recommendations.
type Recommender struct {
	Provider  completion.Provider
	Model     string
	Fallbacks Fallbacks
}

// NewRecommender constructs a Recommender. A nil provider always falls back.
func NewRecommender(provider completion.Provider, model string, fallbacks Fallbacks) *Recommender {
	if provider == nil {
		provider = completion.Placeholder{}
	}
	return &Recommender{Provider: provider, Model: model, Fallbacks: fallbacks}
}

// Generate never fails; anything other than a usable recommendations array yields the
// filtered fallback pool.
func (r *Recommender) Generate(ctx context.Context, current []string, org OrganizationContext) RecommendationsOutcome {
	start := time.Now()
	out := r.generate(ctx, current, org)
	metrics.IncRecommendations(string(out.Source))

	fields := map[string]any{
		"source":      string(out.Source),
		"count":       len(out.Items),
		"duration_ms": metrics.Since(start),
	}
	if out.Reason != "" {
		fields["reason"] = out.Reason
	}
	if out.Source == SourceFallback {
		telemetry.Warn("recommendations.fallback", fields)
	} else {
		telemetry.Info("recommendations.complete", fields)
	}
	return out
}

func (r *Recommender) generate(ctx context.Context, current []string, org OrganizationContext) RecommendationsOutcome {
	prompt, err := BuildRecommendationsPrompt(current, org)
	if err != nil {
		return r.fallback(current, "prompt: "+err.Error())
	}

	start := time.Now()
	raw, err := r.Provider.Complete(ctx, completion.Request{
		System:      recommendationsSystemPrompt,
		User:        prompt,
		Model:       r.Model,
		MaxTokens:   recommendationsMaxTokens,
		Temperature: recommendationsTemperature,
	})
	metrics.ObserveCompletionDurationMs(metrics.Since(start))
	if err != nil {
		return r.fallback(current, "completion error: "+err.Error())
	}

	env := completion.Decode(raw, hasRecommendationsArray)
	switch env.Kind {
	case completion.KindChoices, completion.KindData, completion.KindCandidates:
		items, ok := recommendationItems([]byte(env.Content))
		if !ok {
			return r.fallback(current, "content is not a recommendations list")
		}
		return RecommendationsOutcome{Items: items, Source: SourceRemote}
	case completion.KindDirect:
		items, _ := recommendationItems(raw)
		return RecommendationsOutcome{Items: items, Source: SourceDirect}
	default:
		return r.fallback(current, "no content in completion response")
	}
}

func (r *Recommender) fallback(current []string, reason string) RecommendationsOutcome {
	filtered := FilterRecommendations(r.Fallbacks.Recommendations, current)
	items := make([]json.RawMessage, 0, len(filtered))
	for _, rec := range filtered {
		raw, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		items = append(items, raw)
	}
	return RecommendationsOutcome{Items: items, Source: SourceFallback, Reason: reason}
}

// recommendationItems accepts {"recommendations": [...]} or a bare array.
func recommendationItems(data []byte) ([]json.RawMessage, bool) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, false
		}
		return items, true
	}

	var wrapped struct {
		Recommendations json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err != nil {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(wrapped.Recommendations, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func hasRecommendationsArray(body map[string]any) bool {
	_, ok := body["recommendations"].([]any)
	return ok
}
