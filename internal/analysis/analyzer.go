package analysis

import (
	"context"
	"encoding/json"
	"time"

	"hrmaturity-backend/internal/completion"
	"hrmaturity-backend/internal/shared/metrics"
	"hrmaturity-backend/internal/shared/telemetry"
)

const (
	analysisMaxTokens   = 3000
	analysisTemperature = 0.7
)

// Outcome is the analysis produced for a submission. Source and Reason are diagnostic
// and are not part of the stored result.
type Outcome struct {
	Analysis json.RawMessage
	Source   Source
	Reason   string
}

// Analyzer turns an analysis prompt into an analysis document.
type Analyzer struct {
	Provider  completion.Provider
	Model     string
	Fallbacks Fallbacks
}

// NewAnalyzer constructs an Analyzer. A nil provider always falls back.
func NewAnalyzer(provider completion.Provider, model string, fallbacks Fallbacks) *Analyzer {
	if provider == nil {
		provider = completion.Placeholder{}
	}
	return &Analyzer{Provider: provider, Model: model, Fallbacks: fallbacks}
}

// Analyze makes a single completion call and never fails: transport errors, empty or
// unparseable content all yield the fallback analysis.
func (a *Analyzer) Analyze(ctx context.Context, prompt string) Outcome {
	start := time.Now()
	raw, err := a.Provider.Complete(ctx, completion.Request{
		System:      analysisSystemPrompt,
		User:        prompt,
		Model:       a.Model,
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	metrics.ObserveCompletionDurationMs(metrics.Since(start))

	out := a.interpret(raw, err)
	metrics.IncAnalysis(string(out.Source))
	fields := map[string]any{
		"source":      string(out.Source),
		"duration_ms": metrics.Since(start),
	}
	if out.Reason != "" {
		fields["reason"] = out.Reason
	}
	if out.Source == SourceFallback {
		telemetry.Warn("analysis.fallback", fields)
	} else {
		telemetry.Info("analysis.complete", fields)
	}
	return out
}

func (a *Analyzer) interpret(raw json.RawMessage, err error) Outcome {
	if err != nil {
		return a.fallback("completion error: " + err.Error())
	}

	env := completion.Decode(raw, isDirectAnalysis)
	switch env.Kind {
	case completion.KindChoices, completion.KindData, completion.KindCandidates:
		if !json.Valid([]byte(env.Content)) {
			return a.fallback("content is not valid JSON")
		}
		return Outcome{Analysis: json.RawMessage(env.Content), Source: SourceRemote}
	case completion.KindDirect:
		return Outcome{Analysis: raw, Source: SourceDirect}
	default:
		return a.fallback("no content in completion response")
	}
}

func (a *Analyzer) fallback(reason string) Outcome {
	return Outcome{Analysis: a.Fallbacks.AnalysisDocument(), Source: SourceFallback, Reason: reason}
}

func isDirectAnalysis(body map[string]any) bool {
	return completion.Truthy(body["overallScore"]) && completion.Truthy(body["categoryScores"])
}
