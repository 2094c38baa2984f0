package completion

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeShapes(t *testing.T) {
	analysisDirect := func(body map[string]any) bool {
		return Truthy(body["overallScore"]) && Truthy(body["categoryScores"])
	}

	tests := []struct {
		name        string
		raw         string
		wantKind    Kind
		wantContent string
	}{
		{
			name:        "chat choices",
			raw:         `{"choices":[{"message":{"role":"assistant","content":"{\"overallScore\":4}"}}]}`,
			wantKind:    KindChoices,
			wantContent: `{"overallScore":4}`,
		},
		{
			name:        "data content",
			raw:         `{"data":{"content":"{\"a\":1}"}}`,
			wantKind:    KindData,
			wantContent: `{"a":1}`,
		},
		{
			name:        "empty choices falls through to data",
			raw:         `{"choices":[{"message":{"content":""}}],"data":{"content":"x"}}`,
			wantKind:    KindData,
			wantContent: "x",
		},
		{
			name:        "gemini candidates concatenated",
			raw:         `{"candidates":[{"content":{"parts":[{"text":"{\"a\":"},{"text":"1}"}]}}]}`,
			wantKind:    KindCandidates,
			wantContent: `{"a":1}`,
		},
		{
			name:     "direct analysis object",
			raw:      `{"overallScore":3.4,"categoryScores":{"processes":3}}`,
			wantKind: KindDirect,
		},
		{
			name:     "direct object missing category scores",
			raw:      `{"overallScore":3.4}`,
			wantKind: KindNone,
		},
		{
			name:     "zero score is not direct",
			raw:      `{"overallScore":0,"categoryScores":{}}`,
			wantKind: KindNone,
		},
		{
			name:     "non-string content is ignored",
			raw:      `{"choices":[{"message":{"content":{"overallScore":4}}}]}`,
			wantKind: KindNone,
		},
		{
			name:     "array body",
			raw:      `[1,2,3]`,
			wantKind: KindNone,
		},
		{
			name:     "invalid json",
			raw:      `not json`,
			wantKind: KindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Decode(json.RawMessage(tt.raw), analysisDirect)
			assert.Equal(t, tt.wantKind, env.Kind)
			assert.Equal(t, tt.wantContent, env.Content)
			if tt.wantKind == KindDirect {
				assert.NotNil(t, env.Object)
			}
		})
	}
}

func TestDecodeWithoutDirectMatcher(t *testing.T) {
	env := Decode(json.RawMessage(`{"overallScore":3,"categoryScores":{"x":1}}`), nil)
	assert.Equal(t, KindNone, env.Kind)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(""))
	assert.True(t, Truthy(map[string]any{}))
	assert.True(t, Truthy([]any{}))
	assert.True(t, Truthy(2.5))
}

func TestPlaceholderNotConfigured(t *testing.T) {
	_, err := Placeholder{}.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
