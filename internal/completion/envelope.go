package completion

import (
	"encoding/json"
	"strings"
)

// Kind tags which response shape an envelope matched.
type Kind string

const (
	KindChoices    Kind = "choices"
	KindData       Kind = "data"
	KindCandidates Kind = "candidates"
	KindDirect     Kind = "direct"
	KindNone       Kind = "none"
)

// Envelope is the decoded completion response. Content is set for the text-bearing kinds;
// Object is set for KindDirect.
type Envelope struct {
	Kind    Kind
	Content string
	Object  map[string]any
	Raw     json.RawMessage
}

// DirectMatcher decides whether a response body with no text content is itself the payload.
type DirectMatcher func(body map[string]any) bool

type contentMatcher struct {
	kind    Kind
	extract func(body map[string]any) (string, bool)
}

// Matchers run in order; the first one yielding non-empty text wins.
var contentMatchers = []contentMatcher{
	{kind: KindChoices, extract: choicesContent},
	{kind: KindData, extract: dataContent},
	{kind: KindCandidates, extract: candidatesContent},
}

// Decode classifies a raw completion body. direct may be nil.
func Decode(raw json.RawMessage, direct DirectMatcher) Envelope {
	env := Envelope{Kind: KindNone, Raw: raw}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return env
	}

	for _, m := range contentMatchers {
		if content, ok := m.extract(body); ok {
			env.Kind = m.kind
			env.Content = content
			return env
		}
	}

	if direct != nil && direct(body) {
		env.Kind = KindDirect
		env.Object = body
	}
	return env
}

// choices[0].message.content
func choicesContent(body map[string]any) (string, bool) {
	choices, _ := body["choices"].([]any)
	if len(choices) == 0 {
		return "", false
	}
	first, _ := choices[0].(map[string]any)
	msg, _ := first["message"].(map[string]any)
	return nonEmptyString(msg["content"])
}

// data.content
func dataContent(body map[string]any) (string, bool) {
	data, _ := body["data"].(map[string]any)
	return nonEmptyString(data["content"])
}

// candidates[0].content.parts[].text, concatenated
func candidatesContent(body map[string]any) (string, bool) {
	candidates, _ := body["candidates"].([]any)
	if len(candidates) == 0 {
		return "", false
	}
	first, _ := candidates[0].(map[string]any)
	content, _ := first["content"].(map[string]any)
	parts, _ := content["parts"].([]any)
	var sb strings.Builder
	for _, p := range parts {
		part, _ := p.(map[string]any)
		if text, ok := part["text"].(string); ok {
			sb.WriteString(text)
		}
	}
	return nonEmptyString(sb.String())
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Truthy follows loose JSON truthiness: null, false, 0 and "" are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
