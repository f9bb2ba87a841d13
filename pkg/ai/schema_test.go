package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject_Direct(t *testing.T) {
	obj, ok := extractJSONObject(`{"a": 1}`)
	assert.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])
}

func TestExtractJSONObject_FallbackSubstring(t *testing.T) {
	obj, ok := extractJSONObject("prose before {\"a\": 1} prose after")
	assert.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])
}

func TestExtractJSONObject_NoBraces(t *testing.T) {
	_, ok := extractJSONObject("no braces here")
	assert.False(t, ok)
}

func TestExtractJSONObject_MalformedFallback(t *testing.T) {
	_, ok := extractJSONObject("{ not json at all }")
	assert.False(t, ok)
}

func TestParseUnusualClauses_ValidatesAgainstSchema(t *testing.T) {
	payload := parseUnusualClauses(`{"unusualClauses": ["a", "b"]}`)
	assert.Equal(t, []string{"a", "b"}, payload.UnusualClauses)
}

func TestParseUnusualClauses_WrongShapeDegradesEmpty(t *testing.T) {
	payload := parseUnusualClauses(`{"unusualClauses": "not an array"}`)
	assert.Empty(t, payload.UnusualClauses)
}

func TestParseRiskExplanations_MissingRequiredFieldDegradesEmpty(t *testing.T) {
	payload := parseRiskExplanations(`{"explanations": [{"description": "missing code"}]}`)
	assert.Empty(t, payload.Explanations)
}

func TestParseRiskExplanations_Valid(t *testing.T) {
	payload := parseRiskExplanations(`{"explanations": [{"code": "X", "description": "y", "severity": "high"}]}`)
	assert.Len(t, payload.Explanations, 1)
	assert.Equal(t, "high", payload.Explanations[0].Severity)
}
