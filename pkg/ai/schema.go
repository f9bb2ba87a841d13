package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const unusualClausesSchemaSrc = `{
	"type": "object",
	"required": ["unusualClauses"],
	"properties": {
		"unusualClauses": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

const riskExplanationsSchemaSrc = `{
	"type": "object",
	"required": ["explanations"],
	"properties": {
		"explanations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["code", "description"],
				"properties": {
					"code": {"type": "string"},
					"description": {"type": "string"},
					"severity": {"type": "string"}
				}
			}
		}
	}
}`

var (
	unusualClausesSchema   = compileSchema("unusual-clauses.json", unusualClausesSchemaSrc)
	riskExplanationsSchema = compileSchema("risk-explanations.json", riskExplanationsSchemaSrc)
)

func compileSchema(name, src string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("ai: invalid embedded schema %s: %v", name, err))
	}
	schema, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("ai: failed to compile embedded schema %s: %v", name, err))
	}
	return schema
}

// UnusualClausesPayload is the parsed shape of the unusual-clauses prompt.
type UnusualClausesPayload struct {
	UnusualClauses []string `json:"unusualClauses"`
}

// RiskExplanationEntry is one explanation entry in a RiskExplanationsPayload.
type RiskExplanationEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
}

// RiskExplanationsPayload is the parsed shape of the risk-explanations prompt.
type RiskExplanationsPayload struct {
	Explanations []RiskExplanationEntry `json:"explanations"`
}

// extractJSONObject implements the "parse as JSON with fallback to the
// first {...} substring" rule from §4.E: providers routinely wrap a
// JSON object in prose or markdown fences.
func extractJSONObject(raw string) (map[string]any, bool) {
	var direct map[string]any
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		return direct, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	var fallback map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fallback); err != nil {
		return nil, false
	}
	return fallback, true
}

// parseUnusualClauses validates and decodes raw against the
// unusual-clauses schema. A parse or validation failure is not an
// error: it yields an empty payload, the graceful-degradation path.
func parseUnusualClauses(raw string) UnusualClausesPayload {
	obj, ok := extractJSONObject(raw)
	if !ok || unusualClausesSchema.Validate(obj) != nil {
		return UnusualClausesPayload{}
	}
	var payload UnusualClausesPayload
	encoded, err := json.Marshal(obj)
	if err != nil {
		return UnusualClausesPayload{}
	}
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return UnusualClausesPayload{}
	}
	return payload
}

// parseRiskExplanations validates and decodes raw against the
// risk-explanations schema, degrading to an empty payload on failure.
func parseRiskExplanations(raw string) RiskExplanationsPayload {
	obj, ok := extractJSONObject(raw)
	if !ok || riskExplanationsSchema.Validate(obj) != nil {
		return RiskExplanationsPayload{}
	}
	var payload RiskExplanationsPayload
	encoded, err := json.Marshal(obj)
	if err != nil {
		return RiskExplanationsPayload{}
	}
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return RiskExplanationsPayload{}
	}
	return payload
}
