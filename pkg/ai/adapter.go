package ai

import (
	"context"
	"fmt"
)

// Adapter wraps a Client with the two domain prompts the orchestrator
// drives (§4.G step 6): unusual-clause detection and risk
// explanations. Every method here degrades to an empty signal set on
// any failure — a Client error, a non-empty Response.Error, or a
// parse/validation failure — so the orchestrator never fails an
// analysis because of the AI layer.
type Adapter struct {
	client Client
}

// NewAdapter wraps client. A nil client is valid and behaves as if
// every call failed, degrading to empty signals; this lets callers
// skip AI augmentation entirely without a separate skipAI branch in
// this package.
func NewAdapter(client Client) *Adapter {
	return &Adapter{client: client}
}

// UnusualClauseSignals is the augmentation the orchestrator merges
// into its unusual-clause accumulator.
type UnusualClauseSignals struct {
	UnusualClauses []string
	Warning        string // non-empty when the call degraded
}

// DetectUnusualClauses issues the unusual-clauses prompt over text.
func (a *Adapter) DetectUnusualClauses(ctx context.Context, text string) UnusualClauseSignals {
	if a.client == nil || text == "" {
		return UnusualClauseSignals{}
	}

	prompt := fmt.Sprintf(
		"Identify any unusual or non-standard clauses in the following real estate contract text. "+
			"Respond with JSON only: {\"unusualClauses\": [\"...\"]}.\n\n%s", text)

	resp, err := a.client.Call(ctx, Request{Prompt: prompt})
	if err != nil {
		return UnusualClauseSignals{Warning: fmt.Sprintf("unusual-clauses call failed: %v", err)}
	}
	if resp.Error != "" {
		return UnusualClauseSignals{Warning: fmt.Sprintf("unusual-clauses adapter error: %s", resp.Error)}
	}

	payload := parseUnusualClauses(resp.Raw)
	if len(payload.UnusualClauses) == 0 {
		return UnusualClauseSignals{Warning: "unusual-clauses response did not parse"}
	}
	return UnusualClauseSignals{UnusualClauses: payload.UnusualClauses}
}

// RiskExplanationSignals is the augmentation the orchestrator merges
// into its flag set.
type RiskExplanationSignals struct {
	Explanations []RiskExplanationEntry
	Warning      string
}

// ExplainRisks issues the risk-explanations prompt over text.
func (a *Adapter) ExplainRisks(ctx context.Context, text string) RiskExplanationSignals {
	if a.client == nil || text == "" {
		return RiskExplanationSignals{}
	}

	prompt := fmt.Sprintf(
		"Explain the key risks in the following real estate contract text. "+
			"Respond with JSON only: {\"explanations\": [{\"code\": \"...\", \"description\": \"...\", \"severity\": \"low|medium|high|critical\"}]}.\n\n%s", text)

	resp, err := a.client.Call(ctx, Request{Prompt: prompt})
	if err != nil {
		return RiskExplanationSignals{Warning: fmt.Sprintf("risk-explanations call failed: %v", err)}
	}
	if resp.Error != "" {
		return RiskExplanationSignals{Warning: fmt.Sprintf("risk-explanations adapter error: %s", resp.Error)}
	}

	payload := parseRiskExplanations(resp.Raw)
	if len(payload.Explanations) == 0 {
		return RiskExplanationSignals{Warning: "risk-explanations response did not parse"}
	}
	return RiskExplanationSignals{Explanations: payload.Explanations}
}
