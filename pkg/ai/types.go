// Package ai is the AI collaborator adapter (§4.E): a thin,
// contract-only boundary around a chat-completion provider, plus the
// two domain prompts the orchestrator drives through it (unusual
// clauses, risk explanations). Every failure mode here degrades to an
// empty signal set rather than a fatal error — the orchestrator must
// be able to complete an analysis with no AI signals at all.
package ai

import "context"

// Request is the adapter-agnostic call shape (§4.E).
type Request struct {
	Prompt      string
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	Stream      bool
}

// Usage reports token accounting, when the provider supplies it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the adapter-agnostic call result. Error is a string, not
// a Go error: a non-empty Error does not stop the caller, it tells the
// caller to treat this call as having produced no signal.
type Response struct {
	Raw    string
	Parsed map[string]any
	Usage  *Usage
	Error  string
}

// Client is the one operation the core consumes from an AI provider.
type Client interface {
	Call(ctx context.Context, req Request) (Response, error)
}
