package rules

import (
	"sync"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// Engine registers rules and evaluates them against a RuleContext.
// Evaluation order follows registration order; a single Evaluate call
// never runs rules in parallel, since ordering is observable in the
// returned result list.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Register adds one rule to the engine.
func (e *Engine) Register(r Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
}

// RegisterAll adds every rule in rs, in order.
func (e *Engine) RegisterAll(rs []Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rs...)
}

// GetRules returns every registered rule, in registration order.
func (e *Engine) GetRules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// GetRulesByCategory filters registered rules to one category.
func (e *Engine) GetRulesByCategory(category model.Category) []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []Rule
	for _, r := range e.rules {
		if r.Category() == category {
			out = append(out, r)
		}
	}
	return out
}

// Evaluate runs every enabled rule against ctx, in registration order.
// A rule that panics is converted into a failing result with a single
// low-severity {rule_id}_ERROR flag; the engine never crashes.
func (e *Engine) Evaluate(ctx *model.RuleContext) []model.RuleResult {
	e.mu.RLock()
	rs := make([]Rule, len(e.rules))
	copy(rs, e.rules)
	e.mu.RUnlock()

	state := ""
	if ctx != nil {
		state = ctx.State
	}

	results := make([]model.RuleResult, 0, len(rs))
	for _, r := range rs {
		if !r.IsEnabled(state) {
			continue
		}
		results = append(results, evaluateSafely(r, ctx))
	}
	return results
}

// EvaluateCategory is Evaluate filtered to a single category.
func (e *Engine) EvaluateCategory(ctx *model.RuleContext, category model.Category) []model.RuleResult {
	e.mu.RLock()
	rs := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.Category() == category {
			rs = append(rs, r)
		}
	}
	e.mu.RUnlock()

	state := ""
	if ctx != nil {
		state = ctx.State
	}

	results := make([]model.RuleResult, 0, len(rs))
	for _, r := range rs {
		if !r.IsEnabled(state) {
			continue
		}
		results = append(results, evaluateSafely(r, ctx))
	}
	return results
}

func evaluateSafely(r Rule, ctx *model.RuleContext) (result model.RuleResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = recoverToErrorResult(r.ID(), r.Name(), rec)
		}
	}()
	return r.Evaluate(ctx)
}

// AggregateFlags flattens every RuleResult's flags into one
// order-preserving slice.
func AggregateFlags(results []model.RuleResult) []model.RiskFlag {
	var out []model.RiskFlag
	for _, r := range results {
		out = append(out, r.Flags...)
	}
	return out
}

// PassRate returns the percentage (0..100) of results that passed.
func PassRate(results []model.RuleResult) float64 {
	if len(results) == 0 {
		return 100
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(results)) * 100
}

// Summary is the aggregate statistics returned by Summarize.
type Summary struct {
	Total          int
	Passed         int
	Failed         int
	PassRate       float64
	FlagsBySeverity map[model.Severity]int
}

// Summarize computes aggregate pass/fail/severity statistics over results.
func Summarize(results []model.RuleResult) Summary {
	s := Summary{
		Total:           len(results),
		FlagsBySeverity: map[model.Severity]int{},
	}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		for _, f := range r.Flags {
			s.FlagsBySeverity[f.Severity]++
		}
	}
	s.PassRate = PassRate(results)
	return s
}
