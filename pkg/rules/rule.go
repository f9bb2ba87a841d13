// Package rules implements the deterministic rule engine: rule
// primitives (this file), the concrete rule library, and the engine
// that registers and evaluates them (engine.go).
//
// Rules are pure functions of a model.RuleContext: no I/O, no
// wall-clock reads except where a rule is explicitly about elapsed
// time (disclosure age), and no state carried across evaluations.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// RuleConfig is the mutable configuration every rule carries.
type RuleConfig struct {
	Enabled          bool
	DefaultSeverity  model.Severity
	Thresholds       map[string]float64
	StateOverrides   map[string]StateOverride
}

// StateOverride replaces the default severity and/or enabled flag for
// one state code.
type StateOverride struct {
	Enabled  *bool
	Severity model.Severity
}

// Rule is the capability set every concrete rule implements: evaluate,
// per-state enablement, per-state severity, and reconfiguration.
// Implemented as an interface (rather than deep inheritance) per the
// rule-polymorphism design note.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Category() model.Category
	Evaluate(ctx *model.RuleContext) model.RuleResult
	IsEnabled(state string) bool
	GetSeverity(state string) model.Severity
	Configure(cfg RuleConfig)
}

// base is embedded by every concrete rule; it supplies the shared
// convenience behaviors (keyword/regex/numeric extraction and the
// flag factory) so no rule duplicates them, plus the RuleConfig
// storage and the IsEnabled/GetSeverity/Configure methods.
type base struct {
	id          string
	name        string
	description string
	category    model.Category
	cfg         RuleConfig
}

func newBase(id, name, description string, category model.Category, defaultSeverity model.Severity) base {
	return base{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		cfg: RuleConfig{
			Enabled:         true,
			DefaultSeverity: defaultSeverity,
			Thresholds:      map[string]float64{},
			StateOverrides:  map[string]StateOverride{},
		},
	}
}

func (b *base) ID() string                 { return b.id }
func (b *base) Name() string                { return b.name }
func (b *base) Description() string         { return b.description }
func (b *base) Category() model.Category    { return b.category }
func (b *base) Configure(cfg RuleConfig)    { b.cfg = cfg }

// IsEnabled reports whether this rule participates for the given
// state context. A per-state override wins over the global Enabled flag.
func (b *base) IsEnabled(state string) bool {
	if state != "" {
		if ov, ok := b.cfg.StateOverrides[state]; ok && ov.Enabled != nil {
			return *ov.Enabled
		}
	}
	return b.cfg.Enabled
}

// GetSeverity returns the effective default severity; a state override
// wins over the rule's built-in default.
func (b *base) GetSeverity(state string) model.Severity {
	if state != "" {
		if ov, ok := b.cfg.StateOverrides[state]; ok && ov.Severity != "" {
			return ov.Severity
		}
	}
	return b.cfg.DefaultSeverity
}

// threshold resolves a named numeric threshold: customThresholds first,
// falling back to the given built-in default when absent.
func (b *base) threshold(name string, builtinDefault float64) float64 {
	if v, ok := b.cfg.Thresholds[name]; ok {
		return v
	}
	return builtinDefault
}

// flag namespaces a local code as {rule_id}_{local_code} and builds a
// RiskFlag at the rule's effective severity for the given state.
func (b *base) flag(state, localCode, description string) model.RiskFlag {
	return model.RiskFlag{
		Code:        fmt.Sprintf("%s_%s", b.id, localCode),
		Description: description,
		Severity:    b.GetSeverity(state),
	}
}

// flagWithSeverity is like flag but overrides the severity explicitly,
// for rules whose local codes carry distinct severities (e.g. the
// unusual-phrase table).
func (b *base) flagWithSeverity(localCode, description string, severity model.Severity) model.RiskFlag {
	return model.RiskFlag{
		Code:        fmt.Sprintf("%s_%s", b.id, localCode),
		Description: description,
		Severity:    severity,
	}
}

// pass builds a passing RuleResult (no flags).
func (b *base) pass(details string) model.RuleResult {
	return model.RuleResult{
		RuleID:   b.id,
		RuleName: b.name,
		Passed:   true,
		Details:  details,
	}
}

// fail builds a failing RuleResult carrying the given flags.
func (b *base) fail(flags []model.RiskFlag, details string, suggestions ...string) model.RuleResult {
	return model.RuleResult{
		RuleID:     b.id,
		RuleName:   b.name,
		Passed:     len(flags) == 0,
		Flags:      flags,
		Details:    details,
		Suggestion: suggestions,
	}
}

// containsAny reports whether text (case-insensitive) contains any of needles.
func containsAny(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// containsAll reports whether text (case-insensitive) contains every needle.
func containsAll(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if !strings.Contains(lower, strings.ToLower(n)) {
			return false
		}
	}
	return true
}

// findMatches runs a regex against text and returns the matched substrings.
func findMatches(text, pattern string) []string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re.FindAllString(text, -1)
}

// dayCountNear extracts the first integer immediately preceding "day"/
// "days" within a window around the first occurrence of anchor in text.
// Returns ok=false when no count can be extracted.
func dayCountNear(text, anchor string) (int, bool) {
	lower := strings.ToLower(text)
	anchor = strings.ToLower(anchor)
	idx := strings.Index(lower, anchor)
	if idx == -1 {
		return 0, false
	}
	start := idx - 60
	if start < 0 {
		start = 0
	}
	end := idx + len(anchor) + 60
	if end > len(lower) {
		end = len(lower)
	}
	window := lower[start:end]
	re := regexp.MustCompile(`(\d+)\s*(?:calendar\s+|business\s+)?days?`)
	m := re.FindStringSubmatch(window)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// dollarAmounts extracts every "$1,234.56"-shaped amount in text, in order.
func dollarAmounts(text string) []float64 {
	re := regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		clean := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(clean, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// recoverToErrorResult converts a rule panic into the specified
// failing result carrying a single low-severity {rule_id}_ERROR flag,
// per the rule-execution-error tie-break policy. Call via defer inside
// Evaluate implementations that delegate to a panic-prone helper, or
// rely on the engine's own recover (see engine.go) as the outer net.
func recoverToErrorResult(ruleID, ruleName string, r any) model.RuleResult {
	return model.RuleResult{
		RuleID:   ruleID,
		RuleName: ruleName,
		Passed:   false,
		Flags: []model.RiskFlag{{
			Code:        fmt.Sprintf("%s_ERROR", ruleID),
			Description: fmt.Sprintf("rule %s failed during evaluation: %v", ruleID, r),
			Severity:    model.SeverityLow,
		}},
	}
}
