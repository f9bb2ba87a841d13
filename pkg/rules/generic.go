package rules

import (
	"strings"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// PresenceRule is a generic "flag if none of these signals are present"
// rule. It backs most state-specific disclosure checks (§4.B state
// tables), which all reduce to the same shape: look for a keyword in
// the contract text, or a matching Disclosure name, and flag MISSING
// otherwise. An optional condition gates whether the rule applies at
// all (e.g. the NY board-approval rule only applies to co-op deals).
type PresenceRule struct {
	base
	anyOfText               []string
	disclosureNameContains  []string
	condition               func(ctx *model.RuleContext) bool
	missingCode             string
	missingDescription      string
}

// NewPresenceRule constructs a PresenceRule.
func NewPresenceRule(id, name, description string, category model.Category, severity model.Severity,
	anyOfText []string, disclosureNameContains []string, missingCode, missingDescription string,
	condition func(ctx *model.RuleContext) bool) *PresenceRule {
	return &PresenceRule{
		base:                   newBase(id, name, description, category, severity),
		anyOfText:              anyOfText,
		disclosureNameContains: disclosureNameContains,
		condition:              condition,
		missingCode:            missingCode,
		missingDescription:     missingDescription,
	}
}

// Evaluate implements Rule.
func (p *PresenceRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	if p.condition != nil && !p.condition(ctx) {
		return p.pass("not applicable")
	}

	text := ctx.Text()
	if len(p.anyOfText) > 0 && containsAny(text, p.anyOfText...) {
		return p.pass("present in contract text")
	}

	if ctx.Contract != nil {
		for _, d := range ctx.Contract.Disclosures {
			if !d.Provided {
				continue
			}
			lowerName := strings.ToLower(d.Name)
			for _, want := range p.disclosureNameContains {
				lowerWant := strings.ToLower(want)
				if strings.Contains(lowerName, lowerWant) || strings.Contains(lowerWant, lowerName) {
					return p.pass("present via disclosure: " + d.Name)
				}
			}
		}
	}

	state := ""
	if ctx != nil {
		state = ctx.State
	}
	return p.fail([]model.RiskFlag{p.flag(state, p.missingCode, p.missingDescription)}, "missing")
}
