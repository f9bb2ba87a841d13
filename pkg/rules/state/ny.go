package state

import (
	"strings"

	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
)

func mentionsCoop(ctx *model.RuleContext) bool {
	text := strings.ToLower(ctx.Text())
	return strings.Contains(text, "co-op") || strings.Contains(text, "coop") || strings.Contains(text, "cooperative")
}

// NYRules returns New York's canonical state-specific rules:
// PCDS, LEAD_PAINT, ATTORNEY_REVIEW, BOARD_APPROVAL, MANSION_TAX, DETECTORS.
func NYRules() []rules.Rule {
	return []rules.Rule{
		rules.NewPresenceRule(
			"NY_PCDS", "New York Property Condition Disclosure Statement",
			"Checks for the New York Property Condition Disclosure Statement (PCDS).",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"property condition disclosure statement", " pcds "},
			[]string{"pcds", "property condition disclosure"},
			"MISSING", "New York Property Condition Disclosure Statement (PCDS) not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"NY_LEAD_PAINT", "New York Lead-Based Paint Disclosure",
			"Checks for the federal lead-based paint disclosure.",
			model.CategoryStateSpecific, model.SeverityCritical,
			[]string{"lead-based paint", "lead paint disclosure"},
			[]string{"lead-based paint", "lead paint"},
			"MISSING", "Lead-based paint disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"NY_ATTORNEY_REVIEW", "New York Attorney Review Period",
			"Checks for an attorney review period provision.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"attorney review"},
			nil,
			"MISSING", "Attorney review period not referenced",
			nil,
		),
		// NY_BOARD_APPROVAL only applies to co-op transactions; the
		// condition gate keeps it silent on ordinary sales.
		rules.NewPresenceRule(
			"NY_BOARD_APPROVAL", "New York Co-op Board Approval",
			"For co-op transactions, checks for a board approval contingency.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"board approval", "board contingency"},
			[]string{"board approval"},
			"NO_BOARD_CONTINGENCY", "Co-op transaction lacks a board approval contingency",
			mentionsCoop,
		),
		rules.NewPresenceRule(
			"NY_MANSION_TAX", "New York Mansion Tax Provision",
			"Checks for a mansion tax allocation provision.",
			model.CategoryStateSpecific, model.SeverityLow,
			[]string{"mansion tax"},
			nil,
			"MISSING", "Mansion tax provision not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"NY_DETECTORS", "New York Smoke/CO Detector Compliance",
			"Checks for a smoke and carbon-monoxide detector compliance statement.",
			model.CategoryStateSpecific, model.SeverityLow,
			[]string{"smoke detector", "carbon monoxide detector"},
			nil,
			"MISSING", "Smoke/carbon-monoxide detector compliance statement not referenced",
			nil,
		),
	}
}
