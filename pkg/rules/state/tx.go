package state

import (
	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
)

// TXRules returns Texas's canonical state-specific rules:
// SELLER_DISCLOSURE, OPTION_PERIOD, MUD_PID, HOA, SURVEY, TITLE.
func TXRules() []rules.Rule {
	return []rules.Rule{
		rules.NewPresenceRule(
			"TX_SELLER_DISCLOSURE", "Texas Seller's Disclosure Notice",
			"Checks for the Texas Seller's Disclosure Notice.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"seller's disclosure notice", "seller disclosure notice"},
			[]string{"seller's disclosure", "seller disclosure"},
			"MISSING", "Texas Seller's Disclosure Notice not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"TX_OPTION_PERIOD", "Texas Option Period",
			"Checks for an option period / option fee provision.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"option period", "option fee"},
			nil,
			"MISSING", "Option period not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"TX_MUD_PID", "Texas MUD/PID Disclosure",
			"Checks for a Municipal Utility District or Public Improvement District disclosure.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"municipal utility district", "mud disclosure", "public improvement district", " pid "},
			[]string{"mud", "pid"},
			"MISSING", "MUD/PID disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"TX_HOA", "Texas HOA Addendum",
			"Checks for a homeowners association addendum.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"hoa addendum", "homeowners association"},
			[]string{"hoa"},
			"MISSING", "HOA addendum not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"TX_SURVEY", "Texas Survey Provision",
			"Checks for a property survey provision.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"survey"},
			nil,
			"MISSING", "Survey provision not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"TX_TITLE", "Texas Title Policy Provision",
			"Checks for a title insurance policy provision.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"title policy", "title insurance"},
			[]string{"title"},
			"MISSING", "Title policy provision not referenced",
			nil,
		),
	}
}
