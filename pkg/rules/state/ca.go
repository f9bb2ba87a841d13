// Package state holds one rule factory per supported US state, per
// §4.B/§4.I of the deal-risk specification. Adding a state means
// adding one file here and one row in pkg/states.
package state

import (
	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
)

// CARules returns California's canonical state-specific rules:
// TDS, NHD, MELLO_ROOS, EARTHQUAKE, DETECTORS.
func CARules() []rules.Rule {
	return []rules.Rule{
		rules.NewPresenceRule(
			"CA_TDS", "California Transfer Disclosure Statement",
			"Checks for the California Transfer Disclosure Statement (TDS).",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"transfer disclosure statement", " tds "},
			[]string{"tds", "transfer disclosure"},
			"MISSING", "California Transfer Disclosure Statement (TDS) not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"CA_NHD", "California Natural Hazard Disclosure",
			"Checks for the California Natural Hazard Disclosure (NHD).",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"natural hazard disclosure", " nhd "},
			[]string{"nhd", "natural hazard"},
			"MISSING", "California Natural Hazard Disclosure (NHD) not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"CA_MELLO_ROOS", "California Mello-Roos Disclosure",
			"Checks for a Mello-Roos special tax disclosure.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"mello-roos", "mello roos"},
			[]string{"mello-roos"},
			"MISSING", "Mello-Roos special tax disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"CA_EARTHQUAKE", "California Earthquake Hazards Disclosure",
			"Checks for an earthquake hazards disclosure.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"earthquake"},
			[]string{"earthquake"},
			"MISSING", "Earthquake hazards disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"CA_DETECTORS", "California Smoke/CO Detector Compliance",
			"Checks for a smoke and carbon-monoxide detector compliance statement.",
			model.CategoryStateSpecific, model.SeverityLow,
			[]string{"smoke detector", "carbon monoxide detector"},
			nil,
			"MISSING", "Smoke/carbon-monoxide detector compliance statement not referenced",
			nil,
		),
	}
}
