package state

import (
	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
)

// FLRules returns Florida's canonical state-specific rules:
// SELLER_DISCLOSURE, FLOOD_ZONE, HOA, RADON, ENERGY, WIND.
func FLRules() []rules.Rule {
	return []rules.Rule{
		rules.NewPresenceRule(
			"FL_SELLER_DISCLOSURE", "Florida Seller's Property Disclosure",
			"Checks for the Florida seller's property disclosure.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"seller's property disclosure", "seller property disclosure"},
			[]string{"seller property disclosure", "seller's disclosure"},
			"MISSING", "Seller's property disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"FL_FLOOD_ZONE", "Florida Flood Zone Disclosure",
			"Checks for a flood zone disclosure.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"flood zone", "flood disclosure"},
			[]string{"flood"},
			"MISSING", "Flood zone disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"FL_HOA", "Florida HOA/Condo Association Disclosure",
			"Checks for a homeowners or condominium association disclosure.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"homeowners association", "condominium association", "hoa disclosure"},
			[]string{"hoa", "condo association"},
			"MISSING", "HOA/condo association disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"FL_RADON", "Florida Radon Gas Disclosure",
			"Checks for the statutory radon gas disclosure.",
			model.CategoryStateSpecific, model.SeverityMedium,
			[]string{"radon"},
			[]string{"radon"},
			"MISSING", "Radon gas disclosure not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"FL_ENERGY", "Florida Energy Efficiency Brochure",
			"Checks for the energy efficiency information brochure acknowledgment.",
			model.CategoryStateSpecific, model.SeverityLow,
			[]string{"energy efficiency", "energy brochure"},
			nil,
			"MISSING", "Energy efficiency brochure acknowledgment not referenced",
			nil,
		),
		rules.NewPresenceRule(
			"FL_WIND", "Florida Windstorm/Hurricane Disclosure",
			"Checks for a windstorm or hurricane mitigation disclosure.",
			model.CategoryStateSpecific, model.SeverityHigh,
			[]string{"windstorm", "hurricane mitigation", "wind mitigation"},
			[]string{"windstorm", "wind mitigation"},
			"MISSING", "Windstorm/hurricane mitigation disclosure not referenced",
			nil,
		),
	}
}
