package rules

import (
	"fmt"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// InspectionContingencyRule flags a missing inspection contingency
// unless the deal is cash-equivalent, and separately flags an
// inspection waiver and an as-is sale with no inspection contingency.
type InspectionContingencyRule struct{ base }

func NewInspectionContingencyRule() *InspectionContingencyRule {
	return &InspectionContingencyRule{newBase(
		"INSPECTION_CONTINGENCY", "Inspection Contingency",
		"Checks that the contract contains an inspection contingency.",
		model.CategoryInspection, model.SeverityCritical,
	)}
}

func (r *InspectionContingencyRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	hasInspection := containsAny(text, "inspection contingency", "home inspection", "inspection period")
	cashEquivalent := isCashDeal(text)

	var flags []model.RiskFlag
	if !hasInspection && !cashEquivalent {
		flags = append(flags, r.flag(ctx.State, "MISSING", "No inspection contingency found"))
	}
	if containsAll(text, "waive", "inspection") {
		flags = append(flags, r.flag(ctx.State, "WAIVED", "Inspection contingency appears to be waived"))
	}
	if containsAny(text, "as-is", "as is") && !hasInspection {
		flags = append(flags, r.flagWithSeverity("AS_IS", "Property is sold as-is with no inspection contingency", model.SeverityHigh))
	}
	return r.fail(flags, "inspection contingency check")
}

// InspectionTimelineRule checks the inspection period's day count.
type InspectionTimelineRule struct{ base }

func NewInspectionTimelineRule() *InspectionTimelineRule {
	return &InspectionTimelineRule{newBase(
		"INSPECTION_TIMELINE", "Inspection Timeline",
		"Checks the inspection period is neither too short nor too long.",
		model.CategoryInspection, model.SeverityMedium,
	)}
}

func (r *InspectionTimelineRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	days, ok := dayCountNear(text, "inspection")
	if !ok {
		return r.fail([]model.RiskFlag{r.flag(ctx.State, "NO_TIMELINE", "No inspection timeline could be determined")}, "no inspection timeline")
	}

	var flags []model.RiskFlag
	if days < 7 {
		flags = append(flags, r.flag(ctx.State, "TOO_SHORT", fmt.Sprintf("Inspection period of %d days is unusually short", days)))
	} else if days > 17 {
		flags = append(flags, r.flag(ctx.State, "TOO_LONG", fmt.Sprintf("Inspection period of %d days is unusually long", days)))
	}
	return r.fail(flags, fmt.Sprintf("inspection timeline: %d days", days))
}

// RequiredInspectionsRule checks for home and pest inspections
// independently.
type RequiredInspectionsRule struct{ base }

func NewRequiredInspectionsRule() *RequiredInspectionsRule {
	return &RequiredInspectionsRule{newBase(
		"REQUIRED_INSPECTIONS", "Required Inspections",
		"Checks for home and pest/termite inspection references.",
		model.CategoryInspection, model.SeverityMedium,
	)}
}

func (r *RequiredInspectionsRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag
	if !containsAny(text, "home inspection") {
		flags = append(flags, r.flag(ctx.State, "NO_HOME_INSPECTION", "No home inspection referenced"))
	}
	if !containsAny(text, "pest inspection", "termite inspection") {
		flags = append(flags, r.flag(ctx.State, "NO_PEST_INSPECTION", "No pest/termite inspection referenced"))
	}
	return r.fail(flags, "required inspections check")
}

// InspectionRepairTermsRule checks how repair negotiations after
// inspection are structured.
type InspectionRepairTermsRule struct{ base }

func NewInspectionRepairTermsRule() *InspectionRepairTermsRule {
	return &InspectionRepairTermsRule{newBase(
		"INSPECTION_REPAIR_TERMS", "Inspection Repair Terms",
		"Checks for a repair cost cap, risky repair-refusal language, and a credit-in-lieu option.",
		model.CategoryInspection, model.SeverityMedium,
	)}
}

func (r *InspectionRepairTermsRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag
	if !containsAny(text, "repair cap", "repair limit", "not to exceed") {
		flags = append(flags, r.flagWithSeverity("NO_REPAIR_CAP", "No cap on seller repair obligations found", model.SeverityLow))
	}
	if containsAny(text, "seller not responsible", "seller shall not be responsible", "seller is not obligated to make repairs") {
		flags = append(flags, r.flagWithSeverity("SELLER_NOT_RESPONSIBLE", "Contract states the seller is not responsible for repairs", model.SeverityHigh))
	}
	if !containsAny(text, "credit in lieu", "closing cost credit", "credit option") {
		flags = append(flags, r.flagWithSeverity("NO_CREDIT_OPTION", "No credit-in-lieu-of-repairs option found", model.SeverityLow))
	}
	return r.fail(flags, "inspection repair terms check")
}
