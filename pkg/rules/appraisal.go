package rules

import "github.com/brokerlane/dealrisk/pkg/model"

// AppraisalContingencyRule passes on cash deals; otherwise it requires
// an appraisal contingency and flags a waiver if present.
type AppraisalContingencyRule struct{ base }

func NewAppraisalContingencyRule() *AppraisalContingencyRule {
	return &AppraisalContingencyRule{newBase(
		"APPRAISAL_CONTINGENCY", "Appraisal Contingency",
		"Checks for an appraisal contingency unless the deal is cash.",
		model.CategoryContingency, model.SeverityHigh,
	)}
}

func (r *AppraisalContingencyRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	if isCashDeal(text) {
		return r.pass("cash deal, appraisal contingency not applicable")
	}

	hasAppraisal := containsAny(text, "appraisal contingency", "appraisal")
	var flags []model.RiskFlag
	if !hasAppraisal {
		flags = append(flags, r.flag(ctx.State, "MISSING", "No appraisal contingency found"))
	} else if containsAll(text, "waive", "appraisal") {
		flags = append(flags, r.flag(ctx.State, "WAIVED", "Appraisal contingency appears to be waived"))
	}
	return r.fail(flags, "appraisal contingency check")
}
