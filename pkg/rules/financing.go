package rules

import (
	"fmt"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func isCashDeal(text string) bool {
	return containsAny(text, "all cash", "no financing", "cash offer", "cash purchase")
}

// FinancingContingencyRule fails MISSING unless the deal is cash; adds
// WAIVED if "waive" co-occurs with "financing".
type FinancingContingencyRule struct{ base }

func NewFinancingContingencyRule() *FinancingContingencyRule {
	return &FinancingContingencyRule{newBase(
		"FIN_CONTINGENCY", "Financing Contingency",
		"Checks that the contract contains a financing contingency unless the deal is cash.",
		model.CategoryFinancing, model.SeverityCritical,
	)}
}

func (r *FinancingContingencyRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag

	if !isCashDeal(text) && !containsAny(text, "financing contingency", "financing", "loan contingency") {
		flags = append(flags, r.flag(ctx.State, "MISSING", "No financing contingency found and the deal is not cash"))
	}
	if containsAll(text, "waive", "financing") {
		flags = append(flags, r.flag(ctx.State, "WAIVED", "Financing contingency appears to be waived"))
	}
	return r.fail(flags, "financing contingency check")
}

// FinancingTimelineRule checks the day count attached to the financing
// contingency against configurable bounds (default 17-30 days).
type FinancingTimelineRule struct{ base }

func NewFinancingTimelineRule() *FinancingTimelineRule {
	return &FinancingTimelineRule{newBase(
		"FIN_TIMELINE", "Financing Timeline",
		"Checks the financing contingency period is neither too short nor too long.",
		model.CategoryFinancing, model.SeverityMedium,
	)}
}

func (r *FinancingTimelineRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	days, ok := dayCountNear(text, "financing contingency")
	if !ok {
		return r.pass("no financing timeline found to evaluate")
	}

	min := r.threshold("min_days", 17)
	max := r.threshold("max_days", 30)

	var flags []model.RiskFlag
	if float64(days) < min {
		flags = append(flags, r.flag(ctx.State, "TOO_SHORT", fmt.Sprintf("Financing contingency of %d days is shorter than the recommended minimum of %.0f", days, min)))
	} else if float64(days) > max {
		flags = append(flags, r.flag(ctx.State, "TOO_LONG", fmt.Sprintf("Financing contingency of %d days exceeds the recommended maximum of %.0f", days, max)))
	}
	return r.fail(flags, fmt.Sprintf("financing timeline: %d days", days))
}

// LoanTermsRule flags risky loan structures: high LTV, adjustable rate,
// interest-only, balloon payment, negative amortization, hard money.
type LoanTermsRule struct{ base }

func NewLoanTermsRule() *LoanTermsRule {
	return &LoanTermsRule{newBase(
		"LOAN_TERMS", "Loan Terms",
		"Flags risky loan structures referenced in the contract text.",
		model.CategoryFinancing, model.SeverityMedium,
	)}
}

func (r *LoanTermsRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag

	ltv, ok := percentNear(text, "ltv")
	if !ok {
		ltv, ok = percentNear(text, "loan-to-value")
	}
	if ok && ltv > 95 {
		flags = append(flags, r.flagWithSeverity("HIGH_LTV", fmt.Sprintf("Loan-to-value ratio of %.1f%% exceeds 95%%", ltv), model.SeverityHigh))
	}

	if containsAny(text, "adjustable rate", "adjustable-rate", " arm ", "arm loan") {
		flags = append(flags, r.flagWithSeverity("ADJUSTABLE", "Adjustable-rate loan referenced", model.SeverityMedium))
	}
	if containsAny(text, "interest-only", "interest only") {
		flags = append(flags, r.flagWithSeverity("INTEREST_ONLY", "Interest-only loan referenced", model.SeverityMedium))
	}
	if containsAny(text, "balloon payment", "balloon note") {
		flags = append(flags, r.flagWithSeverity("BALLOON", "Balloon payment referenced", model.SeverityHigh))
	}
	if containsAny(text, "negative amortization") {
		flags = append(flags, r.flagWithSeverity("NEGATIVE_AMORTIZATION", "Negative amortization referenced", model.SeverityCritical))
	}
	if containsAny(text, "hard money") {
		flags = append(flags, r.flagWithSeverity("HARD_MONEY", "Hard money loan referenced", model.SeverityHigh))
	}

	return r.fail(flags, "loan terms check")
}

// PreApprovalRule passes on cash deals; otherwise requires at least a
// pre-qualification mention, and prefers pre-approval.
type PreApprovalRule struct{ base }

func NewPreApprovalRule() *PreApprovalRule {
	return &PreApprovalRule{newBase(
		"PREAPPROVAL", "Buyer Pre-Approval",
		"Checks the buyer has at least a pre-qualification, ideally a pre-approval.",
		model.CategoryFinancing, model.SeverityMedium,
	)}
}

func (r *PreApprovalRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	if isCashDeal(text) {
		return r.pass("cash deal, pre-approval not applicable")
	}

	hasPreApproval := containsAny(text, "pre-approval", "preapproval", "pre-approved", "preapproved")
	hasPreQual := containsAny(text, "pre-qualification", "prequalification", "pre-qualified", "prequalified")

	var flags []model.RiskFlag
	switch {
	case !hasPreApproval && !hasPreQual:
		flags = append(flags, r.flag(ctx.State, "NO_PREAPPROVAL", "Buyer has neither a pre-approval nor a pre-qualification letter"))
	case !hasPreApproval && hasPreQual:
		flags = append(flags, r.flagWithSeverity("PREQUAL_ONLY", "Buyer has only a pre-qualification, not a full pre-approval", model.SeverityLow))
	}
	return r.fail(flags, "pre-approval check")
}

// percentNear extracts the first "NN.N%"-shaped number within a window
// around the first occurrence of anchor.
func percentNear(text, anchor string) (float64, bool) {
	lower := toLowerCached(text)
	idx := indexOf(lower, anchor)
	if idx == -1 {
		return 0, false
	}
	start, end := window(idx, len(anchor), len(lower))
	sub := text[start:end]
	matches := findMatches(sub, `\d+(?:\.\d+)?\s*%`)
	if len(matches) == 0 {
		return 0, false
	}
	return parsePercent(matches[0])
}
