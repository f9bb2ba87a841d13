package rules

import (
	"fmt"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// amountNear extracts the dollar amount tied to the first occurrence of
// anchor: the first amount after the anchor within the window, or, when
// there is none, the last amount before the anchor within the window.
func amountNear(text string, anchors ...string) (float64, bool) {
	lower := toLowerCached(text)
	for _, anchor := range anchors {
		idx := indexOf(lower, anchor)
		if idx == -1 {
			continue
		}
		start, end := window(idx, len(anchor), len(lower))
		if after := dollarAmounts(text[idx+len(anchor) : end]); len(after) > 0 {
			return after[0], true
		}
		if before := dollarAmounts(text[start:idx]); len(before) > 0 {
			return before[len(before)-1], true
		}
	}
	return 0, false
}

// EarnestMoneyAmountRule computes the earnest-money percentage of the
// purchase price and flags amounts outside 1%-3%.
type EarnestMoneyAmountRule struct{ base }

func NewEarnestMoneyAmountRule() *EarnestMoneyAmountRule {
	return &EarnestMoneyAmountRule{newBase(
		"EMD_AMOUNT", "Earnest Money Amount",
		"Checks the earnest money deposit is within the typical 1%-3% of purchase price.",
		model.CategoryEarnestMoney, model.SeverityMedium,
	)}
}

func (r *EarnestMoneyAmountRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	emd, okEMD := amountNear(text, "earnest money")
	price, okPrice := amountNear(text, "purchase price", "sale price", "sales price")
	if !okEMD || !okPrice || price == 0 {
		return r.pass("could not extract earnest money and purchase price amounts")
	}

	pct := emd / price * 100
	minPct := r.threshold("min_percent", 1)
	maxPct := r.threshold("max_percent", 3)

	var flags []model.RiskFlag
	if pct < minPct {
		flags = append(flags, r.flag(ctx.State, "TOO_LOW", fmt.Sprintf("Earnest money is %.2f%% of purchase price, below the typical minimum of %.0f%%", pct, minPct)))
	} else if pct > maxPct {
		flags = append(flags, r.flag(ctx.State, "TOO_HIGH", fmt.Sprintf("Earnest money is %.2f%% of purchase price, above the typical maximum of %.0f%%", pct, maxPct)))
	}
	return r.fail(flags, fmt.Sprintf("earnest money %.2f%% of purchase price", pct))
}

// EarnestMoneyTimelineRule checks the deposit window.
type EarnestMoneyTimelineRule struct{ base }

func NewEarnestMoneyTimelineRule() *EarnestMoneyTimelineRule {
	return &EarnestMoneyTimelineRule{newBase(
		"EMD_TIMELINE", "Earnest Money Timeline",
		"Checks the earnest money deposit window is not unusually long or missing.",
		model.CategoryEarnestMoney, model.SeverityMedium,
	)}
}

func (r *EarnestMoneyTimelineRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	days, ok := dayCountNear(text, "earnest money")
	if !ok {
		return r.fail([]model.RiskFlag{r.flag(ctx.State, "TIMELINE_MISSING", "No earnest money deposit window found")}, "no deposit window")
	}

	maxDays := r.threshold("max_days", 7)
	var flags []model.RiskFlag
	if float64(days) > maxDays {
		flags = append(flags, r.flag(ctx.State, "TIMELINE_LONG", fmt.Sprintf("Earnest money deposit window of %d days exceeds the recommended maximum of %.0f", days, maxDays)))
	}
	return r.fail(flags, fmt.Sprintf("deposit window: %d days", days))
}

// EscrowHolderRule checks who holds the earnest money.
type EscrowHolderRule struct{ base }

func NewEscrowHolderRule() *EscrowHolderRule {
	return &EscrowHolderRule{newBase(
		"ESCROW_HOLDER", "Escrow Holder",
		"Checks that earnest money is held by a neutral escrow or title company.",
		model.CategoryEarnestMoney, model.SeverityHigh,
	)}
}

func (r *EscrowHolderRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag
	if !containsAny(text, "escrow", "title company") {
		flags = append(flags, r.flag(ctx.State, "NO_ESCROW_HOLDER", "No escrow or title company reference found for earnest money"))
	}
	if containsAny(text, "seller holds", "direct to seller") {
		flags = append(flags, r.flagWithSeverity("RISKY_ESCROW", "Earnest money is held directly by the seller", model.SeverityCritical))
	} else if containsAny(text, "agent holds") {
		flags = append(flags, r.flagWithSeverity("RISKY_ESCROW", "Earnest money is held by an agent rather than a neutral escrow", model.SeverityHigh))
	}
	return r.fail(flags, "escrow holder check")
}

// EMDRefundConditionsRule checks the refundability terms of the
// earnest money deposit.
type EMDRefundConditionsRule struct{ base }

func NewEMDRefundConditionsRule() *EMDRefundConditionsRule {
	return &EMDRefundConditionsRule{newBase(
		"EMD_REFUND", "Earnest Money Refund Conditions",
		"Checks the refundability terms attached to the earnest money deposit.",
		model.CategoryEarnestMoney, model.SeverityHigh,
	)}
}

func (r *EMDRefundConditionsRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag
	if !containsAny(text, "refund", "returned to buyer") {
		flags = append(flags, r.flag(ctx.State, "NO_REFUND_TERMS", "No earnest money refund terms found"))
	}
	if containsAny(text, "non-refundable", "nonrefundable") {
		flags = append(flags, r.flagWithSeverity("NON_REFUNDABLE", "Earnest money is stated as non-refundable", model.SeverityCritical))
	}
	if containsAny(text, "liquidated damages") {
		flags = append(flags, r.flagWithSeverity("LIQUIDATED_DAMAGES", "Earnest money is designated as liquidated damages", model.SeverityMedium))
	}
	return r.fail(flags, "earnest money refund conditions check")
}
