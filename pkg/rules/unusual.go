package rules

import (
	"fmt"
	"strings"

	"github.com/brokerlane/dealrisk/pkg/model"
)

type phraseSeverity struct {
	phrase   string
	code     string
	severity model.Severity
}

// unusualPhraseTable is the closed set from §4.B. Do not add or remove
// entries without a corresponding spec change: the codes are part of
// the bit-stable flag surface.
var unusualPhraseTable = []phraseSeverity{
	{"waive all rights", "WAIVE_ALL_RIGHTS", model.SeverityCritical},
	{"hold harmless", "HOLD_HARMLESS", model.SeverityHigh},
	{"indemnify seller", "INDEMNIFY_SELLER", model.SeverityHigh},
	{"no recourse", "NO_RECOURSE", model.SeverityCritical},
	{"binding arbitration", "BINDING_ARBITRATION", model.SeverityMedium},
	{"waive jury trial", "WAIVE_JURY_TRIAL", model.SeverityHigh},
	{"automatic renewal", "AUTOMATIC_RENEWAL", model.SeverityMedium},
	{"penalty clause", "PENALTY_CLAUSE", model.SeverityHigh},
	{"sole discretion", "SOLE_DISCRETION", model.SeverityMedium},
	{"time is of the essence", "TIME_OF_ESSENCE", model.SeverityLow},
	{"as-is where-is", "AS_IS_WHERE_IS", model.SeverityHigh},
	{"sight unseen", "SIGHT_UNSEEN", model.SeverityCritical},
}

// UnusualPhrasesRule flags every phrase from the closed table found in
// the contract text.
type UnusualPhrasesRule struct{ base }

func NewUnusualPhrasesRule() *UnusualPhrasesRule {
	return &UnusualPhrasesRule{newBase(
		"UNUSUAL_PHRASE", "Unusual Phrases",
		"Flags contract language from a closed table of unusual or one-sided phrases.",
		model.CategoryUnusualClause, model.SeverityMedium,
	)}
}

func (r *UnusualPhrasesRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := strings.ToLower(ctx.Text())
	var flags []model.RiskFlag
	for _, p := range unusualPhraseTable {
		if strings.Contains(text, p.phrase) {
			flags = append(flags, r.flagWithSeverity(p.code, fmt.Sprintf("Unusual phrase found: %q", p.phrase), p.severity))
		}
	}
	return r.fail(flags, "unusual phrases check")
}

var unusualTransactionPhrases = []string{
	"leaseback", "seller financing", "land contract", "subject to existing", "wraparound", "assignment of contract",
}

// UnusualTransactionRule flags non-standard transaction structures.
type UnusualTransactionRule struct{ base }

func NewUnusualTransactionRule() *UnusualTransactionRule {
	return &UnusualTransactionRule{newBase(
		"UNUSUAL_TRANSACTION", "Unusual Transaction Structure",
		"Flags non-standard transaction structures such as leasebacks or seller financing.",
		model.CategoryUnusualClause, model.SeverityMedium,
	)}
}

func (r *UnusualTransactionRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := strings.ToLower(ctx.Text())
	var flags []model.RiskFlag
	for _, phrase := range unusualTransactionPhrases {
		if strings.Contains(text, phrase) {
			code := strings.ToUpper(strings.ReplaceAll(phrase, " ", "_"))
			flags = append(flags, r.flag(ctx.State, code, fmt.Sprintf("Unusual transaction structure found: %q", phrase)))
		}
	}
	return r.fail(flags, "unusual transaction check")
}

// UnbalancedTermsRule flags asymmetric rights and obligations between
// buyer and seller.
type UnbalancedTermsRule struct{ base }

func NewUnbalancedTermsRule() *UnbalancedTermsRule {
	return &UnbalancedTermsRule{newBase(
		"UNBALANCED_TERMS", "Unbalanced Terms",
		"Flags contract terms that grant one party rights the other lacks.",
		model.CategoryUnusualClause, model.SeverityHigh,
	)}
}

func (r *UnbalancedTermsRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag

	if containsAny(text, "buyer may cancel") && !containsAny(text, "seller may cancel") {
		flags = append(flags, r.flagWithSeverity("ASYMMETRIC_CANCEL", "Only the buyer has a stated cancellation right", model.SeverityHigh))
	}
	if containsAny(text, "buyer default") && !containsAny(text, "seller default") {
		flags = append(flags, r.flagWithSeverity("ASYMMETRIC_DEFAULT", "Default consequences are specified for the buyer but not the seller", model.SeverityHigh))
	}
	if containsAny(text, "unlimited liability") {
		flags = append(flags, r.flagWithSeverity("UNLIMITED_LIABILITY", "Unlimited liability clause found", model.SeverityCritical))
	}
	if containsAny(text, "seller may extend") && !containsAny(text, "buyer may extend") {
		flags = append(flags, r.flagWithSeverity("UNILATERAL_EXTENSION", "Only the seller may unilaterally extend the contract", model.SeverityHigh))
	}
	return r.fail(flags, "unbalanced terms check")
}

var unusualAddendumPhrases = []string{
	"kick-out", "right of first refusal", "rent-back", "personal property", "contingent sale", "short sale", "reo", "foreclosure",
}

// UnusualAddendaRule flags non-standard addenda by name/keyword and
// flags an excessive addenda count.
type UnusualAddendaRule struct{ base }

func NewUnusualAddendaRule() *UnusualAddendaRule {
	return &UnusualAddendaRule{newBase(
		"UNUSUAL_ADDENDA", "Unusual Addenda",
		"Flags non-standard addenda and an excessive number of included addenda.",
		model.CategoryUnusualClause, model.SeverityMedium,
	)}
}

func (r *UnusualAddendaRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := strings.ToLower(ctx.Text())
	var flags []model.RiskFlag
	seen := map[string]bool{}

	check := func(name string) {
		lower := strings.ToLower(name)
		for _, phrase := range unusualAddendumPhrases {
			if strings.Contains(lower, phrase) && !seen[phrase] {
				seen[phrase] = true
				code := strings.ToUpper(strings.ReplaceAll(phrase, " ", "_"))
				flags = append(flags, r.flag(ctx.State, code, fmt.Sprintf("Unusual addendum found: %q", phrase)))
			}
		}
	}

	check(text)
	includedCount := 0
	if ctx.Contract != nil {
		for _, a := range ctx.Contract.Addenda {
			check(a.Name)
			if a.Included {
				includedCount++
			}
		}
	}
	if includedCount > 5 {
		flags = append(flags, r.flagWithSeverity("MANY_ADDENDA", fmt.Sprintf("%d addenda included, more than the typical threshold of 5", includedCount), model.SeverityLow))
	}
	return r.fail(flags, "unusual addenda check")
}

// UnusualClosingRule flags non-standard closing/possession arrangements.
type UnusualClosingRule struct{ base }

func NewUnusualClosingRule() *UnusualClosingRule {
	return &UnusualClosingRule{newBase(
		"UNUSUAL_CLOSING", "Unusual Closing Terms",
		"Flags early/delayed possession, long closing windows, and simultaneous closings.",
		model.CategoryUnusualClause, model.SeverityMedium,
	)}
}

func (r *UnusualClosingRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	var flags []model.RiskFlag

	if containsAny(text, "early possession", "possession before closing") {
		flags = append(flags, r.flagWithSeverity("EARLY_POSSESSION", "Buyer takes possession before closing", model.SeverityHigh))
	}
	if containsAny(text, "delayed possession", "possession after closing") {
		flags = append(flags, r.flag(ctx.State, "DELAYED_POSSESSION", "Seller retains possession after closing"))
	}
	if days, ok := dayCountNear(text, "closing"); ok && days > 60 {
		flags = append(flags, r.flag(ctx.State, "LONG_CLOSING", fmt.Sprintf("Closing window of %d days exceeds the typical 60-day maximum", days)))
	}
	if containsAny(text, "simultaneous closing", "simultaneous close") {
		flags = append(flags, r.flag(ctx.State, "SIMULTANEOUS_CLOSE", "Closing is contingent on a simultaneous sale"))
	}
	return r.fail(flags, "unusual closing terms check")
}
