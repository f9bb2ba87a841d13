package rules

// GeneralRules returns fresh instances of every general (non-state)
// rule in the library, in the canonical registration order used by
// the analysis orchestrator.
func GeneralRules() []Rule {
	return []Rule{
		NewFinancingContingencyRule(),
		NewFinancingTimelineRule(),
		NewLoanTermsRule(),
		NewPreApprovalRule(),
		NewAppraisalContingencyRule(),
		NewInspectionContingencyRule(),
		NewInspectionTimelineRule(),
		NewRequiredInspectionsRule(),
		NewInspectionRepairTermsRule(),
		NewEarnestMoneyAmountRule(),
		NewEarnestMoneyTimelineRule(),
		NewEscrowHolderRule(),
		NewEMDRefundConditionsRule(),
		NewDisclosureMissingRule(),
		NewDisclosureCompletenessRule(nil),
		NewHOADisclosureRule(),
		NewDisclosureAgeRule(),
		NewUnusualPhrasesRule(),
		NewUnusualTransactionRule(),
		NewUnbalancedTermsRule(),
		NewUnusualAddendaRule(),
		NewUnusualClosingRule(),
	}
}
