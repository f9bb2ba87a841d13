package analysis

import (
	"fmt"
	"sort"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// actionByFlagCode carries curated action text for flag codes that
// warrant something more specific than the generic description echo.
var actionByFlagCode = map[string]string{
	"MISSING_DISCLOSURE_MISSING":     "Request all required disclosure documents from the seller.",
	"FIN_CONTINGENCY_MISSING":        "Add a financing contingency or confirm the purchase is an all-cash transaction in writing.",
	"INSPECTION_CONTINGENCY_MISSING": "Add an inspection contingency before proceeding to closing.",
	"ESCROW_HOLDER_NO_ESCROW_HOLDER": "Designate a licensed title company or escrow agent to hold earnest money.",
	"ESCROW_HOLDER_RISKY_ESCROW":     "Redirect earnest money to a neutral third-party escrow holder.",
}

func priorityFor(severity model.Severity) model.RecommendationPriority {
	switch severity {
	case model.SeverityCritical, model.SeverityHigh:
		return model.PriorityImmediate
	case model.SeverityMedium:
		return model.PrioritySoon
	default:
		return model.PriorityOptional
	}
}

func actionFor(flag model.RiskFlag) string {
	if action, ok := actionByFlagCode[flag.Code]; ok {
		return action
	}
	return fmt.Sprintf("Review and address: %s", flag.Description)
}

// Recommendations synthesizes one Recommendation per flag on analysis,
// plus score-band global recommendations, sorted by priority with
// insertion-order ties (§4.G).
func Recommendations(analysis model.RiskAnalysis) []model.Recommendation {
	if analysis.Score == nil {
		return nil
	}

	recs := make([]model.Recommendation, 0, len(analysis.Score.Flags)+2)
	for _, f := range analysis.Score.Flags {
		recs = append(recs, model.Recommendation{
			Priority:        priorityFor(f.Severity),
			Action:          actionFor(f),
			RelatedFlagCode: f.Code,
		})
	}

	score := analysis.Score.Score
	switch {
	case score < 40:
		recs = append(recs, model.Recommendation{
			Priority: model.PriorityImmediate,
			Action:   "Engage a real estate attorney for immediate review before proceeding.",
		})
	case score < 60:
		recs = append(recs, model.Recommendation{
			Priority: model.PrioritySoon,
			Action:   "Negotiate the flagged terms with the other party before closing.",
		})
	}

	stableSortByPriority(recs)
	return recs
}

// stableSortByPriority sorts by priority rank, preserving relative
// order among equal-priority entries (sort.SliceStable).
func stableSortByPriority(recs []model.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
}
