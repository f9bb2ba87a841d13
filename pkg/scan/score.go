package scan

import "github.com/brokerlane/dealrisk/pkg/model"

// severityWeight holds the scan driver's own severity coefficients.
// These are deliberately distinct from pkg/scoring's
// ApplySeverityPenalties coefficients: that reducer answers "how much
// should a full orchestrator analysis subtract from a weighted base
// score", while this one answers "what score does a standalone scan's
// finding set alone imply". Unifying them would couple two call sites
// that are allowed to evolve independently.
var severityWeight = map[model.Severity]int{
	model.SeverityCritical: 25,
	model.SeverityHigh:     15,
	model.SeverityMedium:   5,
	model.SeverityLow:      2,
}

// SummarizeFindings computes a scan's score as 100 minus the weighted
// sum of its findings' severities, clamped to [0,100] (§4.H step 3).
func SummarizeFindings(findings []model.RiskFlag) int {
	total := 100
	for _, f := range findings {
		total -= severityWeight[f.Severity]
	}
	return model.ClampScore(total)
}
