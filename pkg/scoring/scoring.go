// Package scoring implements the deterministic scoring engine (§4.D):
// six weighted dimension contributions reduced to a single bounded
// score, plus the severity-penalty reducer the orchestrator applies on
// top of it. The engine performs no I/O and holds no state across calls.
package scoring

import (
	"github.com/brokerlane/dealrisk/pkg/model"
)

// ScoreWeights carries the non-negative weight for each of the six
// scoring dimensions. Zero-value weights are valid: they simply zero
// out that dimension's contribution.
type ScoreWeights struct {
	Clause          float64
	Disclosure      float64
	Addendum        float64
	UnusualClause   float64
	MissingDocument float64
	StateCompliance float64
}

// DefaultWeights returns the specification's default weight set.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		Clause:          0.20,
		Disclosure:      0.20,
		Addendum:        0.10,
		UnusualClause:   0.20,
		MissingDocument: 0.20,
		StateCompliance: 0.10,
	}
}

// ScoreEngineInput is the pure input to Score.
type ScoreEngineInput struct {
	ContractID          string
	Clauses             []model.Clause
	DisclosuresProvided []model.Disclosure
	AddendaIncluded     []model.Addendum
	UnusualClauses      []string
	MissingDocuments    []string
	State               string
	Weights             ScoreWeights
}

// ScoreEngineOutput is Score's pure output.
type ScoreEngineOutput struct {
	ContractID string
	TotalScore int
	Breakdown  model.ScoreBreakdown
	Weights    ScoreWeights
	Flagged    bool
	Notes      []string
}

// Score computes the six per-dimension contributions and reduces them
// to a single bounded base score. It performs no I/O and applies no
// severity penalties: the caller (the orchestrator, per §4.G step 7)
// is responsible for subtracting ApplySeverityPenalties and re-clamping.
func Score(in ScoreEngineInput) ScoreEngineOutput {
	w := in.Weights
	if (w == ScoreWeights{}) {
		w = DefaultWeights()
	}

	breakdown := model.ScoreBreakdown{
		ClauseScore:          float64(len(in.Clauses)) * w.Clause,
		DisclosureScore:      float64(len(in.DisclosuresProvided)) * w.Disclosure,
		AddendumScore:        float64(len(in.AddendaIncluded)) * w.Addendum,
		UnusualClauseScore:   float64(len(in.UnusualClauses)) * w.UnusualClause,
		MissingDocumentScore: float64(len(in.MissingDocuments)) * w.MissingDocument,
		// StateComplianceScore is a reserved placeholder (§4.D step 1,
		// §9 open question): it always equals the weight itself until a
		// future revision defines how state-rule outcomes feed the score.
		StateComplianceScore: w.StateCompliance,
	}

	base := 100 - (breakdown.ClauseScore + breakdown.UnusualClauseScore + breakdown.MissingDocumentScore)
	base = clampFloat(base)

	out := ScoreEngineOutput{
		ContractID: in.ContractID,
		TotalScore: int(base),
		Breakdown:  breakdown,
		Weights:    w,
	}
	if base < 60 {
		out.Flagged = true
		out.Notes = append(out.Notes, "High risk detected")
	}
	return out
}

// severityPenalty maps flag severity to the points subtracted from a
// base score by ApplySeverityPenalties. These coefficients are
// intentionally distinct from the scan driver's SummarizeFindings
// coefficients (pkg/scan): the two reducers answer different
// questions and must not be unified (see the Open Question resolution
// in the design ledger).
var severityPenalty = map[model.Severity]int{
	model.SeverityCritical: 15,
	model.SeverityHigh:     10,
	model.SeverityMedium:   5,
	model.SeverityLow:      2,
}

// ApplySeverityPenalties subtracts one penalty per flag from baseScore
// and re-clamps to [0,100]. This is the reducer the orchestrator
// applies after Score, per §4.D step 3.
func ApplySeverityPenalties(baseScore int, flags []model.RiskFlag) int {
	total := baseScore
	for _, f := range flags {
		total -= severityPenalty[f.Severity]
	}
	return model.ClampScore(total)
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
