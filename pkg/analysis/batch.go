package analysis

import (
	"context"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// BatchFailure records one failed item in a batch run.
type BatchFailure struct {
	ContractID string
	Error      string
}

// BatchResult is the output of AnalyzeBatch. The invariant
// len(Completed)+len(Failed) == len(input ids) always holds.
type BatchResult struct {
	Completed []model.RiskAnalysis
	Failed    []BatchFailure
	TotalTime time.Duration
}

// AnalyzeBatch runs Analyze sequentially over ids; each failure is
// recorded and does not abort the batch. Cancellation is checked
// between items — an item already in flight completes.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, ids []string, opts AnalysisOptions) BatchResult {
	start := o.now()
	result := BatchResult{
		Completed: make([]model.RiskAnalysis, 0, len(ids)),
		Failed:    make([]BatchFailure, 0),
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, BatchFailure{ContractID: id, Error: ErrCancelled.Error()})
			continue
		}
		analysis, err := o.Analyze(ctx, id, opts)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{ContractID: id, Error: err.Error()})
			continue
		}
		result.Completed = append(result.Completed, analysis)
	}

	result.TotalTime = o.now().Sub(start)
	return result
}
