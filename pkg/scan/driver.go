// Package scan is the scan driver (§4.H): a job wrapper around the
// analysis orchestrator's rule-evaluation path, expressed as a
// weighted-progress state machine so a caller can poll a scan's
// completion percentage. Each step is independently skippable and
// fault-isolated: a step failure is appended to the job's errors and
// the scan continues.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
	"github.com/brokerlane/dealrisk/pkg/states"
)

// Driver executes ScanJobs against the rule engine. It holds no
// per-job state between calls to Execute; the ScanJob itself is the
// state machine.
type Driver struct {
	generalRules []rules.Rule
	now          func() time.Time
}

// NewDriver returns a driver seeded with the general rule library.
func NewDriver() *Driver {
	return &Driver{
		generalRules: rules.GeneralRules(),
		now:          time.Now,
	}
}

// WithClock overrides the driver's time source, for deterministic tests.
func (d *Driver) WithClock(now func() time.Time) *Driver {
	d.now = now
	return d
}

type step struct {
	name    string
	percent int
	skip    bool
	run     func() error
}

// Execute runs job against contractText, mutating job in place through
// pending → running → completed|failed. A step's failure is appended
// to job.Errors but never aborts the job; only a panic-free step
// sequence failing to produce any findings leaves the score at its
// textless default.
func (d *Driver) Execute(ctx context.Context, job *model.ScanJob, contractText, state string) {
	job.Status = model.ScanRunning
	job.StartedAt = d.now()
	job.Progress = model.ScanProgressStep{Name: "Starting scan", Percent: 10}

	var extractedClauses []model.Clause
	var findings []model.RiskFlag

	steps := []step{
		{
			name: "Extract clauses", percent: 20, skip: job.Request.Options.SkipExtractClauses,
			run: func() error {
				extractedClauses = extractClauses(contractText)
				return nil
			},
		},
		{
			name: "Detect risks", percent: 40, skip: job.Request.Options.SkipDetectRisks,
			run: func() error {
				findings = append(findings, evaluate(riskRules(d.generalRules), contractText, extractedClauses, state)...)
				return nil
			},
		},
		{
			name: "Detect unusual clauses", percent: 60, skip: job.Request.Options.SkipUnusualClauses,
			run: func() error {
				findings = append(findings, evaluate(unusualClauseRules(d.generalRules), contractText, extractedClauses, state)...)
				return nil
			},
		},
		{
			name: "Apply state rules", percent: 80, skip: job.Request.Options.SkipStateRules,
			run: func() error {
				if state == "" {
					return nil
				}
				stateRules, err := states.CreateRules(state)
				if err != nil {
					findings = append(findings, states.UnsupportedStateFlag(state))
					return nil
				}
				findings = append(findings, evaluate(stateRules, contractText, extractedClauses, state)...)
				return nil
			},
		},
	}

	for _, s := range steps {
		if ctx.Err() != nil {
			job.Errors = append(job.Errors, fmt.Sprintf("%s: %v", s.name, ctx.Err()))
			break
		}
		if s.skip {
			continue
		}
		if err := runStep(s.run); err != nil {
			job.Errors = append(job.Errors, fmt.Sprintf("%s: %v", s.name, err))
		}
		job.Progress = model.ScanProgressStep{Name: s.name, Percent: s.percent}
	}

	job.Progress = model.ScanProgressStep{Name: "Calculate risk score", Percent: 90}
	score := SummarizeFindings(findings)

	job.Progress = model.ScanProgressStep{Name: "Scan complete", Percent: 100}
	job.CompletedAt = d.now()
	job.Status = model.ScanCompleted
	job.Result = &model.ScanResult{
		ID:          job.ID,
		ScanID:      job.ID,
		Findings:    findings,
		Score:       score,
		CompletedAt: job.CompletedAt,
		Errors:      job.Errors,
	}
}

// runStep isolates a step's panic or error so Execute never aborts.
func runStep(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()
	return fn()
}

func extractClauses(text string) []model.Clause {
	if text == "" {
		return nil
	}
	return []model.Clause{{Text: text, Type: model.ClauseStandard}}
}

// evaluate runs rs against either the extracted clauses or the raw
// contract text, whichever is available.
func evaluate(rs []rules.Rule, contractText string, clauses []model.Clause, state string) []model.RiskFlag {
	engine := rules.NewEngine()
	engine.RegisterAll(rs)
	ruleCtx := &model.RuleContext{RawText: contractText, State: state}
	if len(clauses) > 0 {
		ruleCtx.Contract = &model.Contract{Clauses: clauses}
		ruleCtx.RawText = ""
	}
	return rules.AggregateFlags(engine.Evaluate(ruleCtx))
}

// riskRules is every general rule except the unusual-clause family,
// backing the "Detect risks" step.
func riskRules(all []rules.Rule) []rules.Rule {
	var out []rules.Rule
	for _, r := range all {
		if r.Category() != model.CategoryUnusualClause {
			out = append(out, r)
		}
	}
	return out
}

// unusualClauseRules is the unusual-clause family, backing the
// "Detect unusual clauses" step.
func unusualClauseRules(all []rules.Rule) []rules.Rule {
	var out []rules.Rule
	for _, r := range all {
		if r.Category() == model.CategoryUnusualClause {
			out = append(out, r)
		}
	}
	return out
}

// RetryFailedScan resets job's progress state and reruns Execute.
func (d *Driver) RetryFailedScan(ctx context.Context, job *model.ScanJob, contractText, state string) {
	job.Status = model.ScanPending
	job.Errors = nil
	job.Result = nil
	job.Progress = model.ScanProgressStep{}
	d.Execute(ctx, job, contractText, state)
}

// ExecuteBatch runs Execute sequentially over jobs; a job's failure to
// complete (its own internal fault isolation notwithstanding) never
// aborts the remaining jobs.
func (d *Driver) ExecuteBatch(ctx context.Context, jobs []*model.ScanJob, texts []string, stateCodes []string) {
	for i, job := range jobs {
		if ctx.Err() != nil {
			job.Status = model.ScanFailed
			job.Errors = append(job.Errors, ctx.Err().Error())
			continue
		}
		d.Execute(ctx, job, texts[i], stateCodes[i])
	}
}
