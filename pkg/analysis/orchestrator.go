// Package analysis implements the analysis orchestrator (§4.G): the
// single hottest path, turning a contract id plus options into a
// persisted, cached RiskAnalysis. It composes the rule engine, the
// state registry, the AI adapter, the scoring engine, and the
// repository ports behind this package, none of which know about each
// other directly.
package analysis

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/brokerlane/dealrisk/pkg/ai"
	"github.com/brokerlane/dealrisk/pkg/cache"
	"github.com/brokerlane/dealrisk/pkg/history"
	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
	"github.com/brokerlane/dealrisk/pkg/scoring"
	"github.com/brokerlane/dealrisk/pkg/states"
)

const defaultCacheTTL = time.Hour

// AnalysisOptions controls one orchestrator invocation (§4.G).
type AnalysisOptions struct {
	SkipAI       bool
	ForceRefresh bool
	CacheTTL     time.Duration
}

func (o AnalysisOptions) ttl() time.Duration {
	if o.CacheTTL <= 0 {
		return defaultCacheTTL
	}
	return o.CacheTTL
}

// Orchestrator wires the rule engine, AI adapter, scoring engine,
// cache, and history store over a set of repository ports. The zero
// value is not usable; construct with NewOrchestrator.
type Orchestrator struct {
	contracts ContractRepo
	scores    RiskScoreRepo
	histRepo  RiskHistoryRepo

	generalRules []rules.Rule
	aiAdapter    *ai.Adapter
	hist         *history.Store
	analysisCache *cache.AnalysisCache

	flight singleflight.Group
	now    func() time.Time
}

// Deps bundles the collaborators an Orchestrator needs. AIAdapter,
// History and HistoryStore may be nil; a nil AIAdapter degrades every
// AI call to an empty signal set, a nil History skips durable history
// writes, and a nil HistoryStore is replaced by a fresh store.
type Deps struct {
	Contracts    ContractRepo
	Scores       RiskScoreRepo
	History      RiskHistoryRepo
	GeneralRules []rules.Rule
	AIAdapter    *ai.Adapter
	HistoryStore *history.Store
	Cache        *cache.AnalysisCache
}

// NewOrchestrator builds an Orchestrator from deps, filling in the
// general rule set and in-memory collaborators with sensible defaults
// when omitted.
func NewOrchestrator(deps Deps) *Orchestrator {
	generalRules := deps.GeneralRules
	if generalRules == nil {
		generalRules = rules.GeneralRules()
	}
	histStore := deps.HistoryStore
	if histStore == nil {
		histStore = history.NewStore()
	}
	analysisCache := deps.Cache
	if analysisCache == nil {
		analysisCache = cache.NewAnalysisCache()
	}

	return &Orchestrator{
		contracts:     deps.Contracts,
		scores:        deps.Scores,
		histRepo:      deps.History,
		generalRules:  generalRules,
		aiAdapter:     deps.AIAdapter,
		hist:          histStore,
		analysisCache: analysisCache,
		now:           time.Now,
	}
}

// WithClock overrides the orchestrator's time source, for deterministic tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Analyze runs the full algorithm of §4.G for one contract id.
func (o *Orchestrator) Analyze(ctx context.Context, contractID string, opts AnalysisOptions) (model.RiskAnalysis, error) {
	if contractID == "" {
		return model.RiskAnalysis{}, fmt.Errorf("%w: contractID is required", ErrValidation)
	}

	// Step 1: cache probe.
	if !opts.ForceRefresh {
		if cached, ok := o.analysisCache.Get(contractID, opts.ttl()); ok {
			return cached, nil
		}
	}

	// Step 2: single-flight. Every caller with compatible options for
	// this contract id joins the same in-flight computation; a
	// ForceRefresh caller starts its own flight under a distinct key so
	// it is never silently handed a stale joined result.
	flightKey := contractID
	if opts.ForceRefresh {
		flightKey = contractID + ":force"
	}

	result, err, _ := o.flight.Do(flightKey, func() (any, error) {
		return o.compute(ctx, contractID, opts)
	})
	if err != nil {
		return model.RiskAnalysis{}, err
	}
	return result.(model.RiskAnalysis), nil
}

func (o *Orchestrator) compute(ctx context.Context, contractID string, opts AnalysisOptions) (model.RiskAnalysis, error) {
	// Step 3: load contract.
	contract, err := o.contracts.FindByID(ctx, contractID)
	if err != nil {
		return model.RiskAnalysis{}, fmt.Errorf("%w: %v", ErrContractNotFound, err)
	}
	if contract == nil {
		return model.RiskAnalysis{}, ErrContractNotFound
	}

	if err := ctx.Err(); err != nil {
		return model.RiskAnalysis{}, ErrCancelled
	}

	// Step 4: build rule context.
	ruleCtx := &model.RuleContext{Contract: contract, State: contract.State}

	// Step 5: rule evaluation — general rules union state rules.
	engine := rules.NewEngine()
	engine.RegisterAll(o.generalRules)

	var unsupportedFlag *model.RiskFlag
	if contract.State != "" {
		stateRules, stateErr := states.CreateRules(contract.State)
		if stateErr != nil {
			flag := states.UnsupportedStateFlag(contract.State)
			unsupportedFlag = &flag
		} else {
			engine.RegisterAll(stateRules)
		}
	}

	results := engine.Evaluate(ruleCtx)
	flags := rules.AggregateFlags(results)
	if unsupportedFlag != nil {
		flags = append(flags, *unsupportedFlag)
	}

	// Step 6: AI augmentation.
	var unusualClauses []string
	text := ruleCtx.Text()
	if !opts.SkipAI && text != "" && o.aiAdapter != nil {
		unusualSignals := o.aiAdapter.DetectUnusualClauses(ctx, text)
		unusualClauses = append(unusualClauses, unusualSignals.UnusualClauses...)

		explanationSignals := o.aiAdapter.ExplainRisks(ctx, text)
		for _, e := range explanationSignals.Explanations {
			severity := model.Severity(e.Severity)
			if !severity.Valid() {
				severity = model.SeverityMedium
			}
			flags = append(flags, model.RiskFlag{Code: e.Code, Description: e.Description, Severity: severity})
		}
	}

	if err := ctx.Err(); err != nil {
		return model.RiskAnalysis{}, ErrCancelled
	}

	// Step 7: score.
	scoreInput := scoring.ScoreEngineInput{
		ContractID:          contractID,
		Clauses:             contract.Clauses,
		DisclosuresProvided: providedDisclosures(contract.Disclosures),
		AddendaIncluded:     includedAddenda(contract.Addenda),
		UnusualClauses:      unusualClauses,
		MissingDocuments:    missingDisclosureNames(contract.Disclosures),
		State:               contract.State,
	}
	scored := scoring.Score(scoreInput)
	finalScore := scoring.ApplySeverityPenalties(scored.TotalScore, flags)

	riskScore := &model.RiskScore{
		ContractID:   contractID,
		Score:        finalScore,
		CalculatedAt: o.now(),
		Flags:        flags,
		Breakdown:    &scored.Breakdown,
	}

	if err := ctx.Err(); err != nil {
		return model.RiskAnalysis{}, ErrCancelled
	}

	// Step 8: persist. Fail-fast; nothing is cached on a write failure.
	// The repo receives its own copy so later changes to the stored
	// record never reach the cached analysis.
	persisted := *riskScore
	if err := o.persistScore(ctx, &persisted); err != nil {
		return model.RiskAnalysis{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	historyEntry := model.RiskHistoryEntry{AnalyzedAt: riskScore.CalculatedAt, Score: finalScore, Flags: flags}
	o.hist.Append(contractID, historyEntry)
	if o.histRepo != nil {
		if err := o.histRepo.Create(ctx, contractID, historyEntry); err != nil {
			return model.RiskAnalysis{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	// Step 9: compose.
	analysis := composeAnalysis(contractID, riskScore, unusualClauses)

	// Step 10: cache and return.
	o.analysisCache.Set(contractID, analysis)
	return analysis, nil
}

func (o *Orchestrator) persistScore(ctx context.Context, score *model.RiskScore) error {
	existing, err := o.scores.FindByContractID(ctx, score.ContractID)
	if err != nil {
		return err
	}
	if existing == nil {
		return o.scores.Create(ctx, score)
	}
	return o.scores.Update(ctx, score)
}

func composeAnalysis(contractID string, score *model.RiskScore, unusualClauses []string) model.RiskAnalysis {
	critical, high := 0, 0
	for _, f := range score.Flags {
		switch f.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityHigh:
			high++
		}
	}

	summary := fmt.Sprintf("%s risk (score %d): %d critical, %d high, %d unusual clause(s) found",
		model.RiskLevelLabel(score.Score), score.Score, critical, high, len(unusualClauses))

	explanations := make([]string, 0, len(score.Flags)+1)
	for _, f := range score.Flags {
		explanations = append(explanations, fmt.Sprintf("%s: %s", f.Severity, f.Description))
	}
	if len(unusualClauses) > 0 {
		explanations = append(explanations, fmt.Sprintf("%d unusual clause(s) detected by AI review", len(unusualClauses)))
	}

	return model.RiskAnalysis{
		ContractID:   contractID,
		Summary:      summary,
		Score:        score,
		Explanations: explanations,
	}
}

func providedDisclosures(disclosures []model.Disclosure) []model.Disclosure {
	var out []model.Disclosure
	for _, d := range disclosures {
		if d.Provided {
			out = append(out, d)
		}
	}
	return out
}

func missingDisclosureNames(disclosures []model.Disclosure) []string {
	var out []string
	for _, d := range disclosures {
		if d.Required && !d.Provided {
			out = append(out, d.Name)
		}
	}
	return out
}

func includedAddenda(addenda []model.Addendum) []model.Addendum {
	var out []model.Addendum
	for _, a := range addenda {
		if a.Included {
			out = append(out, a)
		}
	}
	return out
}
