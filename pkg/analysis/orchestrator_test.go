package analysis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerlane/dealrisk/pkg/ai"
	"github.com/brokerlane/dealrisk/pkg/model"
)

type fakeContractRepo struct {
	mu        sync.Mutex
	contracts map[string]*model.Contract
}

func newFakeContractRepo(contracts ...*model.Contract) *fakeContractRepo {
	r := &fakeContractRepo{contracts: map[string]*model.Contract{}}
	for _, c := range contracts {
		r.contracts[c.ID] = c
	}
	return r
}

func (r *fakeContractRepo) FindByID(ctx context.Context, id string) (*model.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeContractRepo) FindAll(ctx context.Context) ([]model.Contract, error) { return nil, nil }
func (r *fakeContractRepo) Create(ctx context.Context, c *model.Contract) error   { return nil }
func (r *fakeContractRepo) Update(ctx context.Context, id string, patch func(*model.Contract)) error {
	return nil
}
func (r *fakeContractRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	return false, nil
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores map[string]*model.RiskScore
	failOn string
}

func newFakeScoreRepo() *fakeScoreRepo { return &fakeScoreRepo{scores: map[string]*model.RiskScore{}} }

func (r *fakeScoreRepo) FindByContractID(ctx context.Context, contractID string) (*model.RiskScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores[contractID], nil
}
func (r *fakeScoreRepo) Create(ctx context.Context, s *model.RiskScore) error {
	if r.failOn == s.ContractID {
		return errors.New("write failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[s.ContractID] = s
	return nil
}
func (r *fakeScoreRepo) Update(ctx context.Context, s *model.RiskScore) error {
	return r.Create(ctx, s)
}
func (r *fakeScoreRepo) DeleteByContractID(ctx context.Context, contractID string) error {
	return nil
}

type countingAIClient struct {
	calls int32
	delay time.Duration
}

func (c *countingAIClient) Call(ctx context.Context, req ai.Request) (ai.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return ai.Response{Raw: `{"unusualClauses": ["seller financing"]}`}, nil
}

func newTestOrchestrator(contracts *fakeContractRepo, scores *fakeScoreRepo) *Orchestrator {
	return NewOrchestrator(Deps{
		Contracts:    contracts,
		Scores:       scores,
		GeneralRules: nil,
	})
}

func TestOrchestrator_Analyze_EmptyContractID(t *testing.T) {
	o := newTestOrchestrator(newFakeContractRepo(), newFakeScoreRepo())
	_, err := o.Analyze(context.Background(), "", AnalysisOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrchestrator_Analyze_ContractNotFound(t *testing.T) {
	o := newTestOrchestrator(newFakeContractRepo(), newFakeScoreRepo())
	_, err := o.Analyze(context.Background(), "missing", AnalysisOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestOrchestrator_Analyze_PersistsAndCaches(t *testing.T) {
	contract := &model.Contract{ID: "c1", State: "CA"}
	scores := newFakeScoreRepo()
	o := newTestOrchestrator(newFakeContractRepo(contract), scores)

	analysis, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true})
	require.NoError(t, err)
	assert.Equal(t, "c1", analysis.ContractID)
	assert.NotNil(t, scores.scores["c1"])

	cached, ok := o.analysisCache.Get("c1", time.Hour)
	require.True(t, ok)
	assert.Equal(t, analysis.ContractID, cached.ContractID)
}

func TestOrchestrator_Analyze_CacheHitSkipsRecompute(t *testing.T) {
	contract := &model.Contract{ID: "c1", State: "CA"}
	scores := newFakeScoreRepo()
	o := newTestOrchestrator(newFakeContractRepo(contract), scores)

	_, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true})
	require.NoError(t, err)

	scores.scores["c1"].Score = 999 // mutate the persisted record out-of-band
	second, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true})
	require.NoError(t, err)
	assert.NotEqual(t, 999, second.Score.Score, "cached result must not reflect a post-hoc mutation to the repo")
}

func TestOrchestrator_Analyze_ForceRefreshRecomputes(t *testing.T) {
	contract := &model.Contract{ID: "c1", State: "CA"}
	scores := newFakeScoreRepo()
	o := newTestOrchestrator(newFakeContractRepo(contract), scores)

	_, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true})
	require.NoError(t, err)

	second, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true, ForceRefresh: true})
	require.NoError(t, err)
	assert.Equal(t, "c1", second.ContractID)
}

func TestOrchestrator_Analyze_UnsupportedStateAddsFlagButContinues(t *testing.T) {
	contract := &model.Contract{ID: "c1", State: "ZZ"}
	o := newTestOrchestrator(newFakeContractRepo(contract), newFakeScoreRepo())

	analysis, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true})
	require.NoError(t, err)
	var found bool
	for _, f := range analysis.Score.Flags {
		if f.Code == "UNSUPPORTED_STATE" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestOrchestrator_Analyze_PersistenceFailureLeavesNoCache(t *testing.T) {
	contract := &model.Contract{ID: "c1", State: "CA"}
	scores := newFakeScoreRepo()
	scores.failOn = "c1"
	o := newTestOrchestrator(newFakeContractRepo(contract), scores)

	_, err := o.Analyze(context.Background(), "c1", AnalysisOptions{SkipAI: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	_, ok := o.analysisCache.Get("c1", time.Hour)
	assert.False(t, ok, "a failed persist must not populate the cache")
}

func TestOrchestrator_Analyze_CancelledContextBeforePersistence(t *testing.T) {
	contract := &model.Contract{ID: "c1", State: "CA"}
	scores := newFakeScoreRepo()
	o := newTestOrchestrator(newFakeContractRepo(contract), scores)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Analyze(ctx, "c1", AnalysisOptions{SkipAI: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Nil(t, scores.scores["c1"], "no partial state should be persisted on cancellation")
}

func TestOrchestrator_Analyze_SingleFlightJoinsConcurrentCallers(t *testing.T) {
	text := "Seller financing is offered on this property."
	client := &countingAIClient{delay: 20 * time.Millisecond}
	o := NewOrchestrator(Deps{
		Contracts: newFakeContractRepo(&model.Contract{ID: "c1", State: "CA", Clauses: []model.Clause{{Text: text}}}),
		Scores:    newFakeScoreRepo(),
		AIAdapter: ai.NewAdapter(client),
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = o.Analyze(context.Background(), "c1", AnalysisOptions{})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&client.calls), int32(2), "single-flight should invoke the AI adapter at most once per prompt across joined callers")
}
