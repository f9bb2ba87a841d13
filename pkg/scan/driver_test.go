package scan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func newJob(id string) *model.ScanJob {
	return &model.ScanJob{ID: id, Request: model.ScanRequest{ScanType: model.ScanBasic}}
}

func TestDriver_Execute_CompletesAndScores(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDriver().WithClock(func() time.Time { return fixed })
	job := newJob("scan-1")

	d.Execute(context.Background(), job, "A plain contract with no risk language.", "CA")

	assert.Equal(t, model.ScanCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.Equal(t, 0, job.Result.Score)
	assert.Equal(t, fixed, job.StartedAt)
	assert.Equal(t, fixed, job.CompletedAt)
}

func TestDriver_Execute_SkipsRequestedSteps(t *testing.T) {
	d := NewDriver()
	job := newJob("scan-1")
	job.Request.Options.SkipDetectRisks = true
	job.Request.Options.SkipUnusualClauses = true
	job.Request.Options.SkipStateRules = true

	d.Execute(context.Background(), job, "Buyer agrees to waive all rights sight unseen.", "CA")

	assert.Empty(t, job.Result.Findings, "all finding-producing steps were skipped")
}

func TestDriver_Execute_RiskAndUnusualClauseFindingsDisjoint(t *testing.T) {
	d := NewDriver()
	job := newJob("scan-1")

	d.Execute(context.Background(), job, "Buyer agrees to waive all rights and waive the financing contingency.", "")

	seen := map[string]int{}
	for _, f := range job.Result.Findings {
		seen[f.Code]++
	}
	for code, count := range seen {
		assert.Equal(t, 1, count, "flag %s should not be double-counted across scan steps", code)
	}
}

func TestDriver_Execute_UnsupportedStateAddsFlag(t *testing.T) {
	d := NewDriver()
	job := newJob("scan-1")

	d.Execute(context.Background(), job, "plain text", "ZZ")

	var found bool
	for _, f := range job.Result.Findings {
		if f.Code == "UNSUPPORTED_STATE" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDriver_Execute_CancelledContextStopsRemainingSteps(t *testing.T) {
	d := NewDriver()
	job := newJob("scan-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Execute(ctx, job, "plain text", "CA")

	assert.NotEmpty(t, job.Errors)
	assert.Equal(t, model.ScanCompleted, job.Status, "execute always reaches a terminal completed state even when steps are skipped by cancellation")
}

func TestDriver_RetryFailedScan_ResetsState(t *testing.T) {
	d := NewDriver()
	job := newJob("scan-1")
	job.Status = model.ScanFailed
	job.Errors = []string{"previous failure"}

	d.RetryFailedScan(context.Background(), job, "plain text", "CA")

	assert.Equal(t, model.ScanCompleted, job.Status)
	assert.NotContains(t, job.Errors, "previous failure")
}

func TestDriver_ExecuteBatch_RunsEachJob(t *testing.T) {
	d := NewDriver()
	jobs := []*model.ScanJob{newJob("a"), newJob("b")}
	texts := []string{"text a", "text b"}
	states := []string{"CA", "TX"}

	d.ExecuteBatch(context.Background(), jobs, texts, states)

	for _, j := range jobs {
		assert.Equal(t, model.ScanCompleted, j.Status)
	}
}

func TestDriver_ExecuteBatch_CancelledSkipsRemaining(t *testing.T) {
	d := NewDriver()
	jobs := []*model.ScanJob{newJob("a"), newJob("b")}
	texts := []string{"text a", "text b"}
	states := []string{"CA", "TX"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.ExecuteBatch(ctx, jobs, texts, states)

	for _, j := range jobs {
		assert.Equal(t, model.ScanFailed, j.Status)
	}
}
