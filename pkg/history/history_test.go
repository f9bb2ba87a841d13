package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func TestStore_AppendCapsAtMaxEntries(t *testing.T) {
	s := NewStore()
	for i := 0; i < maxEntries+10; i++ {
		s.Append("c1", model.RiskHistoryEntry{Score: i})
	}
	list, ok := s.Get("c1")
	require.True(t, ok)
	assert.Len(t, list, maxEntries)
	assert.Equal(t, maxEntries+9, list[len(list)-1].Score, "latest entry equals the most recently appended one")
}

func TestStore_Get_UnknownContract(t *testing.T) {
	s := NewStore()
	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	s.Append("c1", model.RiskHistoryEntry{Score: 80})
	s.Delete("c1")
	_, ok := s.Get("c1")
	assert.False(t, ok)
}

func TestStore_Trend_NewWithNoHistory(t *testing.T) {
	s := NewStore()
	assert.Equal(t, TrendNew, s.Trend("c1").Label)
}

func TestStore_Trend_NewWithOneEntry(t *testing.T) {
	s := NewStore()
	s.Append("c1", model.RiskHistoryEntry{Score: 80})
	trend := s.Trend("c1")
	assert.Equal(t, TrendNew, trend.Label)
	assert.Equal(t, 80, trend.CurrentScore)
}

func TestStore_Trend_ImprovingWorseningStable(t *testing.T) {
	s := NewStore()
	s.Append("c1", model.RiskHistoryEntry{Score: 50})
	s.Append("c1", model.RiskHistoryEntry{Score: 70})
	assert.Equal(t, TrendImproving, s.Trend("c1").Label)

	s2 := NewStore()
	s2.Append("c2", model.RiskHistoryEntry{Score: 70})
	s2.Append("c2", model.RiskHistoryEntry{Score: 50})
	assert.Equal(t, TrendWorsening, s2.Trend("c2").Label)

	s3 := NewStore()
	s3.Append("c3", model.RiskHistoryEntry{Score: 70})
	s3.Append("c3", model.RiskHistoryEntry{Score: 71})
	assert.Equal(t, TrendStable, s3.Trend("c3").Label)
}

func TestStore_FlagChanges_NewAndResolved(t *testing.T) {
	s := NewStore()
	s.Append("c1", model.RiskHistoryEntry{Flags: []model.RiskFlag{{Code: "A"}, {Code: "B"}}})
	s.Append("c1", model.RiskHistoryEntry{Flags: []model.RiskFlag{{Code: "B"}, {Code: "C"}}})

	delta := s.FlagChanges("c1")
	newCodes := codesOf(delta.New)
	resolvedCodes := codesOf(delta.Resolved)
	assert.ElementsMatch(t, []string{"C"}, newCodes)
	assert.ElementsMatch(t, []string{"A"}, resolvedCodes)
}

func TestStore_FlagChanges_IdempotentWhenUnchanged(t *testing.T) {
	s := NewStore()
	flags := []model.RiskFlag{{Code: "A"}}
	s.Append("c1", model.RiskHistoryEntry{Flags: flags})
	s.Append("c1", model.RiskHistoryEntry{Flags: flags})

	delta := s.FlagChanges("c1")
	assert.Empty(t, delta.New)
	assert.Empty(t, delta.Resolved)
}

func TestStore_AverageScoreOverTime_FallsBackToLatestWhenWindowEmpty(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore().WithClock(func() time.Time { return fixed })
	s.Append("c1", model.RiskHistoryEntry{Score: 60, AnalyzedAt: fixed.Add(-365 * 24 * time.Hour)})
	avg := s.AverageScoreOverTime("c1", 30)
	assert.Equal(t, 60, avg)
}

func TestStore_AverageScoreOverTime_Windowed(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore().WithClock(func() time.Time { return fixed })
	s.Append("c1", model.RiskHistoryEntry{Score: 40, AnalyzedAt: fixed.Add(-2 * 24 * time.Hour)})
	s.Append("c1", model.RiskHistoryEntry{Score: 60, AnalyzedAt: fixed.Add(-1 * 24 * time.Hour)})
	avg := s.AverageScoreOverTime("c1", 30)
	assert.Equal(t, 50, avg)
}

func TestStore_Statistics_Volatility(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore().WithClock(func() time.Time { return fixed })
	s.Append("c1", model.RiskHistoryEntry{Score: 50, AnalyzedAt: fixed.Add(-2 * 24 * time.Hour)})
	s.Append("c1", model.RiskHistoryEntry{Score: 90, AnalyzedAt: fixed.Add(-1 * 24 * time.Hour)})

	stats := s.Statistics("c1", 30)
	assert.Equal(t, 2, stats.EntryCount)
	assert.Equal(t, 50, stats.MinScore)
	assert.Equal(t, 90, stats.MaxScore)
	assert.Equal(t, 70.0, stats.AverageScore)
	assert.Greater(t, stats.Volatility, 0.0)
}

func TestStore_Statistics_NoHistory(t *testing.T) {
	s := NewStore()
	stats := s.Statistics("missing", 30)
	assert.Equal(t, Statistics{}, stats)
}

func codesOf(flags []model.RiskFlag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = f.Code
	}
	return out
}
