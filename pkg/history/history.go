// Package history is the risk-history store (§4.F): a bounded,
// per-contract time series of RiskHistoryEntry with FIFO eviction,
// trend derivation, flag-delta comparison, and windowed statistics.
// Writes are serialized so the 100-entry cap and append-order
// invariants hold under concurrent callers, grounded on the same
// mutex-guarded-map shape used by the rule engine's registry.
package history

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

const maxEntries = 100

// TrendLabel is the qualitative direction of a contract's risk score.
type TrendLabel string

const (
	TrendImproving TrendLabel = "improving"
	TrendWorsening TrendLabel = "worsening"
	TrendStable    TrendLabel = "stable"
	TrendNew       TrendLabel = "new"
)

// Trend is the output of Store.Trend.
type Trend struct {
	CurrentScore  int
	PreviousScore int
	ScoreChange   int
	Label         TrendLabel
}

// FlagDelta is the output of Store.FlagChanges.
type FlagDelta struct {
	New      []model.RiskFlag
	Resolved []model.RiskFlag
}

// Statistics is the output of Store.Statistics.
type Statistics struct {
	AverageScore float64
	MinScore     int
	MaxScore     int
	Volatility   float64
	EntryCount   int
}

// Store is the in-memory risk-history store. The zero value is not
// usable; construct with NewStore.
type Store struct {
	mu      sync.Mutex
	entries map[string][]model.RiskHistoryEntry
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		entries: map[string][]model.RiskHistoryEntry{},
		now:     time.Now,
	}
}

// WithClock overrides the store's time source, for deterministic tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Append adds entry for contractID, evicting the oldest entries past
// the 100-entry cap. All writes for a contract are serialized by the
// store's single mutex.
func (s *Store) Append(contractID string, entry model.RiskHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.entries[contractID], entry)
	if len(list) > maxEntries {
		list = list[len(list)-maxEntries:]
	}
	s.entries[contractID] = list
}

// Get returns the full history for contractID, oldest first.
func (s *Store) Get(contractID string) ([]model.RiskHistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.entries[contractID]
	if !ok {
		return nil, false
	}
	out := make([]model.RiskHistoryEntry, len(list))
	copy(out, list)
	return out, true
}

// Delete removes all history for contractID.
func (s *Store) Delete(contractID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, contractID)
}

// Trend derives the score-change trend for contractID from its latest
// two entries.
func (s *Store) Trend(contractID string) Trend {
	list, _ := s.Get(contractID)
	if len(list) == 0 {
		return Trend{Label: TrendNew}
	}
	current := list[len(list)-1].Score
	if len(list) <= 1 {
		return Trend{CurrentScore: current, Label: TrendNew}
	}

	previous := list[len(list)-2].Score
	change := current - previous
	label := TrendStable
	switch {
	case change > 5:
		label = TrendImproving
	case change < -5:
		label = TrendWorsening
	}
	return Trend{CurrentScore: current, PreviousScore: previous, ScoreChange: change, Label: label}
}

// FlagChanges compares the flag-code sets of the last two entries for
// contractID: new holds flags present in the latest entry but not the
// previous one, resolved holds the converse. Original flag objects are
// preserved, not just their codes.
func (s *Store) FlagChanges(contractID string) FlagDelta {
	list, _ := s.Get(contractID)
	if len(list) < 2 {
		var delta FlagDelta
		if len(list) == 1 {
			delta.New = list[0].Flags
		}
		return delta
	}

	previous := flagsByCode(list[len(list)-2].Flags)
	current := flagsByCode(list[len(list)-1].Flags)

	var delta FlagDelta
	for code, flag := range current {
		if _, ok := previous[code]; !ok {
			delta.New = append(delta.New, flag)
		}
	}
	for code, flag := range previous {
		if _, ok := current[code]; !ok {
			delta.Resolved = append(delta.Resolved, flag)
		}
	}
	return delta
}

func flagsByCode(flags []model.RiskFlag) map[string]model.RiskFlag {
	out := make(map[string]model.RiskFlag, len(flags))
	for _, f := range flags {
		out[f.Code] = f
	}
	return out
}

// AverageScoreOverTime returns the rounded arithmetic mean of scores
// for entries within the last `days` days. Falls back to the latest
// entry's score if the window is empty, and to 0 if there is no
// history at all.
func (s *Store) AverageScoreOverTime(contractID string, days int) int {
	list, _ := s.Get(contractID)
	if len(list) == 0 {
		return 0
	}
	windowed := s.window(list, days)
	if len(windowed) == 0 {
		return list[len(list)-1].Score
	}
	sum := 0
	for _, e := range windowed {
		sum += e.Score
	}
	return int(math.Round(float64(sum) / float64(len(windowed))))
}

// Statistics computes average/min/max/volatility over the window,
// using the same empty-window fallback rules as AverageScoreOverTime.
func (s *Store) Statistics(contractID string, days int) Statistics {
	list, _ := s.Get(contractID)
	if len(list) == 0 {
		return Statistics{}
	}
	windowed := s.window(list, days)
	if len(windowed) == 0 {
		latest := list[len(list)-1].Score
		return Statistics{AverageScore: float64(latest), MinScore: latest, MaxScore: latest, EntryCount: 0}
	}

	scores := make([]int, len(windowed))
	sum := 0
	for i, e := range windowed {
		scores[i] = e.Score
		sum += e.Score
	}
	sort.Ints(scores)
	avg := float64(sum) / float64(len(scores))

	variance := 0.0
	for _, sc := range scores {
		d := float64(sc) - avg
		variance += d * d
	}
	variance /= float64(len(scores))
	stddev := math.Sqrt(variance)

	return Statistics{
		AverageScore: math.Round(avg*100) / 100,
		MinScore:     scores[0],
		MaxScore:     scores[len(scores)-1],
		Volatility:   math.Round(stddev*100) / 100,
		EntryCount:   len(windowed),
	}
}

func (s *Store) window(list []model.RiskHistoryEntry, days int) []model.RiskHistoryEntry {
	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	var out []model.RiskHistoryEntry
	for _, e := range list {
		if !e.AnalyzedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
