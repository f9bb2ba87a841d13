//go:build property
// +build property

package history

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// TestStore_Append_CapAndLatestInvariant verifies that after appending any
// number of entries, the stored history never exceeds the 100-entry cap and
// its last element is always the most recently appended entry.
func TestStore_Append_CapAndLatestInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("history is capped at 100 and ends with the last append", prop.ForAll(
		func(scores []int) bool {
			if len(scores) == 0 {
				return true
			}
			s := NewStore()
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			for i, sc := range scores {
				s.Append("c1", model.RiskHistoryEntry{AnalyzedAt: base.Add(time.Duration(i) * time.Hour), Score: sc})
			}

			list, ok := s.Get("c1")
			if !ok {
				return false
			}
			if len(list) > maxEntries {
				return false
			}
			want := scores[len(scores)-1]
			return list[len(list)-1].Score == want
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

// TestStore_FlagChanges_Idempotent verifies that calling FlagChanges twice in
// a row, with no intervening Append, yields the same delta both times.
func TestStore_FlagChanges_Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("FlagChanges is idempotent without a new append", prop.ForAll(
		func(codesA, codesB []string) bool {
			s := NewStore()
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			s.Append("c1", model.RiskHistoryEntry{AnalyzedAt: base, Score: 50, Flags: flagsFor(codesA)})
			s.Append("c1", model.RiskHistoryEntry{AnalyzedAt: base.Add(time.Hour), Score: 60, Flags: flagsFor(codesB)})

			first := s.FlagChanges("c1")
			second := s.FlagChanges("c1")
			return sameCodes(first.New, second.New) && sameCodes(first.Resolved, second.Resolved)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func flagsFor(codes []string) []model.RiskFlag {
	out := make([]model.RiskFlag, 0, len(codes))
	for _, c := range codes {
		if c != "" {
			out = append(out, model.RiskFlag{Code: c})
		}
	}
	return out
}

// sameCodes compares two flag slices as sets, since FlagChanges rebuilds its
// internal maps on every call and Go's map iteration order is randomized.
func sameCodes(a, b []model.RiskFlag) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[string]int{}
	for _, f := range a {
		counts[f.Code]++
	}
	for _, f := range b {
		counts[f.Code]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
