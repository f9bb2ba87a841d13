package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func TestFLRules_FlagMissingByDefault(t *testing.T) {
	for _, r := range FLRules() {
		result := r.Evaluate(&model.RuleContext{RawText: "A plain contract with no Florida-specific disclosures."})
		assert.False(t, result.Passed, "rule %s should fail on a contract with none of its signals", r.ID())
		assert.Equal(t, r.ID()+"_MISSING", result.Flags[0].Code)
	}
}

func TestFLRules_WindstormDisclosurePresence(t *testing.T) {
	for _, r := range FLRules() {
		if r.ID() != "FL_WIND" {
			continue
		}
		result := r.Evaluate(&model.RuleContext{RawText: "Seller provides the wind mitigation disclosure."})
		assert.True(t, result.Passed)
	}
}

func TestFLRules_ReturnsSixRules(t *testing.T) {
	assert.Len(t, FLRules(), 6)
}
