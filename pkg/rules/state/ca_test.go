package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func TestCARules_FlagMissingByDefault(t *testing.T) {
	for _, r := range CARules() {
		result := r.Evaluate(&model.RuleContext{RawText: "A plain contract with no state-specific disclosures."})
		assert.False(t, result.Passed, "rule %s should fail on a contract with none of its signals", r.ID())
		assert.Len(t, result.Flags, 1)
		assert.Equal(t, r.ID()+"_MISSING", result.Flags[0].Code)
	}
}

func TestCARules_PassWhenDisclosureProvided(t *testing.T) {
	ctx := &model.RuleContext{
		RawText: "Property located in California.",
		Contract: &model.Contract{Disclosures: []model.Disclosure{
			{Name: "Transfer Disclosure Statement", Provided: true},
			{Name: "Natural Hazard Disclosure", Provided: true},
			{Name: "Mello-Roos Notice", Provided: true},
			{Name: "Earthquake Hazards Disclosure", Provided: true},
		}},
	}
	for _, r := range CARules() {
		if r.ID() == "CA_DETECTORS" {
			continue
		}
		result := r.Evaluate(ctx)
		assert.True(t, result.Passed, "rule %s should pass once its disclosure is provided", r.ID())
	}
}

func TestCARules_ReturnsFiveRules(t *testing.T) {
	assert.Len(t, CARules(), 5)
}
