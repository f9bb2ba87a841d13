package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func TestTXRules_FlagMissingByDefault(t *testing.T) {
	for _, r := range TXRules() {
		result := r.Evaluate(&model.RuleContext{RawText: "A plain contract with no Texas-specific provisions."})
		assert.False(t, result.Passed, "rule %s should fail on a contract with none of its signals", r.ID())
		assert.Equal(t, r.ID()+"_MISSING", result.Flags[0].Code)
	}
}

func TestTXRules_OptionPeriodPresence(t *testing.T) {
	for _, r := range TXRules() {
		if r.ID() != "TX_OPTION_PERIOD" {
			continue
		}
		result := r.Evaluate(&model.RuleContext{RawText: "Buyer shall pay an option fee of $100 for a 10 day option period."})
		assert.True(t, result.Passed)
	}
}

func TestTXRules_ReturnsSixRules(t *testing.T) {
	assert.Len(t, TXRules(), 6)
}
