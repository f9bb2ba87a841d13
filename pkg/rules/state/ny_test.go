package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
)

func TestNYRules_BoardApprovalOnlyAppliesToCoops(t *testing.T) {
	rs := NYRules()
	var board rules.Rule
	for _, r := range rs {
		if r.ID() == "NY_BOARD_APPROVAL" {
			board = r
			break
		}
	}
	require.NotNil(t, board)

	result := board.Evaluate(&model.RuleContext{RawText: "Standard single-family home purchase agreement."})
	assert.True(t, result.Passed, "board approval rule should not fire for a non-co-op sale")

	result = board.Evaluate(&model.RuleContext{RawText: "Buyer is purchasing shares in a co-op apartment corporation."})
	require.Len(t, result.Flags, 1)
	assert.Equal(t, "NY_BOARD_APPROVAL_NO_BOARD_CONTINGENCY", result.Flags[0].Code)

	result = board.Evaluate(&model.RuleContext{RawText: "Buyer is purchasing shares in a co-op apartment, subject to board approval."})
	assert.True(t, result.Passed)
}

func TestNYRules_LeadPaintDisclosure(t *testing.T) {
	rs := NYRules()
	var lead rules.Rule
	for _, r := range rs {
		if r.ID() == "NY_LEAD_PAINT" {
			lead = r
			break
		}
	}
	require.NotNil(t, lead)

	result := lead.Evaluate(&model.RuleContext{RawText: "no lead language here"})
	require.Len(t, result.Flags, 1)
	assert.Equal(t, model.SeverityCritical, result.Flags[0].Severity)

	result = lead.Evaluate(&model.RuleContext{RawText: "Seller provides the lead-based paint disclosure."})
	assert.True(t, result.Passed)
}

func TestNYRules_ReturnsSixRules(t *testing.T) {
	assert.Len(t, NYRules(), 6)
}
