// Package compliance projects the state-specific flags inside a
// RiskAnalysis into a per-jurisdiction compliance view, grounded on
// the by-jurisdiction aggregation shape used for regulatory obligation
// rollups elsewhere in the pack.
package compliance

import (
	"strings"

	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/states"
)

// JurisdictionResult aggregates one state's compliance flags.
type JurisdictionResult struct {
	StateCode  string
	HumanName  string
	Violations int
	BySeverity map[model.Severity]int
	FlagCodes  []string
}

// ComplianceReport is the compliance view over one RiskAnalysis.
type ComplianceReport struct {
	ContractID       string
	ByJurisdiction   map[string]*JurisdictionResult
	UnsupportedState string // set when the contract's state had no registered rules
}

// Build projects analysis's state-specific flags (every flag whose
// rule id carries a known state-code prefix, plus UNSUPPORTED_STATE)
// into a ComplianceReport for contractState.
func Build(analysis model.RiskAnalysis, contractState string) ComplianceReport {
	report := ComplianceReport{
		ContractID:     analysis.ContractID,
		ByJurisdiction: map[string]*JurisdictionResult{},
	}
	if analysis.Score == nil {
		return report
	}

	for _, f := range analysis.Score.Flags {
		if f.Code == "UNSUPPORTED_STATE" {
			report.UnsupportedState = contractState
			continue
		}
		code, ok := stateCodeFromFlag(f.Code)
		if !ok {
			continue
		}
		result, exists := report.ByJurisdiction[code]
		if !exists {
			humanName := code
			if info, ok := states.GetInfo(code); ok {
				humanName = info.HumanName
			}
			result = &JurisdictionResult{StateCode: code, HumanName: humanName, BySeverity: map[model.Severity]int{}}
			report.ByJurisdiction[code] = result
		}
		result.Violations++
		result.BySeverity[f.Severity]++
		result.FlagCodes = append(result.FlagCodes, f.Code)
	}
	return report
}

// stateCodeFromFlag recognizes the {STATE}_{RULE}_{LOCAL_CODE} prefix
// used by every state-specific rule in pkg/rules/state.
func stateCodeFromFlag(flagCode string) (string, bool) {
	prefix, _, ok := strings.Cut(flagCode, "_")
	if !ok || len(prefix) != 2 {
		return "", false
	}
	if !states.IsSupported(prefix) {
		return "", false
	}
	return prefix, true
}
