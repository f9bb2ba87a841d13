// Package states is the static registry of US states with dedicated
// state-specific rule factories (§4.I). It is the single place that
// knows which state codes are supported and how to build their rules.
package states

import (
	"fmt"
	"sort"
	"sync"

	"github.com/brokerlane/dealrisk/pkg/model"
	"github.com/brokerlane/dealrisk/pkg/rules"
	"github.com/brokerlane/dealrisk/pkg/rules/state"
)

// Info describes one supported state.
type Info struct {
	Code      string
	HumanName string
}

type entry struct {
	info    Info
	factory func() []rules.Rule
}

var (
	mu       sync.RWMutex
	registry = map[string]entry{
		"CA": {Info{"CA", "California"}, state.CARules},
		"TX": {Info{"TX", "Texas"}, state.TXRules},
		"FL": {Info{"FL", "Florida"}, state.FLRules},
		"NY": {Info{"NY", "New York"}, state.NYRules},
	}
)

// IsSupported reports whether code has dedicated state-specific rules.
func IsSupported(code string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[code]
	return ok
}

// SupportedCodes returns every supported state code, sorted.
func SupportedCodes() []string {
	mu.RLock()
	defer mu.RUnlock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetInfo returns the Info for a supported state code.
func GetInfo(code string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[code]
	return e.info, ok
}

// List returns Info for every supported state, sorted by code.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Info, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ErrUnsupportedState marks a state code absent from the registry. It
// is not itself fatal: callers surface a synthetic UNSUPPORTED_STATE
// flag and continue with general rules only, per the global invariant
// that no single state gates the rest of the analysis.
type ErrUnsupportedState struct {
	Code string
}

func (e *ErrUnsupportedState) Error() string {
	return fmt.Sprintf("state %q is not supported", e.Code)
}

// CreateRules returns fresh rule instances for code. If code is not
// supported, it returns a nil slice and an *ErrUnsupportedState; the
// caller is expected to fall back to general rules plus the
// UNSUPPORTED_STATE flag rather than treat this as a hard failure.
func CreateRules(code string) ([]rules.Rule, error) {
	mu.RLock()
	e, ok := registry[code]
	mu.RUnlock()
	if !ok {
		return nil, &ErrUnsupportedState{Code: code}
	}
	return e.factory(), nil
}

// CreateMultiStateRules unions the rules for every supported code in
// codes, in registry order, and separately reports the codes that are
// not supported.
func CreateMultiStateRules(codes []string) (all []rules.Rule, unsupported []string) {
	for _, code := range codes {
		rs, err := CreateRules(code)
		if err != nil {
			unsupported = append(unsupported, code)
			continue
		}
		all = append(all, rs...)
	}
	return all, unsupported
}

// UnsupportedStateFlag builds the synthetic medium-severity flag
// emitted when a contract names a state this registry does not cover.
func UnsupportedStateFlag(code string) model.RiskFlag {
	return model.RiskFlag{
		Code:        "UNSUPPORTED_STATE",
		Severity:    model.SeverityMedium,
		Description: fmt.Sprintf("No state-specific rules are registered for %q; only general rules were evaluated", code),
	}
}
