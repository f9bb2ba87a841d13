package analysis

import "errors"

// Sentinel errors implementing the §7 error taxonomy. Kind, not
// concrete type, is what callers branch on: errors.Is against these
// values.
var (
	// ErrContractNotFound is returned when the contract repository has
	// no contract for the given id. Fail-fast: no further steps run.
	ErrContractNotFound = errors.New("dealrisk: contract not found")

	// ErrValidation marks a bad orchestrator input. No state is mutated.
	ErrValidation = errors.New("dealrisk: validation failed")

	// ErrPersistence marks a repository write failure. Fatal to the
	// invocation; the cache is not populated.
	ErrPersistence = errors.New("dealrisk: persistence failed")

	// ErrCancelled marks a cancelled invocation. No partial state is
	// left behind.
	ErrCancelled = errors.New("dealrisk: analysis cancelled")
)
