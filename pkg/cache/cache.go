// Package cache is the orchestrator's per-contract analysis cache
// (§4.G): a TTL-only, process-wide store, and an optional Redis-backed
// implementation for multi-process deployments. Mutation is always
// serialized, grounded on the mutex-guarded map shape used throughout
// the rule engine and history store.
package cache

import (
	"sync"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

type entry struct {
	analysis  model.RiskAnalysis
	storedAt  time.Time
}

// AnalysisCache is the in-memory, process-wide RiskAnalysis cache.
// Eviction is TTL-only and checked at read time; there is no
// background sweep.
type AnalysisCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewAnalysisCache returns an empty cache.
func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{
		entries: map[string]entry{},
		now:     time.Now,
	}
}

// WithClock overrides the cache's time source, for deterministic tests.
func (c *AnalysisCache) WithClock(now func() time.Time) *AnalysisCache {
	c.now = now
	return c
}

// Get returns the cached analysis for contractID if present and not
// older than ttl.
func (c *AnalysisCache) Get(contractID string, ttl time.Duration) (model.RiskAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[contractID]
	if !ok {
		return model.RiskAnalysis{}, false
	}
	if c.now().Sub(e.storedAt) >= ttl {
		return model.RiskAnalysis{}, false
	}
	return e.analysis, true
}

// Set stores analysis under contractID, stamped with the current time.
func (c *AnalysisCache) Set(contractID string, analysis model.RiskAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[contractID] = entry{analysis: analysis, storedAt: c.now()}
}

// Clear wipes one contract's cache entry, or the entire cache when
// contractID is empty.
func (c *AnalysisCache) Clear(contractID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if contractID == "" {
		c.entries = map[string]entry{}
		return
	}
	delete(c.entries, contractID)
}
