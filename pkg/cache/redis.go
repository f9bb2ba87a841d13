package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// setIfAbsentScript is the multi-process counterpart to the
// single-flight guard the orchestrator runs in-process: it lets a
// distributed deployment claim "I am computing this contract's
// analysis" atomically, so at most one process proceeds past the
// cache-miss point for a given key at a time. Mirrors the token-bucket
// script's pattern of one atomic read-check-write round trip.
var setIfAbsentScript = redis.NewScript(`
local key = KEYS[1]
local claim = ARGV[1]
local ttl_ms = tonumber(ARGV[2])
if redis.call("EXISTS", key) == 1 then
    return 0
end
redis.call("SET", key, claim, "PX", ttl_ms)
return 1
`)

// RedisAnalysisCache is the multi-process backing for the analysis
// cache, for deployments running more than one orchestrator process
// against the same contract population.
type RedisAnalysisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisAnalysisCache connects to addr/db with the given password
// (empty for none).
func NewRedisAnalysisCache(addr, password string, db int) *RedisAnalysisCache {
	return &RedisAnalysisCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		prefix: "dealrisk:analysis:",
	}
}

func (c *RedisAnalysisCache) key(contractID string) string {
	return c.prefix + contractID
}

// Get fetches and decodes a cached analysis, returning false on a
// miss, decode failure, or transport error (all treated as a miss:
// the orchestrator simply recomputes).
func (c *RedisAnalysisCache) Get(ctx context.Context, contractID string) (model.RiskAnalysis, bool) {
	raw, err := c.client.Get(ctx, c.key(contractID)).Bytes()
	if err != nil {
		return model.RiskAnalysis{}, false
	}
	var analysis model.RiskAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return model.RiskAnalysis{}, false
	}
	return analysis, true
}

// Set stores analysis under contractID with the given TTL.
func (c *RedisAnalysisCache) Set(ctx context.Context, contractID string, analysis model.RiskAnalysis, ttl time.Duration) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("cache: marshal analysis: %w", err)
	}
	return c.client.Set(ctx, c.key(contractID), raw, ttl).Err()
}

// Clear deletes one contract's entry, or every entry under this
// cache's key prefix when contractID is empty.
func (c *RedisAnalysisCache) Clear(ctx context.Context, contractID string) error {
	if contractID != "" {
		return c.client.Del(ctx, c.key(contractID)).Err()
	}
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ClaimComputation atomically claims the right to compute contractID's
// analysis for ttl, returning true if the claim was acquired. Used by
// multi-process deployments as the distributed analogue of the
// in-process single-flight join in the orchestrator.
func (c *RedisAnalysisCache) ClaimComputation(ctx context.Context, contractID, claimant string, ttl time.Duration) (bool, error) {
	res, err := setIfAbsentScript.Run(ctx, c.client, []string{"dealrisk:claim:" + contractID}, claimant, ttl.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("cache: claim script: %w", err)
	}
	acquired, _ := res.(int64)
	return acquired == 1, nil
}
