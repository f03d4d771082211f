package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"voltshop/pkg/compat"
	"voltshop/pkg/interfaces"

	"github.com/go-redis/redis/v8"
)

const (
	// DefaultVerdictTTL is the default TTL for cached compatibility verdicts
	DefaultVerdictTTL = 5 * time.Minute

	verdictKeyPrefix  = "compat:verdict:"
	verdictVersionKey = "compat:rules:version"
)

// VerdictCache caches compatibility evaluation results keyed by a digest of
// the selection. The cache key incorporates a rules version counter that rule
// mutations bump, so stale verdicts fall out without explicit invalidation.
type VerdictCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerdictCache creates a verdict cache over an existing Redis client
func NewVerdictCache(client *redis.Client, ttl time.Duration) *VerdictCache {
	if ttl <= 0 {
		ttl = DefaultVerdictTTL
	}
	return &VerdictCache{client: client, ttl: ttl}
}

// SelectionDigest produces a stable digest for a selection regardless of its
// ordering
func SelectionDigest(selections []interfaces.SelectedComponent) string {
	keys := make([]string, 0, len(selections))
	for _, sel := range selections {
		keys = append(keys, fmt.Sprintf("%d:%s", sel.CategoryID, sel.ProductID))
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached verdict for a selection, or nil on miss
func (c *VerdictCache) Get(ctx context.Context, selections []interfaces.SelectedComponent) *compat.EvaluationResult {
	if c == nil || c.client == nil {
		return nil
	}

	key, err := c.key(ctx, selections)
	if err != nil {
		return nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}

	var result compat.EvaluationResult
	if json.Unmarshal(data, &result) != nil {
		return nil
	}
	return &result
}

// Set stores a verdict for a selection
func (c *VerdictCache) Set(ctx context.Context, selections []interfaces.SelectedComponent, result *compat.EvaluationResult) {
	if c == nil || c.client == nil || result == nil {
		return
	}

	key, err := c.key(ctx, selections)
	if err != nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	// Cache write failures are not fatal, the next check recomputes
	c.client.Set(ctx, key, data, c.ttl)
}

// BumpRulesVersion invalidates every cached verdict by rotating the version
// embedded in cache keys. Called whenever a rule is created, updated or
// deleted.
func (c *VerdictCache) BumpRulesVersion(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, verdictVersionKey).Err()
}

func (c *VerdictCache) key(ctx context.Context, selections []interfaces.SelectedComponent) (string, error) {
	version, err := c.client.Get(ctx, verdictVersionKey).Result()
	if err == redis.Nil {
		version = "0"
	} else if err != nil {
		return "", err
	}
	return verdictKeyPrefix + version + ":" + SelectionDigest(selections), nil
}
