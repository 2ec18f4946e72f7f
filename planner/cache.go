package planner

import (
	"strconv"
	"strings"
	"sync"

	"github.com/mereth/vertexdb/ir"
	"github.com/zeebo/xxh3"
)

// PlanCache memoizes plans by a structural key, avoiding re-running search
// for a conjunction shape/input-binding combination already planned. The
// teacher keys its plan cache with crypto/sha256 over a serialized query;
// a cryptographic hash buys nothing for a cache key with no adversarial
// input, so this repo keys with xxh3 instead (non-cryptographic, much
// faster, sourced from the pack's aleksaelezovic-trigo example).
type PlanCache struct {
	mu      sync.RWMutex
	entries map[uint64]*Plan
}

// NewPlanCache returns an empty cache.
func NewPlanCache() *PlanCache {
	return &PlanCache{entries: make(map[uint64]*Plan)}
}

// Get looks up a previously cached plan.
func (c *PlanCache) Get(key uint64) (*Plan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[key]
	return p, ok
}

// Put stores a plan under key, overwriting any previous entry.
func (c *PlanCache) Put(key uint64, plan *Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = plan
}

// CacheKey derives a cache key from a conjunction's structural signature
// (caller-supplied — typically a canonical render of its patterns) and the
// ids of the variables bound as inputs, whose identity affects which
// traversal directions/costs are valid even for an otherwise identical
// conjunction shape.
func CacheKey(signature string, inputs []ir.VariableID) uint64 {
	var b strings.Builder
	b.WriteString(signature)
	b.WriteByte('|')
	for i, id := range inputs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return xxh3.HashString(b.String())
}
