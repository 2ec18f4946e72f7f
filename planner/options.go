package planner

// Strategy selects which search strategy plans a sealed graph. Keeping
// both strategies selectable (rather than only ever running beam) mirrors
// the teacher's dual PlannerAdapter/ClauseBasedPlanner design
// (datalog/planner/interface.go) — greedy remains the fallback for large
// conjunctions where the beam would be pruned too aggressively (spec 9).
type Strategy uint8

const (
	StrategyBeam Strategy = iota
	StrategyGreedy
)

// Options configures the search strategy, its width/extension limits, the
// plan cache and tracing. The cost constants and MinIORatio are package
// constants in cost.go and are not configurable here. It follows
// the way the teacher's PlannerOptions configures both planner and executor
// behavior with a plain struct of values (datalog/planner/types.go) —
// there is no config-file loader because the planner has no persisted
// state (spec 6).
type Options struct {
	Strategy Strategy

	// BeamWidth bounds the plan frontier retained per search depth
	// (spec 6). The reference ceiling is 10^7; real workloads prune far
	// below that, so implementations should default much lower.
	BeamWidth int
	// ExtensionWidth bounds per-plan extension candidates considered per
	// depth (spec 6, default 50).
	ExtensionWidth int

	// EnableCache toggles the plan cache (PlanCache); caching is an
	// ambient optimization, not part of spec.md's planning semantics.
	// Consulted only when Cache is non-nil: PlanConjunction never
	// allocates a cache on a caller's behalf, since a cache is only worth
	// sharing across repeated calls to the same long-lived planner.
	EnableCache bool
	// Cache is the plan cache PlanConjunction reads/writes when
	// EnableCache is set. Left nil by DefaultOptions; a caller that plans
	// the same conjunction shape repeatedly (e.g. a query service running
	// the same prepared query against varying inputs) supplies its own
	// with NewPlanCache.
	Cache *PlanCache

	// Trace receives diagnostic callbacks as search runs. Defaults to
	// NoopTrace{} via DefaultOptions so callers pay nothing unless they
	// opt in.
	Trace Trace
}

// DefaultOptions returns sane defaults: beam search with the practical
// (not reference-ceiling) width spec.md section 6 recommends.
func DefaultOptions() Options {
	return Options{
		Strategy:       StrategyBeam,
		BeamWidth:      1024,
		ExtensionWidth: 50,
		EnableCache:    true,
		Trace:          NoopTrace{},
	}
}
