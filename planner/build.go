package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
)

// PlanConjunction builds a sealed Graph for one conjunction and runs the
// configured search strategy over it, producing a Plan (spec 2: "IR →
// Builder registers variables and constraints → search produces an
// ordering and per-pattern metadata"). It is the single entry point used
// both for top-level queries and for recursively planning negation and
// disjunction sub-conjunctions (spec 4.3, 4.6).
func PlanConjunction(conj *ir.Conjunction, inputs []ir.VariableID, registry schema.VariableRegistry, annotations schema.TypeAnnotations, statsOracle stats.Oracle, opts Options) (*Plan, *Graph, error) {
	var cacheKey uint64
	useCache := opts.EnableCache && opts.Cache != nil
	if useCache {
		cacheKey = CacheKey(conjunctionSignature(conj), inputs)
		if cached, ok := opts.Cache.Get(cacheKey); ok {
			return cached, cached.Graph, nil
		}
	}

	g := NewGraph(statsOracle, registry, annotations, opts)

	inputSet := make(map[ir.VariableID]bool, len(inputs))
	for _, id := range inputs {
		inputSet[id] = true
	}

	// Pass 1: inputs (spec 4.2's registration order — inputs first).
	for _, id := range inputs {
		if err := g.RegisterVariable(id, ir.OriginInput); err != nil {
			return nil, nil, err
		}
	}

	// Pass 2: every other variable referenced anywhere in the
	// conjunction, in ascending id order. This collapses the reference
	// three-pass split (inputs / captured-from-enclosing-scope / locally
	// declared) into inputs-vs-everything-else: within one conjunction,
	// captured and locally declared variables are planned identically
	// (both must be produced by a pattern before use), so the distinction
	// only matters for *which* conjunction registers a variable as an
	// input versus a declaration, which PlanConjunction's caller already
	// decided via the `inputs` argument.
	var declared []ir.VariableID
	seen := make(map[ir.VariableID]bool)
	for _, p := range conj.Patterns {
		for _, v := range p.Variables() {
			if inputSet[v] || seen[v] {
				continue
			}
			seen[v] = true
			declared = append(declared, v)
		}
	}
	sort.Slice(declared, func(i, j int) bool { return declared[i] < declared[j] })
	for _, id := range declared {
		if err := g.RegisterVariable(id, ir.OriginDeclared); err != nil {
			return nil, nil, err
		}
	}

	for _, p := range conj.Patterns {
		if err := registerPattern(g, p); err != nil {
			return nil, nil, err
		}
	}

	if err := g.Seal(); err != nil {
		return nil, nil, err
	}

	var plan *Plan
	var err error
	switch opts.Strategy {
	case StrategyGreedy:
		plan, err = GreedySearch(g)
	default:
		plan, err = BeamSearch(g)
	}
	if err != nil {
		return nil, nil, err
	}
	if useCache {
		opts.Cache.Put(cacheKey, plan)
	}
	return plan, g, nil
}

// conjunctionSignature renders a conjunction's pattern list into a string
// unique to its structural shape, for use as a PlanCache key component
// (CacheKey also folds in the caller's input bindings, since those affect
// which costs/directions are valid even for an identical pattern shape).
func conjunctionSignature(conj *ir.Conjunction) string {
	var b strings.Builder
	for _, p := range conj.Patterns {
		fmt.Fprintf(&b, "%d:%s;", p.ID(), p.String())
	}
	return b.String()
}

// registerPattern dispatches a single pattern to the matching Graph
// Register* method.
func registerPattern(g *Graph, p ir.Pattern) error {
	switch pat := p.(type) {
	case *ir.Constraint:
		return g.RegisterConstraint(pat)
	case *ir.Is:
		return g.RegisterIs(pat)
	case *ir.Comparison:
		return g.RegisterComparison(pat)
	case *ir.Expression:
		return g.RegisterExpression(pat)
	case *ir.FunctionCall:
		return g.RegisterFunctionCall(pat)
	case *ir.Negation:
		return g.RegisterNegation(pat)
	case *ir.Disjunction:
		return g.RegisterDisjunction(pat)
	default:
		return invariantViolation("unrecognized pattern type %T", p)
	}
}
