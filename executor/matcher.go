package executor

import (
	"fmt"
	"strings"

	"github.com/mereth/vertexdb/internal/kv"
	"github.com/mereth/vertexdb/ir"
	"github.com/mereth/vertexdb/planner"
)

// Matcher resolves a Constraint pattern against the store: given which of
// its variables are already bound, it returns every row of bindings for
// the rest (spec.md section 1's "actual query execution engine" this repo
// stands a minimal version of in for).
type Matcher interface {
	Match(snap kv.Snapshot, c *ir.Constraint, dir planner.Direction, bound Row) ([]Row, error)
}

// KVMatcher is a generic edge-list matcher over internal/kv: every binary
// constraint is stored as a forward key "f\x00<kind>\x00<from>" -> newline
// separated target values, plus a reverse index "r\x00<kind>\x00<to>" for
// the opposite direction, the same forward/reverse index pairing the
// teacher's storage layer keeps for datoms (datalog/storage). `links` gets
// its own three-column forward/reverse pair keyed by relation and by
// player respectively. Unary type-list/iid filters have no backing data in
// this stand-in and pass every row through unchanged — a real type system
// would resolve them from schema, which is out of this repo's scope.
type KVMatcher struct{}

func NewKVMatcher() *KVMatcher { return &KVMatcher{} }

func encode(v interface{}) string { return fmt.Sprintf("%v", v) }

func fwdKey(kind ir.ConstraintKind, from interface{}) kv.Key {
	return kv.Key("f\x00" + kind.String() + "\x00" + encode(from) + "\x00")
}

func revKey(kind ir.ConstraintKind, to interface{}) kv.Key {
	return kv.Key("r\x00" + kind.String() + "\x00" + encode(to) + "\x00")
}

func linksFwdKey(relation interface{}) kv.Key { return kv.Key("lf\x00" + encode(relation) + "\x00") }
func linksRevKey(player interface{}) kv.Key   { return kv.Key("lr\x00" + encode(player) + "\x00") }

func prefixEnd(prefix kv.Key) kv.Key {
	end := append(kv.Key(nil), prefix...)
	return append(end, 0xFF)
}

// scanTargets returns every value stored under the single key prefix key
// (one kv record per Put call during load, spec.md's store being
// append/overwrite rather than multi-valued per key).
func scanTargets(snap kv.Snapshot, prefix kv.Key) ([]string, error) {
	it, err := snap.Scan(prefix, prefixEnd(prefix), kv.Canonical)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var out []string
	for it.Next() {
		out = append(out, strings.Split(string(it.Entry().Value), "\n")...)
	}
	return out, nil
}

func (m *KVMatcher) Match(snap kv.Snapshot, c *ir.Constraint, dir planner.Direction, bound Row) ([]Row, error) {
	if c.Kind.IsLinks() {
		return m.matchLinks(snap, c, bound)
	}
	if !c.Kind.IsBinary() {
		return []Row{{}}, nil // unary filters: pass through unchanged (no backing schema data)
	}

	from, to := c.From, c.To
	if dir == planner.DirectionReverse {
		from, to = to, from
	}
	fromVal, fromBound := bound.Get(from)
	if !fromBound {
		return nil, fmt.Errorf("executor: constraint %s traversed from unbound variable %s", c, from)
	}

	var prefix kv.Key
	if dir == planner.DirectionCanonical {
		prefix = fwdKey(c.Kind, fromVal)
	} else {
		prefix = revKey(c.Kind, fromVal)
	}
	targets, err := scanTargets(snap, prefix)
	if err != nil {
		return nil, err
	}
	toVal, toBound := bound.Get(to)
	rows := make([]Row, 0, len(targets))
	for _, t := range targets {
		if toBound && t != encode(toVal) {
			continue
		}
		rows = append(rows, Row{to: t})
	}
	return rows, nil
}

func (m *KVMatcher) matchLinks(snap kv.Snapshot, c *ir.Constraint, bound Row) ([]Row, error) {
	relation, player, role := c.From, c.To, c.Role
	relVal, relBound := bound.Get(relation)
	playerVal, playerBound := bound.Get(player)

	switch {
	case relBound:
		pairs, err := scanTargets(snap, linksFwdKey(relVal))
		if err != nil {
			return nil, err
		}
		rows := decodeLinkPairs(pairs, player, role)
		if !playerBound {
			return rows, nil
		}
		kept := make([]Row, 0, len(rows))
		for _, r := range rows {
			if encode(r[player]) == encode(playerVal) {
				kept = append(kept, r)
			}
		}
		return kept, nil
	case playerBound:
		pairs, err := scanTargets(snap, linksRevKey(playerVal))
		if err != nil {
			return nil, err
		}
		return decodeLinkPairs(pairs, relation, role), nil
	default:
		return nil, fmt.Errorf("executor: links constraint %s has neither relation nor player bound", c)
	}
}

// decodeLinkPairs parses "value\x01role" entries into rows binding the
// named other-endpoint and role variables.
func decodeLinkPairs(pairs []string, otherVar, roleVar ir.VariableID) []Row {
	rows := make([]Row, 0, len(pairs))
	for _, p := range pairs {
		parts := strings.SplitN(p, "\x01", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		rows = append(rows, Row{otherVar: parts[0], roleVar: parts[1]})
	}
	return rows
}
