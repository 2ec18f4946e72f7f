package executor

import (
	"strings"

	"github.com/mereth/vertexdb/internal/kv"
	"github.com/mereth/vertexdb/ir"
)

// PutEdge records one forward/reverse edge pair for a binary constraint
// kind, the write-side counterpart of KVMatcher's read-side scans. Each
// (kind, from) pair holds a single target in this stand-in store — a real
// multi-valued index is out of scope here (see KVMatcher's doc comment).
func PutEdge(batch kv.WriteBatch, kind ir.ConstraintKind, from, to interface{}) {
	batch.Put(fwdKey(kind, from), []byte(encode(to)))
	batch.Put(revKey(kind, to), []byte(encode(from)))
}

// LinkPlayer is one (player, role) pair of a relation, as recorded by
// PutLinks.
type LinkPlayer struct {
	Player interface{}
	Role   interface{}
}

// Relation is one relation instance to seed: its identity and every role
// player in it.
type Relation struct {
	ID      interface{}
	Players []LinkPlayer
}

// PutLinks records a batch of relation instances. A relation's forward
// key is written once per relation (one key, every player newline-joined,
// scanTargets already splits on "\n"), but a player can belong to more
// than one of the relations in the batch, so the reverse index has to be
// accumulated across all of them before any reverse key is written —
// writing relations one at a time would let a later relation's single
// Put silently clobber an earlier one's reverse entry for a shared
// player. Seeding every relation a player participates in through one
// PutLinks call keeps that accumulation correct; this is still not a
// general incremental multi-valued index (see KVMatcher's doc comment).
func PutLinks(batch kv.WriteBatch, relations []Relation) {
	reverse := make(map[string][]string)
	for _, rel := range relations {
		pairs := make([]string, len(rel.Players))
		for i, p := range rel.Players {
			pairs[i] = encode(p.Player) + "\x01" + encode(p.Role)
			key := encode(p.Player)
			reverse[key] = append(reverse[key], encode(rel.ID)+"\x01"+encode(p.Role))
		}
		batch.Put(linksFwdKey(rel.ID), []byte(strings.Join(pairs, "\n")))
	}
	for player, entries := range reverse {
		batch.Put(linksRevKey(player), []byte(strings.Join(entries, "\n")))
	}
}
