// Command vertexdb demonstrates the match-query planner end to end: it
// seeds a tiny social graph, plans a query against it, lowers the plan
// into a step tree, and executes that tree against the stand-in executor
// (grounded on cmd/datalog/main.go's demo/flag structure).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/mereth/vertexdb/executor"
	"github.com/mereth/vertexdb/internal/kv"
	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
	"github.com/mereth/vertexdb/planner"
)

func main() {
	var dbPath string
	var help bool
	var beam bool

	flag.StringVar(&dbPath, "db", "vertexdb.db", "database path")
	flag.BoolVar(&beam, "beam", true, "use beam search (false selects greedy)")
	flag.BoolVar(&help, "h", false, "show help")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Plans and runs a demo match query against a seeded social graph.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	store, err := kv.NewBadgerStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	if err := seedIfEmpty(store); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	strategy := planner.StrategyBeam
	if !beam {
		strategy = planner.StrategyGreedy
	}
	if err := runDemoQuery(store, strategy); err != nil {
		log.Fatalf("query failed: %v", err)
	}
}

// Demo variable ids. A real IR builder would assign these; here they are
// fixed constants since this is the only conjunction this binary plans.
const (
	varPerson ir.VariableID = iota
	varRelation
	varOwnRole
	varFriend
	varFriendRole
	varAge
)

func seedIfEmpty(store *kv.BadgerStore) error {
	snap, err := store.Snapshot()
	if err != nil {
		return err
	}
	_, ok, err := snap.Get([]byte("f\x00has\x00alice\x00"))
	snap.Close()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	fmt.Println(color.GreenString("Database is empty, seeding demo data..."))

	batch, err := store.NewBatch()
	if err != nil {
		return err
	}

	executor.PutEdge(batch, ir.ConstraintHas, "alice", int64(30))
	executor.PutEdge(batch, ir.ConstraintHas, "bob", int64(22))
	executor.PutEdge(batch, ir.ConstraintHas, "carol", int64(41))

	executor.PutLinks(batch, []executor.Relation{
		{ID: "friendship-1", Players: []executor.LinkPlayer{
			{Player: "alice", Role: "friend"},
			{Player: "bob", Role: "friend"},
		}},
		{ID: "friendship-2", Players: []executor.LinkPlayer{
			{Player: "alice", Role: "friend"},
			{Player: "carol", Role: "friend"},
		}},
	})

	if err := store.IncrCounter(kv.CounterKey{Namespace: "entity", Type: "person"}, 3); err != nil {
		batch.Discard()
		return err
	}
	if err := store.IncrCounter(kv.CounterKey{Namespace: "edge:has", Type: "person"}, 3); err != nil {
		batch.Discard()
		return err
	}
	if err := store.IncrCounter(kv.CounterKey{Namespace: "edge:index", Type: "friendship"}, 2); err != nil {
		batch.Discard()
		return err
	}

	if err := batch.Commit(); err != nil {
		return err
	}
	fmt.Println(color.GreenString("Seeded 3 people and 2 friendships."))
	return nil
}

// buildConjunction expresses: given $person, find every $friend reachable
// through one relation who is over 25 and isn't $person itself.
//
//	$person "links" $relation (role $ownRole)
//	$relation "links" $friend (role $friendRole)
//	$friend has $age
//	$age > 25
//	$friend != $person
func buildConjunction() *ir.Conjunction {
	patterns := []ir.Pattern{
		ir.NewLinksConstraint(0, varRelation, varPerson, varOwnRole),
		ir.NewLinksConstraint(1, varRelation, varFriend, varFriendRole),
		ir.NewConstraint(2, ir.ConstraintHas, varFriend, varAge),
		ir.NewComparison(3, ir.OpGT, ir.VarOperand(varAge), ir.ConstOperand(int64(25))),
		ir.NewComparison(4, ir.OpNEQ, ir.VarOperand(varFriend), ir.VarOperand(varPerson)),
	}
	return ir.NewConjunction(patterns)
}

func buildRegistry() *schema.MapRegistry {
	reg := schema.NewMapRegistry()
	reg.Set(varPerson, ir.CategoryThing)
	reg.Set(varRelation, ir.CategoryThing)
	reg.Set(varOwnRole, ir.CategoryValue)
	reg.Set(varFriend, ir.CategoryThing)
	reg.Set(varFriendRole, ir.CategoryValue)
	reg.Set(varAge, ir.CategoryAttribute)
	return reg
}

func buildAnnotations() *schema.MapTypeAnnotations {
	ann := schema.NewMapTypeAnnotations()
	ann.Set(varPerson, []schema.TypeLabel{"person"})
	ann.Set(varRelation, []schema.TypeLabel{"friendship"})
	ann.Set(varFriend, []schema.TypeLabel{"person"})
	ann.Set(varAge, []schema.TypeLabel{"age"})
	return ann
}

func runDemoQuery(store *kv.BadgerStore, strategy planner.Strategy) error {
	conj := buildConjunction()
	registry := buildRegistry()
	annotations := buildAnnotations()
	oracle := stats.NewKVOracle(store)

	opts := planner.DefaultOptions()
	opts.Strategy = strategy
	opts.Cache = planner.NewPlanCache()

	plan, _, err := planner.PlanConjunction(conj, []ir.VariableID{varPerson}, registry, annotations, oracle, opts)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}
	printPlanSummary(plan, strategy)

	tree, err := planner.Lower(plan)
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}

	snap, err := store.Snapshot()
	if err != nil {
		return err
	}
	defer snap.Close()

	initial := executor.Row{varPerson: "alice"}
	rows, err := executor.Execute(plan, tree, executor.NewKVMatcher(), executor.FunctionRegistry{}, snap, initial)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	fmt.Println(color.CyanString("\nFriends of alice over 25:"))
	fmt.Println(executor.FormatRows([]ir.VariableID{varFriend, varAge}, rows))
	return nil
}

func printPlanSummary(plan *planner.Plan, strategy planner.Strategy) {
	name := "beam"
	if strategy == planner.StrategyGreedy {
		name = "greedy"
	}
	fmt.Printf("%s %s  %s %.4f\n",
		color.YellowString("Strategy:"), name,
		color.YellowString("Estimated cost:"), plan.Cost.Cost)
	for _, pid := range plan.Patterns() {
		pat, _ := plan.Graph.Pattern(pid)
		meta, _ := plan.MetadataFor(pid)
		fmt.Printf("  %s %s", color.BlueString(pid.String()), pat)
		if meta.HasDirection {
			fmt.Printf(" [%s]", meta.Direction)
		}
		if meta.HasSortVariable {
			fmt.Printf(" -> %s", meta.SortVariable)
		}
		fmt.Println()
	}
}
