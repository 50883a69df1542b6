// Command algcore is a stand-alone driver that builds a small in-memory
// graph, runs a couple of canned plans against it, and prints the
// records each one produces. It exists to exercise BuildPlan/RunPlan
// end to end outside of any embedding host; it is not a query shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/catalog"
	"github.com/graphalg/acore/config"
	"github.com/graphalg/acore/expr"
	_ "github.com/graphalg/acore/ops" // registers the operator builders BuildPlan dispatches to
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/sival"
	"github.com/graphalg/acore/storage"
)

// A plain flag.FlagSet is enough surface for this single-purpose demo
// driver (a ring size and a hop bound); cobra/pflag earn their weight
// on a multi-subcommand CLI, which this isn't (see DESIGN.md).
var (
	ringSize = flag.Int("ring-size", 6, "number of Person nodes in the demo KNOWS ring")
	maxHops  = flag.Int("max-hops", 2, "upper hop bound for the variable-length demo query")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "algcore:", err)
		os.Exit(1)
	}
}

func run() error {
	g := buildDemoGraph(*ringSize)
	cfg := config.Load()

	queries := map[string]plan.AST{
		"direct-knows": directKnowsQuery(g, cfg),
		"reachable":    reachableQuery(g, cfg, *maxHops),
	}

	ctx := context.Background()
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.ThreadPoolSize)

	results := make(map[string]*record.Collector, len(queries))
	for name, q := range queries {
		name, q := name, q
		sink := &record.Collector{}
		results[name] = sink
		grp.Go(func() error {
			runID := uuid.New()
			start := time.Now()
			if err := plan.Execute(gctx, q, nil, sink); err != nil {
				return fmt.Errorf("query %q (run %s): %w", name, runID, err)
			}
			fmt.Printf("query %-12s run=%s rows=%s elapsed=%s\n",
				name, runID, humanize.Comma(int64(len(sink.Records))), time.Since(start))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	for _, name := range []string{"direct-knows", "reachable"} {
		fmt.Printf("\n%s:\n", name)
		lines := lo.Map(results[name].Records, func(r *record.Record, _ int) string {
			return describePair(r)
		})
		for _, line := range lines {
			fmt.Println("  " + line)
		}
	}
	return nil
}

// buildDemoGraph populates a KNOWS ring of n Person nodes, mirroring
// the shape this module's own tests fix on but sized from a flag.
func buildDemoGraph(n int) storage.Graph {
	c := catalog.New()
	for i := 0; i < n; i++ {
		if _, err := c.CreateNode([]string{"Person"}, map[string]sival.Value{
			"name": sival.StringVal(fmt.Sprintf("p%d", i)),
		}); err != nil {
			panic(err)
		}
	}
	for i := 0; i < n; i++ {
		if _, err := c.CreateEdge("KNOWS", int64(i), int64((i+1)%n), nil); err != nil {
			panic(err)
		}
	}
	return c
}

// demoAST is the minimal plan.AST a standalone caller assembles itself,
// since parsing a query into this shape is out of scope for this core.
type demoAST struct {
	root  plan.ASTNode
	graph storage.Graph
	sr    semiring.Semiring
	cfg   *config.Config
	width int
}

func (a demoAST) Root() plan.ASTNode          { return a.root }
func (a demoAST) Graph() storage.Graph        { return a.graph }
func (a demoAST) Semiring() semiring.Semiring { return a.sr }
func (a demoAST) Config() *config.Config      { return a.cfg }
func (a demoAST) RecordWidth() int            { return a.width }

// directKnowsQuery builds MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a, b.
func directKnowsQuery(g storage.Graph, cfg *config.Config) demoAST {
	const width = 2
	path := algebra.PatternPath{
		Nodes: []*algebra.QueryNode{
			{Labels: []string{"Person"}, RecordIdx: 0},
			{Labels: []string{"Person"}, RecordIdx: 1},
		},
		Edges: []*algebra.QueryEdge{
			{RelTypes: []string{"KNOWS"}, Outbound: true, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 1},
		},
	}
	match := &ast.MatchNode{Path: path}
	project := &ast.ProjectNode{
		Items: []ast.ProjectItem{
			{Value: expr.Slot{Idx: 0}, DestSlot: 0},
			{Value: expr.Slot{Idx: 1}, DestSlot: 1},
		},
		Upstream: match,
	}
	return demoAST{root: project, graph: g, sr: semiring.Boolean, cfg: cfg, width: width}
}

// reachableQuery builds MATCH (a:Person)-[:KNOWS*1..maxHops]->(b:Person)
// RETURN a, b, demonstrating the variable-length traversal operator.
func reachableQuery(g storage.Graph, cfg *config.Config, maxHops int) demoAST {
	const width = 2
	path := algebra.PatternPath{
		Nodes: []*algebra.QueryNode{
			{Labels: []string{"Person"}, RecordIdx: 0},
			{Labels: []string{"Person"}, RecordIdx: 1},
		},
		Edges: []*algebra.QueryEdge{
			{RelTypes: []string{"KNOWS"}, Outbound: true, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: maxHops},
		},
	}
	match := &ast.MatchNode{Path: path}
	project := &ast.ProjectNode{
		Items: []ast.ProjectItem{
			{Value: expr.Slot{Idx: 0}, DestSlot: 0},
			{Value: expr.Slot{Idx: 1}, DestSlot: 1},
		},
		Upstream: match,
	}
	return demoAST{root: project, graph: g, sr: semiring.Boolean, cfg: cfg, width: width}
}

func describePair(r *record.Record) string {
	a, _ := r.Get(0).Node()
	b, _ := r.Get(1).Node()
	return fmt.Sprintf("%s -> %s", nodeLabel(a), nodeLabel(b))
}

func nodeLabel(n sival.NodeRef) string {
	if len(n.Labels) == 0 {
		return fmt.Sprintf("Node(%d)", n.ID)
	}
	return fmt.Sprintf("%s(%d)", n.Labels[0], n.ID)
}
