package plan

import (
	"context"

	"github.com/graphalg/acore/config"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/sival"
	"github.com/graphalg/acore/storage"
)

// Plan is a built, not-yet-executed operator DAG plus the record width
// every operator's static slot indices were assigned against.
type Plan struct {
	Root        Operator
	RecordWidth int

	graph  storage.Graph
	sring  semiring.Semiring
	config *config.Config
}

// NodeTag enumerates the AST node kinds BuildPlan recognizes. A parsed,
// validated AST is assumed as input (parsing itself is out of scope);
// this is the closed set of clause/pattern tags the planner lowers.
type NodeTag int

const (
	TagMatch NodeTag = iota
	TagWhere
	TagCreate
	TagMerge
	TagSet
	TagDelete
	TagUnwind
	TagProject
	TagAggregate
	TagSkip
	TagLimit
	TagAllShortestPaths
)

// ASTNode is one clause of the query pipeline. Concrete node types live
// in the ast package boundary the caller owns; BuildPlan only needs the
// tag to dispatch and Next to walk the clause chain bottom-up (the last
// clause is the root, matching Cypher's textual top-to-bottom,
// pipeline-bottom-up evaluation order).
type ASTNode interface {
	Tag() NodeTag
	Next() ASTNode
}

// AST is the external, already-validated query representation BuildPlan
// consumes. Graph/Semiring/Config are exposed here (rather than on
// RunPlan/Execute) so build_plan stays a pure function of its single
// argument while RunPlan's signature matches the one named in the
// external interfaces list.
type AST interface {
	Root() ASTNode
	Graph() storage.Graph
	Semiring() semiring.Semiring
	Config() *config.Config
	RecordWidth() int
}

// RunPlan drives p.Root to exhaustion, handing every produced Record to
// sink. A runtime error from an operator's Consume trips the plan's
// Breakpoint; an Init error or ctx cancellation is returned without
// tripping it. RunPlan returns that error (or ctx's own error) and
// never applies a second partial mutation after the first failure,
// since commitLock is only ever held for the span of one operator's
// commit phase.
func RunPlan(ctx context.Context, p *Plan, sink record.Sink) error {
	pctx := NewContext(ctx, p.graph, p.sring, p.config)
	if err := p.Root.Init(pctx); err != nil {
		pctx.Logger.Error("plan init failed", "error", err)
		return err
	}
	defer p.Root.Free()

	for {
		if err := pctx.Cancelled(); err != nil {
			pctx.Logger.Warn("plan execution cancelled", "error", err)
			return err
		}
		r, err := p.Root.Consume()
		if err != nil {
			pctx.Breakpoint.Trip(err)
			pctx.Logger.Error("plan execution failed", "error", err)
			return err
		}
		if r == nil {
			if err := pctx.Breakpoint.Err(); err != nil {
				pctx.Logger.Error("plan execution failed", "error", err)
				return err
			}
			return nil
		}
		if err := sink.Emit(r); err != nil {
			pctx.Logger.Error("sink emit failed", "error", err)
			return err
		}
	}
}

// Execute builds and runs ast in one call; params is reserved for a
// caller that resolves query parameters into the AST before calling
// BuildPlan (parameter substitution itself is part of the out-of-scope
// expression/AST layer).
func Execute(ctx context.Context, ast AST, params map[string]sival.Value, sink record.Sink) error {
	p, err := BuildPlan(ast)
	if err != nil {
		return err
	}
	return RunPlan(ctx, p, sink)
}
