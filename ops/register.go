package ops

import (
	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/plan"
)

// init wires every concrete operator in this package into plan's
// registry, one BuilderFunc per NodeTag — the side-effect registration
// plan.RegisterOperator documents (package plan never imports ops).
func init() {
	plan.RegisterOperator(plan.TagMatch, buildMatch)
	plan.RegisterOperator(plan.TagWhere, buildWhere)
	plan.RegisterOperator(plan.TagCreate, buildCreate)
	plan.RegisterOperator(plan.TagMerge, buildMerge)
	plan.RegisterOperator(plan.TagSet, buildSet)
	plan.RegisterOperator(plan.TagDelete, buildDelete)
	plan.RegisterOperator(plan.TagUnwind, buildUnwind)
	plan.RegisterOperator(plan.TagProject, buildProject)
	plan.RegisterOperator(plan.TagAggregate, buildAggregate)
	plan.RegisterOperator(plan.TagSkip, buildSkip)
	plan.RegisterOperator(plan.TagLimit, buildLimit)
	plan.RegisterOperator(plan.TagAllShortestPaths, buildAllShortestPaths)
}

// buildMatch lowers one MATCH clause to a scan (or, when children is
// non-empty, a continuation of the Apply-style upstream binding already
// produced by an earlier clause) followed by one traversal operator per
// algebraic segment of Path, chained in path order.
func buildMatch(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	mn, ok := node.(*ast.MatchNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagMatch node is not *ast.MatchNode")
	}
	path := mn.Path
	if len(path.Nodes) == 0 {
		return nil, errs.New(errs.InvalidParameter, "MATCH pattern has no nodes")
	}

	var cur plan.Operator
	if len(children) > 0 {
		cur = children[0]
	} else {
		start := path.Nodes[0]
		if len(start.Labels) > 0 {
			cur = NewLabelScan(start.Labels[0], start.RecordIdx, width)
		} else {
			cur = NewAllNodeScan(start.RecordIdx, width)
		}
	}

	for _, seg := range algebra.Segments(path) {
		if len(seg.Edges) == 0 {
			continue
		}
		destIdx := seg.Nodes[len(seg.Nodes)-1].RecordIdx
		srcIdx := seg.Nodes[0].RecordIdx
		edgeIdx := algebra.NotInRecord
		if len(seg.Edges) == 1 {
			edgeIdx = seg.Edges[0].RecordIdx
		}

		if len(seg.Edges) == 1 && seg.Edges[0].MinHops != seg.Edges[0].MaxHops {
			e := seg.Edges[0]
			if e.MaxHops > 0 && e.MinHops > e.MaxHops {
				return nil, errs.New(errs.Syntax, "variable-length edge has minHops %d > maxHops %d", e.MinHops, e.MaxHops)
			}
			op := NewVarLenTraverse(e.RelTypes, e.Outbound, srcIdx, destIdx, edgeIdx, e.MinHops, e.MaxHops, width)
			op.Children = []plan.Operator{cur}
			cur = op
			continue
		}

		op := NewConditionalTraverse(seg, srcIdx, destIdx, edgeIdx, width)
		op.Children = []plan.Operator{cur}
		cur = op
	}
	return cur, nil
}

func buildWhere(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	wn, ok := node.(*ast.WhereNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagWhere node is not *ast.WhereNode")
	}
	op := NewFilter(wn.Predicate)
	op.Children = children
	return op, nil
}

// sourceOrSingleRow returns children unchanged when buildChain already
// wired an upstream clause, or a one-record SingleRow source when this
// is the first clause in the chain — the same "synthesize my own
// source when children is empty" move buildMatch makes for a MATCH
// with no preceding clause, generalized to CREATE/MERGE/UNWIND opening
// a query with no MATCH before them.
func sourceOrSingleRow(children []plan.Operator, width int) []plan.Operator {
	if len(children) > 0 {
		return children
	}
	return []plan.Operator{NewSingleRow(width)}
}

func buildCreate(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	cn, ok := node.(*ast.CreateNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagCreate node is not *ast.CreateNode")
	}
	op := NewCreate(cn.Entities)
	op.Children = sourceOrSingleRow(children, width)
	return op, nil
}

func buildMerge(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	mn, ok := node.(*ast.MergeNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagMerge node is not *ast.MergeNode")
	}
	op := NewMerge(mn.Path, mn.OnCreateEntities, mn.OnMatch, mn.OnCreate)
	op.Children = sourceOrSingleRow(children, width)
	return op, nil
}

func buildSet(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	sn, ok := node.(*ast.SetNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagSet node is not *ast.SetNode")
	}
	op := NewUpdate(sn.Updates)
	op.Children = children
	return op, nil
}

func buildDelete(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	dn, ok := node.(*ast.DeleteNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagDelete node is not *ast.DeleteNode")
	}
	op := NewDelete(dn.Targets, dn.Detach)
	op.Children = children
	return op, nil
}

func buildUnwind(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	un, ok := node.(*ast.UnwindNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagUnwind node is not *ast.UnwindNode")
	}
	op := NewUnwind(un.Source, un.DestSlot)
	op.Children = sourceOrSingleRow(children, width)
	return op, nil
}

func buildProject(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	pn, ok := node.(*ast.ProjectNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagProject node is not *ast.ProjectNode")
	}
	items := make([]ProjectItem, len(pn.Items))
	for i, it := range pn.Items {
		items[i] = ProjectItem{Value: it.Value, DestSlot: it.DestSlot}
	}
	op := NewProject(items)
	op.Children = children
	return op, nil
}

func buildAggregate(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	an, ok := node.(*ast.AggregateNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagAggregate node is not *ast.AggregateNode")
	}
	op := NewAggregate(an.GroupBy, an.Aggregations, width)
	op.Children = children
	return op, nil
}

func buildSkip(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	sn, ok := node.(*ast.SkipNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagSkip node is not *ast.SkipNode")
	}
	op := NewSkip(sn.Count)
	op.Children = children
	return op, nil
}

func buildLimit(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	ln, ok := node.(*ast.LimitNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagLimit node is not *ast.LimitNode")
	}
	op := NewLimit(ln.Count)
	op.Children = children
	return op, nil
}

// buildAllShortestPaths enforces the one constraint plan.BuildPlan can't
// check itself: Cypher's allShortestPaths() only ever binds a single
// (not a wider-bounded) hop count on its underlying relationship.
// buildChain/BuildPlan separately reject this node appearing anywhere
// but directly upstream of a projection clause.
func buildAllShortestPaths(node plan.ASTNode, children []plan.Operator, width int) (plan.Operator, error) {
	an, ok := node.(*ast.AllShortestPathsNode)
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "TagAllShortestPaths node is not *ast.AllShortestPathsNode")
	}
	if an.MinHops != 1 {
		return nil, errs.New(errs.Syntax, "allShortestPaths requires a minimum hop bound of 1, got %d", an.MinHops)
	}
	op := NewAllShortestPaths(an.RelTypes, an.Outbound, an.SrcSlot, an.DestSlot, an.PathSlot, width)
	op.Children = children
	return op, nil
}
