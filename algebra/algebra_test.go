package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/catalog"
	"github.com/graphalg/acore/semiring"
)

// buildTriangle populates Person-labeled nodes 0,1,2 and a KNOWS ring
// 0->1->2->0.
func buildTriangle(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for i := 0; i < 3; i++ {
		_, err := c.CreateNode([]string{"Person"}, nil)
		require.NoError(t, err)
	}
	_, err := c.CreateEdge("KNOWS", 0, 1, nil)
	require.NoError(t, err)
	_, err = c.CreateEdge("KNOWS", 1, 2, nil)
	require.NoError(t, err)
	_, err = c.CreateEdge("KNOWS", 2, 0, nil)
	require.NoError(t, err)
	return c
}

func path1Hop() algebra.PatternPath {
	src := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 0}
	dst := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 1}
	edge := &algebra.QueryEdge{RelTypes: []string{"KNOWS"}, Outbound: true, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 1}
	return algebra.PatternPath{Nodes: []*algebra.QueryNode{src, dst}, Edges: []*algebra.QueryEdge{edge}}
}

func TestBuildSingleHopProducesOneSegment(t *testing.T) {
	g := buildTriangle(t)
	b := algebra.NewBuilder(g, semiring.Boolean)

	exprs, err := b.Build(path1Hop())
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	require.Equal(t, 0, exprs[0].SrcIdx)
	require.Equal(t, 1, exprs[0].DestIdx)
}

func TestBuildIsolatesVariableLengthEdgeIntoOwnSegment(t *testing.T) {
	g := buildTriangle(t)
	b := algebra.NewBuilder(g, semiring.Boolean)

	a := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 0}
	mid := &algebra.QueryNode{Labels: nil, RecordIdx: algebra.NotInRecord}
	z := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 2}
	e1 := &algebra.QueryEdge{RelTypes: []string{"KNOWS"}, Outbound: true, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 3}
	e2 := &algebra.QueryEdge{RelTypes: []string{"KNOWS"}, Outbound: true, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 1}
	path := algebra.PatternPath{
		Nodes: []*algebra.QueryNode{a, mid, z},
		Edges: []*algebra.QueryEdge{e1, e2},
	}

	exprs, err := b.Build(path)
	require.NoError(t, err)
	require.Len(t, exprs, 2)
	require.Equal(t, 1, exprs[0].MinHops)
	require.Equal(t, 3, exprs[0].MaxHops)
	require.Equal(t, 1, exprs[1].MinHops)
	require.Equal(t, 1, exprs[1].MaxHops)
}

func TestEvaluateSingleHopMatchesAdjacency(t *testing.T) {
	g := buildTriangle(t)
	b := algebra.NewBuilder(g, semiring.Boolean)

	exprs, err := b.Build(path1Hop())
	require.NoError(t, err)
	require.Len(t, exprs, 1)

	(algebra.Optimizer{}).Optimize(exprs[0])

	m, err := algebra.Evaluate(exprs[0], semiring.Boolean)
	require.NoError(t, err)

	v, ok := m.At(1, 0)
	require.True(t, ok)
	require.True(t, v.B)

	_, ok = m.At(0, 0)
	require.False(t, ok)
}

func TestEvaluateInboundEdgeTransposesAdjacency(t *testing.T) {
	g := buildTriangle(t)
	b := algebra.NewBuilder(g, semiring.Boolean)

	src := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 0}
	dst := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 1}
	edge := &algebra.QueryEdge{RelTypes: []string{"KNOWS"}, Outbound: false, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 1}
	path := algebra.PatternPath{Nodes: []*algebra.QueryNode{src, dst}, Edges: []*algebra.QueryEdge{edge}}

	exprs, err := b.Build(path)
	require.NoError(t, err)

	m, err := algebra.Evaluate(exprs[0], semiring.Boolean)
	require.NoError(t, err)

	// KNOWS has 0->1; reversed, node 1 sees node 0 as an inbound source.
	v, ok := m.At(0, 1)
	require.True(t, ok)
	require.True(t, v.B)
}

func TestOptimizeHoistsTransposeToLeaves(t *testing.T) {
	g := buildTriangle(t)
	b := algebra.NewBuilder(g, semiring.Boolean)

	exprs, err := b.Build(path1Hop())
	require.NoError(t, err)
	expr := exprs[0]

	wrapped := &algebra.Expr{Root: algebra.WrapTranspose(expr.Root)}
	(algebra.Optimizer{}).Optimize(wrapped)

	// After hoisting, no Operation node of kind TRANSPOSE should remain
	// above a Mul/Add: the root is either an *Operand or a non-Transpose
	// *Operation.
	requireNoTransposeOperation(t, wrapped.Root)
}

func requireNoTransposeOperation(t *testing.T, e algebra.Expression) {
	t.Helper()
	op, ok := e.(*algebra.Operation)
	if !ok {
		return
	}
	require.NotEqual(t, algebra.Transpose, op.Op)
	requireNoTransposeOperation(t, op.Children[0])
	if op.Children[1] != nil {
		requireNoTransposeOperation(t, op.Children[1])
	}
}

func TestOptimizeDistributesAndMarksSharedOperandReusable(t *testing.T) {
	g := buildTriangle(t)
	b := algebra.NewBuilder(g, semiring.Boolean)
	exprs, err := b.Build(path1Hop())
	require.NoError(t, err)
	left := exprs[0].Root.(*algebra.Operation).Children[0]

	knows, err := g.RelMatrix("KNOWS")
	require.NoError(t, err)
	rightA := &algebra.Operand{Matrix: knows, Label: "A"}
	rightB := &algebra.Operand{Matrix: knows, Label: "B"}
	sum := &algebra.Operation{Op: algebra.Add, Children: [2]algebra.Expression{rightA, rightB}}
	mulExpr := &algebra.Expr{Root: &algebra.Operation{Op: algebra.Mul, Children: [2]algebra.Expression{left, sum}}}

	(algebra.Optimizer{}).Optimize(mulExpr)

	top, ok := mulExpr.Root.(*algebra.Operation)
	require.True(t, ok)
	require.Equal(t, algebra.Add, top.Op)

	leftMul, ok := top.Children[0].(*algebra.Operation)
	require.True(t, ok)
	rightMul, ok := top.Children[1].(*algebra.Operation)
	require.True(t, ok)

	sharedLeft, ok := leftMul.Children[0].(*algebra.Operand)
	require.True(t, ok)
	sharedRight, ok := rightMul.Children[0].(*algebra.Operand)
	require.True(t, ok)
	require.Same(t, sharedLeft, sharedRight)
	require.True(t, sharedLeft.Reusable)

	result, err := algebra.Evaluate(mulExpr, semiring.Boolean)
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestEvaluateUsesScaleRowsForDiagonalLeftOperand(t *testing.T) {
	g := buildTriangle(t)
	label, err := g.LabelMatrix("Person")
	require.NoError(t, err)
	knows, err := g.RelMatrix("KNOWS")
	require.NoError(t, err)

	operand := &algebra.Operand{Matrix: label, Diagonal: true}
	rel := &algebra.Operand{Matrix: knows}
	expr := &algebra.Expr{Root: &algebra.Operation{Op: algebra.Mul, Children: [2]algebra.Expression{operand, rel}}}

	result, err := algebra.Evaluate(expr, semiring.Boolean)
	require.NoError(t, err)

	v, ok := result.At(1, 0)
	require.True(t, ok)
	require.True(t, v.B)
}
