package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/ops"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

func TestLabelScanYieldsEveryNodeWithLabel(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	scan := ops.NewLabelScan("Person", 0, 1)
	require.NoError(t, scan.Init(ctx))
	defer scan.Free()

	rows := drain(t, scan)
	require.Len(t, rows, 3)
	for _, r := range rows {
		n, ok := r.Get(0).Node()
		require.True(t, ok)
		require.Contains(t, n.Labels, "Person")
	}
}

func TestAllNodeScanIgnoresLabel(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	_, err := g.CreateNode(nil, nil)
	require.NoError(t, err)

	scan := ops.NewAllNodeScan(0, 1)
	require.NoError(t, scan.Init(ctx))
	defer scan.Free()

	rows := drain(t, scan)
	require.Len(t, rows, 4)
}

func TestConditionalTraverseFollowsRing(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	scan := ops.NewLabelScan("Person", 0, 2)
	trav := ops.NewConditionalTraverse(path1Hop(), 0, 1, algebra.NotInRecord, 2)
	trav.Children = []plan.Operator{scan}

	require.NoError(t, trav.Init(ctx))
	defer trav.Free()

	rows := drain(t, trav)
	require.Len(t, rows, 3)

	seen := make(map[int64]int64)
	for _, r := range rows {
		src, ok := r.Get(0).Node()
		require.True(t, ok)
		dst, ok := r.Get(1).Node()
		require.True(t, ok)
		seen[src.ID] = dst.ID
	}
	require.Equal(t, map[int64]int64{0: 1, 1: 2, 2: 0}, seen)
}

func TestConditionalTraverseInboundReversesEdges(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	src := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 0}
	dst := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 1}
	edge := &algebra.QueryEdge{RelTypes: []string{"KNOWS"}, Outbound: false, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 1}
	path := algebra.PatternPath{Nodes: []*algebra.QueryNode{src, dst}, Edges: []*algebra.QueryEdge{edge}}

	scan := ops.NewLabelScan("Person", 0, 2)
	trav := ops.NewConditionalTraverse(path, 0, 1, algebra.NotInRecord, 2)
	trav.Children = []plan.Operator{scan}

	require.NoError(t, trav.Init(ctx))
	defer trav.Free()

	rows := drain(t, trav)
	require.Len(t, rows, 3)

	seen := make(map[int64]int64)
	for _, r := range rows {
		s, _ := r.Get(0).Node()
		d, _ := r.Get(1).Node()
		seen[s.ID] = d.ID
	}
	// KNOWS is 0->1->2->0; reversed, 1 sees 0, 2 sees 1, 0 sees 2.
	require.Equal(t, map[int64]int64{1: 0, 2: 1, 0: 2}, seen)
}

func TestVarLenTraverseExpandsWithinHopBounds(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	scan := ops.NewLabelScan("Person", 0, 2)
	trav := ops.NewVarLenTraverse([]string{"KNOWS"}, true, 0, 1, algebra.NotInRecord, 1, 2, 2)
	trav.Children = []plan.Operator{scan}

	require.NoError(t, trav.Init(ctx))
	defer trav.Free()

	rows := drain(t, trav)
	// Each of the 3 source nodes reaches exactly 2 distinct nodes within
	// 1-2 hops around a 3-cycle (every other node, plus the one after).
	require.Len(t, rows, 6)

	destsFrom := make(map[int64]map[int64]bool)
	for _, r := range rows {
		s, _ := r.Get(0).Node()
		d, _ := r.Get(1).Node()
		if destsFrom[s.ID] == nil {
			destsFrom[s.ID] = make(map[int64]bool)
		}
		destsFrom[s.ID][d.ID] = true
	}
	require.Equal(t, map[int64]bool{1: true, 2: true}, destsFrom[0])
	require.Equal(t, map[int64]bool{2: true, 0: true}, destsFrom[1])
	require.Equal(t, map[int64]bool{0: true, 1: true}, destsFrom[2])
}

func TestVarLenTraverseZeroMinHopsIncludesSourceItself(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	scan := ops.NewLabelScan("Person", 0, 2)
	trav := ops.NewVarLenTraverse([]string{"KNOWS"}, true, 0, 1, algebra.NotInRecord, 0, 1, 2)
	trav.Children = []plan.Operator{scan}

	require.NoError(t, trav.Init(ctx))
	defer trav.Free()

	rows := drain(t, trav)
	// Each of the 3 source nodes reaches itself (0 hops) plus its one
	// outbound neighbor (1 hop).
	require.Len(t, rows, 6)

	destsFrom := make(map[int64]map[int64]bool)
	for _, r := range rows {
		s, _ := r.Get(0).Node()
		d, _ := r.Get(1).Node()
		if destsFrom[s.ID] == nil {
			destsFrom[s.ID] = make(map[int64]bool)
		}
		destsFrom[s.ID][d.ID] = true
	}
	require.Equal(t, map[int64]bool{0: true, 1: true}, destsFrom[0])
	require.Equal(t, map[int64]bool{1: true, 2: true}, destsFrom[1])
	require.Equal(t, map[int64]bool{2: true, 0: true}, destsFrom[2])
}

func TestVarLenTraverseRejectsMinHopsGreaterThanMaxHops(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	scan := ops.NewLabelScan("Person", 0, 2)
	trav := ops.NewVarLenTraverse([]string{"KNOWS"}, true, 0, 1, algebra.NotInRecord, 3, 2, 2)
	trav.Children = []plan.Operator{scan}

	require.Error(t, trav.Init(ctx))
}

func TestVarLenTraverseBindsPathWhenEdgeSlotRequested(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	scan := ops.NewLabelScan("Person", 0, 3)
	trav := ops.NewVarLenTraverse([]string{"KNOWS"}, true, 0, 1, 2, 1, 1, 3)
	trav.Children = []plan.Operator{scan}

	require.NoError(t, trav.Init(ctx))
	defer trav.Free()

	rows := drain(t, trav)
	require.Len(t, rows, 3)
	for _, r := range rows {
		p, ok := r.Get(2).PathValue()
		require.True(t, ok)
		require.Len(t, p.Nodes, 2)
	}
}

func TestAllShortestPathsFindsShortestRouteAroundRing(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	n0, _ := g.GetNode(0)
	n2, _ := g.GetNode(2)
	seed := record.New(3)
	seed.Set(0, sival.NodeVal(n0))
	seed.Set(1, sival.NodeVal(n2))
	src := newFakeSource(seed)

	asp := ops.NewAllShortestPaths([]string{"KNOWS"}, true, 0, 1, 2, 3)
	asp.Children = []plan.Operator{src}

	require.NoError(t, asp.Init(ctx))
	defer asp.Free()

	rows := drain(t, asp)
	require.Len(t, rows, 1)
	p, ok := rows[0].Get(2).PathValue()
	require.True(t, ok)
	// 0 -> 1 -> 2 is the only route from 0 to 2 around the ring.
	require.Len(t, p.Nodes, 3)
	require.Equal(t, int64(0), p.Nodes[0].ID)
	require.Equal(t, int64(2), p.Nodes[2].ID)
}
