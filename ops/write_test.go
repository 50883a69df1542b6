package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/ops"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

func TestCreateStagesNodeAndEdgePerRecord(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	seed := record.New(3)
	src := newFakeSource(seed)

	entities := []ast.EntitySpec{
		{Labels: []string{"Person"}, DestSlot: 0, Props: map[string]expr.Expr{
			"name": expr.Literal{Val: sival.StringVal("Dana")},
		}},
		{IsEdge: true, RelType: "KNOWS", SrcSlot: 0, DstSlot: 0, Outbound: true, DestSlot: 1},
	}
	create := ops.NewCreate(entities)
	create.Children = []plan.Operator{src}

	require.NoError(t, create.Init(ctx))
	defer create.Free()

	rows := drain(t, create)
	require.Len(t, rows, 1)

	n, ok := rows[0].Get(0).Node()
	require.True(t, ok)
	name, ok := g.GetNodeProperty(n.ID, "name")
	require.True(t, ok)
	s, _ := name.String()
	require.Equal(t, "Dana", s)

	_, ok = rows[0].Get(1).Edge()
	require.True(t, ok)
}

func TestUpdateAppliesSetClauseToBoundNode(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	n0, _ := g.GetNode(0)
	seed := record.New(1)
	seed.Set(0, sival.NodeVal(n0))
	src := newFakeSource(seed)

	upd := ops.NewUpdate([]ast.SetClause{
		{TargetSlot: 0, Key: "visited", Value: expr.Literal{Val: sival.BoolVal(true)}},
	})
	upd.Children = []plan.Operator{src}

	require.NoError(t, upd.Init(ctx))
	defer upd.Free()

	rows := drain(t, upd)
	require.Len(t, rows, 1)

	v, ok := g.GetNodeProperty(0, "visited")
	require.True(t, ok)
	b, _ := v.Bool()
	require.True(t, b)
}

func TestDeleteRemovesBoundEdge(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	n0, _ := g.GetNode(0)
	n1, _ := g.GetNode(1)
	seed := record.New(3)
	seed.Set(0, sival.NodeVal(n0))
	seed.Set(1, sival.NodeVal(n1))
	seed.Set(2, sival.EdgeVal(sival.EdgeRef{ID: 0, RelType: "KNOWS", Src: 0, Dst: 1}))
	src := newFakeSource(seed)

	del := ops.NewDelete([]int{2}, false)
	del.Children = []plan.Operator{src}

	require.NoError(t, del.Init(ctx))
	defer del.Free()

	rows := drain(t, del)
	require.Len(t, rows, 1)

	rel, err := g.RelMatrix("KNOWS")
	require.NoError(t, err)
	_, ok := rel.At(1, 0)
	require.False(t, ok, "edge 0->1 should have been removed")
}

func TestMergeCreatesOnceThenMatchesWithinBatch(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	// Two upstream records both attempt MERGE (n:VIP {name: "Eve"}).
	// VIP has no existing members, so tryMatch's fallback (a full
	// AllNodes scan checking the VIP diagonal) never matches; both
	// records should collapse onto a single created node via the
	// identity-hash dedup rather than creating two.
	src := &algebra.QueryNode{Labels: []string{"VIP"}, RecordIdx: 0}
	path := algebra.PatternPath{Nodes: []*algebra.QueryNode{src}}

	onCreate := []ast.EntitySpec{
		{Labels: []string{"Person", "VIP"}, DestSlot: 0, Props: map[string]expr.Expr{
			"name": expr.Literal{Val: sival.StringVal("Eve")},
		}},
	}

	rec1 := record.New(1)
	rec2 := record.New(1)
	fake := newFakeSource(rec1, rec2)

	merge := ops.NewMerge(path, onCreate, nil, nil)
	merge.Children = []plan.Operator{fake}

	require.NoError(t, merge.Init(ctx))
	defer merge.Free()

	rows := drain(t, merge)
	require.Len(t, rows, 2)

	ids := make(map[int64]bool)
	for _, r := range rows {
		n, ok := r.Get(0).Node()
		require.True(t, ok)
		ids[n.ID] = true
	}
	require.Len(t, ids, 1, "both records should resolve to the same created node")
}
