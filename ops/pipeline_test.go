package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/ops"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

func intRecords(vals ...int64) []*record.Record {
	out := make([]*record.Record, len(vals))
	for i, v := range vals {
		r := record.New(1)
		r.Set(0, sival.Int64Val(v))
		out[i] = r
	}
	return out
}

func TestFilterForwardsOnlyPassingRecords(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	src := newFakeSource(intRecords(1, 2, 3, 4)...)
	pred := expr.Binary{Op: expr.OpGt, L: expr.Slot{Idx: 0}, R: expr.Literal{Val: sival.Int64Val(2)}}
	f := ops.NewFilter(pred)
	f.Children = []plan.Operator{src}

	require.NoError(t, f.Init(ctx))
	defer f.Free()

	rows := drain(t, f)
	require.Len(t, rows, 2)
	v0, _ := rows[0].Get(0).Int64()
	v1, _ := rows[1].Get(0).Int64()
	require.Equal(t, int64(3), v0)
	require.Equal(t, int64(4), v1)
}

func TestProjectWritesComputedSlot(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	src := newFakeSource(intRecords(5)...)
	proj := ops.NewProject([]ops.ProjectItem{
		{Value: expr.Binary{Op: expr.OpMul, L: expr.Slot{Idx: 0}, R: expr.Literal{Val: sival.Int64Val(10)}}, DestSlot: 0},
	})
	proj.Children = []plan.Operator{src}

	require.NoError(t, proj.Init(ctx))
	defer proj.Free()

	rows := drain(t, proj)
	require.Len(t, rows, 1)
	v, _ := rows[0].Get(0).Int64()
	require.Equal(t, int64(50), v)
}

func TestUnwindExpandsArrayIntoOneRecordPerElement(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	r := record.New(2)
	arr := sival.ArrayVal([]sival.Value{sival.Int64Val(1), sival.Int64Val(2), sival.Int64Val(3)})
	r.Set(0, arr)
	src := newFakeSource(r)

	uw := ops.NewUnwind(expr.Slot{Idx: 0}, 1)
	uw.Children = []plan.Operator{src}

	require.NoError(t, uw.Init(ctx))
	defer uw.Free()

	rows := drain(t, uw)
	require.Len(t, rows, 3)
	var got []int64
	for _, row := range rows {
		v, _ := row.Get(1).Int64()
		got = append(got, v)
	}
	require.Equal(t, []int64{1, 2, 3}, got)
}

func TestSkipThenLimitWindowsTheStream(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	src := newFakeSource(intRecords(1, 2, 3, 4, 5)...)
	skip := ops.NewSkip(1)
	skip.Children = []plan.Operator{src}
	limit := ops.NewLimit(2)
	limit.Children = []plan.Operator{skip}

	require.NoError(t, limit.Init(ctx))
	defer limit.Free()

	rows := drain(t, limit)
	require.Len(t, rows, 2)
	v0, _ := rows[0].Get(0).Int64()
	v1, _ := rows[1].Get(0).Int64()
	require.Equal(t, int64(2), v0)
	require.Equal(t, int64(3), v1)
}

func TestAggregateSumsPerGroup(t *testing.T) {
	g := buildTriangle(t)
	ctx := newTestContext(g)

	mk := func(group string, n int64) *record.Record {
		r := record.New(2)
		r.Set(0, sival.StringVal(group))
		r.Set(1, sival.Int64Val(n))
		return r
	}
	src := newFakeSource(mk("a", 1), mk("a", 2), mk("b", 10))

	agg := ops.NewAggregate(
		[]ast.ProjectItem{{Value: expr.Slot{Idx: 0}, DestSlot: 0}},
		[]ast.AggSpec{{Func: ast.AggSum, Arg: expr.Slot{Idx: 1}, DestSlot: 1}},
		2,
	)
	agg.Children = []plan.Operator{src}

	require.NoError(t, agg.Init(ctx))
	defer agg.Free()

	rows := drain(t, agg)
	require.Len(t, rows, 2)

	sums := make(map[string]float64)
	for _, r := range rows {
		k, _ := r.Get(0).String()
		v, _ := r.Get(1).Float64()
		sums[k] = v
	}
	require.Equal(t, 3.0, sums["a"])
	require.Equal(t, 10.0, sums["b"])
}
