package ops_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/catalog"
	"github.com/graphalg/acore/config"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/semiring"
)

// buildTriangle populates three Person nodes (0, 1, 2) and a KNOWS ring
// 0->1->2->0, the same fixture shape the algebra package tests against.
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

func newTestContext(g *catalog.Catalog) *plan.Context {
	return plan.NewContext(context.Background(), g, semiring.Boolean, config.Default())
}

// path1Hop describes (a:Person)-[:KNOWS]->(b:Person) with a bound to
// slot 0 and b to slot 1.
func path1Hop() algebra.PatternPath {
	src := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 0}
	dst := &algebra.QueryNode{Labels: []string{"Person"}, RecordIdx: 1}
	edge := &algebra.QueryEdge{RelTypes: []string{"KNOWS"}, Outbound: true, RecordIdx: algebra.NotInRecord, MinHops: 1, MaxHops: 1}
	return algebra.PatternPath{Nodes: []*algebra.QueryNode{src, dst}, Edges: []*algebra.QueryEdge{edge}}
}

// fakeSource is a test-only plan.Operator that replays a fixed slice of
// records, standing in for whatever upstream clause a non-scan operator
// would otherwise be chained to.
type fakeSource struct {
	plan.Base
	records []*record.Record
	pos     int
}

func newFakeSource(records ...*record.Record) *fakeSource {
	return &fakeSource{records: records}
}

func (f *fakeSource) Init(ctx *plan.Context) error {
	f.Ctx = ctx
	f.pos = 0
	return nil
}

func (f *fakeSource) Consume() (*record.Record, error) {
	if f.pos >= len(f.records) {
		return nil, nil
	}
	r := f.records[f.pos]
	f.pos++
	return r, nil
}

func (f *fakeSource) Reset() error { f.pos = 0; return nil }
func (f *fakeSource) Free()        {}
func (f *fakeSource) Clone(p *plan.Plan) plan.Operator {
	return &fakeSource{records: f.records}
}

// drain pulls op to exhaustion and returns every produced record.
func drain(t *testing.T, op plan.Operator) []*record.Record {
	t.Helper()
	var out []*record.Record
	for {
		r, err := op.Consume()
		require.NoError(t, err)
		if r == nil {
			return out
		}
		out = append(out, r)
	}
}
