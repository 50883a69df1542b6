package ops

import (
	"sort"

	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// aggState accumulates one AggSpec's running value for one group-by
// bucket. Null inputs are excluded from every aggregate, matching
// Cypher's aggregate-function semantics.
type aggState struct {
	spec ast.AggSpec

	welford    sival.Welford
	count      int64
	min, max   sival.Value
	haveExtent bool
	distinct   map[uint64]bool
	distinctOf []sival.Value
	samples    []float64
}

func newAggState(spec ast.AggSpec) *aggState { return &aggState{spec: spec} }

func (s *aggState) Add(v sival.Value) {
	if v.IsNull() {
		return
	}
	switch s.spec.Func {
	case ast.AggCount:
		s.count++
	case ast.AggSum, ast.AggAvg, ast.AggStdevSample, ast.AggStdevPop:
		if f, ok := v.Float64(); ok {
			s.welford.Add(f)
		}
	case ast.AggMin:
		if !s.haveExtent {
			s.min, s.haveExtent = v, true
			return
		}
		if c, ok := sival.Compare(v, s.min); ok && c < 0 {
			s.min = v
		}
	case ast.AggMax:
		if !s.haveExtent {
			s.max, s.haveExtent = v, true
			return
		}
		if c, ok := sival.Compare(v, s.max); ok && c > 0 {
			s.max = v
		}
	case ast.AggCollectDistinct:
		if s.distinct == nil {
			s.distinct = make(map[uint64]bool)
		}
		h := v.Hash()
		if !s.distinct[h] {
			s.distinct[h] = true
			s.distinctOf = append(s.distinctOf, v)
		}
	case ast.AggPercentile:
		if f, ok := v.Float64(); ok {
			s.samples = append(s.samples, f)
		}
	}
}

func (s *aggState) Finalize() sival.Value {
	switch s.spec.Func {
	case ast.AggCount:
		return sival.Int64Val(s.count)
	case ast.AggSum:
		if s.welford.Count() == 0 {
			return sival.Int64Val(0)
		}
		return sival.Float64Val(s.welford.Mean() * float64(s.welford.Count()))
	case ast.AggAvg:
		if s.welford.Count() == 0 {
			return sival.Null()
		}
		return sival.Float64Val(s.welford.Mean())
	case ast.AggMin:
		if !s.haveExtent {
			return sival.Null()
		}
		return s.min
	case ast.AggMax:
		if !s.haveExtent {
			return sival.Null()
		}
		return s.max
	case ast.AggStdevSample:
		return sival.Float64Val(s.welford.SampleStdev())
	case ast.AggStdevPop:
		return sival.Float64Val(s.welford.PopulationStdev())
	case ast.AggCollectDistinct:
		return sival.ArrayVal(s.distinctOf)
	case ast.AggPercentile:
		return sival.Float64Val(percentileOf(s.samples, s.spec.Percentile))
	default:
		return sival.Null()
	}
}

// percentileOf returns the sorted sample at index floor(p*(n-1)) of a
// full in-memory sample set rather than a bounded reservoir (documented
// simplification, see DESIGN.md), since the query memory cap already
// bounds per-query allocation.
func percentileOf(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type aggBucket struct {
	keyRecord *record.Record
	states    []*aggState
}

// Aggregate partitions records by GroupBy, keyed by a hash of the
// SIValue tuple each group-by expression resolves to, and evaluates
// Aggregations per bucket; buckets finalize and emit only once the
// child is exhausted.
type Aggregate struct {
	plan.Base
	GroupBy      []ast.ProjectItem
	Aggregations []ast.AggSpec
	Width        int

	buckets map[uint64]*aggBucket
	order   []uint64
	pos     int
	done    bool
}

func NewAggregate(groupBy []ast.ProjectItem, aggs []ast.AggSpec, width int) *Aggregate {
	return &Aggregate{GroupBy: groupBy, Aggregations: aggs, Width: width}
}

func (o *Aggregate) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.buckets = make(map[uint64]*aggBucket)
	o.order = nil
	o.pos = 0
	o.done = false
	return o.InitChildren(ctx)
}

func (o *Aggregate) ingestAll() error {
	for {
		r, err := o.Pull()
		if err != nil {
			return err
		}
		if r == nil {
			return nil
		}
		keyVals := make([]sival.Value, len(o.GroupBy))
		for i, g := range o.GroupBy {
			v, err := g.Value.Eval(r)
			if err != nil {
				return err
			}
			keyVals[i] = v
		}
		key := sival.HashTuple(keyVals...)
		b, ok := o.buckets[key]
		if !ok {
			rec := record.New(o.Width)
			for i, g := range o.GroupBy {
				rec.Set(g.DestSlot, keyVals[i])
			}
			states := make([]*aggState, len(o.Aggregations))
			for i, spec := range o.Aggregations {
				states[i] = newAggState(spec)
			}
			b = &aggBucket{keyRecord: rec, states: states}
			o.buckets[key] = b
			o.order = append(o.order, key)
		}
		for i, spec := range o.Aggregations {
			v, err := spec.Arg.Eval(r)
			if err != nil {
				return err
			}
			b.states[i].Add(v)
		}
	}
}

func (o *Aggregate) Consume() (*record.Record, error) {
	if !o.done {
		if err := o.ingestAll(); err != nil {
			return nil, err
		}
		o.done = true
	}
	if o.pos >= len(o.order) {
		return nil, nil
	}
	b := o.buckets[o.order[o.pos]]
	o.pos++
	for i, spec := range o.Aggregations {
		b.keyRecord.Set(spec.DestSlot, b.states[i].Finalize())
	}
	return b.keyRecord, nil
}

func (o *Aggregate) Reset() error {
	o.buckets = make(map[uint64]*aggBucket)
	o.order = nil
	o.pos = 0
	o.done = false
	return o.ResetChildren()
}

func (o *Aggregate) Free() { o.FreeChildren() }

func (o *Aggregate) Clone(p *plan.Plan) plan.Operator {
	c := &Aggregate{GroupBy: o.GroupBy, Aggregations: o.Aggregations, Width: o.Width}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *Aggregate) Modifies() []int {
	out := make([]int, 0, len(o.GroupBy)+len(o.Aggregations))
	for _, g := range o.GroupBy {
		out = append(out, g.DestSlot)
	}
	for _, a := range o.Aggregations {
		out = append(out, a.DestSlot)
	}
	return out
}
