package ops

import (
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

type unwindState struct {
	base *record.Record
	vals []sival.Value
	pos  int
}

// Unwind expands the array Source evaluates to into one output record
// per element, bound to DestSlot; a non-Array result is treated as a
// single-element list, matching Cypher's UNWIND coercion.
type Unwind struct {
	plan.Base
	Source   expr.Expr
	DestSlot int

	state *unwindState
}

func NewUnwind(source expr.Expr, destSlot int) *Unwind {
	return &Unwind{Source: source, DestSlot: destSlot}
}

func (o *Unwind) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	return o.InitChildren(ctx)
}

func (o *Unwind) Consume() (*record.Record, error) {
	for {
		if o.state != nil && o.state.pos < len(o.state.vals) {
			v := o.state.vals[o.state.pos]
			o.state.pos++
			out := o.state.base.Clone()
			out.Set(o.DestSlot, v)
			return out, nil
		}
		o.state = nil
		r, err := o.Pull()
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, nil
		}
		listVal, err := o.Source.Eval(r)
		if err != nil {
			return nil, err
		}
		vals, ok := listVal.Array()
		if !ok {
			vals = []sival.Value{listVal}
		}
		o.state = &unwindState{base: r, vals: vals}
	}
}

func (o *Unwind) Reset() error {
	o.state = nil
	return o.ResetChildren()
}
func (o *Unwind) Free() { o.FreeChildren() }
func (o *Unwind) Clone(p *plan.Plan) plan.Operator {
	c := &Unwind{Source: o.Source, DestSlot: o.DestSlot}
	c.Children = o.CloneChildren(p)
	return c
}
func (o *Unwind) Modifies() []int { return []int{o.DestSlot} }
