package ops

import (
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
)

// ProjectItem evaluates Value and writes the result to DestSlot.
type ProjectItem struct {
	Value    expr.Expr
	DestSlot int
}

// Project evaluates its expression list against every record and writes
// each result to its projected slot (RETURN/WITH).
type Project struct {
	plan.Base
	Items []ProjectItem
}

func NewProject(items []ProjectItem) *Project { return &Project{Items: items} }

func (o *Project) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	return o.InitChildren(ctx)
}

func (o *Project) Consume() (*record.Record, error) {
	r, err := o.Pull()
	if err != nil || r == nil {
		return nil, err
	}
	for _, item := range o.Items {
		v, err := item.Value.Eval(r)
		if err != nil {
			return nil, err
		}
		r.Set(item.DestSlot, v)
	}
	return r, nil
}

func (o *Project) Reset() error { return o.ResetChildren() }
func (o *Project) Free()        { o.FreeChildren() }
func (o *Project) Clone(p *plan.Plan) plan.Operator {
	c := &Project{Items: o.Items}
	c.Children = o.CloneChildren(p)
	return c
}
func (o *Project) Modifies() []int {
	out := make([]int, len(o.Items))
	for i, item := range o.Items {
		out[i] = item.DestSlot
	}
	return out
}
