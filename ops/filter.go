package ops

import (
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
)

// Filter evaluates Predicate against every record pulled from its
// child, forwarding it unchanged when true and otherwise pulling the
// next one. Null (and any non-bool result) evaluates as false, matching
// Cypher's three-valued WHERE semantics.
type Filter struct {
	plan.Base
	Predicate expr.Expr
}

func NewFilter(pred expr.Expr) *Filter { return &Filter{Predicate: pred} }

func (o *Filter) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	return o.InitChildren(ctx)
}

func (o *Filter) Consume() (*record.Record, error) {
	for {
		r, err := o.Pull()
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, nil
		}
		pass, err := expr.EvalBool(o.Predicate, r)
		if err != nil {
			return nil, err
		}
		if pass {
			return r, nil
		}
	}
}

func (o *Filter) Reset() error { return o.ResetChildren() }
func (o *Filter) Free()        { o.FreeChildren() }
func (o *Filter) Clone(p *plan.Plan) plan.Operator {
	c := &Filter{Predicate: o.Predicate}
	c.Children = o.CloneChildren(p)
	return c
}
func (o *Filter) Modifies() []int { return nil }
