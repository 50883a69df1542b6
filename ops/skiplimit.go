package ops

import (
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
)

// Skip discards the first Count records pulled from its child.
type Skip struct {
	plan.Base
	Count int64

	skipped int64
}

func NewSkip(count int64) *Skip { return &Skip{Count: count} }

func (o *Skip) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	return o.InitChildren(ctx)
}

func (o *Skip) Consume() (*record.Record, error) {
	for o.skipped < o.Count {
		r, err := o.Pull()
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, nil
		}
		o.skipped++
	}
	return o.Pull()
}

func (o *Skip) Reset() error { o.skipped = 0; return o.ResetChildren() }
func (o *Skip) Free()        { o.FreeChildren() }
func (o *Skip) Clone(p *plan.Plan) plan.Operator {
	c := &Skip{Count: o.Count}
	c.Children = o.CloneChildren(p)
	return c
}
func (o *Skip) Modifies() []int { return nil }

// Limit stops pulling after Count records have been produced.
type Limit struct {
	plan.Base
	Count int64

	emitted int64
}

func NewLimit(count int64) *Limit { return &Limit{Count: count} }

func (o *Limit) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	return o.InitChildren(ctx)
}

func (o *Limit) Consume() (*record.Record, error) {
	if o.emitted >= o.Count {
		return nil, nil
	}
	r, err := o.Pull()
	if err != nil || r == nil {
		return r, err
	}
	o.emitted++
	return r, nil
}

func (o *Limit) Reset() error { o.emitted = 0; return o.ResetChildren() }
func (o *Limit) Free()        { o.FreeChildren() }
func (o *Limit) Clone(p *plan.Plan) plan.Operator {
	c := &Limit{Count: o.Count}
	c.Children = o.CloneChildren(p)
	return c
}
func (o *Limit) Modifies() []int { return nil }
