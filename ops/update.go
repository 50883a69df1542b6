package ops

import (
	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// Update applies SET-style property assignments to already-bound
// entities, sharing the ingest→commit→drain machine so every update in
// the batch commits atomically under one commit-lock acquisition.
type Update struct {
	writeBase
	Updates []ast.SetClause
}

func NewUpdate(updates []ast.SetClause) *Update { return &Update{Updates: updates} }

func (o *Update) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.resetMachine()
	return o.InitChildren(ctx)
}

func (o *Update) commit() error {
	for _, r := range o.pending {
		for _, set := range o.Updates {
			v, err := set.Value.Eval(r)
			if err != nil {
				return err
			}
			if err := applySet(o.Ctx, set, r, v); err != nil {
				return err
			}
		}
		o.staged = append(o.staged, r)
	}
	return nil
}

// applySet writes v to the property named by set.Key on the entity
// bound to set.TargetSlot.
func applySet(ctx *plan.Context, set ast.SetClause, r *record.Record, v sival.Value) error {
	if set.IsEdge {
		e, ok := r.Get(set.TargetSlot).Edge()
		if !ok {
			return errs.New(errs.TypeMismatch, "SET target slot %d is not an edge", set.TargetSlot)
		}
		return ctx.Graph.SetEdgeProperty(e.ID, set.Key, v)
	}
	n, ok := r.Get(set.TargetSlot).Node()
	if !ok {
		return errs.New(errs.TypeMismatch, "SET target slot %d is not a node", set.TargetSlot)
	}
	return ctx.Graph.SetNodeProperty(n.ID, set.Key, v)
}

func (o *Update) Consume() (*record.Record, error) { return o.runMachine(o.commit) }

func (o *Update) Reset() error {
	o.resetMachine()
	return o.ResetChildren()
}

func (o *Update) Free() { o.FreeChildren() }

func (o *Update) Clone(p *plan.Plan) plan.Operator {
	c := &Update{Updates: o.Updates}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *Update) Modifies() []int { return nil }
