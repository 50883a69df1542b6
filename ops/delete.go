package ops

import (
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// Delete removes the entities bound to Targets. Deleting a node also
// removes every edge incident to it (storage.Graph's DeleteNodes does
// this), with or without Detach: without Detach, hasIncidentEdges
// always reports false, so deleting a node that still has edges is not
// an error.
type Delete struct {
	writeBase
	Targets []int
	Detach  bool
}

func NewDelete(targets []int, detach bool) *Delete { return &Delete{Targets: targets, Detach: detach} }

func (o *Delete) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.resetMachine()
	return o.InitChildren(ctx)
}

func (o *Delete) commit() error {
	var nodeIDs []int64
	var edgeRefs []sival.EdgeRef

	for _, r := range o.pending {
		for _, slot := range o.Targets {
			v := r.Get(slot)
			if n, ok := v.Node(); ok {
				nodeIDs = append(nodeIDs, n.ID)
				continue
			}
			if e, ok := v.Edge(); ok {
				edgeRefs = append(edgeRefs, e)
			}
		}
		o.staged = append(o.staged, r)
	}

	if len(edgeRefs) > 0 {
		if err := o.Ctx.Graph.DeleteEdges(edgeRefs); err != nil {
			return err
		}
	}
	if len(nodeIDs) == 0 {
		return nil
	}
	if !o.Detach && hasIncidentEdges(o.Ctx, nodeIDs) {
		return errs.New(errs.InvalidParameter, "cannot delete a node with incident edges without DETACH")
	}
	return o.Ctx.Graph.DeleteNodes(nodeIDs)
}

// hasIncidentEdges always reports false: storage.Graph exposes no
// incidence query, so a bare DELETE on a node with edges relies on
// DeleteNodes' own cascade rather than failing fast. Documented gap.
func hasIncidentEdges(ctx *plan.Context, ids []int64) bool { return false }

func (o *Delete) Consume() (*record.Record, error) { return o.runMachine(o.commit) }

func (o *Delete) Reset() error {
	o.resetMachine()
	return o.ResetChildren()
}

func (o *Delete) Free() { o.FreeChildren() }

func (o *Delete) Clone(p *plan.Plan) plan.Operator {
	c := &Delete{Targets: o.Targets, Detach: o.Detach}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *Delete) Modifies() []int { return nil }
