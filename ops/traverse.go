package ops

import (
	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// ConditionalTraverse expands every record pulled from its child by one
// fixed-length edge: it evaluates the segment's algebraic expression
// once at Init (label/rel matrices are graph state, unavailable until
// then, which is what keeps plan.BuildPlan itself graph-independent),
// then for each upstream record reads the already-evaluated matrix's
// column at the bound source id — the column-compressed convention
// means that column's row set is exactly the reachable destinations.
type ConditionalTraverse struct {
	plan.Base

	Path     algebra.PatternPath
	SrcSlot  int
	DestSlot int
	EdgeSlot int // plan.NotInRecord-equivalent algebra.NotInRecord if unbound
	Width    int

	matrix *gbmat.Matrix

	cur     *record.Record
	destRow []int64
	pos     int
}

func NewConditionalTraverse(path algebra.PatternPath, srcSlot, destSlot, edgeSlot, width int) *ConditionalTraverse {
	return &ConditionalTraverse{Path: path, SrcSlot: srcSlot, DestSlot: destSlot, EdgeSlot: edgeSlot, Width: width}
}

func (o *ConditionalTraverse) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	if err := o.InitChildren(ctx); err != nil {
		return err
	}
	b := algebra.NewBuilder(ctx.Graph, ctx.Sring)
	exprs, err := b.Build(o.Path)
	if err != nil {
		return err
	}
	expr := exprs[0]
	(algebra.Optimizer{}).Optimize(expr)
	m, err := algebra.Evaluate(expr, ctx.Sring)
	if err != nil {
		return err
	}
	o.matrix = m
	return nil
}

func (o *ConditionalTraverse) advance() error {
	for {
		if o.cur != nil && o.pos < len(o.destRow) {
			return nil
		}
		r, err := o.Pull()
		if err != nil {
			return err
		}
		if r == nil {
			o.cur = nil
			return nil
		}
		srcVal := r.Get(o.SrcSlot)
		srcNode, ok := srcVal.Node()
		if !ok {
			continue
		}
		rows, _ := o.matrix.Column(int(srcNode.ID))
		o.cur = r
		o.destRow = rows
		o.pos = 0
	}
}

func (o *ConditionalTraverse) Consume() (*record.Record, error) {
	for {
		if err := o.advance(); err != nil {
			return nil, err
		}
		if o.cur == nil {
			return nil, nil
		}
		if o.pos >= len(o.destRow) {
			o.cur = nil
			continue
		}
		destID := o.destRow[o.pos]
		o.pos++
		destNode, ok := o.Ctx.Graph.GetNode(destID)
		if !ok {
			continue
		}
		out := o.cur.Clone()
		out.Set(o.DestSlot, sival.NodeVal(destNode))
		if o.EdgeSlot != algebra.NotInRecord {
			out.Set(o.EdgeSlot, sival.Null())
		}
		return out, nil
	}
}

func (o *ConditionalTraverse) Reset() error {
	o.cur, o.destRow, o.pos = nil, nil, 0
	return o.ResetChildren()
}

func (o *ConditionalTraverse) Free() { o.FreeChildren() }

func (o *ConditionalTraverse) Clone(p *plan.Plan) plan.Operator {
	c := &ConditionalTraverse{Path: o.Path, SrcSlot: o.SrcSlot, DestSlot: o.DestSlot, EdgeSlot: o.EdgeSlot, Width: o.Width}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *ConditionalTraverse) Modifies() []int {
	if o.EdgeSlot != algebra.NotInRecord {
		return []int{o.DestSlot, o.EdgeSlot}
	}
	return []int{o.DestSlot}
}
