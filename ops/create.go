package ops

import (
	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// Create unconditionally stages one or more entities per upstream
// record and commits them all under a single commit-lock acquisition.
type Create struct {
	writeBase
	Entities []ast.EntitySpec
}

func NewCreate(entities []ast.EntitySpec) *Create { return &Create{Entities: entities} }

func (o *Create) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.resetMachine()
	return o.InitChildren(ctx)
}

func (o *Create) commit() error {
	for _, r := range o.pending {
		out := r.Clone()
		if err := createEntities(o.Ctx, o.Entities, out); err != nil {
			return err
		}
		o.staged = append(o.staged, out)
	}
	return nil
}

// createEntities materializes every entity in specs against out,
// reading already-bound src/dst slots for edges and writing the new
// node/edge ref to each entity's DestSlot.
func createEntities(ctx *plan.Context, specs []ast.EntitySpec, out *record.Record) error {
	for _, ent := range specs {
		props, err := evalProps(ent.Props, out)
		if err != nil {
			return err
		}
		if !ent.IsEdge {
			n, err := ctx.Graph.CreateNode(ent.Labels, props)
			if err != nil {
				return err
			}
			out.Set(ent.DestSlot, sival.NodeVal(n))
			continue
		}
		srcNode, _ := out.Get(ent.SrcSlot).Node()
		dstNode, _ := out.Get(ent.DstSlot).Node()
		src, dst := srcNode.ID, dstNode.ID
		if !ent.Outbound {
			src, dst = dst, src
		}
		e, err := ctx.Graph.CreateEdge(ent.RelType, src, dst, props)
		if err != nil {
			return err
		}
		out.Set(ent.DestSlot, sival.EdgeVal(e))
	}
	return nil
}

func (o *Create) Consume() (*record.Record, error) { return o.runMachine(o.commit) }

func (o *Create) Reset() error {
	o.resetMachine()
	return o.ResetChildren()
}

func (o *Create) Free() { o.FreeChildren() }

func (o *Create) Clone(p *plan.Plan) plan.Operator {
	c := &Create{Entities: o.Entities}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *Create) Modifies() []int {
	out := make([]int, len(o.Entities))
	for i, e := range o.Entities {
		out[i] = e.DestSlot
	}
	return out
}
