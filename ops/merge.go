package ops

import (
	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/ast"
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// Merge matches Path against the graph state observed at Init; any
// upstream record for which no match exists falls back to
// OnCreateEntities. Cypher never allows a variable-length relationship
// inside a MERGE pattern, so — like ConditionalTraverse — only the
// path's first (and, in every legal MERGE, only) segment is evaluated.
//
// The match matrix is a one-time snapshot taken before this operator's
// own commit runs, so it cannot see entities this same MERGE clause
// creates earlier in the same batch; that within-batch duplicate is
// instead caught by seen, an identity-hash index (sival.HashEntity over
// each created entity's label and resolved properties) keyed to the
// record that performed the original creation, so a later duplicate
// binds its dest slots to that creation rather than making a second
// one. This is what this core offers in place of re-evaluating the
// matrix after every creation.
type Merge struct {
	writeBase

	Path             algebra.PatternPath
	OnCreateEntities []ast.EntitySpec
	OnMatch          []ast.SetClause
	OnCreate         []ast.SetClause

	matrix          *gbmat.Matrix
	srcIdx, destIdx int
	seen            map[uint64]*record.Record
}

func NewMerge(path algebra.PatternPath, onCreate []ast.EntitySpec, onMatchSet, onCreateSet []ast.SetClause) *Merge {
	return &Merge{Path: path, OnCreateEntities: onCreate, OnMatch: onMatchSet, OnCreate: onCreateSet}
}

func (o *Merge) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	if err := o.InitChildren(ctx); err != nil {
		return err
	}
	o.resetMachine()
	o.seen = make(map[uint64]*record.Record)

	b := algebra.NewBuilder(ctx.Graph, ctx.Sring)
	exprs, err := b.Build(o.Path)
	if err != nil {
		return err
	}
	e := exprs[0]
	(algebra.Optimizer{}).Optimize(e)
	m, err := algebra.Evaluate(e, ctx.Sring)
	if err != nil {
		return err
	}
	o.matrix = m
	o.srcIdx, o.destIdx = e.SrcIdx, e.DestIdx
	return nil
}

// tryMatch reports whether Path already resolves against graph state for
// out, binding destIdx to the resolved node when it does.
func (o *Merge) tryMatch(out *record.Record) bool {
	if o.destIdx != algebra.NotInRecord && o.srcIdx != o.destIdx {
		srcVal := out.Get(o.srcIdx)
		srcNode, ok := srcVal.Node()
		if !ok {
			return false
		}
		rows, _ := o.matrix.Column(int(srcNode.ID))
		for _, row := range rows {
			if n, ok := o.Ctx.Graph.GetNode(row); ok {
				out.Set(o.destIdx, sival.NodeVal(n))
				return true
			}
		}
		return false
	}

	for _, n := range o.Ctx.Graph.AllNodes() {
		if _, ok := o.matrix.At(int(n.ID), int(n.ID)); ok {
			out.Set(o.destIdx, sival.NodeVal(n))
			return true
		}
	}
	return false
}

// identityKey hashes the properties every OnCreateEntities entry would
// resolve to for out, so two upstream records whose creations would be
// identical collapse onto the same within-batch match.
func (o *Merge) identityKey(out *record.Record) (uint64, error) {
	var pairs []sival.PropertyPair
	label := "merge"
	for _, ent := range o.OnCreateEntities {
		props, err := evalProps(ent.Props, out)
		if err != nil {
			return 0, err
		}
		if len(ent.Labels) > 0 {
			label = ent.Labels[0]
		} else if ent.RelType != "" {
			label = ent.RelType
		}
		for k, v := range props {
			pairs = append(pairs, sival.PropertyPair{Key: k, Value: v})
		}
	}
	return sival.HashEntity(label, pairs), nil
}

func (o *Merge) commit() error {
	for _, r := range o.pending {
		out := r.Clone()
		matched := o.tryMatch(out)

		if !matched {
			key, err := o.identityKey(out)
			if err != nil {
				return err
			}
			if created, ok := o.seen[key]; ok {
				// Another record in this batch already created the
				// same identity; bind this record's dest slots to
				// that creation instead of creating a duplicate.
				for _, ent := range o.OnCreateEntities {
					out.Set(ent.DestSlot, created.Get(ent.DestSlot))
				}
				matched = true
			} else {
				if err := createEntities(o.Ctx, o.OnCreateEntities, out); err != nil {
					return err
				}
				if err := applySetClauses(o.Ctx, o.OnCreate, out); err != nil {
					return err
				}
				o.seen[key] = out
				o.staged = append(o.staged, out)
				continue
			}
		}

		if matched {
			if err := applySetClauses(o.Ctx, o.OnMatch, out); err != nil {
				return err
			}
		}
		o.staged = append(o.staged, out)
	}
	return nil
}

func applySetClauses(ctx *plan.Context, sets []ast.SetClause, r *record.Record) error {
	for _, set := range sets {
		v, err := set.Value.Eval(r)
		if err != nil {
			return err
		}
		if err := applySet(ctx, set, r, v); err != nil {
			return err
		}
	}
	return nil
}

func (o *Merge) Consume() (*record.Record, error) { return o.runMachine(o.commit) }

func (o *Merge) Reset() error {
	o.resetMachine()
	o.seen = make(map[uint64]*record.Record)
	return o.ResetChildren()
}

func (o *Merge) Free() { o.FreeChildren() }

func (o *Merge) Clone(p *plan.Plan) plan.Operator {
	c := &Merge{Path: o.Path, OnCreateEntities: o.OnCreateEntities, OnMatch: o.OnMatch, OnCreate: o.OnCreate}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *Merge) Modifies() []int {
	out := make([]int, 0, len(o.OnCreateEntities)+1)
	out = append(out, o.destIdx)
	for _, e := range o.OnCreateEntities {
		out = append(out, e.DestSlot)
	}
	return out
}
