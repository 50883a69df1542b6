package ops

import (
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// LabelScan is the entry point for a MATCH whose start node carries a
// label: it resolves the label's diagonal selector matrix and iterates
// its set bits as node ids, binding each to DestSlot.
type LabelScan struct {
	plan.Base
	Label    string
	DestSlot int
	Width    int

	rows []int64
	pos  int
}

func NewLabelScan(label string, destSlot, width int) *LabelScan {
	return &LabelScan{Label: label, DestSlot: destSlot, Width: width}
}

func (o *LabelScan) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	m, err := ctx.Graph.LabelMatrix(o.Label)
	if err != nil {
		return err
	}
	rows, _ := diagonalRows(m)
	o.rows = rows
	o.pos = 0
	return nil
}

// diagonalRows extracts the set of row indices present on a diagonal
// selector matrix, via a full ExtractTuples.
func diagonalRows(m *gbmat.Matrix) ([]int64, error) {
	I, _, _ := m.ExtractTuples()
	return I, nil
}

func (o *LabelScan) Consume() (*record.Record, error) {
	for o.pos < len(o.rows) {
		id := o.rows[o.pos]
		o.pos++
		n, ok := o.Ctx.Graph.GetNode(id)
		if !ok {
			continue
		}
		r := record.New(o.Width)
		r.Set(o.DestSlot, sival.NodeVal(n))
		return r, nil
	}
	return nil, nil
}

func (o *LabelScan) Reset() error { o.pos = 0; return nil }
func (o *LabelScan) Free()        {}
func (o *LabelScan) Clone(*plan.Plan) plan.Operator {
	return &LabelScan{Label: o.Label, DestSlot: o.DestSlot, Width: o.Width}
}
func (o *LabelScan) Modifies() []int { return []int{o.DestSlot} }

// AllNodeScan is the label-less entry point: every live node.
type AllNodeScan struct {
	plan.Base
	DestSlot int
	Width    int

	nodes []sival.NodeRef
	pos   int
}

func NewAllNodeScan(destSlot, width int) *AllNodeScan {
	return &AllNodeScan{DestSlot: destSlot, Width: width}
}

func (o *AllNodeScan) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.nodes = ctx.Graph.AllNodes()
	o.pos = 0
	return nil
}

func (o *AllNodeScan) Consume() (*record.Record, error) {
	if o.pos >= len(o.nodes) {
		return nil, nil
	}
	n := o.nodes[o.pos]
	o.pos++
	r := record.New(o.Width)
	r.Set(o.DestSlot, sival.NodeVal(n))
	return r, nil
}

func (o *AllNodeScan) Reset() error { o.pos = 0; return nil }
func (o *AllNodeScan) Free()        {}
func (o *AllNodeScan) Clone(*plan.Plan) plan.Operator {
	return &AllNodeScan{DestSlot: o.DestSlot, Width: o.Width}
}
func (o *AllNodeScan) Modifies() []int { return []int{o.DestSlot} }

// NodeByIDSeek resolves exactly the ids in IDs, skipping any that no
// longer exist, used for the planner's id(n) = <literal> fast path.
type NodeByIDSeek struct {
	plan.Base
	IDs      []int64
	DestSlot int
	Width    int

	pos int
}

func NewNodeByIDSeek(ids []int64, destSlot, width int) *NodeByIDSeek {
	return &NodeByIDSeek{IDs: ids, DestSlot: destSlot, Width: width}
}

func (o *NodeByIDSeek) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.pos = 0
	return nil
}

func (o *NodeByIDSeek) Consume() (*record.Record, error) {
	for o.pos < len(o.IDs) {
		id := o.IDs[o.pos]
		o.pos++
		n, ok := o.Ctx.Graph.GetNode(id)
		if !ok {
			continue
		}
		r := record.New(o.Width)
		r.Set(o.DestSlot, sival.NodeVal(n))
		return r, nil
	}
	return nil, nil
}

func (o *NodeByIDSeek) Reset() error { o.pos = 0; return nil }
func (o *NodeByIDSeek) Free()        {}
func (o *NodeByIDSeek) Clone(*plan.Plan) plan.Operator {
	return &NodeByIDSeek{IDs: o.IDs, DestSlot: o.DestSlot, Width: o.Width}
}
func (o *NodeByIDSeek) Modifies() []int { return []int{o.DestSlot} }

// SingleRow is the implicit bottom of any clause chain that opens with
// CREATE, MERGE, or an UNWIND over a literal rather than a MATCH — it
// yields exactly one all-Null record so the rest of the pipeline always
// has something to pull from, mirroring the single-row "argument" every
// other query engine's planner inserts under a MATCH-less starting
// clause.
type SingleRow struct {
	plan.Base
	Width int

	emitted bool
}

func NewSingleRow(width int) *SingleRow { return &SingleRow{Width: width} }

func (o *SingleRow) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	o.emitted = false
	return nil
}

func (o *SingleRow) Consume() (*record.Record, error) {
	if o.emitted {
		return nil, nil
	}
	o.emitted = true
	return record.New(o.Width), nil
}

func (o *SingleRow) Reset() error { o.emitted = false; return nil }
func (o *SingleRow) Free()        {}
func (o *SingleRow) Clone(*plan.Plan) plan.Operator {
	return &SingleRow{Width: o.Width}
}
func (o *SingleRow) Modifies() []int { return nil }
