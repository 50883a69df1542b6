package algebra

import (
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/storage"
)

// Builder lowers a pattern path to a list of algebraic expressions, one
// per intermediate segment: it splits at referenced interior nodes and
// referenced edges, and isolates variable-length edges into their own
// segment.
type Builder struct {
	Graph    storage.Graph
	Semiring semiring.Semiring
}

// NewBuilder returns a Builder evaluating label/rel operands against g
// under sr (semiring.Boolean is the conventional choice for pattern
// matching).
func NewBuilder(g storage.Graph, sr semiring.Semiring) *Builder {
	return &Builder{Graph: g, Semiring: sr}
}

type segment struct {
	startIdx, endIdx int // node indices; edges are path.Edges[startIdx:endIdx]
	varLen           bool
}

// Build splits path into segments and constructs one *Expr per segment.
func (b *Builder) Build(path PatternPath) ([]*Expr, error) {
	n := len(path.Nodes)
	if n == 0 {
		return nil, nil
	}
	segs := splitSegments(path)

	exprs := make([]*Expr, 0, len(segs))
	for _, seg := range segs {
		expr, err := b.buildSegment(path, seg)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// splitSegments partitions path into fixed-length segments and isolated
// variable-length segments. A segment boundary falls at any interior
// node that is bound to a record slot, and at either end of a
// variable-length edge or of an edge bound to a record slot (each of
// which forms its own single-edge segment).
func splitSegments(path PatternPath) []segment {
	n := len(path.Nodes)
	var segs []segment
	cur := segment{startIdx: 0}

	for k, e := range path.Edges {
		if e.isVariableLength() {
			if k > cur.startIdx {
				cur.endIdx = k
				segs = append(segs, cur)
			}
			segs = append(segs, segment{startIdx: k, endIdx: k + 1, varLen: true})
			cur = segment{startIdx: k + 1}
			continue
		}
		if e.RecordIdx != NotInRecord {
			if k > cur.startIdx {
				cur.endIdx = k
				segs = append(segs, cur)
			}
			segs = append(segs, segment{startIdx: k, endIdx: k + 1})
			cur = segment{startIdx: k + 1}
			continue
		}
		if k+1 < n-1 && path.Nodes[k+1].RecordIdx != NotInRecord {
			cur.endIdx = k + 1
			segs = append(segs, cur)
			cur = segment{startIdx: k + 1}
		}
	}
	if cur.startIdx < n-1 || len(segs) == 0 {
		cur.endIdx = n - 1
		segs = append(segs, cur)
	}
	return segs
}

func (b *Builder) buildSegment(path PatternPath, seg segment) (*Expr, error) {
	srcNode := path.Nodes[seg.startIdx]
	destNode := path.Nodes[seg.endIdx]

	expr := &Expr{
		SrcNode: srcNode, DestNode: destNode,
		SrcIdx: srcNode.RecordIdx, DestIdx: destNode.RecordIdx,
		EdgeIdx: NotInRecord,
		MinHops: 1, MaxHops: 1,
	}

	edges := path.Edges[seg.startIdx:seg.endIdx]
	if seg.varLen {
		e := edges[0]
		expr.Edge = e
		expr.EdgeIdx = e.RecordIdx
		expr.MinHops, expr.MaxHops = e.MinHops, e.MaxHops
	}

	var operands []Expression

	// Start-node label selectors: always attached for a fixed-length
	// segment; for an isolated variable-length segment only when there
	// is no sibling segment to its left to carry them (i.e. this is the
	// very first node of the whole path).
	if !seg.varLen || seg.startIdx == 0 {
		ops, err := b.labelOperands(srcNode.Labels)
		if err != nil {
			return nil, err
		}
		operands = append(operands, ops...)
	}

	for _, e := range edges {
		op, err := b.relOperand(e)
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
		if e.RecordIdx != NotInRecord {
			expr.Edge = e
			expr.EdgeIdx = e.RecordIdx
		}
	}

	if !seg.varLen || seg.endIdx == len(path.Nodes)-1 {
		ops, err := b.labelOperands(destNode.Labels)
		if err != nil {
			return nil, err
		}
		operands = append(operands, ops...)
	}

	root, err := chain(operands)
	if err != nil {
		return nil, err
	}
	expr.Root = root
	return expr, nil
}

// labelOperands resolves one diagonal *Operand per label, in the order
// given.
func (b *Builder) labelOperands(labels []string) ([]Expression, error) {
	out := make([]Expression, 0, len(labels))
	for _, l := range labels {
		m, err := b.Graph.LabelMatrix(l)
		if err != nil {
			return nil, err
		}
		out = append(out, &Operand{Matrix: m, Diagonal: true, Label: l})
	}
	return out, nil
}

// relOperand resolves a single edge to one operand: the adjacency
// matrix for its relationship type, or a pre-built R ⊕ S operand when
// more than one type is listed (`-[:R|:S]->`). Inbound direction is
// encoded as Transpose=true without mutating the underlying matrix.
func (b *Builder) relOperand(e *QueryEdge) (*Operand, error) {
	var m *gbmat.Matrix
	if len(e.RelTypes) == 0 {
		return nil, errNoRelType
	}
	for i, rt := range e.RelTypes {
		rm, err := b.Graph.RelMatrix(rt)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			m = rm
			continue
		}
		m, err = gbmat.EWiseAdd(b.Semiring, m, rm, gbmat.Descriptor{})
		if err != nil {
			return nil, err
		}
	}
	return &Operand{Matrix: m, Transpose: !e.Outbound, Label: relLabel(e.RelTypes)}, nil
}

func relLabel(relTypes []string) string {
	if len(relTypes) == 1 {
		return relTypes[0]
	}
	out := relTypes[0]
	for _, rt := range relTypes[1:] {
		out += "|" + rt
	}
	return out
}

// Segments splits path into the same per-segment sub-paths Build
// evaluates independently, so a caller outside this package (the ops
// wiring layer) can construct one traversal operator per segment
// instead of reaching into Build's internal expression list. A segment
// with exactly one edge whose MinHops != MaxHops is the isolated
// variable-length case; every other segment is fixed-length.
func Segments(path PatternPath) []PatternPath {
	segs := splitSegments(path)
	out := make([]PatternPath, len(segs))
	for i, s := range segs {
		out[i] = PatternPath{
			Nodes: path.Nodes[s.startIdx : s.endIdx+1],
			Edges: path.Edges[s.startIdx:s.endIdx],
		}
	}
	return out
}

func chain(operands []Expression) (Expression, error) {
	if len(operands) == 0 {
		return nil, errEmptySegment
	}
	root := operands[len(operands)-1]
	for k := len(operands) - 2; k >= 0; k-- {
		root = &Operation{Op: Mul, Children: [2]Expression{operands[k], root}}
	}
	return root, nil
}
