// Package algebra builds and evaluates the algebraic expression tree a
// traversal pattern lowers to: a sequence of matrix multiply/add/
// transpose operations over the label and relationship-type matrices a
// storage.Graph exposes. Builder splits a pattern path into per-segment
// expressions, Optimizer rewrites each tree (transpose hoisting, sum-of-
// products, diagonal detection), and Evaluate walks the optimized tree
// right-to-left to produce a concrete gbmat.Matrix.
package algebra

import "github.com/graphalg/acore/gbmat"

// NotInRecord marks a node/edge/expression index not materialized as a
// record slot.
const NotInRecord = -1

// Op tags an Operation node's kind.
type Op int

const (
	Mul Op = iota
	Add
	Transpose
)

func (o Op) String() string {
	switch o {
	case Mul:
		return "MUL"
	case Add:
		return "ADD"
	case Transpose:
		return "TRANSPOSE"
	default:
		return "UNKNOWN"
	}
}

// Expression is implemented by *Operand (a leaf matrix reference) and
// *Operation (an internal MUL/ADD/TRANSPOSE node).
type Expression interface {
	isExpression()
}

// Operand is a leaf of the expression tree: a reference to a label
// selector or relationship-type matrix, plus the flags the optimizer
// and evaluator consult.
type Operand struct {
	Matrix *gbmat.Matrix

	// Transpose marks that this operand must be read as Matrixᵀ.
	// Evaluate materializes the transpose once, on first use, then
	// clears this flag so re-entry (e.g. a Reusable operand visited
	// from two branches) does not re-transpose.
	Transpose bool

	// Diagonal marks a known-diagonal operand (every label selector
	// matrix qualifies), letting Evaluate route the multiply through
	// gbmat.ScaleRows/ScaleCols instead of a full MxM.
	Diagonal bool

	// Reusable marks an operand shared by more than one branch of a
	// sum-of-products rewrite; Evaluate caches its materialized value
	// the first time it is visited.
	Reusable bool

	// Label names the operand for diagnostics (e.g. "Person",
	// "KNOWS"); not consulted by Evaluate.
	Label string
}

func (*Operand) isExpression() {}

// Operation is an internal expression-tree node.
type Operation struct {
	Op       Op
	Children [2]Expression // Children[1] is unused for Transpose
}

func (*Operation) isExpression() {}

// QueryNode is a node position within a pattern path.
type QueryNode struct {
	Labels    []string
	RecordIdx int // NotInRecord if this node is not bound to a record slot
}

// QueryEdge is an edge position within a pattern path.
type QueryEdge struct {
	RelTypes  []string
	Outbound  bool // true: (a)-[e]->(b); false: (a)<-[e]-(b)
	RecordIdx int  // NotInRecord if this edge is not bound
	MinHops   int  // 1 for a fixed-length edge
	MaxHops   int  // 1 for a fixed-length edge
}

func (e *QueryEdge) isVariableLength() bool { return e.MinHops != e.MaxHops }

// PatternPath is an alternating node/edge sequence: len(Nodes) ==
// len(Edges)+1.
type PatternPath struct {
	Nodes []*QueryNode
	Edges []*QueryEdge
}

// Expr is one intermediate segment produced by Builder.Build: an
// expression tree plus the path metadata Evaluate and the ops layer
// need to bind matched nodes, edges, and variable-length bounds back
// onto record slots.
type Expr struct {
	Root Expression

	SrcNode, DestNode *QueryNode
	Edge              *QueryEdge
	SrcIdx, DestIdx   int
	EdgeIdx           int

	MinHops, MaxHops int

	// RelationIDs is left empty by Builder, which works against
	// storage.Graph and resolves relationship types by name only; no
	// code in this module sets it.
	RelationIDs []int
}
