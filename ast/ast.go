// Package ast provides the concrete clause node types plan.BuildPlan
// walks: one struct per Cypher-style clause, each carrying the already
// plan-resolved record-slot indices and scalar expressions rather than
// raw source text (parsing and validation are an external, out-of-scope
// concern). Every node embeds Upstream, the previous pipeline stage,
// and implements plan.ASTNode.
package ast

import (
	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/plan"
)

// MatchNode lowers to a traversal sub-DAG built from Path by the
// registered ops builder.
type MatchNode struct {
	Path     algebra.PatternPath
	Upstream plan.ASTNode
}

func (n *MatchNode) Tag() plan.NodeTag  { return plan.TagMatch }
func (n *MatchNode) Next() plan.ASTNode { return n.Upstream }

// WhereNode wraps its upstream with a Filter evaluating Predicate.
type WhereNode struct {
	Predicate expr.Expr
	Upstream  plan.ASTNode
}

func (n *WhereNode) Tag() plan.NodeTag  { return plan.TagWhere }
func (n *WhereNode) Next() plan.ASTNode { return n.Upstream }

// EntitySpec describes one node or edge CREATE/MERGE targets.
type EntitySpec struct {
	IsEdge bool

	// Node fields.
	Labels   []string
	DestSlot int // record slot the created/matched node or edge is bound to

	// Edge fields.
	RelType  string
	SrcSlot  int
	DstSlot  int
	Outbound bool

	Props map[string]expr.Expr
}

// CreateNode stages one or more entities for unconditional creation.
type CreateNode struct {
	Entities []EntitySpec
	Upstream plan.ASTNode
}

func (n *CreateNode) Tag() plan.NodeTag  { return plan.TagCreate }
func (n *CreateNode) Next() plan.ASTNode { return n.Upstream }

// SetClause assigns Value to property Key on the entity bound to
// TargetSlot.
type SetClause struct {
	TargetSlot int
	IsEdge     bool
	Key        string
	Value      expr.Expr
}

// MergeNode matches Path, falling back to creating OnCreateEntities (and
// applying OnMatch/OnCreate SET clauses) when no match is found.
type MergeNode struct {
	Path             algebra.PatternPath
	OnCreateEntities []EntitySpec
	OnMatch          []SetClause
	OnCreate         []SetClause
	Upstream         plan.ASTNode
}

func (n *MergeNode) Tag() plan.NodeTag  { return plan.TagMerge }
func (n *MergeNode) Next() plan.ASTNode { return n.Upstream }

// SetNode applies Updates to already-bound entities.
type SetNode struct {
	Updates  []SetClause
	Upstream plan.ASTNode
}

func (n *SetNode) Tag() plan.NodeTag  { return plan.TagSet }
func (n *SetNode) Next() plan.ASTNode { return n.Upstream }

// DeleteNode removes the entities bound to Targets; Detach additionally
// cascades to incident edges when a target is a node.
type DeleteNode struct {
	Targets  []int
	Detach   bool
	Upstream plan.ASTNode
}

func (n *DeleteNode) Tag() plan.NodeTag  { return plan.TagDelete }
func (n *DeleteNode) Next() plan.ASTNode { return n.Upstream }

// UnwindNode expands the list Source evaluates to into one record per
// element, bound to DestSlot.
type UnwindNode struct {
	Source   expr.Expr
	DestSlot int
	Upstream plan.ASTNode
}

func (n *UnwindNode) Tag() plan.NodeTag  { return plan.TagUnwind }
func (n *UnwindNode) Next() plan.ASTNode { return n.Upstream }

// ProjectItem evaluates Value and writes it to DestSlot.
type ProjectItem struct {
	Value    expr.Expr
	DestSlot int
}

// ProjectNode evaluates Items against every record (RETURN/WITH).
type ProjectNode struct {
	Items    []ProjectItem
	Upstream plan.ASTNode
}

func (n *ProjectNode) Tag() plan.NodeTag  { return plan.TagProject }
func (n *ProjectNode) Next() plan.ASTNode { return n.Upstream }

// AggFunc enumerates the supported aggregate functions.
type AggFunc int

const (
	AggCount AggFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
	AggStdevSample
	AggStdevPop
	AggCollectDistinct
	AggPercentile
)

// AggSpec is one aggregate projected into DestSlot.
type AggSpec struct {
	Func       AggFunc
	Arg        expr.Expr
	Percentile float64 // only consulted when Func == AggPercentile
	DestSlot   int
}

// AggregateNode partitions records by GroupBy and evaluates Aggregations
// per partition, emitting one record per distinct group on exhaustion.
type AggregateNode struct {
	GroupBy      []ProjectItem
	Aggregations []AggSpec
	Upstream     plan.ASTNode
}

func (n *AggregateNode) Tag() plan.NodeTag  { return plan.TagAggregate }
func (n *AggregateNode) Next() plan.ASTNode { return n.Upstream }

// SkipNode discards the first Count records.
type SkipNode struct {
	Count    int64
	Upstream plan.ASTNode
}

func (n *SkipNode) Tag() plan.NodeTag  { return plan.TagSkip }
func (n *SkipNode) Next() plan.ASTNode { return n.Upstream }

// LimitNode stops pulling after Count records.
type LimitNode struct {
	Count    int64
	Upstream plan.ASTNode
}

func (n *LimitNode) Tag() plan.NodeTag  { return plan.TagLimit }
func (n *LimitNode) Next() plan.ASTNode { return n.Upstream }

// AllShortestPathsNode finds every shortest path between the already-bound
// SrcSlot and DestSlot nodes. Cypher's allShortestPaths() is legal only
// immediately upstream of a projection clause and requires a one-hop
// (not a wider-bounded) relationship; both constraints are rejected by
// plan.BuildPlan rather than by this type itself, since validating the
// former requires knowing the downstream consumer.
type AllShortestPathsNode struct {
	RelTypes []string
	Outbound bool
	SrcSlot  int
	DestSlot int
	PathSlot int
	MinHops  int
	Upstream plan.ASTNode
}

func (n *AllShortestPathsNode) Tag() plan.NodeTag  { return plan.TagAllShortestPaths }
func (n *AllShortestPathsNode) Next() plan.ASTNode { return n.Upstream }
