// Package storage defines the collaborator interface the plan runtime
// consumes to reach the underlying property graph: per-label and
// per-relationship-type matrices, entity lookup, and the mutation entry
// points write operators stage against during a commit. The core never
// assumes a concrete storage engine; catalog.Catalog is the in-memory
// reference implementation exercised by this module's own tests.
package storage

import (
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/sival"
)

// Locker is the commit-phase mutual-exclusion handle a write operator
// holds for the shortest span that applies its staged mutations.
type Locker interface {
	Lock()
	Unlock()
}

// Graph is the storage collaborator the algebra and ops packages are
// built against. Every method may be called concurrently except where
// CommitLock is explicitly held.
type Graph interface {
	// LabelMatrix returns the diagonal selector matrix for label, growing
	// the catalog to register a previously unseen label. The returned
	// matrix is a borrowed view (gbmat.Matrix.Shallow() reports true);
	// callers must not mutate or Free it.
	LabelMatrix(label string) (*gbmat.Matrix, error)

	// RelMatrix returns the adjacency matrix for relType, registering it
	// if unseen. Entry (i, j) is present iff an edge of relType goes from
	// node j to node i. Borrowed view, same contract as LabelMatrix.
	RelMatrix(relType string) (*gbmat.Matrix, error)

	// GetNode resolves a node by id.
	GetNode(id int64) (sival.NodeRef, bool)

	// AllNodes returns every live node, for the label-less AllNodeScan
	// entry point. Order is unspecified.
	AllNodes() []sival.NodeRef

	// GetNodeProperty resolves a single property of a node.
	GetNodeProperty(id int64, key string) (sival.Value, bool)

	// GetEdgeProperty resolves a single property of an edge.
	GetEdgeProperty(id int64, key string) (sival.Value, bool)

	// SetNodeProperty assigns a single property on an existing node.
	SetNodeProperty(id int64, key string, v sival.Value) error

	// SetEdgeProperty assigns a single property on an existing edge.
	SetEdgeProperty(id int64, key string, v sival.Value) error

	// CreateNode allocates a new node with the given labels and
	// properties, stamping it into every named label's diagonal.
	CreateNode(labels []string, props map[string]sival.Value) (sival.NodeRef, error)

	// CreateEdge allocates a new edge of relType between src and dst.
	CreateEdge(relType string, src, dst int64, props map[string]sival.Value) (sival.EdgeRef, error)

	// DeleteNodes removes nodes and every edge incident to them (cascade
	// delete), matching the six end-to-end scenarios' deletion case.
	DeleteNodes(ids []int64) error

	// DeleteEdges removes exactly the named edges.
	DeleteEdges(refs []sival.EdgeRef) error

	// CommitLock returns the global single-writer commit lock.
	CommitLock() Locker
}
