// Package catalog implements an in-memory storage.Graph: the
// label/reltype matrix registry plus the node/edge entity store the
// write operators mutate and the scan/traverse operators read.
//
// muCatalog guards the label/reltype registries and the entity maps
// (read-mostly, per the concurrency model); commitMu is the single
// global lock a write operator holds only for the span of its commit
// phase, never across a Consume() pull.
package catalog

import (
	"sync"

	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/sival"
	"github.com/graphalg/acore/storage"
)

// initialDim is the starting node-ID capacity; matrices grow by doubling
// once a new node ID would exceed it.
const initialDim = 64

// Catalog is the reference storage.Graph implementation.
type Catalog struct {
	muCatalog sync.RWMutex // guards everything below except commitMu itself
	commitMu  sync.Mutex

	dim int // current matrix dimension (node ID capacity)

	labelID  map[string]int
	labelMat []*gbmat.Matrix // diagonal selector, indexed by label id

	relID  map[string]int
	relMat []*gbmat.Matrix // adjacency, indexed by rel id

	nextNodeID int64
	nextEdgeID int64

	nodes     map[int64]sival.NodeRef
	nodeProps map[int64]map[string]sival.Value

	edges     map[int64]sival.EdgeRef
	edgeProps map[int64]map[string]sival.Value
}

var _ storage.Graph = (*Catalog)(nil)

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		dim:       initialDim,
		labelID:   make(map[string]int),
		relID:     make(map[string]int),
		nodes:     make(map[int64]sival.NodeRef),
		nodeProps: make(map[int64]map[string]sival.Value),
		edges:     make(map[int64]sival.EdgeRef),
		edgeProps: make(map[int64]map[string]sival.Value),
	}
}

// CommitLock returns the global single-writer commit lock.
func (c *Catalog) CommitLock() storage.Locker { return &c.commitMu }

// ensureDim grows every registered matrix to at least n, doubling the
// capacity until it fits. Callers must hold muCatalog for writing.
func (c *Catalog) ensureDim(n int) {
	if n <= c.dim {
		return
	}
	newDim := c.dim
	for newDim < n {
		newDim *= 2
	}
	for id, m := range c.labelMat {
		c.labelMat[id] = regrow(m, newDim)
	}
	for id, m := range c.relMat {
		c.relMat[id] = regrow(m, newDim)
	}
	c.dim = newDim
}

func regrow(m *gbmat.Matrix, newDim int) *gbmat.Matrix {
	I, J, X := m.ExtractTuples()
	return gbmat.Build(newDim, newDim, I, J, X, func(a, b semiring.Value) semiring.Value { return b }, false)
}
