package catalog

import (
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/sival"
)

// CreateEdge allocates a new edge id and stamps (dst, src) into relType's
// adjacency matrix, matching the column-compressed convention where
// column j holds j's out-edges viewed as in-neighbors of row i.
func (c *Catalog) CreateEdge(relType string, src, dst int64, props map[string]sival.Value) (sival.EdgeRef, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	maxID := src
	if dst > maxID {
		maxID = dst
	}
	c.ensureDim(int(maxID) + 1)

	id := c.nextEdgeID
	c.nextEdgeID++
	relID := c.relIDLocked(relType)
	c.relMat[relID].Set(int(dst), int(src), semiring.FromBool(true))

	edge := sival.EdgeRef{ID: id, RelType: relType, Src: src, Dst: dst}
	c.edges[id] = edge
	if len(props) > 0 {
		c.edgeProps[id] = props
	}
	return edge, nil
}

// GetEdgeProperty resolves a single property of an edge.
func (c *Catalog) GetEdgeProperty(id int64, key string) (sival.Value, bool) {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	props, ok := c.edgeProps[id]
	if !ok {
		return sival.Null(), false
	}
	v, ok := props[key]
	return v, ok
}

// SetEdgeProperty assigns a single property on an existing edge.
func (c *Catalog) SetEdgeProperty(id int64, key string, v sival.Value) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()
	if _, ok := c.edges[id]; !ok {
		return errs.New(errs.InvalidParameter, "SET: edge %d does not exist", id)
	}
	if c.edgeProps[id] == nil {
		c.edgeProps[id] = make(map[string]sival.Value)
	}
	c.edgeProps[id][key] = v
	return nil
}

// DeleteEdges removes exactly the named edges.
func (c *Catalog) DeleteEdges(refs []sival.EdgeRef) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	ids := make([]int64, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	c.dropEdgesLocked(ids)
	return nil
}

// dropEdgesLocked removes the named edge ids from the entity store and
// from their relation type's adjacency matrix. Caller must hold
// muCatalog for writing.
func (c *Catalog) dropEdgesLocked(ids []int64) {
	byRel := make(map[int][]sival.EdgeRef)
	for _, id := range ids {
		e, ok := c.edges[id]
		if !ok {
			continue
		}
		relID, ok := c.relID[e.RelType]
		if ok {
			byRel[relID] = append(byRel[relID], e)
		}
		delete(c.edges, id)
		delete(c.edgeProps, id)
	}
	for relID, removed := range byRel {
		dead := make(map[[2]int64]bool, len(removed))
		for _, e := range removed {
			dead[[2]int64{e.Dst, e.Src}] = true
		}
		c.relMat[relID] = filterMatrix(c.relMat[relID], func(i, j int64) bool {
			return !dead[[2]int64{i, j}]
		})
	}
}

// filterMatrix rebuilds m keeping only entries for which keep(i, j) is
// true. Used for both node-cascade deletes (drop any entry touching a
// dead row or column) and targeted edge deletes (drop exact cells).
func filterMatrix(m *gbmat.Matrix, keep func(i, j int64) bool) *gbmat.Matrix {
	I, J, X := m.ExtractTuples()
	vlen, vdim := m.Dim()
	keepI := I[:0]
	keepJ := J[:0]
	keepX := X[:0]
	for k := range I {
		if keep(I[k], J[k]) {
			keepI = append(keepI, I[k])
			keepJ = append(keepJ, J[k])
			keepX = append(keepX, X[k])
		}
	}
	return gbmat.Build(vlen, vdim, keepI, keepJ, keepX, func(a, b semiring.Value) semiring.Value { return b }, false)
}
