package catalog

import (
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/semiring"
)

// LabelMatrix returns label's diagonal selector matrix, registering a
// fresh empty one the first time label is seen.
func (c *Catalog) LabelMatrix(label string) (*gbmat.Matrix, error) {
	c.muCatalog.RLock()
	if id, ok := c.labelID[label]; ok {
		m := c.labelMat[id].ShallowCopy()
		c.muCatalog.RUnlock()
		return m, nil
	}
	c.muCatalog.RUnlock()

	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()
	if id, ok := c.labelID[label]; ok {
		return c.labelMat[id].ShallowCopy(), nil
	}
	id := len(c.labelMat)
	c.labelID[label] = id
	c.labelMat = append(c.labelMat, gbmat.NewSparse(c.dim, c.dim, semiring.Bool))
	return c.labelMat[id].ShallowCopy(), nil
}

// RelMatrix returns relType's adjacency matrix, registering a fresh
// empty one the first time relType is seen.
func (c *Catalog) RelMatrix(relType string) (*gbmat.Matrix, error) {
	c.muCatalog.RLock()
	if id, ok := c.relID[relType]; ok {
		m := c.relMat[id].ShallowCopy()
		c.muCatalog.RUnlock()
		return m, nil
	}
	c.muCatalog.RUnlock()

	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()
	if id, ok := c.relID[relType]; ok {
		return c.relMat[id].ShallowCopy(), nil
	}
	id := len(c.relMat)
	c.relID[relType] = id
	c.relMat = append(c.relMat, gbmat.NewSparse(c.dim, c.dim, semiring.Bool))
	return c.relMat[id].ShallowCopy(), nil
}

// labelIDLocked registers label if unseen and returns its id. Caller
// must hold muCatalog for writing.
func (c *Catalog) labelIDLocked(label string) int {
	if id, ok := c.labelID[label]; ok {
		return id
	}
	id := len(c.labelMat)
	c.labelID[label] = id
	c.labelMat = append(c.labelMat, gbmat.NewSparse(c.dim, c.dim, semiring.Bool))
	return id
}

// relIDLocked registers relType if unseen and returns its id. Caller
// must hold muCatalog for writing.
func (c *Catalog) relIDLocked(relType string) int {
	if id, ok := c.relID[relType]; ok {
		return id
	}
	id := len(c.relMat)
	c.relID[relType] = id
	c.relMat = append(c.relMat, gbmat.NewSparse(c.dim, c.dim, semiring.Bool))
	return id
}
