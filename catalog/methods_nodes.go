package catalog

import (
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/sival"
)

// CreateNode allocates a new node id, stamps it into every named label's
// diagonal, and stores its properties.
func (c *Catalog) CreateNode(labels []string, props map[string]sival.Value) (sival.NodeRef, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	id := c.nextNodeID
	c.nextNodeID++
	c.ensureDim(int(id) + 1)

	for _, l := range labels {
		lid := c.labelIDLocked(l)
		c.labelMat[lid].Set(int(id), int(id), semiring.FromBool(true))
	}

	node := sival.NodeRef{ID: id, Labels: labels}
	c.nodes[id] = node
	if len(props) > 0 {
		c.nodeProps[id] = props
	}
	return node, nil
}

// GetNode resolves a node by id.
func (c *Catalog) GetNode(id int64) (sival.NodeRef, bool) {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	n, ok := c.nodes[id]
	return n, ok
}

// AllNodes returns every live node in id order.
func (c *Catalog) AllNodes() []sival.NodeRef {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	out := make([]sival.NodeRef, 0, len(c.nodes))
	for id := int64(0); id < c.nextNodeID; id++ {
		if n, ok := c.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// GetNodeProperty resolves a single property of a node.
func (c *Catalog) GetNodeProperty(id int64, key string) (sival.Value, bool) {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	props, ok := c.nodeProps[id]
	if !ok {
		return sival.Null(), false
	}
	v, ok := props[key]
	return v, ok
}

// SetNodeProperty assigns a single property on an existing node.
func (c *Catalog) SetNodeProperty(id int64, key string, v sival.Value) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()
	if _, ok := c.nodes[id]; !ok {
		return errs.New(errs.InvalidParameter, "SET: node %d does not exist", id)
	}
	if c.nodeProps[id] == nil {
		c.nodeProps[id] = make(map[string]sival.Value)
	}
	c.nodeProps[id][key] = v
	return nil
}

// DeleteNodes removes each named node and, cascading, every edge
// incident to it, matching the deletion-cascade end-to-end scenario.
func (c *Catalog) DeleteNodes(ids []int64) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	dead := make(map[int64]bool, len(ids))
	for _, id := range ids {
		dead[id] = true
	}

	var deadEdges []int64
	for eid, e := range c.edges {
		if dead[e.Src] || dead[e.Dst] {
			deadEdges = append(deadEdges, eid)
		}
	}
	c.dropEdgesLocked(deadEdges)

	for id := range dead {
		delete(c.nodes, id)
		delete(c.nodeProps, id)
	}
	for lid, m := range c.labelMat {
		c.labelMat[lid] = filterMatrix(m, func(i, j int64) bool {
			return !dead[i] && !dead[j]
		})
	}
	return nil
}
