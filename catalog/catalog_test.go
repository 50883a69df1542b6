package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/catalog"
	"github.com/graphalg/acore/sival"
)

func TestCreateNodeStampsLabelDiagonal(t *testing.T) {
	c := catalog.New()
	n, err := c.CreateNode([]string{"Person"}, map[string]sival.Value{"name": sival.StringVal("Ada")})
	require.NoError(t, err)

	labelMat, err := c.LabelMatrix("Person")
	require.NoError(t, err)
	v, ok := labelMat.At(int(n.ID), int(n.ID))
	require.True(t, ok)
	b, _ := v.Bool()
	require.True(t, b)

	name, ok := c.GetNodeProperty(n.ID, "name")
	require.True(t, ok)
	s, _ := name.String()
	require.Equal(t, "Ada", s)
}

func TestCreateEdgeStampsAdjacency(t *testing.T) {
	c := catalog.New()
	a, _ := c.CreateNode([]string{"Person"}, nil)
	b, _ := c.CreateNode([]string{"Person"}, nil)

	_, err := c.CreateEdge("KNOWS", a.ID, b.ID, nil)
	require.NoError(t, err)

	rel, err := c.RelMatrix("KNOWS")
	require.NoError(t, err)
	v, ok := rel.At(int(b.ID), int(a.ID))
	require.True(t, ok)
	bv, _ := v.Bool()
	require.True(t, bv)
}

func TestDeleteNodesCascadesToEdges(t *testing.T) {
	c := catalog.New()
	a, _ := c.CreateNode([]string{"Person"}, nil)
	b, _ := c.CreateNode([]string{"Person"}, nil)
	edge, _ := c.CreateEdge("KNOWS", a.ID, b.ID, nil)

	err := c.DeleteNodes([]int64{a.ID})
	require.NoError(t, err)

	_, ok := c.GetNode(a.ID)
	require.False(t, ok)

	rel, _ := c.RelMatrix("KNOWS")
	_, present := rel.At(int(b.ID), int(a.ID))
	require.False(t, present)

	_, ok = c.GetEdgeProperty(edge.ID, "anything")
	require.False(t, ok)
}

func TestDeleteEdgesRemovesExactEntry(t *testing.T) {
	c := catalog.New()
	a, _ := c.CreateNode(nil, nil)
	b, _ := c.CreateNode(nil, nil)
	d, _ := c.CreateNode(nil, nil)
	e1, _ := c.CreateEdge("KNOWS", a.ID, b.ID, nil)
	_, _ = c.CreateEdge("KNOWS", a.ID, d.ID, nil)

	require.NoError(t, c.DeleteEdges([]sival.EdgeRef{e1}))

	rel, _ := c.RelMatrix("KNOWS")
	_, gone := rel.At(int(b.ID), int(a.ID))
	require.False(t, gone)
	_, stays := rel.At(int(d.ID), int(a.ID))
	require.True(t, stays)
}

func TestCatalogGrowsPastInitialDimension(t *testing.T) {
	c := catalog.New()
	var last sival.NodeRef
	for i := 0; i < 200; i++ {
		last, _ = c.CreateNode([]string{"N"}, nil)
	}
	labelMat, err := c.LabelMatrix("N")
	require.NoError(t, err)
	v, ok := labelMat.At(int(last.ID), int(last.ID))
	require.True(t, ok)
	b, _ := v.Bool()
	require.True(t, b)
}
