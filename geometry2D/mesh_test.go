package geometry2D

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopoisson/utils"
)

func tutorialGrid(t *testing.T) *Mesh {
	m, err := CreateGrid(utils.Linspace(-1, 1, 10), utils.Linspace(-1, 1, 10))
	require.NoError(t, err)
	return m
}

func TestCreateGrid(t *testing.T) {
	{
		m, err := CreateGrid([]float64{0, 1, 3}, []float64{-1, 2})
		require.NoError(t, err)
		assert.Equal(t, 6, len(m.Nodes))
		assert.Equal(t, 2, len(m.Cells))
		assert.Equal(t, 1, m.Order)
		assert.Equal(t, [2]int{3, 2}, [2]int{m.NX, m.NY})
		assert.Equal(t, NewPoint(3, 2), m.Nodes[5])
		assert.Equal(t, []int{0, 1, 4, 3}, m.Cells[0].Nodes)
		assert.Equal(t, []int{1, 2, 5, 4}, m.Cells[1].Nodes)
		assert.Equal(t, 6, len(m.Boundaries))
		assert.NoError(t, m.Validate())
		assert.Nil(t, m.Parent)
		assert.Equal(t, []int{MarkerLeft, MarkerRight, MarkerBottom, MarkerTop}, m.Markers())
	}
	{
		m := tutorialGrid(t)
		assert.Equal(t, 100, m.DOFCount())
		assert.Equal(t, 81, len(m.Cells))
		assert.Equal(t, 36, len(m.Boundaries))
		bb := m.Bounds()
		assert.Equal(t, [2]float64{-1, -1}, bb.XMin)
		assert.Equal(t, [2]float64{1, 1}, bb.XMax)
		assert.Equal(t, "nodes = 100, cells = 81, boundaries = 36, order = 1, refinements = 0", m.Stats().String())
	}
	for _, bad := range [][2][]float64{
		{{0}, {0, 1}},
		{{0, 1}, {}},
		{{0, 1, 1}, {0, 1}},
		{{0, 1}, {1, 0}},
		{{0, math.NaN()}, {0, 1}},
		{{0, 1}, {0, math.Inf(1)}},
	} {
		m, err := CreateGrid(bad[0], bad[1])
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, ErrMeshConstruction), "inputs %v", bad)
	}
}

func TestFindBoundaryByMarker(t *testing.T) {
	m := tutorialGrid(t)
	checkSide := func(marker, dim int, val float64) {
		bs := m.FindBoundaryByMarker(marker)
		assert.Len(t, bs, 9)
		for _, b := range bs {
			assert.Equal(t, marker, b.Marker)
			for _, n := range b.Nodes {
				assert.Equal(t, val, m.Nodes[n].X[dim])
			}
		}
	}
	checkSide(MarkerLeft, 0, -1)
	checkSide(MarkerRight, 0, 1)
	checkSide(MarkerBottom, 1, -1)
	checkSide(MarkerTop, 1, 1)

	all := m.FindBoundaryByMarkerRange(1, 5)
	assert.Len(t, all, 36)
	assert.Equal(t, all, m.FindBoundaryByMarker(1, 2, 3, 4))
	assert.Len(t, m.FindBoundaryByMarker(MarkerLeft, MarkerTop), 18)
	assert.Empty(t, m.FindBoundaryByMarker(7))
	assert.Empty(t, m.FindBoundaryByMarkerRange(5, 10))
	// The corners are shared by two sides, every boundary node appears once
	assert.Len(t, BoundaryNodes(all), 36)
	assert.Len(t, BoundaryNodes(m.FindBoundaryByMarker(MarkerLeft)), 10)
}

func TestCreateH2(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {3, 5}, {10, 10}} {
		mx, ny := dims[0], dims[1]
		m, err := CreateGrid(utils.Linspace(0, 2, mx), utils.Linspace(-1, 3, ny))
		require.NoError(t, err)
		h2, err := m.CreateH2()
		require.NoError(t, err)
		assert.NoError(t, h2.Validate())
		assert.Equal(t, (2*mx-1)*(2*ny-1), len(h2.Nodes))
		assert.Equal(t, [2]int{2*mx - 1, 2*ny - 1}, [2]int{h2.NX, h2.NY})
		assert.Equal(t, 4*len(m.Cells), len(h2.Cells))
		assert.Equal(t, 2*len(m.Boundaries), len(h2.Boundaries))
		assert.Equal(t, m, h2.Parent)
		assert.Equal(t, m.Bounds(), h2.Bounds())
		// Parent nodes keep their indices
		assert.Equal(t, m.Nodes, h2.Nodes[:len(m.Nodes)])

		h4, err := h2.CreateH2()
		require.NoError(t, err)
		assert.Equal(t, (4*mx-3)*(4*ny-3), len(h4.Nodes))
		assert.Equal(t, 2, h4.Depth())

		// Markers keep their sides
		for _, mesh := range []*Mesh{h2, h4} {
			for _, b := range mesh.Boundaries {
				for _, n := range b.Nodes {
					x := mesh.Nodes[n].X
					switch b.Marker {
					case MarkerLeft:
						assert.Equal(t, 0., x[0])
					case MarkerRight:
						assert.Equal(t, 2., x[0])
					case MarkerBottom:
						assert.Equal(t, -1., x[1])
					case MarkerTop:
						assert.Equal(t, 3., x[1])
					default:
						t.Fatalf("unexpected marker %d", b.Marker)
					}
				}
			}
			assert.Len(t, mesh.FindBoundaryByMarker(MarkerLeft), 2*mesh.Parent.countMarker(MarkerLeft))
		}
	}
	{ // Child cells cover the parent
		m := tutorialGrid(t)
		h2, err := m.CreateH2()
		require.NoError(t, err)
		for k := range m.Cells {
			var area float64
			for c := 4 * k; c < 4*k+4; c++ {
				area += cellArea(h2, c)
			}
			assert.InDelta(t, cellArea(m, k), area, 1.e-14)
		}
	}
}

func (m *Mesh) countMarker(marker int) int {
	return len(m.FindBoundaryByMarker(marker))
}

func cellArea(m *Mesh, k int) float64 {
	cn := m.CellCorners(k)
	var a float64
	for i := 0; i < 4; i++ {
		p, q := cn[i], cn[(i+1)%4]
		a += p.X[0]*q.X[1] - q.X[0]*p.X[1]
	}
	return 0.5 * a
}

func TestCreateP2(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {4, 3}, {10, 10}} {
		mx, ny := dims[0], dims[1]
		m, err := CreateGrid(utils.Linspace(-1, 1, mx), utils.Linspace(-1, 1, ny))
		require.NoError(t, err)
		p2, err := m.CreateP2()
		require.NoError(t, err)
		assert.NoError(t, p2.Validate())
		edges := (mx-1)*ny + mx*(ny-1)
		assert.Equal(t, mx*ny+edges, len(p2.Nodes))
		assert.Equal(t, len(m.Cells), len(p2.Cells))
		assert.Equal(t, len(m.Boundaries), len(p2.Boundaries))
		assert.Equal(t, 2, p2.Order)
		assert.Equal(t, 8, p2.NodesPerCell())
		// Every midpoint node sits halfway along its edge
		for _, c := range p2.Cells {
			for e := 0; e < 4; e++ {
				ev := c.EdgeVertices(e)
				assert.Equal(t, midPoint(p2.Nodes[ev[0]], p2.Nodes[ev[1]]), p2.Nodes[c.Nodes[4+e]])
			}
		}
		for _, b := range p2.Boundaries {
			assert.Equal(t, midPoint(p2.Nodes[b.Nodes[0]], p2.Nodes[b.Nodes[1]]), p2.Nodes[b.Nodes[2]])
		}
		// Removing the midpoints recovers the parent
		diff := cmp.Diff(m, p2.cornerMesh(), cmpopts.IgnoreFields(Mesh{}, "Parent"))
		assert.Empty(t, diff)

		_, err = p2.CreateP2()
		assert.True(t, errors.Is(err, ErrMeshConstruction))
	}
	{ // Shared edge tie-break: the lower numbered cell creates the node
		m, err := CreateGrid([]float64{0, 1, 2}, []float64{0, 1})
		require.NoError(t, err)
		p2, err := m.CreateP2()
		require.NoError(t, err)
		// Cell 0 edges: bottom(6), right(7, shared), top(8), left(9); cell 1 reuses 7 as its left edge
		assert.Equal(t, []int{0, 1, 4, 3, 6, 7, 8, 9}, p2.Cells[0].Nodes)
		assert.Equal(t, []int{1, 2, 5, 4, 10, 11, 12, 7}, p2.Cells[1].Nodes)
	}
	{ // H refinement of a quadratic mesh stays quadratic
		m := tutorialGrid(t)
		p2, err := m.CreateP2()
		require.NoError(t, err)
		h2p2, err := p2.CreateH2()
		require.NoError(t, err)
		assert.Equal(t, 2, h2p2.Order)
		assert.Equal(t, p2, h2p2.Parent)
		h2, err := m.CreateH2()
		require.NoError(t, err)
		h2p2Ref, err := h2.CreateP2()
		require.NoError(t, err)
		assert.Equal(t, len(h2p2Ref.Nodes), len(h2p2.Nodes))
		assert.Equal(t, h2p2Ref.Nodes, h2p2.Nodes)
		assert.NoError(t, h2p2.Validate())
	}
}

func TestValidate(t *testing.T) {
	m := tutorialGrid(t)
	m.Cells[3].Nodes[2] = 1000
	assert.True(t, errors.Is(m.Validate(), ErrMeshConstruction))

	m = tutorialGrid(t)
	m.Boundaries = append(m.Boundaries, Boundary{Nodes: m.Boundaries[0].Nodes, Marker: 9,
		Cell: m.Boundaries[0].Cell, Face: m.Boundaries[0].Face})
	assert.True(t, errors.Is(m.Validate(), ErrMeshConstruction))
	_, err := m.CreateH2()
	assert.Error(t, err)

	m = tutorialGrid(t)
	m.Order = 3
	assert.Error(t, m.Validate())
}
