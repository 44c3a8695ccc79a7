package geometry2D

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gopoisson/types"
)

// ErrMeshConstruction is returned for invalid grid coordinates and inconsistent meshes
var ErrMeshConstruction = errors.New("mesh construction error")

// Boundary markers assigned by CreateGrid to the four sides of the domain
const (
	MarkerLeft   = 1
	MarkerRight  = 2
	MarkerBottom = 3
	MarkerTop    = 4
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point {
	return Point{X: [2]float64{x, y}}
}

func (p Point) Minus(q Point) Point {
	return Point{X: [2]float64{p.X[0] - q.X[0], p.X[1] - q.X[1]}}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X[0]-q.X[0], p.X[1]-q.X[1])
}

func midPoint(a, b Point) Point {
	return Point{X: [2]float64{0.5 * (a.X[0] + b.X[0]), 0.5 * (a.X[1] + b.X[1])}}
}

/*
Cell is a quadrilateral. Nodes holds the four corners counter-clockwise, followed for quadratic
meshes by the four edge midpoints m0..m3, where local edge e joins corners e and (e+1)%4
*/
type Cell struct {
	Nodes []int
}

func (c Cell) Corners() [4]int {
	return [4]int{c.Nodes[0], c.Nodes[1], c.Nodes[2], c.Nodes[3]}
}

// EdgeVertices returns the two corners of local edge e in counter-clockwise order
func (c Cell) EdgeVertices(e int) [2]int {
	return [2]int{c.Nodes[e], c.Nodes[(e+1)%4]}
}

/*
Boundary is one edge of the domain boundary. Nodes holds the edge endpoints in the orientation of
the owning cell, followed for quadratic meshes by the midpoint node.
*/
type Boundary struct {
	Nodes  []int
	Marker int
	Cell   int // Owning cell
	Face   int // Local edge of the owning cell
}

type Mesh struct {
	Nodes      []Point
	Cells      []Cell
	Boundaries []Boundary
	Order      int // 1 = bilinear (Q4), 2 = serendipity (Q8)
	// NX, NY are the corner node counts of a structured grid, zero when the mesh is not structured.
	// Only meshes straight from CreateGrid number their nodes row major.
	NX, NY int
	Parent *Mesh // Provenance of a refined mesh, nil for a base mesh
}

func (m *Mesh) NodesPerCell() int { return 4 * m.Order }

// DOFCount is the number of unknowns of a scalar field on this mesh, one per node
func (m *Mesh) DOFCount() int { return len(m.Nodes) }

// CellCorners returns the corner positions of cell k
func (m *Mesh) CellCorners(k int) (corners [4]Point) {
	for i, n := range m.Cells[k].Corners() {
		corners[i] = m.Nodes[n]
	}
	return
}

// Bounds returns the axis aligned bounding box of all nodes
func (m *Mesh) Bounds() (bb BoundingBox) {
	return NewBoundingBox(m.Nodes)
}

// Depth is the number of refinements between this mesh and its base mesh
func (m *Mesh) Depth() (d int) {
	for p := m.Parent; p != nil; p = p.Parent {
		d++
	}
	return
}

type MeshStats struct {
	Nodes, Cells, Boundaries, Order, Depth int
}

func (m *Mesh) Stats() MeshStats {
	return MeshStats{
		Nodes:      len(m.Nodes),
		Cells:      len(m.Cells),
		Boundaries: len(m.Boundaries),
		Order:      m.Order,
		Depth:      m.Depth(),
	}
}

func (ms MeshStats) String() string {
	return fmt.Sprintf("nodes = %d, cells = %d, boundaries = %d, order = %d, refinements = %d",
		ms.Nodes, ms.Cells, ms.Boundaries, ms.Order, ms.Depth)
}

// Validate checks the referential integrity of the mesh and that no boundary edge appears twice
func (m *Mesh) Validate() (err error) {
	var (
		nn  = len(m.Nodes)
		npc = m.NodesPerCell()
	)
	if m.Order != 1 && m.Order != 2 {
		return fmt.Errorf("%w: unsupported element order %d", ErrMeshConstruction, m.Order)
	}
	for k, c := range m.Cells {
		if len(c.Nodes) != npc {
			return fmt.Errorf("%w: cell %d has %d nodes, order %d needs %d",
				ErrMeshConstruction, k, len(c.Nodes), m.Order, npc)
		}
		for _, n := range c.Nodes {
			if n < 0 || n >= nn {
				return fmt.Errorf("%w: cell %d references node %d, mesh has %d nodes",
					ErrMeshConstruction, k, n, nn)
			}
		}
	}
	seen := make(map[types.EdgeKey]int, len(m.Boundaries))
	for i, b := range m.Boundaries {
		if b.Cell < 0 || b.Cell >= len(m.Cells) || b.Face < 0 || b.Face > 3 {
			return fmt.Errorf("%w: boundary %d references cell %d face %d",
				ErrMeshConstruction, i, b.Cell, b.Face)
		}
		if len(b.Nodes) != m.Order+1 {
			return fmt.Errorf("%w: boundary %d has %d nodes, order %d needs %d",
				ErrMeshConstruction, i, len(b.Nodes), m.Order, m.Order+1)
		}
		if m.Cells[b.Cell].EdgeVertices(b.Face) != [2]int{b.Nodes[0], b.Nodes[1]} {
			return fmt.Errorf("%w: boundary %d does not match face %d of cell %d",
				ErrMeshConstruction, i, b.Face, b.Cell)
		}
		ek := types.NewEdgeKey([2]int{b.Nodes[0], b.Nodes[1]})
		if j, ok := seen[ek]; ok {
			return fmt.Errorf("%w: boundaries %d and %d cover the same edge", ErrMeshConstruction, j, i)
		}
		seen[ek] = i
	}
	return
}
