package geometry2D

import (
	"fmt"

	"github.com/notargets/gopoisson/types"
)

/*
CreateH2 refines every cell into four by inserting a node at the midpoint of each edge and at the
cell centroid. Parent nodes keep their indices, new edge midpoints follow in the order the edges are
first met (ascending cell, then local edge) and the centroids come last, one per parent cell.

Child k of parent cell c has index 4c+k:

	v3 --- m2 --- v2
	|  3   |   2  |
	m3 --- ct --- m1
	|  0   |   1  |
	v0 --- m0 --- v1

Each boundary edge is split in two halves that keep the parent's marker. A quadratic mesh is refined
through its corner mesh and then raised back to second order.
*/
func (m *Mesh) CreateH2() (h2 *Mesh, err error) {
	if err = m.Validate(); err != nil {
		return
	}
	if m.Order == 2 {
		var hc *Mesh
		if hc, err = m.cornerMesh().CreateH2(); err != nil {
			return
		}
		if h2, err = hc.CreateP2(); err != nil {
			return
		}
		h2.Parent = m
		return
	}
	var (
		n0  = len(m.Nodes)
		nc  = len(m.Cells)
		em  = types.NewEdgeMap(2 * nc)
		mid = make([][4]int, nc)
	)
	h2 = &Mesh{
		Nodes:  make([]Point, n0, 4*n0),
		Cells:  make([]Cell, 0, 4*nc),
		Order:  1,
		Parent: m,
	}
	copy(h2.Nodes, m.Nodes)
	for k, c := range m.Cells {
		for e := 0; e < 4; e++ {
			ev := c.EdgeVertices(e)
			ord, _ := em.Lookup(ev)
			mid[k][e] = n0 + ord
		}
	}
	h2.Nodes = append(h2.Nodes, m.edgeMidpoints(em)...)
	for k := range m.Cells {
		cn := m.CellCorners(k)
		h2.Nodes = append(h2.Nodes, Point{X: [2]float64{
			0.25 * (cn[0].X[0] + cn[1].X[0] + cn[2].X[0] + cn[3].X[0]),
			0.25 * (cn[0].X[1] + cn[1].X[1] + cn[2].X[1] + cn[3].X[1]),
		}})
	}
	for k, c := range m.Cells {
		var (
			v  = c.Corners()
			md = mid[k]
			ct = n0 + em.Len() + k
		)
		h2.Cells = append(h2.Cells,
			Cell{Nodes: []int{v[0], md[0], ct, md[3]}},
			Cell{Nodes: []int{md[0], v[1], md[1], ct}},
			Cell{Nodes: []int{ct, md[1], v[2], md[2]}},
			Cell{Nodes: []int{md[3], ct, md[2], v[3]}},
		)
	}
	h2.Boundaries = make([]Boundary, 0, 2*len(m.Boundaries))
	for _, b := range m.Boundaries {
		var (
			ev = m.Cells[b.Cell].EdgeVertices(b.Face)
			md = mid[b.Cell][b.Face]
		)
		h2.Boundaries = append(h2.Boundaries,
			Boundary{Nodes: []int{ev[0], md}, Marker: b.Marker, Cell: 4*b.Cell + b.Face, Face: b.Face},
			Boundary{Nodes: []int{md, ev[1]}, Marker: b.Marker, Cell: 4*b.Cell + (b.Face+1)%4, Face: b.Face},
		)
	}
	if m.NX > 0 && m.NY > 0 {
		h2.NX, h2.NY = 2*m.NX-1, 2*m.NY-1
	}
	return
}

/*
CreateP2 raises a bilinear mesh to second order on the same cells by adding one node at the midpoint
of every edge. An edge shared by two cells gets a single node, created by the lowest numbered cell
that owns the edge (then the lowest local edge); the new nodes follow the existing ones in that order.
*/
func (m *Mesh) CreateP2() (p2 *Mesh, err error) {
	if err = m.Validate(); err != nil {
		return
	}
	if m.Order != 1 {
		err = fmt.Errorf("%w: mesh is already of order %d", ErrMeshConstruction, m.Order)
		return
	}
	var (
		n0 = len(m.Nodes)
		em = types.NewEdgeMap(2 * len(m.Cells))
	)
	p2 = &Mesh{
		Nodes:  make([]Point, n0, 3*n0),
		Cells:  make([]Cell, len(m.Cells)),
		Order:  2,
		NX:     m.NX,
		NY:     m.NY,
		Parent: m,
	}
	copy(p2.Nodes, m.Nodes)
	for k, c := range m.Cells {
		nodes := make([]int, 8)
		copy(nodes, c.Nodes[:4])
		for e := 0; e < 4; e++ {
			ev := c.EdgeVertices(e)
			ord, _ := em.Lookup(ev)
			nodes[4+e] = n0 + ord
		}
		p2.Cells[k] = Cell{Nodes: nodes}
	}
	p2.Nodes = append(p2.Nodes, m.edgeMidpoints(em)...)
	p2.Boundaries = make([]Boundary, len(m.Boundaries))
	for i, b := range m.Boundaries {
		ord, _ := em.Find([2]int{b.Nodes[0], b.Nodes[1]})
		p2.Boundaries[i] = Boundary{
			Nodes:  []int{b.Nodes[0], b.Nodes[1], n0 + ord},
			Marker: b.Marker,
			Cell:   b.Cell,
			Face:   b.Face,
		}
	}
	return
}

// edgeMidpoints places one node at the middle of every edge in the map, in edge order
func (m *Mesh) edgeMidpoints(em *types.EdgeMap) (pts []Point) {
	pts = make([]Point, em.Len())
	for i, ek := range em.Keys {
		ev := ek.GetVertices(false)
		pts[i] = midPoint(m.Nodes[ev[0]], m.Nodes[ev[1]])
	}
	return
}

// cornerMesh strips the midpoint nodes of a quadratic mesh, compacting the corner node numbering
func (m *Mesh) cornerMesh() (cm *Mesh) {
	var (
		renum = make([]int, len(m.Nodes))
		used  = make([]bool, len(m.Nodes))
	)
	cm = &Mesh{
		Order: 1,
		NX:    m.NX,
		NY:    m.NY,
		Cells: make([]Cell, len(m.Cells)),
	}
	// Corners keep the relative order of their old indices, so a mesh built by CreateP2
	// recovers its parent numbering exactly
	for _, c := range m.Cells {
		for _, n := range c.Corners() {
			used[n] = true
		}
	}
	for i := range renum {
		renum[i] = -1
		if used[i] {
			renum[i] = len(cm.Nodes)
			cm.Nodes = append(cm.Nodes, m.Nodes[i])
		}
	}
	for k, c := range m.Cells {
		cv := c.Corners()
		cm.Cells[k] = Cell{Nodes: []int{renum[cv[0]], renum[cv[1]], renum[cv[2]], renum[cv[3]]}}
	}
	cm.Boundaries = make([]Boundary, len(m.Boundaries))
	for i, b := range m.Boundaries {
		cm.Boundaries[i] = Boundary{
			Nodes:  []int{renum[b.Nodes[0]], renum[b.Nodes[1]]},
			Marker: b.Marker,
			Cell:   b.Cell,
			Face:   b.Face,
		}
	}
	return
}
