package geometry2D

import (
	"fmt"

	"github.com/notargets/gopoisson/utils"
)

/*
CreateGrid builds a structured grid of bilinear quadrilaterals from strictly increasing x and y coordinates.
Node (i,j) is at (xs[i], ys[j]) and has index j*len(xs)+i. Cells are numbered row major from the
bottom left. The sides carry MarkerLeft, MarkerRight, MarkerBottom and MarkerTop.
*/
func CreateGrid(xs, ys []float64) (m *Mesh, err error) {
	if len(xs) < 2 || len(ys) < 2 {
		err = fmt.Errorf("%w: need at least 2 coordinates in each direction, have %d x %d",
			ErrMeshConstruction, len(xs), len(ys))
		return
	}
	if !utils.IsStrictlyIncreasing(xs) {
		err = fmt.Errorf("%w: x coordinates are not finite and strictly increasing", ErrMeshConstruction)
		return
	}
	if !utils.IsStrictlyIncreasing(ys) {
		err = fmt.Errorf("%w: y coordinates are not finite and strictly increasing", ErrMeshConstruction)
		return
	}
	var (
		nx, ny = len(xs), len(ys)
		node   = func(i, j int) int { return j*nx + i }
	)
	m = &Mesh{
		Nodes: make([]Point, 0, nx*ny),
		Cells: make([]Cell, 0, (nx-1)*(ny-1)),
		Order: 1,
		NX:    nx,
		NY:    ny,
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			m.Nodes = append(m.Nodes, NewPoint(xs[i], ys[j]))
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			k := len(m.Cells)
			c := Cell{Nodes: []int{node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1)}}
			m.Cells = append(m.Cells, c)
			if j == 0 {
				m.addBoundary(k, 0, MarkerBottom)
			}
			if i == nx-2 {
				m.addBoundary(k, 1, MarkerRight)
			}
			if j == ny-2 {
				m.addBoundary(k, 2, MarkerTop)
			}
			if i == 0 {
				m.addBoundary(k, 3, MarkerLeft)
			}
		}
	}
	return
}

func (m *Mesh) addBoundary(k, face, marker int) {
	ev := m.Cells[k].EdgeVertices(face)
	m.Boundaries = append(m.Boundaries, Boundary{
		Nodes:  []int{ev[0], ev[1]},
		Marker: marker,
		Cell:   k,
		Face:   face,
	})
}
