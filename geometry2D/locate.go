package geometry2D

import (
	"math"
)

// Tolerance on natural coordinates for a point to count as inside a cell
const NatCoordTol = 1.e-10

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(Geometry []Point) (Box BoundingBox) {
	if len(Geometry) == 0 {
		return
	}
	Box.XMin[0], Box.XMin[1] = Geometry[0].X[0], Geometry[0].X[1]
	Box.XMax[0], Box.XMax[1] = Geometry[0].X[0], Geometry[0].X[1]
	for _, point := range Geometry {
		for i := 0; i < 2; i++ {
			if point.X[i] < Box.XMin[i] {
				Box.XMin[i] = point.X[i]
			}
			if point.X[i] > Box.XMax[i] {
				Box.XMax[i] = point.X[i]
			}
		}
	}
	return Box
}

func (bb BoundingBox) Size() (size [2]float64) {
	return [2]float64{bb.XMax[0] - bb.XMin[0], bb.XMax[1] - bb.XMin[1]}
}

// Contains tests p against the box grown by tol on every side
func (bb BoundingBox) Contains(p Point, tol float64) bool {
	for i := 0; i < 2; i++ {
		if p.X[i] < bb.XMin[i]-tol || p.X[i] > bb.XMax[i]+tol {
			return false
		}
	}
	return true
}

/*
CellLocator finds the cell containing a point. Cell bounding boxes are binned into a uniform grid of
buckets over the mesh extent; a query tests only the cells registered in the point's bucket, in
ascending cell order, so the lowest numbered containing cell is returned for points on shared edges.
*/
type CellLocator struct {
	mesh    *Mesh
	bounds  BoundingBox
	boxes   []BoundingBox
	nb      [2]int
	buckets [][]int
	tol     float64
}

func NewCellLocator(m *Mesh) (cl *CellLocator) {
	var (
		nc = len(m.Cells)
	)
	cl = &CellLocator{
		mesh:   m,
		bounds: m.Bounds(),
		boxes:  make([]BoundingBox, nc),
	}
	size := cl.bounds.Size()
	cl.tol = 1.e-10 * math.Max(1, math.Max(size[0], size[1]))
	nbDir := int(math.Ceil(math.Sqrt(float64(nc))))
	if nbDir < 1 {
		nbDir = 1
	}
	cl.nb = [2]int{nbDir, nbDir}
	cl.buckets = make([][]int, nbDir*nbDir)
	for k := range m.Cells {
		cn := m.CellCorners(k)
		cl.boxes[k] = NewBoundingBox(cn[:])
		i0, j0 := cl.bucketIJ(Point{X: [2]float64{cl.boxes[k].XMin[0] - cl.tol, cl.boxes[k].XMin[1] - cl.tol}})
		i1, j1 := cl.bucketIJ(Point{X: [2]float64{cl.boxes[k].XMax[0] + cl.tol, cl.boxes[k].XMax[1] + cl.tol}})
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				b := j*cl.nb[0] + i
				cl.buckets[b] = append(cl.buckets[b], k)
			}
		}
	}
	return
}

func (cl *CellLocator) bucketIJ(p Point) (i, j int) {
	var (
		size = cl.bounds.Size()
		ij   [2]int
	)
	for d := 0; d < 2; d++ {
		if size[d] > 0 {
			ij[d] = int(float64(cl.nb[d]) * (p.X[d] - cl.bounds.XMin[d]) / size[d])
		}
		if ij[d] < 0 {
			ij[d] = 0
		}
		if ij[d] > cl.nb[d]-1 {
			ij[d] = cl.nb[d] - 1
		}
	}
	return ij[0], ij[1]
}

/*
Locate returns the cell containing p and the natural coordinates of p in that cell, clamped to
[-1,1]. ok is false when p lies outside every cell.
*/
func (cl *CellLocator) Locate(p Point) (k int, r, s float64, ok bool) {
	if len(cl.mesh.Cells) == 0 || !cl.bounds.Contains(p, cl.tol) {
		return -1, 0, 0, false
	}
	i, j := cl.bucketIJ(p)
	for _, k = range cl.buckets[j*cl.nb[0]+i] {
		if !cl.boxes[k].Contains(p, cl.tol) {
			continue
		}
		var conv bool
		if r, s, conv = InverseMapQ4(cl.mesh.CellCorners(k), p); !conv {
			continue
		}
		if math.Abs(r) <= 1+NatCoordTol && math.Abs(s) <= 1+NatCoordTol {
			return k, clamp1(r), clamp1(s), true
		}
	}
	return -1, 0, 0, false
}

func clamp1(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
