package FEM2D

import (
	"fmt"

	"github.com/notargets/gopoisson/geometry2D"
	"github.com/notargets/gopoisson/utils"
)

/*
Interpolate evaluates a field of src at arbitrary positions. Each position is located in a source
cell and the field is evaluated with the cell's shape functions; no extrapolation is done, a position
outside every cell fails with an *OutOfDomainError.
*/
func Interpolate(src *geometry2D.Mesh, field *Field, dest []geometry2D.Point) (vals []float64, err error) {
	if src == nil || field == nil {
		err = fmt.Errorf("%w: interpolation needs a mesh and a field", ErrInvalidInput)
		return
	}
	if err = src.Validate(); err != nil {
		return
	}
	if len(field.Values) != src.DOFCount() {
		err = fmt.Errorf("%w: field has %d values, mesh has %d dofs", ErrInvalidInput,
			len(field.Values), src.DOFCount())
		return
	}
	var (
		cl     = geometry2D.NewCellLocator(src)
		fn, nv = geometry2D.ShapeFor(src.Order)
		S      = make([]float64, nv)
	)
	vals = make([]float64, len(dest))
	for i, p := range dest {
		k, r, s, ok := cl.Locate(p)
		if !ok {
			return nil, &OutOfDomainError{Index: i, Position: p}
		}
		fn(S, nil, r, s)
		for n, node := range src.Cells[k].Nodes {
			vals[i] += S[n] * field.Values[node]
		}
	}
	return
}

// Probe returns n equally spaced points on the segment from (x0,y0) to (x1,y1), ends included
func Probe(x0, y0, x1, y1 float64, n int) (pts []geometry2D.Point) {
	var (
		xs = utils.Linspace(x0, x1, n)
		ys = utils.Linspace(y0, y1, n)
	)
	pts = make([]geometry2D.Point, n)
	for i := range pts {
		pts[i] = geometry2D.NewPoint(xs[i], ys[i])
	}
	return
}
