package FEM2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gopoisson/geometry2D"
)

/*
ElementKernel computes local stiffness and load contributions of one element order. Geometry is
always the bilinear map of the four corners; the field is interpolated by the Q4 or Q8 shape
functions. A kernel holds scratch storage and must not be shared between goroutines.
*/
type ElementKernel struct {
	Order, NV int
	Shape     geometry2D.ShapeFunc
	StiffRule QuadRule2D // 2x2 for Q4, 3x3 for Q8
	LoadRule  QuadRule2D // 3x3 for Q4, 4x4 for Q8
	S         []float64
	dSdR      [][2]float64
	G         *mat.Dense // Shape function gradients in real coordinates, NV x 2
	GGt       *mat.Dense
}

func NewElementKernel(order int) (ek *ElementKernel) {
	fn, nv := geometry2D.ShapeFor(order)
	ek = &ElementKernel{
		Order:     order,
		NV:        nv,
		Shape:     fn,
		StiffRule: NewQuadRule2D(order + 1),
		LoadRule:  NewQuadRule2D(order + 2),
		S:         make([]float64, nv),
		dSdR:      make([][2]float64, nv),
		G:         mat.NewDense(nv, 2, nil),
		GGt:       mat.NewDense(nv, nv, nil),
	}
	return
}

// jacobian evaluates the shape functions and geometry map at (r,s) and checks the cell orientation
func (ek *ElementKernel) jacobian(corners [4]geometry2D.Point, r, s float64,
	withGrad bool) (x geometry2D.Point, J [2][2]float64, det float64, err error) {
	var dSdR [][2]float64
	if withGrad {
		dSdR = ek.dSdR
	}
	ek.Shape(ek.S, dSdR, r, s)
	x, J = geometry2D.MapQ4(corners, r, s)
	det = geometry2D.Det2(J)
	scale := corners[0].Dist(corners[2])
	if det < geometry2D.MINDET*scale*scale {
		err = fmt.Errorf("%w: cell with corners %v is degenerate or clockwise, Jacobian = %g",
			ErrMeshConstruction, corners, det)
	}
	return
}

// Stiffness fills K (NV x NV) with the integral of grad(Ni).grad(Nj) over the cell
func (ek *ElementKernel) Stiffness(corners [4]geometry2D.Point, K *mat.Dense) (err error) {
	K.Zero()
	qr := ek.StiffRule
	for q := 0; q < qr.Len(); q++ {
		var (
			J   [2][2]float64
			det float64
		)
		if _, J, det, err = ek.jacobian(corners, qr.R[q], qr.S[q], true); err != nil {
			return
		}
		// dR_j/dx_i from the inverse Jacobian
		Jinv := [2][2]float64{
			{J[1][1] / det, -J[0][1] / det},
			{-J[1][0] / det, J[0][0] / det},
		}
		for n := 0; n < ek.NV; n++ {
			for i := 0; i < 2; i++ {
				ek.G.Set(n, i, ek.dSdR[n][0]*Jinv[0][i]+ek.dSdR[n][1]*Jinv[1][i])
			}
		}
		ek.GGt.Mul(ek.G, ek.G.T())
		ek.GGt.Scale(qr.W[q]*det, ek.GGt)
		K.Add(K, ek.GGt)
	}
	return
}

/*
Load fills F with the integral of f*Ni over the cell. A Constant source on a parallelogram uses the
exact shape function integrals: A/4 per node for Q4; -A/12 per corner and A/3 per midpoint for Q8.
*/
func (ek *ElementKernel) Load(corners [4]geometry2D.Point, f Evaluable, F []float64) (err error) {
	for i := range F {
		F[i] = 0
	}
	if c, ok := f.(Constant); ok && isParallelogram(corners) {
		var (
			val = float64(c)
			A   = quadArea(corners)
		)
		if A <= 0 {
			return fmt.Errorf("%w: cell with corners %v has non positive area %g", ErrMeshConstruction, corners, A)
		}
		switch ek.Order {
		case 1:
			for i := 0; i < 4; i++ {
				F[i] = 0.25 * A * val
			}
		case 2:
			for i := 0; i < 4; i++ {
				F[i] = -A * val / 12.
				F[i+4] = A * val / 3.
			}
		}
		return
	}
	qr := ek.LoadRule
	for q := 0; q < qr.Len(); q++ {
		var (
			x   geometry2D.Point
			det float64
		)
		if x, _, det, err = ek.jacobian(corners, qr.R[q], qr.S[q], false); err != nil {
			return
		}
		fw := f.Eval(x) * qr.W[q] * det
		for n := 0; n < ek.NV; n++ {
			F[n] += fw * ek.S[n]
		}
	}
	return
}

func isParallelogram(c [4]geometry2D.Point) bool {
	scale := math.Max(c[0].Dist(c[2]), c[1].Dist(c[3]))
	for i := 0; i < 2; i++ {
		if math.Abs(c[0].X[i]+c[2].X[i]-c[1].X[i]-c[3].X[i]) > 1.e-12*scale {
			return false
		}
	}
	return true
}

// quadArea is the signed area of a quadrilateral, positive for counter-clockwise corners
func quadArea(c [4]geometry2D.Point) float64 {
	d1, d2 := c[2].Minus(c[0]), c[3].Minus(c[1])
	return 0.5 * (d1.X[0]*d2.X[1] - d1.X[1]*d2.X[0])
}
