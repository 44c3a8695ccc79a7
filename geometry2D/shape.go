package geometry2D

import (
	"math"

	"github.com/notargets/gopoisson/utils"
)

// MINDET is the smallest Jacobian determinant accepted for an element mapping
const MINDET = 1.0e-14

/*
ShapeFunc evaluates the shape functions S and, when dSdR is not nil, their derivatives with
respect to the natural coordinates (r,s) in [-1,1]x[-1,1]
*/
type ShapeFunc func(S []float64, dSdR [][2]float64, r, s float64)

// Natural coordinates of the element nodes, corners counter-clockwise from (-1,-1) then edge midpoints
var (
	NatCoordsQ4 = [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	NatCoordsQ8 = [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)

// ShapeFor returns the shape function and node count of an element order
func ShapeFor(order int) (fn ShapeFunc, nverts int) {
	switch order {
	case 1:
		return ShapeQ4, 4
	case 2:
		return ShapeQ8, 8
	}
	panic("unsupported element order")
}

// ShapeQ4 is the bilinear quadrilateral
func ShapeQ4(S []float64, dSdR [][2]float64, r, s float64) {
	for i, rs := range NatCoordsQ4 {
		ri, si := rs[0], rs[1]
		S[i] = 0.25 * (1 + r*ri) * (1 + s*si)
		if dSdR != nil {
			dSdR[i][0] = 0.25 * ri * (1 + s*si)
			dSdR[i][1] = 0.25 * si * (1 + r*ri)
		}
	}
}

// ShapeQ8 is the eight node serendipity quadrilateral
func ShapeQ8(S []float64, dSdR [][2]float64, r, s float64) {
	for i, rs := range NatCoordsQ8 {
		ri, si := rs[0], rs[1]
		switch {
		case i < 4:
			S[i] = 0.25 * (1 + r*ri) * (1 + s*si) * (r*ri + s*si - 1)
			if dSdR != nil {
				dSdR[i][0] = 0.25 * ri * (1 + s*si) * (2*r*ri + s*si)
				dSdR[i][1] = 0.25 * si * (1 + r*ri) * (2*s*si + r*ri)
			}
		case ri == 0:
			S[i] = 0.5 * (1 - r*r) * (1 + s*si)
			if dSdR != nil {
				dSdR[i][0] = -r * (1 + s*si)
				dSdR[i][1] = 0.5 * si * (1 - r*r)
			}
		default:
			S[i] = 0.5 * (1 + r*ri) * (1 - s*s)
			if dSdR != nil {
				dSdR[i][0] = 0.5 * ri * (1 - s*s)
				dSdR[i][1] = -s * (1 + r*ri)
			}
		}
	}
}

/*
ShapeEdge evaluates the shape functions of a boundary edge with nverts nodes (2 or 3) at natural
coordinate r in [-1,1]. Node order is start, end, then the midpoint.
*/
func ShapeEdge(S, dSdR []float64, nverts int, r float64) {
	switch nverts {
	case 2:
		S[0], S[1] = 0.5*(1-r), 0.5*(1+r)
		if dSdR != nil {
			dSdR[0], dSdR[1] = -0.5, 0.5
		}
	case 3:
		S[0], S[1], S[2] = 0.5*r*(r-1), 0.5*r*(r+1), 1-r*r
		if dSdR != nil {
			dSdR[0], dSdR[1], dSdR[2] = r-0.5, r+0.5, -2*r
		}
	default:
		panic("unsupported edge node count")
	}
}

/*
MapQ4 maps natural coordinates (r,s) to a real position using the four cell corners and returns the
Jacobian DxdR[i][j] = dx_i/dR_j. Cell edges are straight for both element orders, so the corners
alone define the geometry.
*/
func MapQ4(corners [4]Point, r, s float64) (x Point, DxdR [2][2]float64) {
	var (
		S    [4]float64
		dSdR [4][2]float64
	)
	ShapeQ4(S[:], dSdR[:], r, s)
	for n := 0; n < 4; n++ {
		for i := 0; i < 2; i++ {
			x.X[i] += S[n] * corners[n].X[i]
			for j := 0; j < 2; j++ {
				DxdR[i][j] += corners[n].X[i] * dSdR[n][j]
			}
		}
	}
	return
}

// Det2 returns the determinant of a 2x2 matrix
func Det2(A [2][2]float64) float64 {
	return A[0][0]*A[1][1] - A[0][1]*A[1][0]
}

/*
InverseMapQ4 finds the natural coordinates of a real point p with respect to a cell by Newton
iteration on the bilinear map. ok is false if the iteration fails to converge or the mapping
degenerates; the returned coordinates may lie outside [-1,1] when p is outside the cell.
*/
func InverseMapQ4(corners [4]Point, p Point) (r, s float64, ok bool) {
	var (
		scale = math.Max(corners[0].Dist(corners[2]), corners[1].Dist(corners[3]))
	)
	for it := 0; it < 25; it++ {
		x, J := MapQ4(corners, r, s)
		det := Det2(J)
		if math.Abs(det) < MINDET*scale*scale {
			return
		}
		fx, fy := p.X[0]-x.X[0], p.X[1]-x.X[1]
		dr := (J[1][1]*fx - J[0][1]*fy) / det
		ds := (-J[1][0]*fx + J[0][0]*fy) / det
		r += dr
		s += ds
		if math.Abs(r) > 1.e3 || math.Abs(s) > 1.e3 {
			return
		}
		if math.Abs(dr)+math.Abs(ds) < 1.e-14 {
			ok = true
			return
		}
	}
	// Accept a stalled iteration whose residual is at roundoff
	x, _ := MapQ4(corners, r, s)
	ok = x.Dist(p) <= utils.NODETOL*math.Max(1, scale)
	return
}
