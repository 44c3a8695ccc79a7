package FEM2D

import "gonum.org/v1/gonum/integrate/quad"

// QuadRule2D is a tensor product Gauss-Legendre rule on the reference square [-1,1]x[-1,1]
type QuadRule2D struct {
	R, S, W []float64
}

// NewGaussRule returns the n point Gauss-Legendre locations and weights on [-1,1]
func NewGaussRule(n int) (x, w []float64) {
	x, w = make([]float64, n), make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	return
}

func NewQuadRule2D(n int) (qr QuadRule2D) {
	x, w := NewGaussRule(n)
	qr = QuadRule2D{
		R: make([]float64, 0, n*n),
		S: make([]float64, 0, n*n),
		W: make([]float64, 0, n*n),
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			qr.R = append(qr.R, x[i])
			qr.S = append(qr.S, x[j])
			qr.W = append(qr.W, w[i]*w[j])
		}
	}
	return
}

func (qr QuadRule2D) Len() int { return len(qr.W) }
