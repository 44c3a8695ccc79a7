package analytic_square

import (
	"math"

	"github.com/notargets/gopoisson/utils"
)

/*
SquareSolution is the series solution of -Laplacian(u) = 1 on [-1,1]x[-1,1] with u = 0 on the boundary:

	u = (1-x^2)/2 - 16/pi^3 * sum_{k odd} sin(k pi (1+x)/2) / (k^3 sinh(k pi)) * (sinh(k pi (1+y)/2) + sinh(k pi (1-y)/2))
*/
type SquareSolution struct {
	KMax int // Highest odd wavenumber in the sum
}

func NewSquareSolution(KMaxO ...int) (ss *SquareSolution) {
	var (
		KMax = 149
	)
	if len(KMaxO) > 0 {
		KMax = KMaxO[0]
	}
	ss = &SquareSolution{KMax: KMax}
	return
}

func (ss *SquareSolution) Get(x, y float64) (u float64) {
	var (
		sum float64
		pi  = math.Pi
	)
	for k := 1; k <= ss.KMax; k += 2 {
		kpi := float64(k) * pi
		kkk := utils.POW(float64(k), 3)
		sum += math.Sin(kpi*(1+x)/2) / (kkk * math.Sinh(kpi)) *
			(math.Sinh(kpi*(1+y)/2) + math.Sinh(kpi*(1-y)/2))
	}
	u = 0.5*(1-x*x) - 16/(pi*pi*pi)*sum
	return
}

// GetAll evaluates the solution at a set of positions
func (ss *SquareSolution) GetAll(xs, ys []float64) (u []float64) {
	u = make([]float64, len(xs))
	for i := range xs {
		u[i] = ss.Get(xs[i], ys[i])
	}
	return
}
