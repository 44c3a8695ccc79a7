package utils

import (
	"fmt"
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N equally spaced values from min to max inclusive
func Linspace(min, max float64, N int) (v []float64) {
	if N < 1 {
		panic(fmt.Errorf("linspace needs at least one point, have %d", N))
	}
	v = make([]float64, N)
	if N == 1 {
		v[0] = min
		return
	}
	dx := (max - min) / float64(N-1)
	for i := range v {
		v[i] = min + float64(i)*dx
	}
	v[N-1] = max
	return
}

// IsStrictlyIncreasing reports whether all values are finite and ascending without repeats
func IsStrictlyIncreasing(v []float64) bool {
	for i, val := range v {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
		if i > 0 && !(val > v[i-1]) {
			return false
		}
	}
	return true
}

// NearlyEqual compares with a tolerance relative to the magnitude of the operands, floored at 1
func NearlyEqual(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}
