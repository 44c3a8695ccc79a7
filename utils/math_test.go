package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMathHelpers(t *testing.T) {
	v := Linspace(-1, 1, 5)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, v)
	assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
	assert.Panics(t, func() { Linspace(0, 1, 0) })
	assert.True(t, IsStrictlyIncreasing(v))
	assert.True(t, IsStrictlyIncreasing(Linspace(-1, 1, 10)))
	assert.False(t, IsStrictlyIncreasing([]float64{0, 1, 1}))
	assert.False(t, IsStrictlyIncreasing([]float64{0, math.NaN()}))
	assert.False(t, IsStrictlyIncreasing([]float64{0, math.Inf(1)}))
	assert.True(t, NearlyEqual(1e6, 1e6*(1+1e-14), 1e-12))
	assert.False(t, NearlyEqual(0, 1e-10, 1e-12))
	assert.Equal(t, 32., POW(2, 5))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.Equal(t, []float64{3, 3}, ConstArray(2, 3))
	assert.True(t, IsNan([]float64{1, math.NaN()}))
	assert.False(t, IsNan(1.))
}
