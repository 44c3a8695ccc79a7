package FEM2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopoisson/geometry2D"
	"github.com/notargets/gopoisson/model_problems/Poisson2D/analytic_square"
)

func TestInterpolateNodal(t *testing.T) {
	m := squareGrid(t, 6)
	p2, err := m.CreateP2()
	require.NoError(t, err)
	h2, err := m.CreateH2()
	require.NoError(t, err)
	for _, mesh := range []*geometry2D.Mesh{m, p2, h2} {
		values := make([]float64, mesh.DOFCount())
		for i, p := range mesh.Nodes {
			values[i] = math.Sin(3*p.X[0]) * math.Exp(p.X[1])
		}
		field, err := NewField(mesh, values)
		require.NoError(t, err)
		got, err := field.Interpolate(mesh.Nodes)
		require.NoError(t, err)
		assert.InDeltaSlice(t, values, got, 1.e-12)
	}
	_, err = NewField(m, make([]float64, 3))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInterpolateReproduces(t *testing.T) {
	m, err := geometry2D.CreateGrid([]float64{0, 0.3, 1, 1.2}, []float64{0, 0.5, 0.6, 2})
	require.NoError(t, err)
	p2, err := m.CreateP2()
	require.NoError(t, err)
	probe := Probe(0.05, 0.1, 1.15, 1.9, 23)
	assert.Len(t, probe, 23)
	assert.Equal(t, geometry2D.NewPoint(1.15, 1.9), probe[22])
	for _, tc := range []struct {
		mesh *geometry2D.Mesh
		fn   func(x, y float64) float64
	}{
		{m, func(x, y float64) float64 { return 2 - x + 3*y + x*y }},
		{p2, func(x, y float64) float64 { return x*x - 2*y*y + x*y + x*x*y }},
	} {
		values := make([]float64, tc.mesh.DOFCount())
		for i, p := range tc.mesh.Nodes {
			values[i] = tc.fn(p.X[0], p.X[1])
		}
		got, err := Interpolate(tc.mesh, &Field{Mesh: tc.mesh, Values: values}, probe)
		require.NoError(t, err)
		for i, p := range probe {
			assert.InDelta(t, tc.fn(p.X[0], p.X[1]), got[i], 1.e-12)
		}
	}
}

func TestInterpolateSharedEdge(t *testing.T) {
	m := squareGrid(t, 5)
	p2, err := m.CreateP2()
	require.NoError(t, err)
	for _, mesh := range []*geometry2D.Mesh{m, p2} {
		field, err := Solve(mesh, Constant(1), zeroDirichlet(mesh), Options{})
		require.NoError(t, err)
		fn, nv := geometry2D.ShapeFor(mesh.Order)
		S := make([]float64, nv)
		eval := func(k int, r, s float64) (v float64) {
			fn(S, nil, r, s)
			for n, node := range mesh.Cells[k].Nodes {
				v += S[n] * field.Values[node]
			}
			return
		}
		// Cells 5 and 6 share a vertical edge, cells 5 and 9 a horizontal one
		for _, s := range []float64{-0.7, 0, 0.35} {
			assert.InDelta(t, eval(5, 1, s), eval(6, -1, s), 1.e-14)
			assert.InDelta(t, eval(5, s, 1), eval(9, s, -1), 1.e-14)
			x, _ := geometry2D.MapQ4(mesh.CellCorners(5), 1, s)
			got, err := field.Interpolate([]geometry2D.Point{x})
			require.NoError(t, err)
			assert.InDelta(t, eval(6, -1, s), got[0], 1.e-13)
		}
	}
}

func TestInterpolateOutOfDomain(t *testing.T) {
	m := squareGrid(t, 4)
	field, err := NewField(m, make([]float64, m.DOFCount()))
	require.NoError(t, err)
	pts := []geometry2D.Point{geometry2D.NewPoint(0, 0), geometry2D.NewPoint(1, 1), geometry2D.NewPoint(1.001, 0)}
	vals, err := Interpolate(m, field, pts)
	assert.Nil(t, vals)
	assert.True(t, errors.Is(err, ErrOutOfDomain))
	var ood *OutOfDomainError
	require.True(t, errors.As(err, &ood))
	assert.Equal(t, 2, ood.Index)
	assert.Equal(t, pts[2], ood.Position)

	_, err = Interpolate(m, &Field{Mesh: m, Values: []float64{1}}, pts)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := *m
	bad.Order = 3
	assert.NotPanics(t, func() {
		vals, err = Interpolate(&bad, field, pts[:1])
	})
	assert.Nil(t, vals)
	assert.ErrorIs(t, err, ErrMeshConstruction)
}

// Reproduces the H1 / H2 / P2 comparison along the probe line y = 0
func TestRefinementAccuracy(t *testing.T) {
	var (
		ss    = analytic_square.NewSquareSolution()
		probe = Probe(-0.8, 0, 0.8, 0, 33)
		exact = make([]float64, len(probe))
	)
	for i, p := range probe {
		exact[i] = ss.Get(p.X[0], p.X[1])
	}
	h1 := squareGrid(t, 10)
	h2, err := h1.CreateH2()
	require.NoError(t, err)
	p2, err := h1.CreateP2()
	require.NoError(t, err)
	assert.LessOrEqual(t, p2.DOFCount(), h2.DOFCount())

	maxErr := func(mesh *geometry2D.Mesh) (e float64) {
		field, err := Solve(mesh, Constant(1), zeroDirichlet(mesh), Options{})
		require.NoError(t, err)
		vals, err := Interpolate(mesh, field, probe)
		require.NoError(t, err)
		for i := range vals {
			e = math.Max(e, math.Abs(vals[i]-exact[i]))
		}
		return
	}
	eH1, eH2, eP2 := maxErr(h1), maxErr(h2), maxErr(p2)
	t.Logf("max error on probe: H1 = %8.3e, H2 = %8.3e, P2 = %8.3e", eH1, eH2, eP2)
	assert.Less(t, eH1, 0.02)
	assert.LessOrEqual(t, eH2, eH1)
	assert.LessOrEqual(t, eP2, eH2)
}
