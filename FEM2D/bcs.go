package FEM2D

import (
	"fmt"

	"github.com/notargets/gopoisson/geometry2D"
	"github.com/notargets/gopoisson/types"
	"github.com/notargets/gopoisson/utils"
)

// Relative tolerance for two Dirichlet values on one DOF to count as the same value
const ConstraintTol = 1.e-12

/*
BoundaryCondition applies Value on the selected boundary edges. For BC_Dirichlet every node of every
edge is fixed to Value at the node position. For BC_Neuman, Value is the outward normal flux du/dn
and enters the load vector as an edge integral.
*/
type BoundaryCondition struct {
	Kind       types.BCFLAG
	Boundaries []geometry2D.Boundary
	Value      Evaluable
}

func NewDirichlet(bs []geometry2D.Boundary, value Evaluable) BoundaryCondition {
	return BoundaryCondition{Kind: types.BC_Dirichlet, Boundaries: bs, Value: value}
}

func NewNeumann(bs []geometry2D.Boundary, flux Evaluable) BoundaryCondition {
	return BoundaryCondition{Kind: types.BC_Neuman, Boundaries: bs, Value: flux}
}

// Constraints records the fixed DOFs of a system and their values
type Constraints struct {
	Fixed  []bool
	Values []float64
	Count  int
}

func checkBoundaries(m *geometry2D.Mesh, bc BoundaryCondition) (err error) {
	if bc.Value == nil {
		return fmt.Errorf("%w: %v boundary condition has no value", ErrInvalidInput, bc.Kind)
	}
	for _, b := range bc.Boundaries {
		if len(b.Nodes) != m.Order+1 {
			return fmt.Errorf("%w: boundary with %d nodes applied to a mesh of order %d",
				ErrMeshConstruction, len(b.Nodes), m.Order)
		}
		for _, n := range b.Nodes {
			if n < 0 || n >= len(m.Nodes) {
				return fmt.Errorf("%w: boundary references node %d, mesh has %d nodes",
					ErrMeshConstruction, n, len(m.Nodes))
			}
		}
	}
	return
}

// CollectConstraints gathers the Dirichlet values of all conditions, in order, and detects conflicts
func CollectConstraints(m *geometry2D.Mesh, bcs []BoundaryCondition) (cs Constraints, err error) {
	var (
		n = m.DOFCount()
	)
	cs = Constraints{Fixed: make([]bool, n), Values: make([]float64, n)}
	for _, bc := range bcs {
		switch bc.Kind {
		case types.BC_Dirichlet, types.BC_Neuman:
		default:
			err = fmt.Errorf("%w: unsupported boundary condition kind %v", ErrInvalidInput, bc.Kind)
			return
		}
		if err = checkBoundaries(m, bc); err != nil {
			return
		}
		if bc.Kind != types.BC_Dirichlet {
			continue
		}
		for _, b := range bc.Boundaries {
			for _, dof := range b.Nodes {
				val := bc.Value.Eval(m.Nodes[dof])
				if cs.Fixed[dof] {
					if !utils.NearlyEqual(cs.Values[dof], val, ConstraintTol) {
						err = &ConstraintConflictError{DOF: dof, Position: m.Nodes[dof],
							First: cs.Values[dof], Second: val}
						return
					}
					continue
				}
				cs.Fixed[dof] = true
				cs.Values[dof] = val
				cs.Count++
			}
		}
	}
	return
}

/*
ApplyNeumann adds the flux integrals of the natural boundary conditions to F, using 2 point Gauss
quadrature on linear edges and 3 points on quadratic edges. Edges are straight.
*/
func ApplyNeumann(m *geometry2D.Mesh, bcs []BoundaryCondition, F []float64) {
	var (
		nv       = m.Order + 1
		x, w     = NewGaussRule(nv)
		S        = make([]float64, nv)
		dof      int
		p0, p1   geometry2D.Point
		halfLen  float64
		position geometry2D.Point
	)
	for _, bc := range bcs {
		if bc.Kind != types.BC_Neuman {
			continue
		}
		for _, b := range bc.Boundaries {
			p0, p1 = m.Nodes[b.Nodes[0]], m.Nodes[b.Nodes[1]]
			halfLen = 0.5 * p0.Dist(p1)
			for q := range x {
				geometry2D.ShapeEdge(S, nil, nv, x[q])
				for i := 0; i < 2; i++ {
					position.X[i] = 0.5*(1-x[q])*p0.X[i] + 0.5*(1+x[q])*p1.X[i]
				}
				gw := bc.Value.Eval(position) * w[q] * halfLen
				for i := 0; i < nv; i++ {
					dof = b.Nodes[i]
					F[dof] += gw * S[i]
				}
			}
		}
	}
}

/*
ApplyDirichlet eliminates the fixed DOFs from the assembled system. Fixed rows become identity rows
with the prescribed value on the right hand side; the fixed columns are moved to the right hand side
of the free rows and zeroed, so the returned matrix stays symmetric.
*/
func ApplyDirichlet(K utils.DOK, F []float64, cs Constraints) (A utils.CSR, b []float64) {
	var (
		n, _ = K.Dims()
		Kc   = K.ToCSR()
		R    = utils.NewDOK(n, n)
	)
	b = make([]float64, n)
	copy(b, F)
	Kc.DoNonZero(func(i, j int, v float64) {
		switch {
		case cs.Fixed[i]:
		case cs.Fixed[j]:
			b[i] -= v * cs.Values[j]
		default:
			R.Set(i, j, v)
		}
	})
	for i := 0; i < n; i++ {
		if cs.Fixed[i] {
			R.Set(i, i, 1)
			b[i] = cs.Values[i]
		}
	}
	A = R.SetReadOnly("A").ToCSR()
	return
}
