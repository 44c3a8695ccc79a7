package FEM2D

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/notargets/gopoisson/geometry2D"
	"github.com/notargets/gopoisson/utils"
)

/*
Solve computes the finite element solution of -Laplacian(u) = f on the mesh. Dirichlet conditions are
eliminated from the system, Neumann conditions add their flux to the load. At least one Dirichlet DOF
is required, otherwise the system is singular.
*/
func Solve(m *geometry2D.Mesh, f Evaluable, bcs []BoundaryCondition, opts Options) (field *Field, err error) {
	var (
		log   = opts.logger()
		start = time.Now()
		cs    Constraints
		ls    LinearSolver
		K     utils.DOK
		F, x  []float64
	)
	if m == nil || f == nil {
		err = fmt.Errorf("%w: solve needs a mesh and a source term", ErrInvalidInput)
		return
	}
	if err = m.Validate(); err != nil {
		return
	}
	if cs, err = CollectConstraints(m, bcs); err != nil {
		return
	}
	if cs.Count == 0 {
		err = fmt.Errorf("%w: no Dirichlet constraint anchors the solution", ErrSingularSystem)
		return
	}
	if ls, err = NewLinearSolver(opts); err != nil {
		return
	}
	log.Info("solving Poisson problem",
		zap.Stringer("mesh", m.Stats()),
		zap.Int("fixed", cs.Count),
		zap.Stringer("solver", opts.Solver))
	if K, F, err = NewAssembler(m, opts).Assemble(f); err != nil {
		return
	}
	ApplyNeumann(m, bcs, F)
	A, b := ApplyDirichlet(K, F, cs)
	if x, err = ls.Solve(A, b); err != nil {
		return
	}
	if utils.IsNan(x) {
		err = fmt.Errorf("%w: solution contains NaN", ErrSingularSystem)
		return
	}
	// Constrained DOFs carry their prescribed values exactly
	for i, fixed := range cs.Fixed {
		if fixed {
			x[i] = cs.Values[i]
		}
	}
	log.Info("solved",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("residual", residualNorm(A, x, b)),
		zap.String("memory", utils.GetMemUsage()))
	return NewField(m, x)
}
