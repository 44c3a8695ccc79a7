package FEM2D

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gopoisson/utils"
)

type LinearSolver interface {
	Solve(A utils.CSR, b []float64) (x []float64, err error)
}

func NewLinearSolver(opts Options) (ls LinearSolver, err error) {
	switch opts.Solver {
	case DirectBanded:
		ls = &BandedCholesky{log: opts.logger()}
	case ConjugateGradient:
		ls = &JacobiCG{Tol: 1.e-12, log: opts.logger()}
	default:
		err = fmt.Errorf("%w: unknown solver %v", ErrInvalidInput, opts.Solver)
	}
	return
}

/*
BandedCholesky reorders the system with reverse Cuthill-McKee, copies it into a symmetric band matrix
and factors it with a banded Cholesky decomposition.
*/
type BandedCholesky struct {
	log *zap.Logger
}

func (bc *BandedCholesky) Solve(A utils.CSR, b []float64) (x []float64, err error) {
	var (
		n, _        = A.Dims()
		adj         = A.Adjacency()
		perm, iperm = utils.ReverseCuthillMcKee(adj)
		k           = utils.Bandwidth(adj, iperm)
		bp          = make([]float64, n)
		ch          mat.BandCholesky
	)
	sb := mat.NewSymBandDense(n, k, nil)
	A.DoNonZero(func(i, j int, v float64) {
		if j >= i {
			sb.SetSymBand(iperm[i], iperm[j], v)
		}
	})
	for i := range b {
		bp[iperm[i]] = b[i]
	}
	bc.log.Debug("banded system",
		zap.String("matrix", A.Name()),
		zap.Int("n", n),
		zap.Int("bandwidth", k),
		zap.Int("bandwidthNatural", utils.Bandwidth(adj, nil)))
	if ok := ch.Factorize(sb); !ok {
		err = fmt.Errorf("%w: matrix is not positive definite", ErrSingularSystem)
		return
	}
	xp := mat.NewVecDense(n, nil)
	if err = ch.SolveVecTo(xp, mat.NewVecDense(n, bp)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			err = fmt.Errorf("%w: condition number %g", ErrSingularSystem, float64(cond))
		}
		return
	}
	x = make([]float64, n)
	for newI, oldI := range perm {
		x[oldI] = xp.AtVec(newI)
	}
	return
}

/*
JacobiCG is the diagonally preconditioned conjugate gradient method. It stops when the residual norm
falls below Tol times the norm of b, or fails after MaxIter iterations (10 n when zero).
*/
type JacobiCG struct {
	Tol     float64
	MaxIter int
	log     *zap.Logger
}

func (cg *JacobiCG) Solve(A utils.CSR, b []float64) (x []float64, err error) {
	var (
		n, _    = A.Dims()
		diag    = A.Diagonal()
		r       = make([]float64, n)
		z       = make([]float64, n)
		p       = make([]float64, n)
		Ap      = make([]float64, n)
		maxIter = cg.MaxIter
		log     = cg.log
	)
	if log == nil {
		log = zap.NewNop()
	}
	if maxIter <= 0 {
		maxIter = 10 * n
	}
	for i, d := range diag {
		if !(d > 0) {
			err = fmt.Errorf("%w: diagonal entry %d is %g", ErrSingularSystem, i, d)
			return
		}
	}
	x = make([]float64, n)
	copy(r, b)
	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		return
	}
	precondition := func() {
		for i := range r {
			z[i] = r[i] / diag[i]
		}
	}
	precondition()
	copy(p, z)
	rz := floats.Dot(r, z)
	for it := 0; it < maxIter; it++ {
		A.MulVecTo(Ap, p)
		pAp := floats.Dot(p, Ap)
		if !(pAp > 0) {
			err = fmt.Errorf("%w: conjugate gradient breakdown at iteration %d", ErrSingularSystem, it)
			return
		}
		alpha := rz / pAp
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, Ap)
		rNorm := floats.Norm(r, 2)
		if rNorm <= cg.Tol*bNorm {
			log.Debug("conjugate gradient converged",
				zap.String("matrix", A.Name()),
				zap.Int("iterations", it+1),
				zap.Float64("residual", rNorm/bNorm))
			return
		}
		precondition()
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	err = fmt.Errorf("%w: conjugate gradient did not converge in %d iterations, residual %g",
		ErrSingularSystem, maxIter, floats.Norm(r, 2)/bNorm)
	x = nil
	return
}

// residualNorm returns |A x - b|_inf / max(1, |b|_inf)
func residualNorm(A utils.CSR, x, b []float64) float64 {
	Ax := make([]float64, len(b))
	A.MulVecTo(Ax, x)
	floats.Sub(Ax, b)
	return floats.Norm(Ax, math.Inf(1)) / math.Max(1, floats.Norm(b, math.Inf(1)))
}
