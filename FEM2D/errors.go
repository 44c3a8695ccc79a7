package FEM2D

import (
	"errors"
	"fmt"

	"github.com/notargets/gopoisson/geometry2D"
)

var (
	ErrMeshConstruction   = geometry2D.ErrMeshConstruction
	ErrConstraintConflict = errors.New("constraint conflict")
	ErrSingularSystem     = errors.New("singular system")
	ErrOutOfDomain        = errors.New("point outside of domain")
	ErrInvalidInput       = errors.New("invalid input")
)

// ConstraintConflictError reports a DOF given two different Dirichlet values
type ConstraintConflictError struct {
	DOF           int
	Position      geometry2D.Point
	First, Second float64
}

func (e *ConstraintConflictError) Error() string {
	return fmt.Sprintf("%v: dof %d at (%g, %g) fixed to %g and %g",
		ErrConstraintConflict, e.DOF, e.Position.X[0], e.Position.X[1], e.First, e.Second)
}

func (e *ConstraintConflictError) Unwrap() error { return ErrConstraintConflict }

// OutOfDomainError reports the first destination point not covered by any source cell
type OutOfDomainError struct {
	Index    int
	Position geometry2D.Point
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("%v: point %d at (%g, %g)", ErrOutOfDomain, e.Index, e.Position.X[0], e.Position.X[1])
}

func (e *OutOfDomainError) Unwrap() error { return ErrOutOfDomain }
