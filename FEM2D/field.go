package FEM2D

import (
	"fmt"

	"github.com/notargets/gopoisson/geometry2D"
)

// Field holds one value per DOF of its mesh
type Field struct {
	Mesh   *geometry2D.Mesh
	Values []float64
}

func NewField(m *geometry2D.Mesh, values []float64) (f *Field, err error) {
	if m == nil {
		err = fmt.Errorf("%w: field needs a mesh", ErrInvalidInput)
		return
	}
	if len(values) != m.DOFCount() {
		err = fmt.Errorf("%w: field has %d values, mesh has %d dofs", ErrInvalidInput, len(values), m.DOFCount())
		return
	}
	f = &Field{Mesh: m, Values: values}
	return
}

// Interpolate evaluates the field at dest, see Interpolate
func (f *Field) Interpolate(dest []geometry2D.Point) ([]float64, error) {
	return Interpolate(f.Mesh, f, dest)
}
