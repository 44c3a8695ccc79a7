package FEM2D

import "github.com/notargets/gopoisson/geometry2D"

// Evaluable is a scalar function of position, used for source terms and boundary values
type Evaluable interface {
	Eval(p geometry2D.Point) float64
}

// Constant is a spatially uniform value. Loads from a Constant are integrated in closed form where the
// cell geometry allows it.
type Constant float64

func (c Constant) Eval(geometry2D.Point) float64 { return float64(c) }

// General wraps an arbitrary function of position
type General func(p geometry2D.Point) float64

func (g General) Eval(p geometry2D.Point) float64 { return g(p) }

// XY adapts a function of two coordinates
func XY(fn func(x, y float64) float64) General {
	return func(p geometry2D.Point) float64 { return fn(p.X[0], p.X[1]) }
}
