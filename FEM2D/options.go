package FEM2D

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type SolverType uint8

const (
	DirectBanded SolverType = iota
	ConjugateGradient
)

var SolverNameMap = map[string]SolverType{
	"direct":            DirectBanded,
	"banded":            DirectBanded,
	"cholesky":          DirectBanded,
	"cg":                ConjugateGradient,
	"conjugategradient": ConjugateGradient,
}

func (st SolverType) String() string {
	switch st {
	case DirectBanded:
		return "DirectBanded"
	case ConjugateGradient:
		return "ConjugateGradient"
	}
	return fmt.Sprintf("SolverType(%d)", uint8(st))
}

func NewSolverType(name string) (st SolverType, err error) {
	var ok bool
	if st, ok = SolverNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("%w: unknown solver type \"%s\"", ErrInvalidInput, name)
	}
	return
}

/*
Options are passed to every Solve call. Verbose and Logger only affect diagnostics, the numerical
result is the same for any setting of Verbose, Logger or Workers.
*/
type Options struct {
	Verbose bool
	Logger  *zap.Logger
	Workers int // Assembly goroutines, <= 0 uses GOMAXPROCS
	Solver  SolverType
}

func (o Options) logger() *zap.Logger {
	if !o.Verbose || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
