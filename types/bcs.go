package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Dirichlet
	BC_Neuman
)

var BCNameMap = map[string]BCFLAG{
	"none":      BC_None,
	"dirichlet": BC_Dirichlet,
	"fixed":     BC_Dirichlet,
	"neuman":    BC_Neuman,
	"neumann":   BC_Neuman,
	"flux":      BC_Neuman,
}

func (bcf BCFLAG) String() string {
	switch bcf {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_Neuman:
		return "Neuman"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bcf))
}

// NewBCFLAG parses a boundary condition name, case insensitive
func NewBCFLAG(name string) (bcf BCFLAG, err error) {
	var ok bool
	if bcf, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown boundary condition type: \"%s\"", name)
	}
	return
}
