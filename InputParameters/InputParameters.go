package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gopoisson/types"
)

type ProbeLine struct {
	X0      float64 `json:"X0"`
	Y0      float64 `json:"Y0"`
	X1      float64 `json:"X1"`
	Y1      float64 `json:"Y1"`
	NPoints int     `json:"NPoints"` // Not "N", which YAML 1.1 reads as false
}

// Parameters obtained from the YAML input file
type PoissonParameters struct {
	Title       string                     `json:"Title"`
	XMin        float64                    `json:"XMin"`
	XMax        float64                    `json:"XMax"`
	YMin        float64                    `json:"YMin"`
	YMax        float64                    `json:"YMax"`
	NX          int                        `json:"NX"` // Node counts of the base grid
	NY          int                        `json:"NY"`
	Source      float64                    `json:"Source"` // Constant right hand side f
	BCs         map[string]map[int]float64 `json:"BCs"`    // First key is BC type, second is boundary marker
	Meshes      []string                   `json:"Meshes"` // Refinement sequences like H1, H2, P2, H2P2
	Probe       ProbeLine                  `json:"Probe"`
	Solver      string                     `json:"Solver"`
	Workers     int                        `json:"Workers"`
	Reference   string                     `json:"Reference"` // "square" compares against the series solution on [-1,1]^2
	PrintValues bool                       `json:"PrintValues"`
}

// NewPoissonParameters returns the modelling tutorial setup: f = 1, zero Dirichlet on the square [-1,1]^2
func NewPoissonParameters() (ip *PoissonParameters) {
	ip = &PoissonParameters{
		Title:  "Poisson on the square [-1,1]x[-1,1]",
		XMin:   -1,
		XMax:   1,
		YMin:   -1,
		YMax:   1,
		NX:     10,
		NY:     10,
		Source: 1,
		BCs: map[string]map[int]float64{
			"Dirichlet": {1: 0, 2: 0, 3: 0, 4: 0},
		},
		Meshes:    []string{"H1", "H2", "P2"},
		Probe:     ProbeLine{X0: -0.8, Y0: 0, X1: 0.8, Y1: 0, NPoints: 41},
		Solver:    "direct",
		Reference: "square",
	}
	return
}

func (ip *PoissonParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *PoissonParameters) Marshal() ([]byte, error) {
	return yaml.Marshal(ip)
}

func (ip *PoissonParameters) Validate() (err error) {
	if !(ip.XMax > ip.XMin) || !(ip.YMax > ip.YMin) {
		return fmt.Errorf("domain [%g,%g]x[%g,%g] is empty", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	}
	if ip.NX < 2 || ip.NY < 2 {
		return fmt.Errorf("grid needs at least 2 nodes in each direction, have %d x %d", ip.NX, ip.NY)
	}
	if len(ip.Meshes) == 0 {
		return fmt.Errorf("no meshes requested")
	}
	if ip.Probe.NPoints < 1 {
		return fmt.Errorf("probe line needs at least one point, have %d", ip.Probe.NPoints)
	}
	for name := range ip.BCs {
		if _, err = types.NewBCFLAG(name); err != nil {
			return
		}
	}
	return
}

func (ip *PoissonParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%g,%g]x[%g,%g]\t= Domain\n", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	fmt.Printf("[%d x %d]\t\t= Base Grid Nodes\n", ip.NX, ip.NY)
	fmt.Printf("%8.5f\t\t= Source\n", ip.Source)
	fmt.Printf("%v\t= Meshes\n", ip.Meshes)
	fmt.Printf("[%s]\t\t= Solver\n", ip.Solver)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
