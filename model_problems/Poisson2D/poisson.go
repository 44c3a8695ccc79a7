package Poisson2D

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gopoisson/FEM2D"
	"github.com/notargets/gopoisson/InputParameters"
	"github.com/notargets/gopoisson/geometry2D"
	"github.com/notargets/gopoisson/model_problems/Poisson2D/analytic_square"
	"github.com/notargets/gopoisson/types"
	"github.com/notargets/gopoisson/utils"
)

/*
Poisson2D runs the modelling study: the same problem is solved on a base grid and on refined
versions of it, and each solution is sampled on a common probe line.
*/
type Poisson2D struct {
	IP        *InputParameters.PoissonParameters
	Opts      FEM2D.Options
	Reference *analytic_square.SquareSolution // nil when no closed form is available
	log       *zap.Logger
}

type MeshResult struct {
	Name           string
	Mesh           *geometry2D.Mesh
	Field          *FEM2D.Field
	Probe          []geometry2D.Point
	Values         []float64
	Exact          []float64 // Reference values on the probe, nil without a reference
	MaxErr, RMSErr float64
}

func NewPoisson2D(ip *InputParameters.PoissonParameters, opts FEM2D.Options) (p *Poisson2D, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	if len(ip.Solver) != 0 {
		if opts.Solver, err = FEM2D.NewSolverType(ip.Solver); err != nil {
			return
		}
	}
	if ip.Workers != 0 && opts.Workers == 0 {
		opts.Workers = ip.Workers
	}
	p = &Poisson2D{
		IP:   ip,
		Opts: opts,
		log:  zap.NewNop(),
	}
	if opts.Logger != nil {
		p.log = opts.Logger
	}
	switch strings.ToLower(ip.Reference) {
	case "":
	case "square":
		p.Reference = analytic_square.NewSquareSolution()
	default:
		return nil, fmt.Errorf("unknown reference solution \"%s\"", ip.Reference)
	}
	return
}

func (p *Poisson2D) BaseMesh() (*geometry2D.Mesh, error) {
	ip := p.IP
	return geometry2D.CreateGrid(utils.Linspace(ip.XMin, ip.XMax, ip.NX), utils.Linspace(ip.YMin, ip.YMax, ip.NY))
}

/*
BuildMesh derives a mesh from the base mesh following a refinement sequence. The sequence is read left
to right: H1 is the base mesh, H2 refines once, H4 twice, H8 three times, P2 raises the order. "H2P2"
refines once and then raises the order.
*/
func (p *Poisson2D) BuildMesh(name string, base *geometry2D.Mesh) (m *geometry2D.Mesh, err error) {
	m = base
	seq := strings.ToUpper(strings.TrimSpace(name))
	if len(seq) == 0 {
		return nil, fmt.Errorf("empty mesh name")
	}
	for len(seq) > 0 {
		var (
			op  = seq[0]
			end = 1
			num int
		)
		for end < len(seq) && seq[end] >= '0' && seq[end] <= '9' {
			end++
		}
		if num, err = strconv.Atoi(seq[1:end]); err != nil {
			return nil, fmt.Errorf("unable to parse mesh name \"%s\": %w", name, err)
		}
		seq = seq[end:]
		switch {
		case op == 'H' && num >= 1 && num&(num-1) == 0:
			for n := num; n > 1; n /= 2 {
				if m, err = m.CreateH2(); err != nil {
					return
				}
			}
		case op == 'P' && num == 2:
			if m, err = m.CreateP2(); err != nil {
				return
			}
		case op == 'P' && num == 1:
		default:
			return nil, fmt.Errorf("unknown refinement \"%c%d\" in mesh name \"%s\"", op, num, name)
		}
	}
	return
}

// BoundaryConditions maps the input BCs, keyed by type and marker, onto the boundaries of m
func (p *Poisson2D) BoundaryConditions(m *geometry2D.Mesh) (bcs []FEM2D.BoundaryCondition, err error) {
	names := make([]string, 0, len(p.IP.BCs))
	for name := range p.IP.BCs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var kind types.BCFLAG
		if kind, err = types.NewBCFLAG(name); err != nil {
			return
		}
		markers := make([]int, 0, len(p.IP.BCs[name]))
		for marker := range p.IP.BCs[name] {
			markers = append(markers, marker)
		}
		sort.Ints(markers)
		for _, marker := range markers {
			bcs = append(bcs, FEM2D.BoundaryCondition{
				Kind:       kind,
				Boundaries: m.FindBoundaryByMarker(marker),
				Value:      FEM2D.Constant(p.IP.BCs[name][marker]),
			})
		}
	}
	return
}

// Run solves on every requested mesh and samples the solutions on the probe line
func (p *Poisson2D) Run() (results []MeshResult, err error) {
	var (
		ip    = p.IP
		probe = FEM2D.Probe(ip.Probe.X0, ip.Probe.Y0, ip.Probe.X1, ip.Probe.Y1, ip.Probe.NPoints)
		base  *geometry2D.Mesh
		exact []float64
	)
	if base, err = p.BaseMesh(); err != nil {
		return
	}
	if p.Reference != nil {
		exact = make([]float64, len(probe))
		for i, pt := range probe {
			exact[i] = p.Reference.Get(pt.X[0], pt.X[1])
		}
	}
	for _, name := range ip.Meshes {
		var (
			r   = MeshResult{Name: name, Probe: probe, Exact: exact}
			bcs []FEM2D.BoundaryCondition
		)
		if r.Mesh, err = p.BuildMesh(name, base); err != nil {
			return
		}
		if bcs, err = p.BoundaryConditions(r.Mesh); err != nil {
			return
		}
		if r.Field, err = FEM2D.Solve(r.Mesh, FEM2D.Constant(ip.Source), bcs, p.Opts); err != nil {
			return nil, fmt.Errorf("mesh %s: %w", name, err)
		}
		if r.Values, err = r.Field.Interpolate(probe); err != nil {
			return nil, fmt.Errorf("mesh %s: %w", name, err)
		}
		if exact != nil {
			r.MaxErr = floats.Distance(r.Values, exact, math.Inf(1))
			r.RMSErr = floats.Distance(r.Values, exact, 2) / math.Sqrt(float64(len(exact)))
		}
		p.log.Info("mesh solved",
			zap.String("mesh", name),
			zap.Stringer("stats", r.Mesh.Stats()),
			zap.Float64("maxErr", r.MaxErr))
		results = append(results, r)
	}
	return
}

func (p *Poisson2D) PrintReport(w io.Writer, results []MeshResult) {
	fmt.Fprintf(w, "%-8s %8s %8s %14s %14s\n", "Mesh", "DOFs", "Cells", "MaxErr", "RMSErr")
	for _, r := range results {
		fmt.Fprintf(w, "%-8s %8d %8d %14.6e %14.6e\n",
			r.Name, r.Mesh.DOFCount(), len(r.Mesh.Cells), r.MaxErr, r.RMSErr)
	}
	if !p.IP.PrintValues || len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%10s %10s", "x", "y")
	for _, r := range results {
		fmt.Fprintf(w, " %12s", r.Name)
	}
	if results[0].Exact != nil {
		fmt.Fprintf(w, " %12s", "Exact")
	}
	fmt.Fprintln(w)
	for i, pt := range results[0].Probe {
		fmt.Fprintf(w, "%10.5f %10.5f", pt.X[0], pt.X[1])
		for _, r := range results {
			fmt.Fprintf(w, " %12.8f", r.Values[i])
		}
		if results[0].Exact != nil {
			fmt.Fprintf(w, " %12.8f", results[0].Exact[i])
		}
		fmt.Fprintln(w)
	}
}

// CSVHeader is the first record written by WriteCSV
var CSVHeader = []string{"Mesh", "Order", "DOFs", "Cells", "MaxErr", "RMSErr"}

// WriteCSV writes one record per mesh, the format read by tools/convOrder
func WriteCSV(w io.Writer, results []MeshResult) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write(CSVHeader); err != nil {
		return
	}
	for _, r := range results {
		rec := []string{
			r.Name,
			strconv.Itoa(r.Mesh.Order),
			strconv.Itoa(r.Mesh.DOFCount()),
			strconv.Itoa(len(r.Mesh.Cells)),
			strconv.FormatFloat(r.MaxErr, 'e', 8, 64),
			strconv.FormatFloat(r.RMSErr, 'e', 8, 64),
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
