package cmd

import (
	"fmt"
	"io"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gopoisson/FEM2D"
	"github.com/notargets/gopoisson/InputParameters"
	"github.com/notargets/gopoisson/model_problems/Poisson2D"
)

type Model2D struct {
	ICFile  string
	CSVFile string
	Solver  string
	Workers int
	Verbose bool
}

const exampleFile = `
########################################
Title: "Test Case"
XMin: -1
XMax: 1
YMin: -1
YMax: 1
NX: 10
NY: 10
Source: 1
BCs:
  Dirichlet:
    1: 0
    2: 0
    3: 0
    4: 0
Meshes: [H1, H2, P2]
Probe:
  X0: -0.8
  Y0: 0
  X1: 0.8
  Y1: 0
  NPoints: 41
Reference: square # Omit when the problem has no closed form solution
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Solve the 2D Poisson problem on a grid and its refinements",
	Long: `Solve the 2D Poisson problem described by a YAML input file on a base grid and on the
refined meshes it lists, then report the solutions sampled along the probe line`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m2d := &Model2D{
			ICFile:  viper.GetString("inputConditionsFile"),
			CSVFile: viper.GetString("csv"),
			Solver:  viper.GetString("solver"),
			Workers: viper.GetInt("workers"),
			Verbose: viper.GetBool("verbose"),
		}
		var ip *InputParameters.PoissonParameters
		if ip, err = processInput(m2d); err != nil {
			return
		}
		return Run2D(m2d, ip, logger, os.Stdout)
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.PoissonParameters, err error) {
	if len(m2d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
	}
	if m2d.ICFile, err = homedir.Expand(m2d.ICFile); err != nil {
		return
	}
	var data []byte
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return
	}
	ip = &InputParameters.PoissonParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", m2d.ICFile, err)
	}
	if len(m2d.Solver) != 0 {
		ip.Solver = m2d.Solver
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Domain and grid size\n\t- BCs by marker\n\t- Meshes to compare")
	TwoDCmd.Flags().String("csv", "", "write the error summary of every mesh to this CSV file")
	TwoDCmd.Flags().String("solver", "", "linear solver, direct or cg, overrides the input file")
	TwoDCmd.Flags().IntP("workers", "w", 0, "assembly goroutines, 0 uses all CPUs")
	for _, name := range []string{"inputConditionsFile", "csv", "solver", "workers"} {
		_ = viper.BindPFlag(name, TwoDCmd.Flags().Lookup(name))
	}
}

func Run2D(m2d *Model2D, ip *InputParameters.PoissonParameters, log *zap.Logger, w io.Writer) (err error) {
	if log == nil {
		log = zap.NewNop()
	}
	ip.Print()
	opts := FEM2D.Options{
		Verbose: m2d.Verbose,
		Logger:  log,
		Workers: m2d.Workers,
	}
	var (
		p       *Poisson2D.Poisson2D
		results []Poisson2D.MeshResult
	)
	if p, err = Poisson2D.NewPoisson2D(ip, opts); err != nil {
		return
	}
	if results, err = p.Run(); err != nil {
		log.Error("solve failed", zap.Error(err))
		return
	}
	p.PrintReport(w, results)
	if len(m2d.CSVFile) != 0 {
		if m2d.CSVFile, err = homedir.Expand(m2d.CSVFile); err != nil {
			return
		}
		if err = writeCSV(m2d.CSVFile, results); err != nil {
			return
		}
		log.Info("wrote error summary", zap.String("file", m2d.CSVFile))
	}
	return
}

func writeCSV(fileName string, results []Poisson2D.MeshResult) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Poisson2D.WriteCSV(f, results)
}
