package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun2D(t *testing.T) {
	var (
		dir    = t.TempDir()
		icFile = filepath.Join(dir, "input.yaml")
		csvOut = filepath.Join(dir, "out.csv")
	)
	fileInput := []byte(`
Title: Test Case
XMin: -1
XMax: 1
YMin: -1
YMax: 1
NX: 6
NY: 6
Source: 1.
BCs:
  Dirichlet:
      1: 0.
      2: 0.
      3: 0.
      4: 0.
Meshes: [H1, H2, P2]
Probe:
  X0: -0.5
  X1: 0.5
  NPoints: 11
Reference: square
`)
	require.NoError(t, os.WriteFile(icFile, fileInput, 0644))
	m2d := &Model2D{ICFile: icFile, CSVFile: csvOut, Solver: "cg", Workers: 2}
	ip, err := processInput(m2d)
	require.NoError(t, err)
	assert.Equal(t, "cg", ip.Solver)
	assert.Equal(t, 0., ip.BCs["Dirichlet"][4])

	var out bytes.Buffer
	require.NoError(t, Run2D(m2d, ip, nil, &out))
	assert.Contains(t, out.String(), "MaxErr")

	f, err := os.Open(csvOut)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "H1", records[1][0])
	assert.Equal(t, "36", records[1][2])
}

func TestExampleFile(t *testing.T) {
	icFile := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, os.WriteFile(icFile, []byte(exampleFile), 0644))
	ip, err := processInput(&Model2D{ICFile: icFile})
	require.NoError(t, err)
	assert.Equal(t, 41, ip.Probe.NPoints)
	assert.Equal(t, []string{"H1", "H2", "P2"}, ip.Meshes)
	assert.NoError(t, ip.Validate())
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, writeCSV(dir, nil))
	assert.Error(t, writeCSV(filepath.Join(dir, "missing", "out.csv"), nil))

	out := filepath.Join(dir, "out.csv")
	require.NoError(t, writeCSV(out, nil))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MaxErr")
}

func TestProcessInputErrors(t *testing.T) {
	_, err := processInput(&Model2D{})
	assert.Error(t, err)
	_, err = processInput(&Model2D{ICFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("NX: [1, 2\n"), 0644))
	_, err = processInput(&Model2D{ICFile: bad})
	assert.Error(t, err)
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "gopoisson", rootCmd.Use)
	c, _, err := rootCmd.Find([]string{"2D"})
	require.NoError(t, err)
	assert.Equal(t, TwoDCmd, c)
	assert.NotNil(t, TwoDCmd.Flags().Lookup("inputConditionsFile"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestStartProfile(t *testing.T) {
	assert.NoError(t, startProfile(""))
	assert.Nil(t, profiler)
	assert.Error(t, startProfile("gpu"))
	assert.Nil(t, profiler)
}
