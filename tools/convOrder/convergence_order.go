package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing the error summary written by gopoisson 2D --csv")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	studies, err := readCSV(bufio.NewReader(f))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	orders := make([]int, 0, len(studies))
	for order := range studies {
		orders = append(orders, order)
	}
	sort.Ints(orders)
	for _, order := range orders {
		cs := studies[order]
		fmt.Printf("Element Order = %d\n", cs.order)
		fmt.Printf("%-8s %8s %14s %14s %8s %8s\n", "Mesh", "DOFs", "MaxErr", "RMSErr", "pMax", "pRMS")
		pMax, pRMS := cs.ObservedOrders()
		for i := range cs.numDOFs {
			fmt.Printf("%-8s %8d %14.6e %14.6e %8.3f %8.3f\n",
				cs.names[i], cs.numDOFs[i], cs.maxErr[i], cs.rmsErr[i], pMax[i], pRMS[i])
		}
	}
}

type ConvergenceStudy struct {
	order          int
	names          []string
	numDOFs        []int
	maxErr, rmsErr []float64
}

func NewConvergenceStudy(order int) *ConvergenceStudy {
	return &ConvergenceStudy{
		order: order,
	}
}

func (cs *ConvergenceStudy) Add(name string, numDOFs int, maxErr, rmsErr float64) {
	cs.names = append(cs.names, name)
	cs.numDOFs = append(cs.numDOFs, numDOFs)
	cs.maxErr = append(cs.maxErr, maxErr)
	cs.rmsErr = append(cs.rmsErr, rmsErr)
}

/*
ObservedOrders estimates the convergence order between each entry and the one before it, taking the
mesh spacing as proportional to 1/sqrt(DOFs). The first entry has no predecessor and gets NaN.
*/
func (cs *ConvergenceStudy) ObservedOrders() (pMax, pRMS []float64) {
	n := len(cs.numDOFs)
	pMax, pRMS = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		if i == 0 || cs.numDOFs[i] == cs.numDOFs[i-1] {
			pMax[i], pRMS[i] = math.NaN(), math.NaN()
			continue
		}
		hRatio := math.Log(math.Sqrt(float64(cs.numDOFs[i]) / float64(cs.numDOFs[i-1])))
		pMax[i] = math.Log(cs.maxErr[i-1]/cs.maxErr[i]) / hRatio
		pRMS[i] = math.Log(cs.rmsErr[i-1]/cs.rmsErr[i]) / hRatio
	}
	return
}

// readCSV groups the records by element order, each group in file order
func readCSV(r io.Reader) (studies map[int]*ConvergenceStudy, err error) {
	var (
		records [][]string
		cs      *ConvergenceStudy
		ok      bool
	)
	studies = make(map[int]*ConvergenceStudy)
	if records, err = csv.NewReader(r).ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 6 {
			return nil, fmt.Errorf("record %d has %d fields, need 6", i, len(rec))
		}
		var (
			order, dofs    int
			maxErr, rmsErr float64
		)
		if order, err = strconv.Atoi(rec[1]); err != nil {
			return
		}
		if dofs, err = strconv.Atoi(rec[2]); err != nil {
			return
		}
		if maxErr, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return
		}
		if rmsErr, err = strconv.ParseFloat(rec[5], 64); err != nil {
			return
		}
		if cs, ok = studies[order]; !ok {
			cs = NewConvergenceStudy(order)
			studies[order] = cs
		}
		cs.Add(rec[0], dofs, maxErr, rmsErr)
	}
	return
}
