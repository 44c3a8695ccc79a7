package utils

import (
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// DOK is the assembly format: a map backed sparse matrix that accumulates element contributions
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Set(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, val)
}

// Add accumulates val into entry (i,j)
func (m DOK) Add(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
}

// AddBlock scatters a dense local matrix into the rows/cols listed in dofs
func (m DOK) AddBlock(dofs []int, local *mat.Dense) {
	var (
		nr, nc = local.Dims()
	)
	if nr != len(dofs) || nc != len(dofs) {
		panic(fmt.Errorf("local block dimension mismatch: block is %dx%d, have %d dofs", nr, nc, len(dofs)))
	}
	for i, I := range dofs {
		for j, J := range dofs {
			if v := local.At(i, j); v != 0 {
				m.Add(I, J, v)
			}
		}
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

// ToCSR converts to compressed row storage with column indices sorted within every row,
// so that traversal order does not depend on map iteration
func (m DOK) ToCSR() CSR {
	R := CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
	R.sortRows()
	return R
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }
func (m CSR) Name() string                  { return m.name }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

// DoNonZero visits the stored entries in row major order, ascending column within a row
func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	var (
		raw   = m.RawMatrix()
		nr, _ = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			fn(i, raw.Ind[jj], raw.Data[jj])
		}
	}
}

// DoRowNonZero visits the stored entries of row i in ascending column order
func (m CSR) DoRowNonZero(i int, fn func(j int, v float64)) {
	raw := m.RawMatrix()
	for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
		fn(raw.Ind[jj], raw.Data[jj])
	}
}

// MulVecTo computes dst = M*x
func (m CSR) MulVecTo(dst, x []float64) {
	var (
		raw    = m.RawMatrix()
		nr, nc = m.Dims()
	)
	if len(dst) != nr || len(x) != nc {
		panic(fmt.Errorf("dimension mismatch in MulVecTo: matrix is %dx%d, len(dst) = %d, len(x) = %d",
			nr, nc, len(dst), len(x)))
	}
	for i := 0; i < nr; i++ {
		var sum float64
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			sum += raw.Data[jj] * x[raw.Ind[jj]]
		}
		dst[i] = sum
	}
}

func (m CSR) Diagonal() (diag []float64) {
	var (
		nr, _ = m.Dims()
	)
	diag = make([]float64, nr)
	m.DoNonZero(func(i, j int, v float64) {
		if i == j {
			diag[i] = v
		}
	})
	return
}

// Adjacency returns, for every row, the sorted list of off diagonal columns holding an entry
func (m CSR) Adjacency() (adj [][]int) {
	var (
		nr, _ = m.Dims()
	)
	adj = make([][]int, nr)
	m.DoNonZero(func(i, j int, v float64) {
		if i != j {
			adj[i] = append(adj[i], j)
		}
	})
	return
}

func (m CSR) IsSymmetric(tol float64) bool {
	symmetric := true
	m.DoNonZero(func(i, j int, v float64) {
		if j > i && math.Abs(v-m.At(j, i)) > tol*math.Max(1, math.Abs(v)) {
			symmetric = false
		}
	})
	return symmetric
}

func (m CSR) sortRows() {
	var (
		raw   = m.RawMatrix()
		nr, _ = m.Dims()
	)
	for i := 0; i < nr; i++ {
		rs := rowSorter{
			ind:  raw.Ind[raw.Indptr[i]:raw.Indptr[i+1]],
			data: raw.Data[raw.Indptr[i]:raw.Indptr[i+1]],
		}
		if !sort.IsSorted(rs) {
			sort.Sort(rs)
		}
	}
}

type rowSorter struct {
	ind  []int
	data []float64
}

func (rs rowSorter) Len() int           { return len(rs.ind) }
func (rs rowSorter) Less(i, j int) bool { return rs.ind[i] < rs.ind[j] }
func (rs rowSorter) Swap(i, j int) {
	rs.ind[i], rs.ind[j] = rs.ind[j], rs.ind[i]
	rs.data[i], rs.data[j] = rs.data[j], rs.data[i]
}
