package FEM2D

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gopoisson/geometry2D"
	"github.com/notargets/gopoisson/utils"
)

type LocalSystem struct {
	K *mat.Dense
	F []float64
}

/*
Assembler builds the global system K u = b of a mesh. Element contributions are computed in parallel
over contiguous partitions of the cells and then summed into the global matrix serially in cell
order, so the assembled system does not depend on the number of workers.
*/
type Assembler struct {
	Mesh       *geometry2D.Mesh
	Partitions *utils.PartitionMap
	log        *zap.Logger
}

func NewAssembler(m *geometry2D.Mesh, opts Options) (as *Assembler) {
	NPar := utils.ParallelDegree(opts.Workers, len(m.Cells))
	as = &Assembler{
		Mesh:       m,
		Partitions: utils.NewPartitionMap(NPar, len(m.Cells)),
		log:        opts.logger(),
	}
	return
}

// LocalSystems computes the element stiffness and load of every cell
func (as *Assembler) LocalSystems(f Evaluable) (locals []LocalSystem, err error) {
	var (
		m       = as.Mesh
		pm      = as.Partitions
		NP      = pm.ParallelDegree
		npc     = m.NodesPerCell()
		buckets = make([][]LocalSystem, NP)
		errs    = make([]error, NP)
		g       errgroup.Group
	)
	for np := 0; np < NP; np++ {
		np := np
		g.Go(func() error {
			var (
				ek         = NewElementKernel(m.Order)
				bucket     = make([]LocalSystem, pm.GetBucketDimension(np))
				kMin, kMax = pm.GetBucketRange(np)
			)
			for k := kMin; k < kMax; k++ {
				ls := LocalSystem{K: mat.NewDense(npc, npc, nil), F: make([]float64, npc)}
				corners := m.CellCorners(k)
				if err := ek.Stiffness(corners, ls.K); err != nil {
					errs[np] = fmt.Errorf("cell %d: %w", k, err)
					return errs[np]
				}
				if err := ek.Load(corners, f, ls.F); err != nil {
					errs[np] = fmt.Errorf("cell %d: %w", k, err)
					return errs[np]
				}
				bucket[k-kMin] = ls
			}
			buckets[np] = bucket
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		// Report the lowest failing cell, not the first goroutine to fail
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return
	}
	locals = make([]LocalSystem, len(m.Cells))
	for np, bucket := range buckets {
		for kLocal, ls := range bucket {
			locals[pm.GetGlobalK(kLocal, np)] = ls
		}
	}
	return
}

// Assemble returns the global stiffness matrix and load vector, before boundary conditions
func (as *Assembler) Assemble(f Evaluable) (K utils.DOK, F []float64, err error) {
	var (
		m      = as.Mesh
		n      = m.DOFCount()
		locals []LocalSystem
	)
	if locals, err = as.LocalSystems(f); err != nil {
		return
	}
	K = utils.NewDOK(n, n)
	F = make([]float64, n)
	for k, ls := range locals {
		dofs := m.Cells[k].Nodes
		K.AddBlock(dofs, ls.K)
		for i, I := range dofs {
			F[I] += ls.F[i]
		}
	}
	K.SetReadOnly("K")
	as.log.Debug("assembled global system",
		zap.Int("dofs", n),
		zap.Int("cells", len(m.Cells)),
		zap.Int("workers", as.Partitions.ParallelDegree),
		zap.Int("nnz", K.NNZ()))
	return
}
