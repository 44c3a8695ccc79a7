package utils

import "sort"

/*
ReverseCuthillMcKee computes a bandwidth reducing permutation of a symmetric sparsity graph.
adj[i] lists the neighbors of vertex i. Returned perm maps new position -> old index and iperm
is its inverse (old index -> new position).

Each connected component is started from its lowest degree vertex and neighbors are queued in
order of ascending degree; all ties go to the lower vertex index, so the ordering is fully
determined by the graph.
*/
func ReverseCuthillMcKee(adj [][]int) (perm, iperm []int) {
	var (
		n       = len(adj)
		visited = make([]bool, n)
		degree  = make([]int, n)
		order   = make([]int, 0, n)
		byDeg   = make([]int, n)
	)
	for i := range adj {
		degree[i] = len(adj[i])
		byDeg[i] = i
	}
	sort.SliceStable(byDeg, func(a, b int) bool {
		return degree[byDeg[a]] < degree[byDeg[b]]
	})
	var nbrs []int
	for _, start := range byDeg {
		if visited[start] {
			continue
		}
		visited[start] = true
		head := len(order)
		order = append(order, start)
		for head < len(order) {
			v := order[head]
			head++
			nbrs = nbrs[:0]
			for _, w := range adj[v] {
				if !visited[w] {
					visited[w] = true
					nbrs = append(nbrs, w)
				}
			}
			sort.Slice(nbrs, func(a, b int) bool {
				da, db := degree[nbrs[a]], degree[nbrs[b]]
				if da != db {
					return da < db
				}
				return nbrs[a] < nbrs[b]
			})
			order = append(order, nbrs...)
		}
	}
	perm = make([]int, n)
	iperm = make([]int, n)
	for k, v := range order {
		perm[n-1-k] = v
	}
	for k, v := range perm {
		iperm[v] = k
	}
	return
}

// Bandwidth returns the half bandwidth of the graph when vertex i is placed at position iperm[i]
// A nil iperm means the identity ordering
func Bandwidth(adj [][]int, iperm []int) (k int) {
	pos := func(i int) int {
		if iperm == nil {
			return i
		}
		return iperm[i]
	}
	for i, nbrs := range adj {
		for _, j := range nbrs {
			d := pos(i) - pos(j)
			if d < 0 {
				d = -d
			}
			if d > k {
				k = d
			}
		}
	}
	return
}
