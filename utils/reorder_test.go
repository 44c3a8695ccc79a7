package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseCuthillMcKee(t *testing.T) {
	{ // A path with scrambled labels: 3-0-4-1-2
		adj := [][]int{
			{3, 4}, // 0
			{4, 2}, // 1
			{1},    // 2
			{0},    // 3
			{0, 1}, // 4
		}
		assert.Equal(t, 4, Bandwidth(adj, nil))
		perm, iperm := ReverseCuthillMcKee(adj)
		assert.Equal(t, 1, Bandwidth(adj, iperm))
		// Started at vertex 2 (lowest index of the degree one ends), then reversed
		assert.Equal(t, []int{3, 0, 4, 1, 2}, perm)
		for k, v := range perm {
			assert.Equal(t, k, iperm[v])
		}
	}
	{ // A 6x6 grid graph numbered with a stride that scatters neighbors
		var (
			n     = 6
			N     = n * n
			label = func(i, j int) int { return ((j*n + i) * 7) % N }
			adj   = make([][]int, N)
		)
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				me := label(i, j)
				if i > 0 {
					adj[me] = append(adj[me], label(i-1, j))
				}
				if i < n-1 {
					adj[me] = append(adj[me], label(i+1, j))
				}
				if j > 0 {
					adj[me] = append(adj[me], label(i, j-1))
				}
				if j < n-1 {
					adj[me] = append(adj[me], label(i, j+1))
				}
			}
		}
		before := Bandwidth(adj, nil)
		perm, iperm := ReverseCuthillMcKee(adj)
		after := Bandwidth(adj, iperm)
		assert.Less(t, after, before)
		assert.LessOrEqual(t, after, 2*n)
		seen := make([]bool, N)
		for _, v := range perm {
			assert.False(t, seen[v])
			seen[v] = true
		}
		// Deterministic
		perm2, _ := ReverseCuthillMcKee(adj)
		assert.Equal(t, perm, perm2)
	}
	{ // Disconnected components and isolated vertices are all placed
		adj := [][]int{{1}, {0}, {}, {4}, {3}}
		perm, _ := ReverseCuthillMcKee(adj)
		assert.Len(t, perm, 5)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, perm)
	}
}
