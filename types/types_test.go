package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))

		en = NewEdgeKey([2]int{1<<32 - 1, 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Shared edges get one ordinal regardless of direction
		em := NewEdgeMap(4)
		o, added := em.Lookup([2]int{3, 7})
		assert.Equal(t, 0, o)
		assert.True(t, added)
		o, added = em.Lookup([2]int{7, 8})
		assert.Equal(t, 1, o)
		assert.True(t, added)
		o, added = em.Lookup([2]int{7, 3})
		assert.Equal(t, 0, o)
		assert.False(t, added)
		assert.Equal(t, 2, em.Len())
		o, ok := em.Find([2]int{8, 7})
		assert.True(t, ok)
		assert.Equal(t, 1, o)
		_, ok = em.Find([2]int{0, 1})
		assert.False(t, ok)
		assert.Equal(t, [2]int{3, 7}, em.Keys[0].GetVertices(false))
	}
	{
		tokens := []string{"Dirichlet", "  neumann", "FLUX", "fixed"}
		flags := []BCFLAG{BC_Dirichlet, BC_Neuman, BC_Neuman, BC_Dirichlet}
		for i, token := range tokens {
			bcf, err := NewBCFLAG(token)
			require.NoError(t, err)
			assert.Equal(t, flags[i], bcf)
		}
		_, err := NewBCFLAG("Periodic")
		assert.Error(t, err)
		assert.Equal(t, "Dirichlet", BC_Dirichlet.String())
		assert.Equal(t, "BCFLAG(9)", BCFLAG(9).String())
	}
}
