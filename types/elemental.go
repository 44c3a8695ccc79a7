package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

/*
EdgeMap assigns a single new index to each undirected edge the first time it is seen.
Refinement uses it to place exactly one midpoint node on every edge shared between cells;
the first caller of Lookup for an edge wins, so the numbering follows the visiting order.
*/
type EdgeMap struct {
	index map[EdgeKey]int
	Keys  []EdgeKey // Keys in first-seen order
}

func NewEdgeMap(sizeHint int) *EdgeMap {
	return &EdgeMap{
		index: make(map[EdgeKey]int, sizeHint),
		Keys:  make([]EdgeKey, 0, sizeHint),
	}
}

// Lookup returns the ordinal of the edge and whether it was newly added
func (em *EdgeMap) Lookup(verts [2]int) (ordinal int, added bool) {
	var (
		ek = NewEdgeKey(verts)
		ok bool
	)
	if ordinal, ok = em.index[ek]; ok {
		return
	}
	ordinal = len(em.Keys)
	em.index[ek] = ordinal
	em.Keys = append(em.Keys, ek)
	added = true
	return
}

// Find returns the ordinal of an edge already in the map
func (em *EdgeMap) Find(verts [2]int) (ordinal int, ok bool) {
	ordinal, ok = em.index[NewEdgeKey(verts)]
	return
}

func (em *EdgeMap) Len() int { return len(em.Keys) }
