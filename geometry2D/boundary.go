package geometry2D

import "sort"

// FindBoundaryByMarker returns the boundaries carrying any of the markers, in mesh order
func (m *Mesh) FindBoundaryByMarker(markers ...int) (bs []Boundary) {
	set := make(map[int]bool, len(markers))
	for _, mk := range markers {
		set[mk] = true
	}
	for _, b := range m.Boundaries {
		if set[b.Marker] {
			bs = append(bs, b)
		}
	}
	return
}

// FindBoundaryByMarkerRange returns the boundaries with from <= marker < to, in mesh order
func (m *Mesh) FindBoundaryByMarkerRange(from, to int) (bs []Boundary) {
	for _, b := range m.Boundaries {
		if b.Marker >= from && b.Marker < to {
			bs = append(bs, b)
		}
	}
	return
}

// Markers lists the distinct boundary markers in ascending order
func (m *Mesh) Markers() (markers []int) {
	seen := make(map[int]bool)
	for _, b := range m.Boundaries {
		if !seen[b.Marker] {
			seen[b.Marker] = true
			markers = append(markers, b.Marker)
		}
	}
	sort.Ints(markers)
	return
}

// BoundaryNodes returns the distinct nodes on the given boundaries in ascending order
func BoundaryNodes(bs []Boundary) (nodes []int) {
	seen := make(map[int]bool)
	for _, b := range bs {
		for _, n := range b.Nodes {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	sort.Ints(nodes)
	return
}
