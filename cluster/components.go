package cluster

import (
	"github.com/katalvlaran/stringnet/lattice"
)

// Components labels the non-Blank link graph breadth-first. It shares no
// code with Traversal and exists to cross-check it. Each component lists its
// sites in BFS order; components follow the same scan order as Label.
// Complexity: O(Lx·Ly) time and memory.
func Components(lat *lattice.Lattice) [][]lattice.Point {
	size := lat.Size()
	seen := make([]bool, size.X*size.Y)
	index := func(p lattice.Point) int { return p.Y*size.X + p.X }
	var comps [][]lattice.Point

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			p0 := lattice.Point{X: x, Y: y}
			if seen[index(p0)] || lat.VertexAtPoint(p0).FilledCount() == 0 {
				continue
			}
			queue := []lattice.Point{p0}
			seen[index(p0)] = true
			for qi := 0; qi < len(queue); qi++ {
				b := lat.Bound(queue[qi])
				for _, d := range lat.VertexAt(b).FilledDirections() {
					next := b.Step(d).Location
					if !seen[index(next)] {
						seen[index(next)] = true
						queue = append(queue, next)
					}
				}
			}
			comps = append(comps, queue)
		}
	}

	return comps
}
