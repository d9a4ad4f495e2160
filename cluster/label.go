package cluster

import (
	"github.com/katalvlaran/stringnet/lattice"
)

// Labeling is the result of clustering a whole lattice.
type Labeling struct {
	// Sizes[id] is the number of sites in cluster id.
	Sizes []int
	// Clustered maps every site with filled links to its cluster id.
	Clustered map[lattice.Point]int
}

// Count returns the number of clusters.
func (l Labeling) Count() int { return len(l.Sizes) }

// MeanSize returns the average cluster size, or 0 without clusters.
func (l Labeling) MeanSize() float64 {
	if len(l.Sizes) == 0 {
		return 0
	}
	total := 0
	for _, s := range l.Sizes {
		total += s
	}

	return float64(total) / float64(len(l.Sizes))
}

// Largest returns the size of the biggest cluster, or 0 without clusters.
func (l Labeling) Largest() int {
	best := 0
	for _, s := range l.Sizes {
		if s > best {
			best = s
		}
	}

	return best
}

// Label clusters every site of lat, scanning rows bottom to top and columns
// left to right. Cluster ids follow scan order.
// Complexity: O(Lx·Ly).
func Label(lat *lattice.Lattice, opts ...Option) Labeling {
	t := NewTraversal(lat, opts...)
	var sizes []int
	size := lat.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if !t.Begin(lattice.Point{X: x, Y: y}) {
				continue
			}
			sizes = append(sizes, len(t.Run()))
		}
	}

	return Labeling{Sizes: sizes, Clustered: t.Clustered}
}
