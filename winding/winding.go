package winding

import (
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
)

// Modulus is the size of the link alphabet's cyclic group.
const Modulus = 3

// Numbers holds the winding numbers of one configuration.
type Numbers struct {
	// Horizontal and Vertical are reduced to [0, 3).
	Horizontal int
	Vertical   int
	// RawHorizontal and RawVertical are the unreduced sums along row 0 and
	// column 0.
	RawHorizontal int
	RawVertical   int
}

// Reduce maps n into [0, Modulus).
func Reduce(n int) int {
	return ((n % Modulus) + Modulus) % Modulus
}

// Vertical returns the raw flux through the cut east of column c.
func Vertical(lat *lattice.Lattice, c int) int {
	sum := 0
	for y := 0; y < lat.Size().Y; y++ {
		sum += lat.VertexAtPoint(lattice.Point{X: c, Y: y}).E.Sign()
	}

	return sum
}

// Horizontal returns the raw flux through the cut north of row r.
func Horizontal(lat *lattice.Lattice, r int) int {
	sum := 0
	for x := 0; x < lat.Size().X; x++ {
		sum += lat.VertexAtPoint(lattice.Point{X: x, Y: r}).N.Sign()
	}

	return sum
}

// Compute returns the winding numbers of lat, checking each axis along two
// adjacent parallel cuts. A mismatch modulo 3 is an invariant fault.
// Complexity: O(Lx + Ly).
func Compute(lat *lattice.Lattice) Numbers {
	v0, v1 := Vertical(lat, 0), Vertical(lat, 1)
	if Reduce(v0) != Reduce(v1) {
		fault.Invariant("winding.Compute", "vertical winding differs between parallel cuts",
			"column0", v0, "column1", v1, "size", lat.Size())
	}
	h0, h1 := Horizontal(lat, 0), Horizontal(lat, 1)
	if Reduce(h0) != Reduce(h1) {
		fault.Invariant("winding.Compute", "horizontal winding differs between parallel cuts",
			"row0", h0, "row1", h1, "size", lat.Size())
	}

	return Numbers{
		Horizontal:    Reduce(h0),
		Vertical:      Reduce(v0),
		RawHorizontal: h0,
		RawVertical:   v0,
	}
}

// Consistent reports whether every pair of parallel cuts agrees modulo 3.
// It is the exhaustive form of the check Compute performs.
// Complexity: O(Lx·Ly).
func Consistent(lat *lattice.Lattice) bool {
	size := lat.Size()
	v := Reduce(Vertical(lat, 0))
	for c := 1; c < size.X; c++ {
		if Reduce(Vertical(lat, c)) != v {
			return false
		}
	}
	h := Reduce(Horizontal(lat, 0))
	for r := 1; r < size.Y; r++ {
		if Reduce(Horizontal(lat, r)) != h {
			return false
		}
	}

	return true
}
