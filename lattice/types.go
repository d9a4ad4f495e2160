package lattice

import (
	"errors"
	"fmt"
)

// Sentinel errors for lattice construction and decoding.
var (
	// ErrInvalidSize indicates a lattice dimension that is odd or smaller than 2.
	ErrInvalidSize = errors.New("lattice: size must be even and at least 2 in both directions")

	// ErrUnknownInitial indicates an unknown named initial configuration.
	ErrUnknownInitial = errors.New("lattice: unknown initial configuration")

	// ErrFakePoint indicates a stored-link read on a site outside the stored sublattice.
	ErrFakePoint = errors.New("lattice: point is not on the stored sublattice")

	// ErrCorruptEncoding indicates malformed binary lattice data.
	ErrCorruptEncoding = errors.New("lattice: corrupt encoding")
)

// Link is the state of one edge as seen from one of its endpoints.
// The numeric values double as Z3 charges: Out=+1, In=-1≡2 (mod 3).
type Link uint8

const (
	// Blank marks an empty edge.
	Blank Link = iota
	// Out marks flux leaving the viewing vertex.
	Out
	// In marks flux entering the viewing vertex.
	In
)

// Direction is one of the four compass directions of the square lattice.
type Direction uint8

const (
	N Direction = iota
	E
	S
	W
)

// directions is the fixed iteration order used everywhere: N, E, S, W.
var directions = [4]Direction{N, E, S, W}

// offsets holds the unit step of each direction; N increases y.
var offsets = [4]Point{
	N: {X: 0, Y: 1},
	E: {X: 1, Y: 0},
	S: {X: 0, Y: -1},
	W: {X: -1, Y: 0},
}

// Point is an integer coordinate pair. It may be negative while arithmetic is
// in flight; BoundPoint wraps it onto the torus.
type Point struct {
	X, Y int
}

// BoundPoint is a location on an Size.X × Size.Y torus.
type BoundPoint struct {
	Size     Point
	Location Point
}

// Vertex is one site with its four outward links.
type Vertex struct {
	N, E, S, W Link
	XY         Point
}

// String returns the link name.
func (l Link) String() string {
	switch l {
	case Blank:
		return "Blank"
	case Out:
		return "Out"
	case In:
		return "In"
	default:
		return fmt.Sprintf("Link(%d)", uint8(l))
	}
}

// String returns the single-letter direction name.
func (d Direction) String() string {
	switch d {
	case N:
		return "N"
	case E:
		return "E"
	case S:
		return "S"
	case W:
		return "W"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// String formats the location and the torus size.
func (b BoundPoint) String() string {
	return fmt.Sprintf("%v@%dx%d", b.Location, b.Size.X, b.Size.Y)
}
