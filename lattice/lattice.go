package lattice

import (
	"fmt"

	"github.com/katalvlaran/stringnet/fault"
)

// Lattice is the link configuration of an Lx×Ly torus. Only the real
// sublattice, (x+y) even, is stored, at index y*(Lx/2) + x/2.
//
// A Lattice is not safe for concurrent use; exactly one driver owns it and
// engines borrow it for the duration of a single call.
type Lattice struct {
	size     Point
	vertices []Vertex
	filled   int
}

// New returns an all-Blank lattice of lx×ly sites.
// Returns ErrInvalidSize unless both dimensions are even and at least 2.
func New(lx, ly int) (*Lattice, error) {
	if err := ValidateSize(lx, ly); err != nil {
		return nil, err
	}
	half := lx / 2
	l := &Lattice{
		size:     Point{X: lx, Y: ly},
		vertices: make([]Vertex, lx*ly/2),
	}
	for i := range l.vertices {
		y := i / half
		l.vertices[i].XY = Point{X: 2*(i%half) + y%2, Y: y}
	}

	return l, nil
}

// ValidateSize checks the lattice dimensions.
func ValidateSize(lx, ly int) error {
	if lx < 2 || ly < 2 || lx%2 != 0 || ly%2 != 0 {
		return fmt.Errorf("%dx%d: %w", lx, ly, ErrInvalidSize)
	}

	return nil
}

// Size returns (Lx, Ly).
func (l *Lattice) Size() Point {
	return l.size
}

// Sites returns Lx·Ly, the number of sites on both sublattices.
func (l *Lattice) Sites() int {
	return l.size.X * l.size.Y
}

// MaxLinks returns 2·Lx·Ly, the number of edges of the torus.
func (l *Lattice) MaxLinks() int {
	return 2 * l.size.X * l.size.Y
}

// Bound wraps p onto this lattice.
func (l *Lattice) Bound(p Point) BoundPoint {
	return Bind(l.size, p)
}

// PointReal reports whether p lies on the stored sublattice.
// Negative coordinates are a precondition fault; wrap them first.
func (l *Lattice) PointReal(p Point) bool {
	if p.X < 0 || p.Y < 0 {
		fault.Precondition("lattice.PointReal", "negative coordinate, wrap before calling",
			"point", p, "size", l.size)
	}

	return (p.X+p.Y)%2 == 0
}

// index resolves a real, in-range point to its storage slot.
func (l *Lattice) index(op string, p Point, d Direction) int {
	if p.X >= l.size.X || p.Y >= l.size.Y || !l.PointReal(p) {
		fault.Precondition(op, "point is not a stored site",
			"point", p, "direction", d, "size", l.size)
	}

	return p.Y*(l.size.X/2) + p.X/2
}

// LinkAt returns the stored link of the real site p in direction d.
// A fake or out-of-range p is a precondition fault.
func (l *Lattice) LinkAt(p Point, d Direction) Link {
	return l.vertices[l.index("lattice.LinkAt", p, d)].Link(d)
}

// SafeLinkAt is LinkAt for external readers: it returns ErrFakePoint instead
// of faulting when p is wrapped but not on the stored sublattice.
func (l *Lattice) SafeLinkAt(p Point, d Direction) (Link, error) {
	b := l.Bound(p)
	if !l.PointReal(b.Location) {
		return Blank, fmt.Errorf("%v: %w", b.Location, ErrFakePoint)
	}

	return l.vertices[l.index("lattice.SafeLinkAt", b.Location, d)].Link(d), nil
}

// SetLink overwrites the stored link of the real site p in direction d and
// keeps the filled-link counter in step.
func (l *Lattice) SetLink(p Point, d Direction, next Link) {
	i := l.index("lattice.SetLink", p, d)
	if !next.Valid() {
		fault.Invariant("lattice.SetLink", "undefined link value",
			"point", p, "direction", d, "link", next)
	}
	prev := l.vertices[i].Link(d)
	l.vertices[i].setLink(d, next)
	switch {
	case prev.Filled() && !next.Filled():
		l.filled--
	case !prev.Filled() && next.Filled():
		l.filled++
	}
	if l.filled < 0 {
		fault.Invariant("lattice.SetLink", "filled link count went negative",
			"point", p, "direction", d, "filled", l.filled, "size", l.size)
	}
}

// OutRaiseLink raises the stored link of the real site p in direction d and
// returns the new value.
func (l *Lattice) OutRaiseLink(p Point, d Direction) Link {
	next := l.LinkAt(p, d).Raise()
	l.SetLink(p, d, next)

	return next
}

// OutLowerLink lowers the stored link of the real site p in direction d and
// returns the new value.
func (l *Lattice) OutLowerLink(p Point, d Direction) Link {
	next := l.LinkAt(p, d).Lower()
	l.SetLink(p, d, next)

	return next
}

// VertexAt materializes the site at b on either sublattice. A fake site's link
// in direction d is the flipped value of the real neighbor's link in Flip(d).
func (l *Lattice) VertexAt(b BoundPoint) Vertex {
	b = l.Bound(b.Location)
	if l.PointReal(b.Location) {
		return l.vertices[l.index("lattice.VertexAt", b.Location, N)]
	}
	v := Vertex{XY: b.Location}
	for _, d := range directions {
		nb := b.Step(d)
		v.setLink(d, l.LinkAt(nb.Location, d.Flip()).Flip())
	}

	return v
}

// VertexAtPoint is VertexAt for a raw point.
func (l *Lattice) VertexAtPoint(p Point) Vertex {
	return l.VertexAt(l.Bound(p))
}

// NumVertices returns the number of stored (real) vertices, Lx·Ly/2.
func (l *Lattice) NumVertices() int {
	return len(l.vertices)
}

// StoredVertex returns the i-th stored vertex.
func (l *Lattice) StoredVertex(i int) Vertex {
	return l.vertices[i]
}

// Vertices returns a copy of the stored sublattice in storage order.
func (l *Lattice) Vertices() []Vertex {
	out := make([]Vertex, len(l.vertices))
	copy(out, l.vertices)

	return out
}

// AllSites materializes every site of the torus in row-major order.
func (l *Lattice) AllSites() []Vertex {
	out := make([]Vertex, 0, l.Sites())
	for y := 0; y < l.size.Y; y++ {
		for x := 0; x < l.size.X; x++ {
			out = append(out, l.VertexAtPoint(Point{X: x, Y: y}))
		}
	}

	return out
}

// FilledLinks returns the running count of non-Blank stored links.
func (l *Lattice) FilledLinks() int {
	return l.filled
}

// CountNonBlankLinks scans storage and counts non-Blank links. It is the
// independent check for FilledLinks.
func (l *Lattice) CountNonBlankLinks() int {
	n := 0
	for _, v := range l.vertices {
		n += v.FilledCount()
	}

	return n
}

// CountNonBlankSiteLinks counts non-Blank links over every materialized site.
// Each filled edge is seen from both ends, so this is 2·CountNonBlankLinks().
func (l *Lattice) CountNonBlankSiteLinks() int {
	n := 0
	for _, v := range l.AllSites() {
		n += v.FilledCount()
	}

	return n
}

// Equal reports whether two lattices have the same size and links.
func (l *Lattice) Equal(o *Lattice) bool {
	if l.size != o.size || len(l.vertices) != len(o.vertices) {
		return false
	}
	for i := range l.vertices {
		if l.vertices[i] != o.vertices[i] {
			return false
		}
	}

	return true
}
