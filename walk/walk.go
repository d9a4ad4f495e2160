package walk

import (
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
)

// Walker is a loop head on a lattice. It borrows the lattice and is not safe
// for concurrent use.
type Walker struct {
	lat   *lattice.Lattice
	start lattice.BoundPoint
	pos   lattice.BoundPoint
	steps int
}

// New returns a walker with its head on start (wrapped onto the torus).
func New(lat *lattice.Lattice, start lattice.Point) *Walker {
	if lat == nil {
		fault.Precondition("walk.New", "nil lattice")
	}
	w := &Walker{lat: lat}
	w.Reset(start)

	return w
}

// Reset moves the head and the start onto p and clears the step count.
func (w *Walker) Reset(p lattice.Point) {
	w.start = w.lat.Bound(p)
	w.pos = w.start
	w.steps = 0
}

// RaiseStep raises the edge leaving the head in direction d and moves the
// head across it. before and after are the link values seen from the site
// the head left.
func (w *Walker) RaiseStep(d lattice.Direction) (before, after lattice.Link) {
	from := w.pos
	if w.lat.PointReal(from.Location) {
		before = w.lat.LinkAt(from.Location, d)
		after = w.lat.OutRaiseLink(from.Location, d)
		w.pos = lattice.IncrementLocation(from, d)
	} else {
		next := lattice.IncrementLocation(from, d)
		back := d.Flip()
		before = w.lat.LinkAt(next.Location, back).Flip()
		after = w.lat.OutLowerLink(next.Location, back).Flip()
		w.pos = next
	}
	if after != before.Raise() {
		fault.Invariant("walk.RaiseStep", "edge was not raised",
			"from", from.Location, "direction", d, "before", before, "after", after)
	}
	w.steps++

	return before, after
}

// Position returns the current head site.
func (w *Walker) Position() lattice.BoundPoint { return w.pos }

// Start returns the site the walk began on.
func (w *Walker) Start() lattice.BoundPoint { return w.start }

// Steps returns how many edges have been raised since the last Reset.
func (w *Walker) Steps() int { return w.steps }

// Closed reports whether at least one step was taken and the head is back on
// its start.
func (w *Walker) Closed() bool {
	return w.steps > 0 && w.pos.Equal(w.start)
}

// Plaquette raises the four edges of the unit square whose lower-left
// corner is the head, walking N, E, S, W. It returns the per-edge changes in
// walking order and faults if the head does not come back.
func (w *Walker) Plaquette() [4]Change {
	var out [4]Change
	for i, d := range lattice.Directions() {
		before, after := w.RaiseStep(d)
		out[i] = Change{Direction: d, Before: before, After: after}
	}
	if !w.Closed() {
		fault.Invariant("walk.Plaquette", "plaquette did not close",
			"start", w.start.Location, "head", w.pos.Location)
	}

	return out
}

// Change is one raised edge as seen from the site the head left.
type Change struct {
	Direction lattice.Direction
	Before    lattice.Link
	After     lattice.Link
}
