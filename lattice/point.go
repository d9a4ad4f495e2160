package lattice

// mod is the true modulus: the result is always in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}

	return r
}

// Bind wraps p onto a torus of the given size.
func Bind(size, p Point) BoundPoint {
	return BoundPoint{Size: size, Location: Point{X: mod(p.X, size.X), Y: mod(p.Y, size.Y)}}
}

// Add returns b shifted by delta, wrapped onto the torus.
func (b BoundPoint) Add(delta Point) BoundPoint {
	return Bind(b.Size, Point{X: b.Location.X + delta.X, Y: b.Location.Y + delta.Y})
}

// Equal compares only the wrapped locations, not the torus sizes.
func (b BoundPoint) Equal(o BoundPoint) bool {
	return b.Location == o.Location
}

// Step moves one unit in d.
func (b BoundPoint) Step(d Direction) BoundPoint {
	return b.Add(d.Offset())
}

// IncrementLocation moves b one unit in d, wrapping at the boundary.
func IncrementLocation(b BoundPoint, d Direction) BoundPoint {
	return b.Step(d)
}

// DecrementLocation undoes IncrementLocation(b, d).
func DecrementLocation(b BoundPoint, d Direction) BoundPoint {
	return b.Step(d.Flip())
}
