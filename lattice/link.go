package lattice

// Directions returns N, E, S, W in that order.
func Directions() [4]Direction {
	return directions
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	return (d + 2) % 4
}

// Offset returns the unit step taken when moving in d.
func (d Direction) Offset() Point {
	return offsets[d%4]
}

// Flip returns the same edge seen from its other endpoint.
// Flip(Blank) is Blank.
func (l Link) Flip() Link {
	switch l {
	case Out:
		return In
	case In:
		return Out
	default:
		return Blank
	}
}

// Raise cycles Blank→Out→In→Blank.
func (l Link) Raise() Link {
	return (l + 1) % 3
}

// Lower is the inverse of Raise: Blank→In→Out→Blank.
func (l Link) Lower() Link {
	return (l + 2) % 3
}

// Sign is the signed flux of the link: +1 Out, -1 In, 0 Blank.
func (l Link) Sign() int {
	switch l {
	case Out:
		return 1
	case In:
		return -1
	default:
		return 0
	}
}

// Filled reports whether the link carries flux.
func (l Link) Filled() bool {
	return l == Out || l == In
}

// Valid reports whether l is one of the three defined states.
func (l Link) Valid() bool {
	return l <= In
}

// Link returns the outward link in direction d.
func (v Vertex) Link(d Direction) Link {
	switch d {
	case N:
		return v.N
	case E:
		return v.E
	case S:
		return v.S
	default:
		return v.W
	}
}

// setLink overwrites the outward link in direction d.
func (v *Vertex) setLink(d Direction, l Link) {
	switch d {
	case N:
		v.N = l
	case E:
		v.E = l
	case S:
		v.S = l
	default:
		v.W = l
	}
}

// FilledDirections lists the directions of non-Blank links in N, E, S, W order.
// It returns nil when every link is Blank.
func (v Vertex) FilledDirections() []Direction {
	var out []Direction
	for _, d := range directions {
		if v.Link(d).Filled() {
			out = append(out, d)
		}
	}

	return out
}

// FilledCount returns how many of the four links are non-Blank.
func (v Vertex) FilledCount() int {
	n := 0
	for _, d := range directions {
		if v.Link(d).Filled() {
			n++
		}
	}

	return n
}
