package lattice

import (
	"fmt"
	"sort"
)

// Initial names a reference configuration accepted by Build.
type Initial string

const (
	// InitialBlank is the empty configuration.
	InitialBlank Initial = "blank"
	// InitialStriped carries one eastward string along every row.
	InitialStriped Initial = "striped"
	// InitialStaggered carries one northward string along every column.
	InitialStaggered Initial = "staggered"
)

var builders = map[Initial]func(lx, ly int) (*Lattice, error){
	InitialBlank:     NewBlank,
	InitialStriped:   NewStriped,
	InitialStaggered: NewStaggered,
}

// Initials lists the accepted configuration names in sorted order.
func Initials() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, string(k))
	}
	sort.Strings(out)

	return out
}

// Build constructs the named configuration.
func Build(name Initial, lx, ly int) (*Lattice, error) {
	fn, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownInitial)
	}

	return fn(lx, ly)
}

// NewBlank returns an all-Blank lattice.
func NewBlank(lx, ly int) (*Lattice, error) {
	return New(lx, ly)
}

// NewStriped returns the striped reference configuration: every real site has
// E=Out and W=In, so every horizontal edge is filled and flux runs east along
// each row. Vertical edges are Blank.
func NewStriped(lx, ly int) (*Lattice, error) {
	l, err := New(lx, ly)
	if err != nil {
		return nil, err
	}
	for _, v := range l.vertices {
		l.SetLink(v.XY, E, Out)
		l.SetLink(v.XY, W, In)
	}

	return l, nil
}

// NewStaggered returns the vertical counterpart of NewStriped: every real site
// has N=Out and S=In.
func NewStaggered(lx, ly int) (*Lattice, error) {
	l, err := New(lx, ly)
	if err != nil {
		return nil, err
	}
	for _, v := range l.vertices {
		l.SetLink(v.XY, N, Out)
		l.SetLink(v.XY, S, In)
	}

	return l, nil
}
