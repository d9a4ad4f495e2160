package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/stringnet/lattice"
)

func TestIncrementLocation_East(t *testing.T) {
	b := lattice.BoundPoint{Size: lattice.Point{X: 4, Y: 4}, Location: lattice.Point{X: 1, Y: 2}}
	got := lattice.IncrementLocation(b, lattice.E)
	assert.Equal(t, lattice.Point{X: 2, Y: 2}, got.Location)
}

func TestIncrementLocation_Wraps(t *testing.T) {
	size := lattice.Point{X: 4, Y: 6}
	tests := []struct {
		from lattice.Point
		dir  lattice.Direction
		want lattice.Point
	}{
		{lattice.Point{X: 3, Y: 0}, lattice.E, lattice.Point{X: 0, Y: 0}},
		{lattice.Point{X: 0, Y: 0}, lattice.W, lattice.Point{X: 3, Y: 0}},
		{lattice.Point{X: 2, Y: 5}, lattice.N, lattice.Point{X: 2, Y: 0}},
		{lattice.Point{X: 2, Y: 0}, lattice.S, lattice.Point{X: 2, Y: 5}},
	}
	for _, tc := range tests {
		got := lattice.IncrementLocation(lattice.Bind(size, tc.from), tc.dir)
		assert.Equal(t, tc.want, got.Location, "%v step %v", tc.from, tc.dir)
	}
}

func TestRoundTripLaw(t *testing.T) {
	for _, size := range []lattice.Point{{X: 2, Y: 2}, {X: 4, Y: 4}, {X: 6, Y: 2}, {X: 8, Y: 10}} {
		for x := 0; x < size.X; x++ {
			for y := 0; y < size.Y; y++ {
				b := lattice.Bind(size, lattice.Point{X: x, Y: y})
				for _, d := range lattice.Directions() {
					back := lattice.DecrementLocation(lattice.IncrementLocation(b, d), d)
					assert.True(t, back.Equal(b), "size %v point %v dir %v", size, b.Location, d)
					assert.Equal(t, b, back)
				}
			}
		}
	}
}

func TestBind_TrueModulus(t *testing.T) {
	size := lattice.Point{X: 4, Y: 4}
	assert.Equal(t, lattice.Point{X: 3, Y: 2}, lattice.Bind(size, lattice.Point{X: -1, Y: -6}).Location)
	assert.Equal(t, lattice.Point{X: 1, Y: 0}, lattice.Bind(size, lattice.Point{X: 9, Y: 8}).Location)
}

func TestBoundPoint_EqualIgnoresSize(t *testing.T) {
	a := lattice.BoundPoint{Size: lattice.Point{X: 4, Y: 4}, Location: lattice.Point{X: 1, Y: 1}}
	b := lattice.BoundPoint{Size: lattice.Point{X: 8, Y: 8}, Location: lattice.Point{X: 1, Y: 1}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(a.Step(lattice.N)))
}

func TestDirection_FlipAndOrder(t *testing.T) {
	assert.Equal(t, [4]lattice.Direction{lattice.N, lattice.E, lattice.S, lattice.W}, lattice.Directions())
	assert.Equal(t, lattice.S, lattice.N.Flip())
	assert.Equal(t, lattice.W, lattice.E.Flip())
	assert.Equal(t, lattice.N, lattice.S.Flip())
	assert.Equal(t, lattice.E, lattice.W.Flip())
	assert.Equal(t, "W", lattice.W.String())
}

func TestLink_RaiseLowerFlip(t *testing.T) {
	links := []lattice.Link{lattice.Blank, lattice.Out, lattice.In}
	assert.Equal(t, lattice.Out, lattice.Blank.Raise())
	assert.Equal(t, lattice.In, lattice.Out.Raise())
	assert.Equal(t, lattice.Blank, lattice.In.Raise())
	for _, l := range links {
		assert.Equal(t, l, l.Raise().Raise().Raise(), "raise^3 of %v", l)
		assert.Equal(t, l, l.Raise().Lower(), "lower∘raise of %v", l)
		assert.Equal(t, l, l.Lower().Raise(), "raise∘lower of %v", l)
		assert.Equal(t, l, l.Flip().Flip())
		assert.Equal(t, -l.Sign(), l.Flip().Sign())
	}
	assert.Equal(t, lattice.Blank, lattice.Blank.Flip())
	assert.Equal(t, lattice.In, lattice.Out.Flip())
	assert.Equal(t, "In", lattice.In.String())
	assert.False(t, lattice.Link(3).Valid())
}
