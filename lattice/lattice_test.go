package lattice_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
)

func mustBlank(t *testing.T, lx, ly int) *lattice.Lattice {
	t.Helper()
	lat, err := lattice.NewBlank(lx, ly)
	require.NoError(t, err)

	return lat
}

func TestNew_InvalidSizes(t *testing.T) {
	for _, sz := range [][2]int{{0, 4}, {4, 0}, {3, 4}, {4, 5}, {1, 1}, {-2, 4}} {
		_, err := lattice.New(sz[0], sz[1])
		assert.ErrorIs(t, err, lattice.ErrInvalidSize, "size %v", sz)
	}
	lat, err := lattice.New(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, lat.NumVertices())
}

func TestNew_StoredCoordinates(t *testing.T) {
	lat := mustBlank(t, 6, 4)
	require.Equal(t, 12, lat.NumVertices())
	for i, v := range lat.Vertices() {
		assert.True(t, lat.PointReal(v.XY), "vertex %d at %v", i, v.XY)
		assert.Equal(t, i, v.XY.Y*3+v.XY.X/2)
	}
	assert.Equal(t, lattice.Point{X: 1, Y: 1}, lat.StoredVertex(3).XY)
}

func TestPointReal_Parity(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	for x := 0; x < 9; x++ {
		for y := 0; y < 9; y++ {
			assert.Equal(t, (x+y)%2 == 0, lat.PointReal(lattice.Point{X: x, Y: y}))
		}
	}
}

func TestPointReal_NegativeIsPrecondition(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	err := fault.Catch(func() { lat.PointReal(lattice.Point{X: -1, Y: 0}) })
	f, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindPrecondition, f.Kind)
}

func TestLinkAt_FakePointFaults(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	err := fault.Catch(func() { lat.LinkAt(lattice.Point{X: 1, Y: 0}, lattice.N) })
	assert.ErrorIs(t, err, fault.ErrInternal)

	err = fault.Catch(func() { lat.OutRaiseLink(lattice.Point{X: 0, Y: 1}, lattice.E) })
	assert.ErrorIs(t, err, fault.ErrInternal)

	err = fault.Catch(func() { lat.LinkAt(lattice.Point{X: 4, Y: 0}, lattice.N) })
	assert.ErrorIs(t, err, fault.ErrInternal, "out of range point must fault")
}

func TestSafeLinkAt(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)

	l, err := lat.SafeLinkAt(lattice.Point{X: 2, Y: 0}, lattice.E)
	require.NoError(t, err)
	assert.Equal(t, lattice.Out, l)

	l, err = lat.SafeLinkAt(lattice.Point{X: -1, Y: -1}, lattice.W)
	require.NoError(t, err, "(-1,-1) wraps to (3,3), a real site")
	assert.Equal(t, lattice.In, l)

	_, err = lat.SafeLinkAt(lattice.Point{X: 1, Y: 0}, lattice.W)
	assert.ErrorIs(t, err, lattice.ErrFakePoint)
}

func TestVertexAt_FakeMaterialization(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	// Put distinct values on the four edges around the fake site (1,2).
	lat.SetLink(lattice.Point{X: 1, Y: 3}, lattice.S, lattice.Out)
	lat.SetLink(lattice.Point{X: 2, Y: 2}, lattice.W, lattice.In)
	lat.SetLink(lattice.Point{X: 1, Y: 1}, lattice.N, lattice.In)

	fake := lattice.Point{X: 1, Y: 2}
	v := lat.VertexAtPoint(fake)
	assert.Equal(t, fake, v.XY)
	assert.Equal(t, lattice.In, v.N)
	assert.Equal(t, lattice.Out, v.E)
	assert.Equal(t, lattice.Out, v.S)
	assert.Equal(t, lattice.Blank, v.W)

	// Law: fake.d == Flip(real neighbour link in Flip(d)) for every direction.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := lattice.Point{X: x, Y: y}
			if lat.PointReal(p) {
				continue
			}
			got := lat.VertexAtPoint(p)
			for _, d := range lattice.Directions() {
				nb := lat.Bound(p).Step(d)
				assert.Equal(t, lat.LinkAt(nb.Location, d.Flip()).Flip(), got.Link(d), "site %v dir %v", p, d)
			}
		}
	}
}

func TestFilledLinks_TracksMutations(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	p := lattice.Point{X: 0, Y: 0}

	assert.Equal(t, lattice.Out, lat.OutRaiseLink(p, lattice.N))
	assert.Equal(t, 1, lat.FilledLinks())
	assert.Equal(t, lattice.In, lat.OutRaiseLink(p, lattice.N))
	assert.Equal(t, 1, lat.FilledLinks())
	assert.Equal(t, lattice.Blank, lat.OutRaiseLink(p, lattice.N))
	assert.Equal(t, 0, lat.FilledLinks())

	assert.Equal(t, lattice.In, lat.OutLowerLink(p, lattice.E))
	assert.Equal(t, 1, lat.FilledLinks())
	assert.Equal(t, lat.CountNonBlankLinks(), lat.FilledLinks())
	assert.Equal(t, 2*lat.CountNonBlankLinks(), lat.CountNonBlankSiteLinks())
}

func TestStriped_Reference(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 16, lat.FilledLinks())
	assert.Equal(t, lat.CountNonBlankLinks(), lat.FilledLinks())
	for _, v := range lat.AllSites() {
		assert.Equal(t, lattice.Out, v.E, "site %v", v.XY)
		assert.Equal(t, lattice.In, v.W, "site %v", v.XY)
		assert.Equal(t, lattice.Blank, v.N, "site %v", v.XY)
		assert.Equal(t, lattice.Blank, v.S, "site %v", v.XY)
	}
}

func TestStaggered_Reference(t *testing.T) {
	lat, err := lattice.NewStaggered(4, 6)
	require.NoError(t, err)
	for _, v := range lat.AllSites() {
		assert.Equal(t, []lattice.Direction{lattice.N, lattice.S}, v.FilledDirections(), "site %v", v.XY)
		assert.Equal(t, lattice.Out, v.N)
	}
}

func TestBuild(t *testing.T) {
	for _, name := range lattice.Initials() {
		lat, err := lattice.Build(lattice.Initial(name), 4, 4)
		require.NoError(t, err, name)
		assert.Equal(t, lat.CountNonBlankLinks(), lat.FilledLinks())
	}
	_, err := lattice.Build("checkerboard", 4, 4)
	assert.ErrorIs(t, err, lattice.ErrUnknownInitial)
	_, err = lattice.Build(lattice.InitialStriped, 3, 4)
	assert.ErrorIs(t, err, lattice.ErrInvalidSize)
}

func TestSnapshotRestore(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	before := lat.Clone()

	var snap lattice.Snapshot
	lat.SnapshotInto(&snap)
	lat.OutRaiseLink(lattice.Point{X: 0, Y: 0}, lattice.N)
	lat.OutRaiseLink(lattice.Point{X: 0, Y: 0}, lattice.E)
	require.False(t, lat.Equal(before))

	lat.Restore(&snap)
	assert.True(t, lat.Equal(before))
	assert.Equal(t, before.FilledLinks(), lat.FilledLinks())
	assert.Equal(t, 16, snap.FilledLinks())

	other := mustBlank(t, 6, 4)
	err = fault.Catch(func() { other.Restore(&snap) })
	assert.ErrorIs(t, err, fault.ErrInternal)
}

func TestClone_Independent(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	c := lat.Clone()
	c.OutRaiseLink(lattice.Point{X: 2, Y: 2}, lattice.S)
	assert.Equal(t, 0, lat.FilledLinks())
	assert.Equal(t, 1, c.FilledLinks())
}

func TestCodec_RoundTrip(t *testing.T) {
	lat, err := lattice.NewStriped(6, 4)
	require.NoError(t, err)
	lat.OutRaiseLink(lattice.Point{X: 1, Y: 1}, lattice.N)

	data, err := lat.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 10+4*12)

	var got lattice.Lattice
	require.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, got.Equal(lat))
	assert.Equal(t, lat.FilledLinks(), got.FilledLinks())
}

func TestCodec_Corrupt(t *testing.T) {
	lat := mustBlank(t, 4, 4)
	data, err := lat.MarshalBinary()
	require.NoError(t, err)

	var got lattice.Lattice
	assert.ErrorIs(t, got.UnmarshalBinary(data[:5]), lattice.ErrCorruptEncoding)
	assert.ErrorIs(t, got.UnmarshalBinary(data[:len(data)-1]), lattice.ErrCorruptEncoding)

	bad := append([]byte(nil), data...)
	bad[len(bad)-1] = 7
	assert.ErrorIs(t, got.UnmarshalBinary(bad), lattice.ErrCorruptEncoding)

	odd := append([]byte(nil), data...)
	odd[5] = 3 // Lx = 3
	assert.ErrorIs(t, got.UnmarshalBinary(odd), lattice.ErrCorruptEncoding)
}

func TestCodec_HeaderSizeMustMatchBody(t *testing.T) {
	header := func(lx, ly uint32) []byte {
		b := make([]byte, 10)
		b[0], b[1] = 'Z', 1
		binary.BigEndian.PutUint32(b[2:6], lx)
		binary.BigEndian.PutUint32(b[6:10], ly)

		return b
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"huge size without body", header(0xFFFFFFFE, 0xFFFFFFFE)},
		{"huge size with small body", append(header(0xFFFFFFFE, 2), make([]byte, 32)...)},
		{"size larger than body", append(header(8, 8), make([]byte, 32)...)},
		{"size smaller than body", append(header(2, 2), make([]byte, 32)...)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got lattice.Lattice
			var err error
			require.NotPanics(t, func() { err = got.UnmarshalBinary(tc.data) })
			assert.ErrorIs(t, err, lattice.ErrCorruptEncoding)
		})
	}

	var got lattice.Lattice
	require.NoError(t, got.UnmarshalBinary(append(header(4, 2), make([]byte, 16)...)))
	assert.Equal(t, lattice.Point{X: 4, Y: 2}, got.Size())
	assert.Equal(t, 0, got.FilledLinks())
}
