package winding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/update"
	"github.com/katalvlaran/stringnet/walk"
	"github.com/katalvlaran/stringnet/winding"
)

func TestReduce(t *testing.T) {
	assert.Equal(t, 0, winding.Reduce(0))
	assert.Equal(t, 1, winding.Reduce(4))
	assert.Equal(t, 2, winding.Reduce(-1))
	assert.Equal(t, 0, winding.Reduce(-6))
}

func TestCompute_ReferenceLattices(t *testing.T) {
	blank, err := lattice.NewBlank(4, 4)
	require.NoError(t, err)
	assert.Equal(t, winding.Numbers{}, winding.Compute(blank))

	striped, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	assert.Equal(t, winding.Numbers{Vertical: 1, RawVertical: 4}, winding.Compute(striped))

	staggered, err := lattice.NewStaggered(4, 6)
	require.NoError(t, err)
	assert.Equal(t, winding.Numbers{Horizontal: 1, RawHorizontal: 4}, winding.Compute(staggered))
}

func TestCompute_ParallelCutsAgreeAfterUpdates(t *testing.T) {
	for _, kind := range []update.Kind{update.Local, update.Walk} {
		for seed := int64(1); seed <= 10; seed++ {
			lat, err := lattice.NewStriped(6, 4)
			require.NoError(t, err)
			u, err := update.New(lat, update.WithKind(kind), update.WithTuning(0.8), update.WithSeed(seed))
			require.NoError(t, err)
			for i := 0; i < 200; i++ {
				u.Update()
				require.NoError(t, fault.Catch(func() { winding.Compute(lat) }), "kind %v seed %d step %d", kind, seed, i)
				require.True(t, winding.Consistent(lat))
			}
		}
	}
}

func TestLocalMovesPreserveWinding(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	want := winding.Compute(lat)
	u, err := update.New(lat, update.WithSeed(3))
	require.NoError(t, err)
	u.UpdateN(500)
	got := winding.Compute(lat)
	assert.Equal(t, want.Horizontal, got.Horizontal)
	assert.Equal(t, want.Vertical, got.Vertical)
}

func TestNonContractibleLoopChangesWinding(t *testing.T) {
	lat, err := lattice.NewBlank(4, 4)
	require.NoError(t, err)
	w := walk.New(lat, lattice.Point{X: 0, Y: 1})
	for i := 0; i < 4; i++ {
		w.RaiseStep(lattice.E)
	}
	require.True(t, w.Closed())

	got := winding.Compute(lat)
	assert.Equal(t, 1, got.RawVertical, "one string crosses every column cut")
	assert.Equal(t, 1, got.Vertical)
	assert.Zero(t, got.Horizontal)
}

func TestCompute_BrokenFluxFaults(t *testing.T) {
	lat, err := lattice.NewBlank(4, 4)
	require.NoError(t, err)
	// A lone edge is a flux source: cuts on either side disagree.
	lat.SetLink(lattice.Point{X: 0, Y: 0}, lattice.E, lattice.Out)

	err = fault.Catch(func() { winding.Compute(lat) })
	f, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindInvariant, f.Kind)
	assert.False(t, winding.Consistent(lat))
}
