package cluster_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stringnet/cluster"
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/update"
)

func sorted(ps []lattice.Point) []lattice.Point {
	out := append([]lattice.Point(nil), ps...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})

	return out
}

func TestBlankLattice_NoClusters(t *testing.T) {
	lat, err := lattice.NewBlank(4, 4)
	require.NoError(t, err)

	tr := cluster.NewTraversal(lat)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.False(t, tr.Begin(lattice.Point{X: x, Y: y}))
			assert.Nil(t, cluster.Find(lat, lattice.Point{X: x, Y: y}))
		}
	}
	assert.Empty(t, tr.Clustered)
	assert.False(t, tr.Active)

	lab := cluster.Label(lat)
	assert.Zero(t, lab.Count())
	assert.Zero(t, lab.MeanSize())
	assert.Zero(t, lab.Largest())
}

func TestStriped_ClusterFromOrigin(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)

	got := cluster.Find(lat, lattice.Point{X: 0, Y: 0})
	want := []lattice.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	assert.Equal(t, want, sorted(got))
}

func TestStriped_StepByStep(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)

	var visited []lattice.Point
	tr := cluster.NewTraversal(lat, cluster.WithOnVisit(func(p lattice.Point, id int) {
		assert.Zero(t, id)
		visited = append(visited, p)
	}))
	require.True(t, tr.Begin(lattice.Point{X: 0, Y: 0}))
	assert.Equal(t, [][]lattice.Direction{{lattice.E, lattice.W}}, tr.Stack)

	// The last filled direction (W) is tried first and wraps to (3,0).
	assert.Equal(t, cluster.Exploring, tr.Step())
	assert.Equal(t, lattice.Point{X: 3, Y: 0}, tr.Current.Location)
	assert.Equal(t, []lattice.Direction{lattice.W}, tr.WalkList)
	assert.Len(t, tr.Stack, 2)

	var statuses []cluster.Status
	for tr.Active {
		statuses = append(statuses, tr.Step())
	}
	assert.Equal(t, cluster.Done, statuses[len(statuses)-1])
	assert.Contains(t, statuses, cluster.Backtracking)
	assert.Len(t, visited, 4)
	assert.Empty(t, tr.WalkList)
	assert.Empty(t, tr.Stack)
	assert.True(t, tr.Current.Equal(tr.Start), "traversal ends on its seed")

	err = fault.Catch(func() { tr.Step() })
	f, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindPrecondition, f.Kind)
}

func TestBegin_SkipsClusteredSeed(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	tr := cluster.NewTraversal(lat)
	require.True(t, tr.Begin(lattice.Point{X: 1, Y: 1}))
	tr.Run()
	assert.False(t, tr.Begin(lattice.Point{X: 3, Y: 1}))
	assert.True(t, tr.Begin(lattice.Point{X: 3, Y: 2}))
	assert.Equal(t, 1, tr.ClusterID)

	err = fault.Catch(func() { tr.Begin(lattice.Point{X: 0, Y: 0}) })
	assert.ErrorIs(t, err, fault.ErrInternal, "Begin while active")
}

func TestLabel_ReferenceLattices(t *testing.T) {
	striped, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	lab := cluster.Label(striped)
	assert.Equal(t, []int{4, 4, 4, 4}, lab.Sizes)
	assert.Equal(t, 4.0, lab.MeanSize())
	assert.Equal(t, 1, lab.Clustered[lattice.Point{X: 2, Y: 1}])

	staggered, err := lattice.NewStaggered(4, 6)
	require.NoError(t, err)
	lab = cluster.Label(staggered)
	assert.Equal(t, []int{6, 6, 6, 6}, lab.Sizes)
	assert.Equal(t, 3, lab.Clustered[lattice.Point{X: 3, Y: 5}])
}

func TestStep_OtherClusterIsInvariantFault(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	tr := cluster.NewTraversal(lat)
	require.True(t, tr.Begin(lattice.Point{X: 0, Y: 0}))
	tr.Run()

	// Joining rows 0 and 1 after row 0 was clustered makes row 1's search
	// run into a foreign cluster.
	lat.SetLink(lattice.Point{X: 0, Y: 0}, lattice.N, lattice.Out)
	require.True(t, tr.Begin(lattice.Point{X: 0, Y: 1}))
	err = fault.Catch(func() { tr.Run() })
	f, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindInvariant, f.Kind)
	other, _ := f.Field("other")
	assert.Equal(t, 0, other)
}

func TestLabel_AgreesWithComponents(t *testing.T) {
	for _, kind := range []update.Kind{update.Local, update.Walk} {
		for seed := int64(1); seed <= 8; seed++ {
			lat, err := lattice.NewBlank(6, 6)
			require.NoError(t, err)
			u, err := update.New(lat, update.WithKind(kind), update.WithTuning(0.6), update.WithSeed(seed))
			require.NoError(t, err)
			u.UpdateN(400)

			var lab cluster.Labeling
			require.NoError(t, fault.Catch(func() { lab = cluster.Label(lat) }))
			comps := cluster.Components(lat)
			require.Len(t, lab.Sizes, len(comps), "kind %v seed %d", kind, seed)
			for id, comp := range comps {
				assert.Equal(t, len(comp), lab.Sizes[id])
				for _, p := range comp {
					assert.Equal(t, id, lab.Clustered[p], "site %v", p)
				}
			}
		}
	}
}

func TestOnStepHook(t *testing.T) {
	lat, err := lattice.NewStriped(4, 4)
	require.NoError(t, err)
	steps := 0
	cluster.Find(lat, lattice.Point{X: 0, Y: 2}, cluster.WithOnStep(func(s cluster.Status, tr *cluster.Traversal) {
		steps++
		assert.Equal(t, s, tr.Last)
	}))
	// Ring of four: 3 discoveries, 5 loop closures, 3 retreats and Done.
	assert.Equal(t, 12, steps)
}
