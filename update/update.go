package update

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/walk"
)

// Updater proposes and accepts or rejects moves on one lattice. It borrows
// the lattice for the duration of each call and is not safe for concurrent
// use.
type Updater struct {
	lat    *lattice.Lattice
	opts   Options
	walker *walk.Walker
	snap   lattice.Snapshot
	stats  Stats
}

// New validates the options and returns an Updater bound to lat.
func New(lat *lattice.Lattice, opts ...Option) (*Updater, error) {
	// 1. Validate lattice
	if lat == nil {
		return nil, ErrNilLattice
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Validate knobs
	if o.Tuning <= 0 || math.IsInf(o.Tuning, 0) || math.IsNaN(o.Tuning) {
		return nil, fmt.Errorf("tuning %v: %w", o.Tuning, ErrInvalidTuning)
	}
	if o.Kind != Local && o.Kind != Walk {
		return nil, fmt.Errorf("%v: %w", o.Kind, ErrUnknownKind)
	}

	return &Updater{
		lat:    lat,
		opts:   o,
		walker: walk.New(lat, lattice.Point{}),
	}, nil
}

// Kind returns the configured move generator.
func (u *Updater) Kind() Kind { return u.opts.Kind }

// Tuning returns the configured weight per filled edge.
func (u *Updater) Tuning() float64 { return u.opts.Tuning }

// Stats returns the accumulated move counts.
func (u *Updater) Stats() Stats { return u.stats }

// Update proposes one move of the configured kind and accepts or rejects it.
// Internal faults panic with *fault.Fault.
func (u *Updater) Update() Result {
	// 1. Snapshot so any proposal can be undone in full
	u.lat.SnapshotInto(&u.snap)
	res := Result{Kind: u.opts.Kind, Before: u.snap.FilledLinks()}

	// 2. Propose
	start := u.randomPoint()
	res.Start = [2]int{start.X, start.Y}
	switch u.opts.Kind {
	case Local:
		res.LinkChange, res.Steps = u.local(start)
	case Walk:
		res.LinkChange, res.Steps = u.walk(start)
	}

	// 3. Bookkeeping must agree with the incremental counter
	if got := u.lat.FilledLinks() - res.Before; got != res.LinkChange {
		fault.Invariant("update.Update", "link change disagrees with filled counter",
			"kind", res.Kind, "start", start, "change", res.LinkChange, "counter_delta", got,
			"size", u.lat.Size())
	}

	// 4. Accept or roll back
	res.Accepted = u.accept(res.LinkChange)
	if !res.Accepted {
		u.lat.Restore(&u.snap)
	}
	res.After = u.lat.FilledLinks()

	// 5. Record
	u.record(res)

	return res
}

// UpdateN runs n updates and returns the accumulated stats.
func (u *Updater) UpdateN(n int) Stats {
	for i := 0; i < n; i++ {
		u.Update()
	}

	return u.stats
}

// local raises the plaquette whose lower-left corner is p.
func (u *Updater) local(p lattice.Point) (change, steps int) {
	u.walker.Reset(p)
	for _, d := range lattice.Directions() {
		change += Classify(u.walker.RaiseStep(d))
	}
	if !u.walker.Closed() {
		fault.Invariant("update.local", "plaquette walk did not return to start",
			"start", p, "head", u.walker.Position().Location, "size", u.lat.Size())
	}

	return change, u.walker.Steps()
}

// walk raises random steps from p until the head is back on p.
func (u *Updater) walk(p lattice.Point) (change, steps int) {
	u.walker.Reset(p)
	dirs := lattice.Directions()
	for {
		change += Classify(u.walker.RaiseStep(dirs[u.opts.Rand.Intn(len(dirs))]))
		if u.walker.Closed() {
			break
		}
	}

	return change, u.walker.Steps()
}

// accept applies the Metropolis rule for a filled-link delta.
func (u *Updater) accept(delta int) bool {
	ratio := math.Pow(u.opts.Tuning, float64(delta))
	if ratio >= 1 {
		return true
	}

	return u.opts.Rand.Float64() < ratio
}

func (u *Updater) randomPoint() lattice.Point {
	size := u.lat.Size()

	return lattice.Point{X: u.opts.Rand.Intn(size.X), Y: u.opts.Rand.Intn(size.Y)}
}

func (u *Updater) record(res Result) {
	u.stats.Proposed++
	u.stats.Steps += uint64(res.Steps)
	if res.Accepted {
		u.stats.Accepted++
	} else {
		u.stats.Rejected++
	}
	u.opts.Metrics.observe(res)
	if u.opts.Logger.Enabled(context.Background(), slog.LevelDebug) {
		u.opts.Logger.Debug("update",
			slog.String("kind", res.Kind.String()),
			slog.Int("x", res.Start[0]),
			slog.Int("y", res.Start[1]),
			slog.Int("steps", res.Steps),
			slog.Int("link_change", res.LinkChange),
			slog.Bool("accepted", res.Accepted),
			slog.Int("filled", res.After),
		)
	}
}

// Normalization returns Z = Σ_{k=0}^{2·Lx·Ly} tuning^k. Acceptance never
// needs it, since Z cancels in the Metropolis ratio; it is a diagnostic, logged
// at debug level when a simulation run starts. It overflows to +Inf for large
// lattices with tuning > 1.
func (u *Updater) Normalization() float64 {
	z, term := 0.0, 1.0
	for k := 0; k <= u.lat.MaxLinks(); k++ {
		z += term
		term *= u.opts.Tuning
	}

	return z
}

// Weight returns tuning^k / Z, the stationary probability weight of one
// configuration with k filled edges.
// Like Normalization it is a diagnostic and is not used by Update.
func (u *Updater) Weight(k int) float64 {
	return math.Pow(u.opts.Tuning, float64(k)) / u.Normalization()
}
