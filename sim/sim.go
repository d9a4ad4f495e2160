package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/stringnet/config"
	"github.com/katalvlaran/stringnet/estimator"
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/store/checkpoint"
	"github.com/katalvlaran/stringnet/store/sqlite"
	"github.com/katalvlaran/stringnet/update"
	"github.com/katalvlaran/stringnet/winding"
)

var (
	// ErrResumeWithoutCheckpoints is returned when Resume is requested but no
	// checkpoint store is attached.
	ErrResumeWithoutCheckpoints = errors.New("sim: resume requires a checkpoint store")

	// ErrNothingToResume is returned when the run has no checkpoint, or its
	// checkpoint does not match the configured lattice size.
	ErrNothingToResume = errors.New("sim: nothing to resume")
)

// updateChunk is how many updates run between context checks.
const updateChunk = 1024

// Report summarizes a finished run.
type Report struct {
	RunID  string
	Tuning float64

	// FirstBin is the first bin computed by this call; non-zero on resume.
	FirstBin int
	Bins     int
	// Stats counts every move of the run, including resumed-from segments.
	Stats   update.Stats
	Winding winding.Numbers
	Lattice *lattice.Lattice
	Elapsed time.Duration
}

// Run executes one simulation described by cfg.
func Run(ctx context.Context, cfg config.Config, opts ...Option) (Report, error) {
	// 1. Validate before any work
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Resume && o.Checkpoints == nil {
		return Report{}, ErrResumeWithoutCheckpoints
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	log := o.Logger.With(slog.String("run", o.RunID), slog.Float64("tuning", cfg.Tuning))

	// 3. Register the run
	if o.Results != nil && !o.Resume {
		kind, _ := update.ParseKind(cfg.UpdateKind)
		err := o.Results.BeginRun(ctx, sqlite.Run{
			ID: o.RunID, Lx: cfg.Lx, Ly: cfg.Ly, Tuning: cfg.Tuning,
			UpdateKind: kind.String(), Initial: cfg.Initial, Seed: cfg.Seed,
		})
		if err != nil {
			return Report{}, err
		}
	}

	// 4. Simulate, turning internal faults into errors
	start := time.Now()
	rep, err := run(ctx, cfg, o, log)
	rep.RunID = o.RunID
	rep.Tuning = cfg.Tuning
	rep.Elapsed = time.Since(start)
	if err != nil {
		log.Error("run failed", slog.Any("error", err))
	} else {
		log.Info("run finished",
			slog.Int("bins", rep.Bins),
			slog.Uint64("proposed", rep.Stats.Proposed),
			slog.Float64("acceptance", rep.Stats.AcceptanceRate()),
			slog.Duration("elapsed", rep.Elapsed))
	}

	// 5. Record the outcome even when ctx is done
	if o.Results != nil {
		ferr := o.Results.FinishRun(context.WithoutCancel(ctx), o.RunID,
			rep.Stats.Proposed, rep.Stats.Accepted, err)
		if ferr != nil {
			err = errors.Join(err, ferr)
		}
	}

	return rep, err
}

func run(ctx context.Context, cfg config.Config, o Options, log *slog.Logger) (rep Report, err error) {
	defer fault.Recover(&err)

	// 1. Lattice: fresh or from the latest checkpoint
	lat, firstBin, prior, err := initialLattice(ctx, cfg, o)
	if err != nil {
		return rep, err
	}
	rep.FirstBin = firstBin
	rep.Lattice = lat
	rep.Stats = prior

	// 2. Sink and estimators
	sink := buildSink(o, log)
	if firstBin > 0 {
		sink = offsetSink{next: sink, offset: firstBin}
	}
	ests, err := estimator.NewSet(cfg.Estimators, lat, sink)
	if err != nil {
		return rep, err
	}

	// 3. Updater. A resumed run cannot restore math/rand state, so each
	// segment is seeded from the configured seed and its first bin.
	kind, _ := update.ParseKind(cfg.UpdateKind)
	u, err := update.New(lat,
		update.WithKind(kind),
		update.WithTuning(cfg.Tuning),
		update.WithRand(rand.New(rand.NewSource(segmentSeed(cfg.Seed, firstBin)))),
		update.WithLogger(log),
		update.WithMetrics(o.Metrics),
	)
	if err != nil {
		return rep, err
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("weights",
			slog.Float64("normalization", u.Normalization()),
			slog.Int("max_links", lat.MaxLinks()))
	}

	// 4. Equilibrate
	if firstBin == 0 {
		n := cfg.EquilibrationSteps()
		log.Debug("equilibrating", slog.Int("updates", n))
		if err := updates(ctx, u, n); err != nil {
			return rep, err
		}
	}

	// 5. Bins
	for bin := firstBin; bin < cfg.Bins; bin++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		for m := 0; m < cfg.MeasurementsPerBin; m++ {
			if err := updates(ctx, u, cfg.UpdatesPerMeasurement); err != nil {
				return rep, err
			}
			for _, e := range ests {
				e.Measure(lat)
			}
		}
		for _, e := range ests {
			if err := e.FinalizeBinAndWrite(ctx, cfg.MeasurementsPerBin); err != nil {
				return rep, fmt.Errorf("finalize %s: %w", e.Name(), err)
			}
			e.Clear()
		}
		total := prior.Add(u.Stats())
		if err := saveCheckpoint(ctx, o, bin, total, lat); err != nil {
			return rep, err
		}
		rep.Bins++
		rep.Stats = total
		log.Debug("bin done",
			slog.Int("bin", bin),
			slog.Int("filled", lat.FilledLinks()),
			slog.Float64("acceptance", rep.Stats.AcceptanceRate()))
	}

	rep.Stats = prior.Add(u.Stats())
	rep.Winding = winding.Compute(lat)

	return rep, nil
}

// updates runs n updates, checking ctx between chunks.
func updates(ctx context.Context, u *update.Updater, n int) error {
	for n > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := min(n, updateChunk)
		u.UpdateN(step)
		n -= step
	}

	return nil
}

// initialLattice returns the starting lattice, its first bin and the move
// counts of the segments already run.
func initialLattice(ctx context.Context, cfg config.Config, o Options) (*lattice.Lattice, int, update.Stats, error) {
	if !o.Resume {
		lat, err := lattice.Build(lattice.Initial(cfg.Initial), cfg.Lx, cfg.Ly)

		return lat, 0, update.Stats{}, err
	}
	cp, err := o.Checkpoints.Latest(ctx, o.RunID)
	if errors.Is(err, checkpoint.ErrNotFound) {
		return nil, 0, update.Stats{}, fmt.Errorf("%s: %w", o.RunID, ErrNothingToResume)
	}
	if err != nil {
		return nil, 0, update.Stats{}, err
	}
	if got := cp.Lattice.Size(); got.X != cfg.Lx || got.Y != cfg.Ly {
		return nil, 0, update.Stats{}, fmt.Errorf("%s: checkpoint is %dx%d, config is %dx%d: %w",
			o.RunID, got.X, got.Y, cfg.Lx, cfg.Ly, ErrNothingToResume)
	}
	if cp.Accepted > cp.Updates {
		return nil, 0, update.Stats{}, fmt.Errorf("%s bin %d: %d accepted of %d updates: %w",
			o.RunID, cp.Bin, cp.Accepted, cp.Updates, ErrNothingToResume)
	}
	prior := update.Stats{
		Proposed: cp.Updates,
		Accepted: cp.Accepted,
		Rejected: cp.Updates - cp.Accepted,
		Steps:    cp.Steps,
	}

	return cp.Lattice, cp.Bin + 1, prior, nil
}

func buildSink(o Options, log *slog.Logger) estimator.Sink {
	var sinks estimator.Tee
	if o.Results != nil {
		sinks = append(sinks, o.Results.Sink(o.RunID))
	}
	if o.Sink != nil {
		sinks = append(sinks, o.Sink)
	}
	switch len(sinks) {
	case 0:
		return estimator.LogSink{Logger: log, Level: slog.LevelInfo}
	case 1:
		return sinks[0]
	default:
		return sinks
	}
}

// saveCheckpoint stores lat as bin with the run's cumulative move counts.
func saveCheckpoint(ctx context.Context, o Options, bin int, total update.Stats, lat *lattice.Lattice) error {
	if o.Checkpoints == nil {
		return nil
	}
	err := o.Checkpoints.Save(ctx, o.RunID, checkpoint.Checkpoint{
		Bin:      bin,
		Updates:  total.Proposed,
		Accepted: total.Accepted,
		Steps:    total.Steps,
		Lattice:  lat.Clone(),
	})
	if err != nil {
		return fmt.Errorf("checkpoint bin %d: %w", bin, err)
	}
	if o.KeepCheckpoints > 0 {
		return o.Checkpoints.Prune(ctx, o.RunID, o.KeepCheckpoints)
	}

	return nil
}

// segmentSeed derives the RNG seed of a run segment starting at firstBin.
func segmentSeed(seed int64, firstBin int) int64 {
	return seed + int64(firstBin)*1_000_003
}
