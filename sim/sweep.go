package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stringnet/config"
)

// ErrNoTunings is returned by Sweep for an empty tuning list.
var ErrNoTunings = errors.New("sim: sweep needs at least one tuning")

// Sweep runs base once per tuning value, at most parallel runs at a time
// (parallel <= 0 means GOMAXPROCS). Run i is seeded with base.Seed+i.
// Reports are returned in tuning order. The first failing run cancels the
// others.
//
// WithRunID and WithResume are ignored; every run gets a fresh id.
func Sweep(ctx context.Context, base config.Config, tunings []float64, parallel int, opts ...Option) ([]Report, error) {
	// 1. Validate every configuration up front
	if len(tunings) == 0 {
		return nil, ErrNoTunings
	}
	cfgs := make([]config.Config, len(tunings))
	for i, t := range tunings {
		cfgs[i] = base
		cfgs[i].Tuning = t
		cfgs[i].Seed = base.Seed + int64(i)
		cfgs[i].Estimators = append([]string(nil), base.Estimators...)
		if err := cfgs[i].Validate(); err != nil {
			return nil, fmt.Errorf("tuning %v: %w", t, err)
		}
	}
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	o.Logger.Info("sweep started", slog.Int("runs", len(cfgs)), slog.Int("parallel", parallel))

	// 2. Fan out; each run owns its lattice and RNG
	reports := make([]Report, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range cfgs {
		i := i
		g.Go(func() error {
			runOpts := append(append([]Option(nil), opts...), WithRunID(""), withoutResume())
			rep, err := Run(gctx, cfgs[i], runOpts...)
			if err != nil {
				return fmt.Errorf("tuning %v: %w", cfgs[i].Tuning, err)
			}
			reports[i] = rep

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}

	return reports, nil
}

func withoutResume() Option {
	return func(o *Options) { o.Resume = false }
}
