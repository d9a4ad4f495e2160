package main

import (
	"github.com/spf13/pflag"

	"github.com/katalvlaran/stringnet/config"
)

// configFlags binds config overrides to fs. The returned func copies only the
// flags the user set onto cfg, so unset flags never clobber file or
// environment values.
func configFlags(fs *pflag.FlagSet) func(fs *pflag.FlagSet, cfg *config.Config) {
	var v config.Config
	fs.IntVar(&v.Lx, "lx", 0, "lattice width (even, >= 2)")
	fs.IntVar(&v.Ly, "ly", 0, "lattice height (even, >= 2)")
	fs.Float64Var(&v.Tuning, "tuning", 0, "weight per filled edge (> 0)")
	fs.StringVar(&v.UpdateKind, "kind", "", "update kind: local or walk")
	fs.Int64Var(&v.Seed, "seed", 0, "random seed")
	fs.BoolVar(&v.Equilibrate, "equilibrate", false, "run equilibration updates before the first bin")
	fs.IntVar(&v.EquilibrationUpdates, "equilibration-updates", 0, "equilibration updates (0 means Lx*Ly)")
	fs.IntVar(&v.Bins, "bins", 0, "number of bins")
	fs.IntVar(&v.MeasurementsPerBin, "measurements", 0, "measurements per bin")
	fs.IntVar(&v.UpdatesPerMeasurement, "updates", 0, "updates between measurements")
	fs.StringVar(&v.Initial, "initial", "", "initial lattice: blank, striped or staggered")
	fs.StringSliceVar(&v.Estimators, "estimators", nil, "estimators to record, comma separated")
	fs.StringVar(&v.ResultsDB, "results-db", "", "SQLite results database path")
	fs.StringVar(&v.CheckpointDir, "checkpoint-dir", "", "Badger checkpoint directory")
	fs.StringVar(&v.MetricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address")

	return func(fs *pflag.FlagSet, cfg *config.Config) {
		set := map[string]func(){
			"lx":                    func() { cfg.Lx = v.Lx },
			"ly":                    func() { cfg.Ly = v.Ly },
			"tuning":                func() { cfg.Tuning = v.Tuning },
			"kind":                  func() { cfg.UpdateKind = v.UpdateKind },
			"seed":                  func() { cfg.Seed = v.Seed },
			"equilibrate":           func() { cfg.Equilibrate = v.Equilibrate },
			"equilibration-updates": func() { cfg.EquilibrationUpdates = v.EquilibrationUpdates },
			"bins":                  func() { cfg.Bins = v.Bins },
			"measurements":          func() { cfg.MeasurementsPerBin = v.MeasurementsPerBin },
			"updates":               func() { cfg.UpdatesPerMeasurement = v.UpdatesPerMeasurement },
			"initial":               func() { cfg.Initial = v.Initial },
			"estimators":            func() { cfg.Estimators = v.Estimators },
			"results-db":            func() { cfg.ResultsDB = v.ResultsDB },
			"checkpoint-dir":        func() { cfg.CheckpointDir = v.CheckpointDir },
			"metrics-addr":          func() { cfg.MetricsAddr = v.MetricsAddr },
		}
		fs.Visit(func(f *pflag.Flag) {
			if fn, ok := set[f.Name]; ok {
				fn()
			}
		})
	}
}
