package update

import (
	"io"
	"log/slog"
	"math/rand"
)

// defaultSeed keeps an Updater reproducible when no RNG is supplied.
const defaultSeed = 1

// Option configures an Updater.
type Option func(*Options)

// Options holds the Updater's knobs. Later options override earlier ones.
type Options struct {
	Kind    Kind
	Tuning  float64
	Rand    *rand.Rand
	Logger  *slog.Logger
	Metrics *Metrics
}

// DefaultOptions returns Local moves, tuning 1, a seeded RNG, a discarding
// logger and unregistered metrics.
func DefaultOptions() Options {
	return Options{
		Kind:   Local,
		Tuning: 1,
		Rand:   rand.New(rand.NewSource(defaultSeed)),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithKind selects the move generator.
func WithKind(k Kind) Option {
	return func(o *Options) { o.Kind = k }
}

// WithTuning sets the weight per filled edge.
func WithTuning(t float64) Option {
	return func(o *Options) { o.Tuning = t }
}

// WithSeed installs a fresh RNG seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand installs a caller-owned RNG. A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics shares collectors between updaters, e.g. the runs of a sweep.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
