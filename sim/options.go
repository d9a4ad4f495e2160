package sim

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/stringnet/estimator"
	"github.com/katalvlaran/stringnet/store/checkpoint"
	"github.com/katalvlaran/stringnet/store/sqlite"
	"github.com/katalvlaran/stringnet/update"
)

// Option configures Run and Sweep.
type Option func(*Options)

// Options holds the collaborators of a run. Every field is optional.
type Options struct {
	Logger      *slog.Logger
	Metrics     *update.Metrics
	Sink        estimator.Sink
	Results     *sqlite.Store
	Checkpoints *checkpoint.Store
	// KeepCheckpoints bounds the checkpoints kept per run; 0 keeps all.
	KeepCheckpoints int
	RunID           string
	Resume          bool
}

// DefaultOptions returns a discarding logger and no stores.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records update metrics on m.
func WithMetrics(m *update.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithSink adds a sink that receives every estimator record.
func WithSink(s estimator.Sink) Option {
	return func(o *Options) { o.Sink = s }
}

// WithResults stores run metadata and records in a SQLite results database.
func WithResults(s *sqlite.Store) Option {
	return func(o *Options) { o.Results = s }
}

// WithCheckpoints saves the lattice after every bin.
func WithCheckpoints(s *checkpoint.Store, keep int) Option {
	return func(o *Options) {
		o.Checkpoints = s
		o.KeepCheckpoints = keep
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(o *Options) { o.RunID = id }
}

// WithResume continues run id from its latest checkpoint.
func WithResume(id string) Option {
	return func(o *Options) {
		o.RunID = id
		o.Resume = true
	}
}
