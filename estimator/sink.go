package estimator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// MemorySink keeps every record in memory. It is safe for concurrent use.
type MemorySink struct {
	mu   sync.Mutex
	recs []Record
}

// Write implements Sink.
func (m *MemorySink) Write(_ context.Context, recs []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, recs...)

	return nil
}

// Records returns a copy of the stored records.
func (m *MemorySink) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.recs))
	copy(out, m.recs)

	return out
}

// Filter returns the stored records of one estimator and series.
func (m *MemorySink) Filter(estimator, series string) []Record {
	var out []Record
	for _, r := range m.Records() {
		if r.Estimator == estimator && r.Series == series {
			out = append(out, r)
		}
	}

	return out
}

// LogSink writes lattice-wide records as structured log lines. Per-site rows
// are summarized by count to keep logs readable.
type LogSink struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Write implements Sink.
func (l LogSink) Write(ctx context.Context, recs []Record) error {
	sites := 0
	for _, r := range recs {
		if r.Site != nil {
			sites++
			continue
		}
		attrs := []slog.Attr{
			slog.String("estimator", r.Estimator),
			slog.Int("bin", r.Bin),
		}
		if r.Series != "" {
			attrs = append(attrs, slog.String("series", r.Series))
		}
		for _, v := range r.Values {
			attrs = append(attrs, slog.Float64(v.Name, v.Value))
		}
		l.Logger.LogAttrs(ctx, l.Level, "bin", attrs...)
	}
	if sites > 0 && len(recs) > 0 {
		l.Logger.LogAttrs(ctx, l.Level, "bin",
			slog.String("estimator", recs[0].Estimator),
			slog.Int("bin", recs[0].Bin),
			slog.Int("site_rows", sites))
	}

	return nil
}

// Tee fans records out to several sinks and joins their errors.
type Tee []Sink

// Write implements Sink.
func (t Tee) Write(ctx context.Context, recs []Record) error {
	var errs []error
	for _, s := range t {
		if err := s.Write(ctx, recs); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
