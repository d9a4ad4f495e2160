package estimator

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/stringnet/lattice"
)

var (
	// ErrUnknownEstimator indicates a name not listed by Names.
	ErrUnknownEstimator = errors.New("estimator: unknown estimator")

	// ErrBadDenominator indicates a non-positive denominator.
	ErrBadDenominator = errors.New("estimator: denominator must be positive")

	// ErrNilSink is returned by constructors given a nil sink.
	ErrNilSink = errors.New("estimator: sink is nil")
)

// Measurable is implemented by every estimator.
type Measurable interface {
	// Name returns the registry name of the estimator.
	Name() string
	// Measure accumulates one sample of lat.
	Measure(lat *lattice.Lattice)
	// FinalizeBinAndWrite averages the accumulated samples by denominator and
	// emits them as the next bin.
	FinalizeBinAndWrite(ctx context.Context, denominator int) error
	// Clear resets the accumulators.
	Clear()
}

// Value is one named number of a record.
type Value struct {
	Name  string
	Value float64
}

// Record is one emitted row.
type Record struct {
	Estimator string
	// Series distinguishes the tables of multi-series estimators, e.g. "in"
	// and "out" for density. Empty for single-series estimators.
	Series string
	Bin    int
	// Site is set for per-site rows.
	Site   *lattice.Point
	Values []Value
}

// Get returns the value named name.
func (r Record) Get(name string) (float64, bool) {
	for _, v := range r.Values {
		if v.Name == name {
			return v.Value, true
		}
	}

	return 0, false
}

// Sink receives finalized records.
type Sink interface {
	Write(ctx context.Context, recs []Record) error
}

// emitter numbers bins and forwards records to a sink.
type emitter struct {
	name string
	sink Sink
	bin  int
}

func (e *emitter) Name() string { return e.name }

func (e *emitter) emit(ctx context.Context, recs []Record) error {
	for i := range recs {
		recs[i].Estimator = e.name
		recs[i].Bin = e.bin
	}
	e.bin++
	if err := e.sink.Write(ctx, recs); err != nil {
		return fmt.Errorf("%s bin %d: %w", e.name, e.bin-1, err)
	}

	return nil
}

func checkDenominator(n int) error {
	if n <= 0 {
		return ErrBadDenominator
	}

	return nil
}
