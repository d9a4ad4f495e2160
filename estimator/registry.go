package estimator

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/stringnet/lattice"
)

// Registry names.
const (
	NameDensity           = "density"
	NameTotalLinkCount    = "total_link_count"
	NameWindingCount      = "winding_count"
	NameWindingVariance   = "winding_variance"
	NameClusterSize       = "cluster_size"
	NameOriginCorrelation = "origin_correlation"
)

type factory func(lat *lattice.Lattice, sink Sink) (Measurable, error)

var factories = map[string]factory{
	NameDensity: func(lat *lattice.Lattice, sink Sink) (Measurable, error) {
		return NewDensity(lat, sink)
	},
	NameTotalLinkCount: func(_ *lattice.Lattice, sink Sink) (Measurable, error) {
		return NewTotalLinkCount(sink)
	},
	NameWindingCount: func(_ *lattice.Lattice, sink Sink) (Measurable, error) {
		return NewWindingCount(sink)
	},
	NameWindingVariance: func(_ *lattice.Lattice, sink Sink) (Measurable, error) {
		return NewWindingVariance(sink)
	},
	NameClusterSize: func(_ *lattice.Lattice, sink Sink) (Measurable, error) {
		return NewClusterSize(sink)
	},
	NameOriginCorrelation: func(lat *lattice.Lattice, sink Sink) (Measurable, error) {
		return NewOriginCorrelation(lat, sink)
	},
}

// Names returns the registered estimator names in sorted order.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// New builds the named estimator for lattices shaped like lat.
func New(name string, lat *lattice.Lattice, sink Sink) (Measurable, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEstimator)
	}

	return f(lat, sink)
}

// NewSet builds every named estimator, in the given order.
func NewSet(names []string, lat *lattice.Lattice, sink Sink) ([]Measurable, error) {
	out := make([]Measurable, 0, len(names))
	for _, name := range names {
		m, err := New(name, lat, sink)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}
