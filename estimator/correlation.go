package estimator

import (
	"context"

	"github.com/katalvlaran/stringnet/lattice"
)

// OriginCorrelation measures four binary correlation functions against the
// origin's links. When the origin's E link is Out, each stored site scores
// its E link being Out and its W link being In in the "horizontal_out"
// series; "horizontal_in" mirrors this for an In origin link, and the
// vertical series do the same with the origin's N link and the N/S links.
// A Blank origin link skips its series for that sample.
type OriginCorrelation struct {
	emitter
	hOut, hIn, vOut, vIn []siteCount
	sites                int
}

// NewOriginCorrelation returns a correlation estimator for lattices shaped
// like lat.
func NewOriginCorrelation(lat *lattice.Lattice, sink Sink) (*OriginCorrelation, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	return &OriginCorrelation{
		emitter: emitter{name: NameOriginCorrelation, sink: sink},
		hOut:    newSiteCounts(lat),
		hIn:     newSiteCounts(lat),
		vOut:    newSiteCounts(lat),
		vIn:     newSiteCounts(lat),
		sites:   lat.Sites(),
	}, nil
}

// Measure implements Measurable.
func (c *OriginCorrelation) Measure(lat *lattice.Lattice) {
	origin := lat.StoredVertex(0)
	if !origin.E.Filled() && !origin.N.Filled() {
		return
	}
	for i := range c.hOut {
		v := lat.StoredVertex(i)
		switch origin.E {
		case lattice.Out:
			if v.E == lattice.Out {
				c.hOut[i].add(lattice.E)
			}
			if v.W == lattice.In {
				c.hOut[i].add(lattice.W)
			}
		case lattice.In:
			if v.E == lattice.In {
				c.hIn[i].add(lattice.E)
			}
			if v.W == lattice.Out {
				c.hIn[i].add(lattice.W)
			}
		}
		switch origin.N {
		case lattice.Out:
			if v.N == lattice.Out {
				c.vOut[i].add(lattice.N)
			}
			if v.S == lattice.In {
				c.vOut[i].add(lattice.S)
			}
		case lattice.In:
			if v.N == lattice.In {
				c.vIn[i].add(lattice.N)
			}
			if v.S == lattice.Out {
				c.vIn[i].add(lattice.S)
			}
		}
	}
}

// FinalizeBinAndWrite divides every tally by denominator·Lx·Ly.
func (c *OriginCorrelation) FinalizeBinAndWrite(ctx context.Context, denominator int) error {
	if err := checkDenominator(denominator); err != nil {
		return err
	}
	den := float64(denominator) * float64(c.sites)
	recs := make([]Record, 0, 4*len(c.hOut))
	for _, series := range []struct {
		name   string
		counts []siteCount
	}{{"horizontal_out", c.hOut}, {"horizontal_in", c.hIn}, {"vertical_out", c.vOut}, {"vertical_in", c.vIn}} {
		for i := range series.counts {
			recs = append(recs, series.counts[i].record(series.name, den))
		}
	}

	return c.emit(ctx, recs)
}

// Clear implements Measurable.
func (c *OriginCorrelation) Clear() {
	for i := range c.hOut {
		c.hOut[i].clear()
		c.hIn[i].clear()
		c.vOut[i].clear()
		c.vIn[i].clear()
	}
}
