package estimator

import (
	"context"

	"github.com/katalvlaran/stringnet/lattice"
)

// siteCount holds per-direction tallies for one stored site.
type siteCount struct {
	xy         lattice.Point
	n, e, s, w int
}

func (c *siteCount) add(d lattice.Direction) {
	switch d {
	case lattice.N:
		c.n++
	case lattice.E:
		c.e++
	case lattice.S:
		c.s++
	case lattice.W:
		c.w++
	}
}

func (c *siteCount) clear() { c.n, c.e, c.s, c.w = 0, 0, 0, 0 }

func (c *siteCount) record(series string, denominator float64) Record {
	xy := c.xy

	return Record{
		Series: series,
		Site:   &xy,
		Values: []Value{
			{Name: "N", Value: float64(c.n) / denominator},
			{Name: "E", Value: float64(c.e) / denominator},
			{Name: "S", Value: float64(c.s) / denominator},
			{Name: "W", Value: float64(c.w) / denominator},
		},
	}
}

func newSiteCounts(lat *lattice.Lattice) []siteCount {
	out := make([]siteCount, lat.NumVertices())
	for i := range out {
		out[i].xy = lat.StoredVertex(i).XY
	}

	return out
}

// Density counts, per stored site and direction, how often the link is In,
// Out, or filled at all.
type Density struct {
	emitter
	in, out, total []siteCount
}

// NewDensity returns a density estimator for lattices shaped like lat.
func NewDensity(lat *lattice.Lattice, sink Sink) (*Density, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	return &Density{
		emitter: emitter{name: NameDensity, sink: sink},
		in:      newSiteCounts(lat),
		out:     newSiteCounts(lat),
		total:   newSiteCounts(lat),
	}, nil
}

// Measure implements Measurable.
func (d *Density) Measure(lat *lattice.Lattice) {
	for i := range d.total {
		v := lat.StoredVertex(i)
		for _, dir := range lattice.Directions() {
			switch v.Link(dir) {
			case lattice.In:
				d.in[i].add(dir)
				d.total[i].add(dir)
			case lattice.Out:
				d.out[i].add(dir)
				d.total[i].add(dir)
			}
		}
	}
}

// FinalizeBinAndWrite emits three series ("in", "out", "total") with one
// row per stored site.
func (d *Density) FinalizeBinAndWrite(ctx context.Context, denominator int) error {
	if err := checkDenominator(denominator); err != nil {
		return err
	}
	den := float64(denominator)
	recs := make([]Record, 0, 3*len(d.total))
	for _, series := range []struct {
		name   string
		counts []siteCount
	}{{"in", d.in}, {"out", d.out}, {"total", d.total}} {
		for i := range series.counts {
			recs = append(recs, series.counts[i].record(series.name, den))
		}
	}

	return d.emit(ctx, recs)
}

// Clear implements Measurable.
func (d *Density) Clear() {
	for i := range d.total {
		d.in[i].clear()
		d.out[i].clear()
		d.total[i].clear()
	}
}
